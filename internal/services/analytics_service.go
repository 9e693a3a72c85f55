package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/interfaces"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/logger"
)

// GrowthReport compares trailing 30-day counts against the 30 days
// before that.
type GrowthReport struct {
	NewUsers         int64   `json:"new_users"`
	PreviousUsers    int64   `json:"previous_users"`
	UserGrowthPct    float64 `json:"user_growth_pct"`
	NewProducts      int64   `json:"new_products"`
	PreviousProducts int64   `json:"previous_products"`
	ProductGrowthPct float64 `json:"product_growth_pct"`
	PeriodStart      string  `json:"period_start"`
	PeriodEnd        string  `json:"period_end"`
}

// DailyCount is one day of signups.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// GrowthSeries holds per-day user and seller signup counts for the
// trailing 30 days.
type GrowthSeries struct {
	UserGrowth   []DailyCount `json:"user_growth"`
	SellerGrowth []DailyCount `json:"seller_growth"`
}

type AnalyticsService interface {
	GrowthReport(ctx context.Context) (*GrowthReport, error)
	UserSellerGrowth(ctx context.Context) (*GrowthSeries, error)
}

type analyticsService struct {
	userRepo    interfaces.UserRepository
	sellerRepo  interfaces.SellerRepository
	productRepo interfaces.ProductRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewAnalyticsService(userRepo interfaces.UserRepository, sellerRepo interfaces.SellerRepository, productRepo interfaces.ProductRepository, log *logger.Logger) AnalyticsService {
	return &analyticsService{
		userRepo:    userRepo,
		sellerRepo:  sellerRepo,
		productRepo: productRepo,
		logger:      log,
		now:         time.Now,
	}
}

// UserSellerGrowth counts signups day by day, midnight to midnight,
// over the trailing 30 days including today.
func (s *analyticsService) UserSellerGrowth(ctx context.Context) (*GrowthSeries, error) {
	end := s.now()
	day := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, -30)

	series := &GrowthSeries{
		UserGrowth:   make([]DailyCount, 0, 31),
		SellerGrowth: make([]DailyCount, 0, 31),
	}
	for !day.After(end) {
		next := day.AddDate(0, 0, 1)
		users, err := s.userRepo.CountCreatedBetween(ctx, day, next)
		if err != nil {
			return nil, fmt.Errorf("failed to count user signups: %w", err)
		}
		sellers, err := s.sellerRepo.CountCreatedBetween(ctx, day, next)
		if err != nil {
			return nil, fmt.Errorf("failed to count seller signups: %w", err)
		}

		date := day.Format("2006-01-02")
		series.UserGrowth = append(series.UserGrowth, DailyCount{Date: date, Count: users})
		series.SellerGrowth = append(series.SellerGrowth, DailyCount{Date: date, Count: sellers})
		day = next
	}
	return series, nil
}

func (s *analyticsService) GrowthReport(ctx context.Context) (*GrowthReport, error) {
	end := s.now()
	start := end.Add(-30 * 24 * time.Hour)
	prevStart := start.Add(-30 * 24 * time.Hour)

	newUsers, err := s.userRepo.CountCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}
	prevUsers, err := s.userRepo.CountCreatedBetween(ctx, prevStart, start)
	if err != nil {
		return nil, fmt.Errorf("failed to count previous users: %w", err)
	}
	newProducts, err := s.productRepo.CountCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count new products: %w", err)
	}
	prevProducts, err := s.productRepo.CountCreatedBetween(ctx, prevStart, start)
	if err != nil {
		return nil, fmt.Errorf("failed to count previous products: %w", err)
	}

	return &GrowthReport{
		NewUsers:         newUsers,
		PreviousUsers:    prevUsers,
		UserGrowthPct:    growthPct(newUsers, prevUsers),
		NewProducts:      newProducts,
		PreviousProducts: prevProducts,
		ProductGrowthPct: growthPct(newProducts, prevProducts),
		PeriodStart:      start.UTC().Format(time.RFC3339),
		PeriodEnd:        end.UTC().Format(time.RFC3339),
	}, nil
}

// growthPct reports the period-over-period change. A zero previous
// period with new activity reads as 100% growth.
func growthPct(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return utils.Round2(float64(current-previous) / float64(previous) * 100)
}
