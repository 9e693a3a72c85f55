package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSellerGrowthBucketsSignupsByDay(t *testing.T) {
	userRepo := newMemUserRepo()
	sellerRepo := &memSellerRepo{}

	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	alice := userRepo.seed("alice")
	alice.CreatedAt = now.AddDate(0, 0, -2)
	bob := userRepo.seed("bob")
	bob.CreatedAt = now.AddDate(0, 0, -2).Add(-3 * time.Hour)
	carol := userRepo.seed("carol")
	carol.CreatedAt = now.AddDate(0, 0, -40)

	sellerRepo.created = []time.Time{
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -45),
	}

	svc := NewAnalyticsService(userRepo, sellerRepo, nil, newTestLogger()).(*analyticsService)
	svc.now = func() time.Time { return now }

	series, err := svc.UserSellerGrowth(context.Background())
	require.NoError(t, err)

	require.Len(t, series.UserGrowth, 31)
	require.Len(t, series.SellerGrowth, 31)
	assert.Equal(t, "2026-07-31", series.UserGrowth[0].Date)
	assert.Equal(t, "2026-08-30", series.UserGrowth[30].Date)

	userCounts := map[string]int64{}
	var userTotal int64
	for _, day := range series.UserGrowth {
		userCounts[day.Date] = day.Count
		userTotal += day.Count
	}
	assert.Equal(t, int64(2), userCounts["2026-08-28"])
	// Signups older than the window stay out of the series.
	assert.Equal(t, int64(2), userTotal)

	var sellerTotal int64
	sellerCounts := map[string]int64{}
	for _, day := range series.SellerGrowth {
		sellerCounts[day.Date] = day.Count
		sellerTotal += day.Count
	}
	assert.Equal(t, int64(1), sellerCounts["2026-08-29"])
	assert.Equal(t, int64(1), sellerTotal)
}
