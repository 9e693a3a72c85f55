package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/interfaces"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/logger"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/search"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/vision"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrEmptySearchQuery = errors.New("search query is required")
	ErrInvalidImageData = errors.New("invalid image data")
)

// ImageSearchResult pairs the AI tagging of a photo with product
// listings matched from its search terms.
type ImageSearchResult struct {
	Analysis *vision.ClothingAnalysis `json:"analysis"`
	Products []search.ExternalProduct `json:"products"`
}

type ProductService interface {
	SearchExternal(ctx context.Context, query string, limit int) ([]search.ExternalProduct, error)
	GetExternalItem(ctx context.Context, itemID string) (*search.ExternalProduct, error)
	SearchLocal(ctx context.Context, query string, filters map[string]interface{}, limit, offset int) ([]*models.Product, int64, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	AnalyzeImage(ctx context.Context, req *models.AnalyzeImageRequest) (*ImageSearchResult, error)
}

type productService struct {
	productRepo  interfaces.ProductRepository
	searchClient search.Client
	analyzer     vision.Analyzer
	logger       *logger.Logger
}

func NewProductService(productRepo interfaces.ProductRepository, searchClient search.Client, analyzer vision.Analyzer, log *logger.Logger) ProductService {
	return &productService{
		productRepo:  productRepo,
		searchClient: searchClient,
		analyzer:     analyzer,
		logger:       log,
	}
}

func (s *productService) SearchExternal(ctx context.Context, query string, limit int) ([]search.ExternalProduct, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptySearchQuery
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	products, err := s.searchClient.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("external search failed: %w", err)
	}
	return products, nil
}

func (s *productService) GetExternalItem(ctx context.Context, itemID string) (*search.ExternalProduct, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, ErrInvalidProductID
	}

	item, err := s.searchClient.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, search.ErrItemNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("external item lookup failed: %w", err)
	}
	return item, nil
}

func (s *productService) SearchLocal(ctx context.Context, query string, filters map[string]interface{}, limit, offset int) ([]*models.Product, int64, error) {
	return s.productRepo.Search(ctx, strings.TrimSpace(query), filters, limit, offset)
}

func (s *productService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	product, err := s.productRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *models.Product) error {
	product.IsActive = true
	return s.productRepo.Create(ctx, product)
}

// AnalyzeImage tags a clothing photo and immediately searches listings
// with the extracted terms. Provider trouble degrades to a fixed
// fallback analysis, never a failed request.
func (s *productService) AnalyzeImage(ctx context.Context, req *models.AnalyzeImageRequest) (*ImageSearchResult, error) {
	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil || len(data) == 0 {
		return nil, ErrInvalidImageData
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	var analysis *vision.ClothingAnalysis
	if s.analyzer == nil {
		s.logger.Warn("image analyzer not configured, serving fallback analysis")
		analysis = vision.FallbackAnalysis()
	} else if analysis, err = s.analyzer.AnalyzeImage(ctx, data, mimeType); err != nil {
		s.logger.WithError(err).Warn("image analysis failed, serving fallback analysis")
		analysis = vision.FallbackAnalysis()
	}

	query := analysis.Category
	if len(analysis.SearchTerms) > 0 {
		query = analysis.SearchTerms[0]
	}

	products, err := s.searchClient.SearchProducts(ctx, query, 20)
	if err != nil {
		// Tagging succeeded; degrade to analysis-only rather than failing.
		s.logger.WithError(err).Warn("listing search after image analysis failed")
		products = []search.ExternalProduct{}
	}

	return &ImageSearchResult{
		Analysis: analysis,
		Products: products,
	}, nil
}
