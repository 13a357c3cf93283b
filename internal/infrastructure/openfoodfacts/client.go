package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pricehound/pricehound/internal/domain"
)

// Client queries the Open Food Facts product search API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

const pageSize = 8

// NewClient creates a new Open Food Facts client. The search endpoint
// is unauthenticated; Open Food Facts asks clients to identify
// themselves via User-Agent and stay well under their burst limits.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

// Name returns the provenance tag for this catalog.
func (c *Client) Name() string { return "openfoodfacts" }

type searchResponse struct {
	Products []searchProduct `json:"products"`
}

type searchProduct struct {
	ProductName        string `json:"product_name"`
	ImageFrontSmallURL string `json:"image_front_small_url"`
	ImageFrontURL      string `json:"image_front_url"`
	ImageURL           string `json:"image_url"`
}

// Search runs a simple text search and returns candidate products with
// their preferred (smallest available) front image.
func (c *Client) Search(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", fmt.Sprintf("%d", pageSize))

	reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(sr.Products) == 0 {
		return nil, domain.ErrNoCandidates
	}

	candidates := make([]domain.CatalogCandidate, 0, len(sr.Products))
	for _, p := range sr.Products {
		candidates = append(candidates, domain.CatalogCandidate{
			Name:     strings.TrimSpace(p.ProductName),
			ImageURL: firstNonEmpty(p.ImageFrontSmallURL, p.ImageFrontURL, p.ImageURL),
		})
	}
	return candidates, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
