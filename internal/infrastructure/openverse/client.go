package openverse

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

// Client queries the Openverse image search API, restricted to
// commercially licensed raster images.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

const pageSize = 8

// NewClient creates a new Openverse client. Anonymous access is rate
// limited server-side; the local limiter keeps us comfortably inside.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// Name returns the provenance tag for this catalog.
func (c *Client) Name() string { return "openverse" }

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Search returns image candidates for the query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("page_size", fmt.Sprintf("%d", pageSize))
	params.Set("license_type", "commercial")
	params.Add("extension", "jpg")
	params.Add("extension", "jpeg")
	params.Add("extension", "png")

	reqURL := fmt.Sprintf("%s/v1/images/?%s", c.baseURL, params.Encode())

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

	if len(sr.Results) == 0 {
		return nil, domain.ErrNoCandidates
	}

	candidates := make([]domain.CatalogCandidate, 0, len(sr.Results))
	for _, r := range sr.Results {
		candidates = append(candidates, domain.CatalogCandidate{
			Name:     strings.TrimSpace(r.Title),
			ImageURL: r.URL,
		})
	}
	return candidates, nil
}
