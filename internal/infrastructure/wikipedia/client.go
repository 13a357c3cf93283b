package wikipedia

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

// Client queries the MediaWiki search generator for page titles with
// thumbnails.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

const (
	searchLimit   = 3
	thumbnailSize = 400
)

// NewClient creates a new Wikipedia client.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

// Name returns the provenance tag for this catalog.
func (c *Client) Name() string { return "wikipedia" }

type queryResponse struct {
	Query struct {
		Pages map[string]page `json:"pages"`
	} `json:"query"`
}

type page struct {
	Title     string `json:"title"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// Search returns page titles with their thumbnails. Pages without a
// thumbnail are returned with an empty image URL and filtered by the
// caller.
func (c *Client) Search(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("generator", "search")
	params.Set("gsrlimit", fmt.Sprintf("%d", searchLimit))
	params.Set("prop", "pageimages|info")
	params.Set("inprop", "url")
	params.Set("piprop", "thumbnail")
	params.Set("pithumbsize", fmt.Sprintf("%d", thumbnailSize))
	params.Set("gsrsearch", query)

	reqURL := fmt.Sprintf("%s/w/api.php?%s", c.baseURL, params.Encode())

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

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(qr.Query.Pages) == 0 {
		return nil, domain.ErrNoCandidates
	}

	candidates := make([]domain.CatalogCandidate, 0, len(qr.Query.Pages))
	for _, p := range qr.Query.Pages {
		candidates = append(candidates, domain.CatalogCandidate{
			Name:     p.Title,
			ImageURL: p.Thumbnail.Source,
		})
	}
	return candidates, nil
}
