package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pricehound/pricehound/internal/domain"
	"github.com/pricehound/pricehound/internal/infrastructure/cache"
)

// Per-source acceptance thresholds and confidence mappings. Confidence
// is min(ceiling, base + slope*score): the structured food database is
// trusted most, general image search least.
const (
	openFoodFactsThreshold = 0.42
	openverseThreshold     = 0.33
	wikipediaThreshold     = 0.45
)

// catalogStep is one stop in the resolver chain.
type catalogStep struct {
	client domain.CatalogClient

	// useVariants adds the normalized and truncated name queries;
	// normalizedScoring also compares normalized forms when scoring.
	useVariants       bool
	normalizedScoring bool

	threshold float64
	base      float64
	slope     float64
	ceiling   float64
}

// scoredMatch is the best candidate a step produced for one product.
type scoredMatch struct {
	url   string
	name  string
	score float64
}

// EnrichOptions control one enrichment run.
type EnrichOptions struct {
	// Limit caps how many image-less products are processed; 0 means
	// all of them.
	Limit int

	// Delay is the pacing between processed products, protecting the
	// external catalogs from bursts.
	Delay time.Duration
}

// EnrichResult summarizes one enrichment run.
type EnrichResult struct {
	Processed int
	Updated   int
	Skipped   int
	BySource  map[string]int

	WithImage     int64
	TotalProducts int64
}

// EnrichService attaches representative images to products that lack
// one. Catalogs are tried in trust order and the chain stops at the
// first candidate clearing its source's threshold; a static keyword
// table is the last resort. Products whose image is already set are
// never touched.
type EnrichService struct {
	repo    domain.ProductRepository
	steps   []catalogStep
	memo    *cache.Memo
	limiter *rate.Limiter
	limit   int
	log     zerolog.Logger
}

// NewEnrichService wires the resolver chain: a structured food
// database, a general image search, then an encyclopedia title search.
func NewEnrichService(
	repo domain.ProductRepository,
	foodFacts, imageSearch, encyclopedia domain.CatalogClient,
	opts EnrichOptions,
	log zerolog.Logger,
) *EnrichService {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}

	return &EnrichService{
		repo: repo,
		steps: []catalogStep{
			{client: foodFacts, useVariants: true, normalizedScoring: true,
				threshold: openFoodFactsThreshold, base: 0.55, slope: 0.40, ceiling: 0.95},
			{client: imageSearch, useVariants: true, normalizedScoring: true,
				threshold: openverseThreshold, base: 0.38, slope: 0.35, ceiling: 0.82},
			{client: encyclopedia,
				threshold: wikipediaThreshold, base: 0.45, slope: 0.35, ceiling: 0.85},
		},
		memo:    cache.NewMemo(),
		limiter: limiter,
		limit:   opts.Limit,
		log:     log,
	}
}

// Run processes every product with an empty image URL (up to the
// configured limit) and commits all resolved images in a single
// transaction at the end.
func (s *EnrichService) Run(ctx context.Context) (*EnrichResult, error) {
	products, err := s.repo.ProductsMissingImage(ctx, s.limit)
	if err != nil {
		return nil, err
	}

	result := &EnrichResult{BySource: make(map[string]int)}
	var updates []domain.ImageUpdate

	for _, p := range products {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		result.Processed++

		update, ok := s.resolve(ctx, p)
		if !ok {
			result.Skipped++
			s.log.Debug().Str("product", p.CanonicalName).Msg("no image found")
			continue
		}

		updates = append(updates, update)
		result.Updated++
		result.BySource[update.Source]++
		s.log.Info().
			Str("product", p.CanonicalName).
			Str("source", update.Source).
			Float64("confidence", update.Confidence).
			Msg("image resolved")
	}

	if _, err := s.repo.ApplyImageUpdates(ctx, updates); err != nil {
		return nil, err
	}

	if result.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if result.WithImage, err = s.repo.CountProductsWithImage(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// resolve walks the catalog chain for one product and falls back to
// the static keyword table.
func (s *EnrichService) resolve(ctx context.Context, p domain.Product) (domain.ImageUpdate, bool) {
	for _, step := range s.steps {
		match := s.searchStep(ctx, step, p.CanonicalName)
		if match == nil || match.score < step.threshold {
			continue
		}
		return domain.ImageUpdate{
			ProductID:  p.ID,
			URL:        match.url,
			Source:     step.client.Name(),
			Confidence: confidence(step.base, step.slope, step.ceiling, match.score),
		}, true
	}

	if url, keyword, ok := LookupFallbackImage(p.CanonicalName); ok {
		s.log.Debug().Str("product", p.CanonicalName).Str("keyword", keyword).
			Msg("using fallback image")
		return domain.ImageUpdate{
			ProductID:  p.ID,
			URL:        url,
			Source:     fallbackSource,
			Confidence: fallbackConfidence,
		}, true
	}

	return domain.ImageUpdate{}, false
}

// searchStep queries one catalog with the product's name variants and
// returns the highest-scoring candidate that carries an image. Lookup
// failures count as no candidates; the chain moves on.
func (s *EnrichService) searchStep(ctx context.Context, step catalogStep, rawName string) *scoredMatch {
	queries := []string{rawName}
	if step.useVariants {
		queries = nameVariants(rawName)
	}

	var best *scoredMatch
	for _, q := range queries {
		candidates, err := s.search(ctx, step.client, q)
		if err != nil {
			s.log.Warn().Err(err).
				Str("source", step.client.Name()).
				Str("query", q).
				Msg("catalog lookup failed")
			continue
		}

		for _, c := range candidates {
			if c.Name == "" || c.ImageURL == "" {
				continue
			}
			score := Similarity(rawName, c.Name)
			if step.normalizedScoring {
				if ns := Similarity(NormalizeName(rawName), NormalizeName(c.Name)); ns > score {
					score = ns
				}
			}
			if best == nil || score > best.score {
				best = &scoredMatch{url: c.ImageURL, name: c.Name, score: score}
			}
		}
	}
	return best
}

// search memoizes catalog responses for the run: products sharing a
// name variant reuse the first response instead of refetching.
// Transport failures are not memoized so a later product retries.
func (s *EnrichService) search(ctx context.Context, client domain.CatalogClient, query string) ([]domain.CatalogCandidate, error) {
	key := client.Name() + ":" + query
	if v, ok := s.memo.Get(key); ok {
		return v.([]domain.CatalogCandidate), nil
	}

	candidates, err := client.Search(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrNoCandidates) {
			s.memo.Set(key, []domain.CatalogCandidate(nil))
			return nil, nil
		}
		return nil, err
	}

	s.memo.Set(key, candidates)
	return candidates, nil
}

// confidence maps a similarity score onto the stored confidence scale
// for a source, capped and rounded to three decimals.
func confidence(base, slope, ceiling, score float64) float64 {
	c := base + slope*score
	if c > ceiling {
		c = ceiling
	}
	return math.Round(c*1000) / 1000
}
