package domain

import "context"

// ProductRepository defines persistence for stores, products and
// purchases.
type ProductRepository interface {
	// EnsureStore returns the store with the given label, creating it
	// (lower-cased) on first encounter.
	EnsureStore(ctx context.Context, name string) (*Store, error)

	// EnsureProduct returns the product with the given canonical name,
	// creating it on first encounter.
	EnsureProduct(ctx context.Context, canonicalName, sizeText string) (*Product, error)

	// PurchaseExists reports whether an identical purchase row already
	// exists (same store, product, source file, raw name, prices and
	// size text).
	PurchaseExists(ctx context.Context, p *Purchase) (bool, error)

	CreatePurchase(ctx context.Context, p *Purchase) error

	// ProductsMissingImage returns products with an empty image URL,
	// ordered by id. A limit of 0 means no limit.
	ProductsMissingImage(ctx context.Context, limit int) ([]Product, error)

	// ApplyImageUpdates persists resolved images in a single
	// transaction. Rows that acquired an image since selection are left
	// untouched; the count of rows actually updated is returned.
	ApplyImageUpdates(ctx context.Context, updates []ImageUpdate) (int64, error)

	CountProducts(ctx context.Context) (int64, error)
	CountPurchases(ctx context.Context) (int64, error)
	CountProductsWithImage(ctx context.Context) (int64, error)

	// WithTx runs fn against a transactional view of the repository,
	// committing when fn returns nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(ProductRepository) error) error
}

// CatalogClient defines an external image catalog queried during
// enrichment.
type CatalogClient interface {
	// Name is the provenance tag recorded on products resolved from
	// this catalog.
	Name() string

	// Search returns candidates for the query. ErrNoCandidates signals
	// an empty result set; any other error is a transport, HTTP or
	// decode failure.
	Search(ctx context.Context, query string) ([]CatalogCandidate, error)
}
