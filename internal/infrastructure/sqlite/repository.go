package sqlite

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pricehound/pricehound/internal/domain"
)

// Repository is the gorm-backed implementation of
// domain.ProductRepository.
type Repository struct {
	db *gorm.DB
}

var _ domain.ProductRepository = (*Repository)(nil)

// NewRepository wraps an open gorm handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the stores/products/purchases tables and their
// indexes when absent. Safe to call on every run.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(
		&domain.Store{},
		&domain.Product{},
		&domain.Purchase{},
	)
}

func (r *Repository) EnsureStore(ctx context.Context, name string) (*domain.Store, error) {
	store := domain.Store{Name: strings.ToLower(strings.TrimSpace(name))}
	err := r.db.WithContext(ctx).
		Where(domain.Store{Name: store.Name}).
		FirstOrCreate(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *Repository) EnsureProduct(ctx context.Context, canonicalName, sizeText string) (*domain.Product, error) {
	product := domain.Product{CanonicalName: canonicalName, SizeText: sizeText}
	err := r.db.WithContext(ctx).
		Where(domain.Product{CanonicalName: canonicalName}).
		FirstOrCreate(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) PurchaseExists(ctx context.Context, p *domain.Purchase) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("store_id = ? AND product_id = ? AND source_file = ? AND raw_product_name = ?",
			p.StoreID, p.ProductID, p.SourceFile, p.RawProductName).
		Where("IFNULL(current_price, -1) = IFNULL(?, -1)", priceArg(p.CurrentPrice)).
		Where("IFNULL(original_price, -1) = IFNULL(?, -1)", priceArg(p.OriginalPrice)).
		Where("IFNULL(size_text, '') = ?", p.SizeText).
		Count(&count).Error
	return count > 0, err
}

// priceArg converts a nullable decimal into a REAL-typed query argument
// so the IFNULL comparison stays numeric on both sides.
func priceArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	f, _ := d.Decimal.Float64()
	return f
}

func (r *Repository) CreatePurchase(ctx context.Context, p *domain.Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) ProductsMissingImage(ctx context.Context, limit int) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).
		Where("image_url IS NULL OR image_url = ''").
		Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []domain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) ApplyImageUpdates(ctx context.Context, updates []domain.ImageUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	var applied int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			// Guarded so an image attached since selection is never
			// overwritten.
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND (image_url IS NULL OR image_url = '')", u.ProductID).
				Updates(map[string]any{
					"image_url":        u.URL,
					"image_source":     u.Source,
					"image_confidence": u.Confidence,
				})
			if res.Error != nil {
				return res.Error
			}
			applied += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountPurchases(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountProductsWithImage(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("image_url IS NOT NULL AND image_url <> ''").
		Count(&count).Error
	return count, err
}

func (r *Repository) WithTx(ctx context.Context, fn func(domain.ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
