package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store is a retailer whose price export was imported. Created on first
// encounter, never mutated or deleted. Names are stored lower-cased.
type Store struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

// Product is a distinct item deduplicated by canonical name. Today the
// canonical name is the raw receipt name; near-duplicate spellings
// create separate rows. The image fields start empty and are filled by
// the enrichment pass, at most once.
type Product struct {
	ID              uint   `gorm:"primaryKey"`
	CanonicalName   string `gorm:"uniqueIndex;not null"`
	SizeText        string
	ImageURL        string
	ImageSource     string
	ImageConfidence *float64 `gorm:"type:real"`
}

// Purchase is one observed price event. Immutable after insert.
type Purchase struct {
	ID             uint                `gorm:"primaryKey"`
	StoreID        uint                `gorm:"index;not null"`
	ProductID      uint                `gorm:"index;not null"`
	SourceFile     string              `gorm:"not null"`
	RawProductName string              `gorm:"not null"`
	CurrentPrice   decimal.NullDecimal `gorm:"type:real"`
	OriginalPrice  decimal.NullDecimal `gorm:"type:real"`
	Notes          string
	SizeText       string
	Currency       string    `gorm:"default:'USD'"`
	ImportedAt     time.Time `gorm:"not null"`
}

// CatalogCandidate is a single search hit returned by an external
// catalog: a display name and the image it carries (possibly empty).
type CatalogCandidate struct {
	Name     string
	ImageURL string
}

// ImageUpdate is a resolved image pending persistence at the end of an
// enrichment run.
type ImageUpdate struct {
	ProductID  uint
	URL        string
	Source     string
	Confidence float64
}
