package usecase

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pricehound/pricehound/internal/domain"
)

// pricePattern matches the first dollar amount in a free-text price
// field. Source fields mix currency with annotations ("$3.99 est",
// "$2.49/lb"), so the match is a scan, not a full-field parse.
var pricePattern = regexp.MustCompile(`\$\s*([0-9]+(?:\.[0-9]{1,2})?)`)

// noteMarkers flag a primary price field as an estimate or variable
// price whose raw text is worth keeping.
var noteMarkers = []string{"est", "/lb", "variable"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Recognized header spellings. The exports are tolerant about spacing
// and about which of two price headers they use.
const (
	colProduct      = "Producto"
	colSize         = "Tamaño/Cantidad"
	colSizeSpaced   = "Tamaño / Cantidad"
	colPrice        = "Precio"
	colPriceCurrent = "Precio Actual"
	colNotes        = "Precio Original / Notas"
)

// ImportResult summarizes one import run.
type ImportResult struct {
	RowsRead   int
	Skipped    int
	Duplicates int
	Inserted   int

	ProductsTotal  int64
	PurchasesTotal int64
}

// ImportService loads a vendor price export into the store.
type ImportService struct {
	repo domain.ProductRepository
	log  zerolog.Logger
}

// NewImportService creates an import service on top of a repository.
func NewImportService(repo domain.ProductRepository, log zerolog.Logger) *ImportService {
	return &ImportService{repo: repo, log: log}
}

// ImportFile imports the CSV at csvPath under the given store label.
// Re-importing the same file is a no-op: every row that already exists
// is counted as a duplicate and skipped.
func (s *ImportService) ImportFile(ctx context.Context, csvPath, storeName string) (*ImportResult, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	return s.Import(ctx, f, filepath.Base(csvPath), storeName)
}

// Import reads a price export from r. sourceFile is recorded on every
// purchase row and participates in duplicate detection. All rows are
// written in a single transaction; a mid-file failure leaves the store
// untouched.
func (s *ImportService) Import(ctx context.Context, r io.Reader, sourceFile, storeName string) (*ImportResult, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	err = s.repo.WithTx(ctx, func(tx domain.ProductRepository) error {
		store, err := tx.EnsureStore(ctx, storeName)
		if err != nil {
			return fmt.Errorf("ensuring store: %w", err)
		}

		for {
			rec, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("reading csv row: %w", err)
			}
			result.RowsRead++

			rawName := strings.TrimSpace(field(rec, cols.product))
			if rawName == "" {
				result.Skipped++
				continue
			}

			sizeText := strings.TrimSpace(field(rec, cols.size))
			priceText := strings.TrimSpace(field(rec, cols.price))
			notesText := strings.TrimSpace(field(rec, cols.notes))

			currentPrice := ParsePrice(priceText)
			originalPrice := ParsePrice(notesText)
			notes := deriveNotes(priceText, notesText, originalPrice)

			if priceText != "" && !currentPrice.Valid {
				s.log.Debug().Str("product", rawName).Str("price", priceText).
					Msg("unparseable price, inserting row with null price")
			}

			product, err := tx.EnsureProduct(ctx, rawName, sizeText)
			if err != nil {
				return fmt.Errorf("ensuring product %q: %w", rawName, err)
			}

			purchase := &domain.Purchase{
				StoreID:        store.ID,
				ProductID:      product.ID,
				SourceFile:     sourceFile,
				RawProductName: rawName,
				CurrentPrice:   currentPrice,
				OriginalPrice:  originalPrice,
				Notes:          notes,
				SizeText:       sizeText,
				Currency:       "USD",
				ImportedAt:     time.Now().UTC(),
			}

			exists, err := tx.PurchaseExists(ctx, purchase)
			if err != nil {
				return fmt.Errorf("checking for duplicate: %w", err)
			}
			if exists {
				result.Duplicates++
				continue
			}

			if err := tx.CreatePurchase(ctx, purchase); err != nil {
				return fmt.Errorf("inserting purchase: %w", err)
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.ProductsTotal, err = s.repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if result.PurchasesTotal, err = s.repo.CountPurchases(ctx); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("source_file", sourceFile).
		Int("rows", result.RowsRead).
		Int("inserted", result.Inserted).
		Int("duplicates", result.Duplicates).
		Int("skipped", result.Skipped).
		Msg("import finished")

	return result, nil
}

// ParsePrice extracts the first dollar amount from a free-text price
// field. The zero NullDecimal is returned when no amount is present.
func ParsePrice(s string) decimal.NullDecimal {
	m := pricePattern.FindStringSubmatch(s)
	if m == nil {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// deriveNotes keeps the secondary column's raw text as a note when it
// carries no parseable price; otherwise the primary price field is kept
// when it is marked as an estimate or variable price.
func deriveNotes(priceText, notesText string, originalPrice decimal.NullDecimal) string {
	if notesText != "" && !originalPrice.Valid {
		return notesText
	}
	lower := strings.ToLower(priceText)
	for _, marker := range noteMarkers {
		if strings.Contains(lower, marker) {
			return priceText
		}
	}
	return ""
}

type columnMap struct {
	product int
	size    int
	price   int
	notes   int
}

// resolveColumns maps recognized header spellings to indexes. Only the
// product column is mandatory.
func resolveColumns(header []string) (columnMap, error) {
	cols := columnMap{product: -1, size: -1, price: -1, notes: -1}
	priceAlt := -1

	for i, h := range header {
		switch strings.TrimSpace(h) {
		case colProduct:
			cols.product = i
		case colSize, colSizeSpaced:
			if cols.size < 0 {
				cols.size = i
			}
		case colPrice:
			cols.price = i
		case colPriceCurrent:
			priceAlt = i
		case colNotes:
			cols.notes = i
		}
	}
	if cols.price < 0 {
		cols.price = priceAlt
	}
	if cols.product < 0 {
		return cols, domain.ErrMissingProductColumn
	}
	return cols, nil
}

// field returns rec[idx], tolerating ragged rows and absent columns.
func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
