package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricehound/pricehound/internal/domain"
	"github.com/pricehound/pricehound/internal/infrastructure/sqlite"
)

func newTestRepo(t *testing.T) *sqlite.Repository {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	repo := sqlite.NewRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"$3.99", "3.99", true},
		{"$3.99 est", "3.99", true},
		{"$2.49/lb", "2.49", true},
		{"$ 12", "12", true},
		{"$0.99", "0.99", true},
		{"was $5.49", "5.49", true},
		{"3.99", "", false},
		{"", "", false},
		{"variable", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParsePrice(tt.in)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestDeriveNotes(t *testing.T) {
	t.Run("unparseable secondary text is kept", func(t *testing.T) {
		notes := deriveNotes("$3.99", "rollback", ParsePrice("rollback"))
		assert.Equal(t, "rollback", notes)
	})

	t.Run("parseable secondary text is not a note", func(t *testing.T) {
		notes := deriveNotes("$3.99", "$5.49", ParsePrice("$5.49"))
		assert.Empty(t, notes)
	})

	t.Run("estimate marker keeps the price text", func(t *testing.T) {
		notes := deriveNotes("$3.99 est", "", ParsePrice(""))
		assert.Equal(t, "$3.99 est", notes)
	})

	t.Run("per-pound marker keeps the price text", func(t *testing.T) {
		notes := deriveNotes("$2.49/lb", "", ParsePrice(""))
		assert.Equal(t, "$2.49/lb", notes)
	})

	t.Run("plain price yields no note", func(t *testing.T) {
		notes := deriveNotes("$3.99", "", ParsePrice(""))
		assert.Empty(t, notes)
	})
}

func TestResolveColumns(t *testing.T) {
	t.Run("missing product column", func(t *testing.T) {
		_, err := resolveColumns([]string{"Precio", "Tamaño/Cantidad"})
		assert.ErrorIs(t, err, domain.ErrMissingProductColumn)
	})

	t.Run("precio preferred over precio actual", func(t *testing.T) {
		cols, err := resolveColumns([]string{"Producto", "Precio Actual", "Precio"})
		require.NoError(t, err)
		assert.Equal(t, 2, cols.price)
	})

	t.Run("precio actual used when precio absent", func(t *testing.T) {
		cols, err := resolveColumns([]string{"Producto", "Precio Actual"})
		require.NoError(t, err)
		assert.Equal(t, 1, cols.price)
	})

	t.Run("spaced size header accepted", func(t *testing.T) {
		cols, err := resolveColumns([]string{"Producto", "Tamaño / Cantidad"})
		require.NoError(t, err)
		assert.Equal(t, 1, cols.size)
	})
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	csvBody := strings.Join([]string{
		"Producto,Tamaño/Cantidad,Precio,Precio Original / Notas",
		"Organic Bananas,2 lb,$1.48,",
		"Whole Milk,1 gal,$3.99 est,was $4.49",
		"Mystery Item,,see shelf,",
		"Organic Bananas,2 lb,$1.48,",
	}, "\n") + "\n"

	t.Run("full import", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := NewImportService(repo, zerolog.Nop())

		result, err := svc.Import(ctx, strings.NewReader(csvBody), "walmart.csv", "Walmart")
		require.NoError(t, err)

		assert.Equal(t, 4, result.RowsRead)
		assert.Equal(t, 3, result.Inserted)
		assert.Equal(t, 1, result.Duplicates)
		assert.Equal(t, 0, result.Skipped)
		assert.Equal(t, int64(3), result.ProductsTotal)
		assert.Equal(t, int64(3), result.PurchasesTotal)
	})

	t.Run("re-import is a no-op", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := NewImportService(repo, zerolog.Nop())

		_, err := svc.Import(ctx, strings.NewReader(csvBody), "walmart.csv", "Walmart")
		require.NoError(t, err)

		result, err := svc.Import(ctx, strings.NewReader(csvBody), "walmart.csv", "Walmart")
		require.NoError(t, err)

		assert.Equal(t, 0, result.Inserted)
		assert.Equal(t, 4, result.Duplicates)
		assert.Equal(t, int64(3), result.PurchasesTotal)
	})

	t.Run("unparseable price inserts row with null price", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := NewImportService(repo, zerolog.Nop())

		body := "Producto,Precio\nMystery Item,see shelf\n"
		result, err := svc.Import(ctx, strings.NewReader(body), "x.csv", "walmart")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)
	})

	t.Run("empty product name is skipped", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := NewImportService(repo, zerolog.Nop())

		body := "Producto,Precio\n,$3.99\nBananas,$1.48\n"
		result, err := svc.Import(ctx, strings.NewReader(body), "x.csv", "walmart")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 1, result.Inserted)
	})

	t.Run("byte order mark is tolerated", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := NewImportService(repo, zerolog.Nop())

		body := "\xEF\xBB\xBFProducto,Precio\nBananas,$1.48\n"
		result, err := svc.Import(ctx, strings.NewReader(body), "x.csv", "walmart")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)
	})

	t.Run("missing product column fails before any write", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := NewImportService(repo, zerolog.Nop())

		body := "Nombre,Precio\nBananas,$1.48\n"
		_, err := svc.Import(ctx, strings.NewReader(body), "x.csv", "walmart")
		assert.ErrorIs(t, err, domain.ErrMissingProductColumn)

		count, err := repo.CountPurchases(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("ragged rows are tolerated", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := NewImportService(repo, zerolog.Nop())

		body := "Producto,Tamaño/Cantidad,Precio\nBananas\nMilk,1 gal,$3.99\n"
		result, err := svc.Import(ctx, strings.NewReader(body), "x.csv", "walmart")
		require.NoError(t, err)
		assert.Equal(t, 2, result.Inserted)
	})

	t.Run("notes recorded from estimate marker", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := NewImportService(repo, zerolog.Nop())

		body := "Producto,Precio\nGround Beef,$5.99/lb\n"
		_, err := svc.Import(ctx, strings.NewReader(body), "x.csv", "walmart")
		require.NoError(t, err)

		// The same row with the same note text is a duplicate on
		// re-import, proving the note round-tripped.
		result, err := svc.Import(ctx, strings.NewReader(body), "x.csv", "walmart")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Duplicates)
	})
}
