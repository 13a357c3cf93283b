package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pricehound/pricehound/config"
	"github.com/pricehound/pricehound/internal/infrastructure/sqlite"
	"github.com/pricehound/pricehound/internal/logs"
	"github.com/pricehound/pricehound/internal/usecase"
)

func newImportCommand() *cobra.Command {
	var (
		storeName string
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import a price list CSV into the database",
		Long: "Import reads a grocery price list CSV export and records one\n" +
			"purchase row per line. Rows already present are skipped, so\n" +
			"re-importing the same file is safe.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], storeName, dbPath)
		},
	}

	cmd.Flags().StringVar(&storeName, "store", "", "store the prices were collected at (required)")
	cmd.Flags().StringVar(&dbPath, "db", "", "database file (overrides configuration)")
	_ = cmd.MarkFlagRequired("store")

	return cmd
}

func runImport(cmd *cobra.Command, csvPath, storeName, dbPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	log := logs.New(cfg.Logging.Level, cfg.Logging.File)

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	repo := sqlite.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	svc := usecase.NewImportService(repo, log)
	result, err := svc.ImportFile(cmd.Context(), csvPath, storeName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rows read:       %d\n", result.RowsRead)
	fmt.Fprintf(out, "Inserted:        %d\n", result.Inserted)
	fmt.Fprintf(out, "Duplicates:      %d\n", result.Duplicates)
	fmt.Fprintf(out, "Skipped:         %d\n", result.Skipped)
	fmt.Fprintf(out, "Products total:  %d\n", result.ProductsTotal)
	fmt.Fprintf(out, "Purchases total: %d\n", result.PurchasesTotal)
	fmt.Fprintf(out, "Database:        %s\n", cfg.Database.Path)

	return nil
}
