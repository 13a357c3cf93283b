package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pricehound/pricehound/config"
	"github.com/pricehound/pricehound/internal/infrastructure/openfoodfacts"
	"github.com/pricehound/pricehound/internal/infrastructure/openverse"
	"github.com/pricehound/pricehound/internal/infrastructure/sqlite"
	"github.com/pricehound/pricehound/internal/infrastructure/wikipedia"
	"github.com/pricehound/pricehound/internal/logs"
	"github.com/pricehound/pricehound/internal/usecase"
)

func newEnrichCommand() *cobra.Command {
	var (
		dbPath  string
		limit   int
		delayMS int
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Attach images to products that lack one",
		Long: "Enrich looks up every product without an image against public\n" +
			"catalogs (Open Food Facts, Openverse, Wikipedia) and stores the\n" +
			"best match with its provenance and a confidence score. Products\n" +
			"that already carry an image are never touched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrich(cmd, dbPath, limit, delayMS)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database file (overrides configuration)")
	cmd.Flags().IntVar(&limit, "limit", 0, "process at most this many products (0 = all)")
	cmd.Flags().IntVar(&delayMS, "delay-ms", 120, "pause between products in milliseconds")

	return cmd
}

func runEnrich(cmd *cobra.Command, dbPath string, limit, delayMS int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if cmd.Flags().Changed("limit") {
		cfg.Enrich.Limit = limit
	}
	if cmd.Flags().Changed("delay-ms") {
		cfg.Enrich.DelayMS = delayMS
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

	ua := cfg.HTTP.UserAgent
	svc := usecase.NewEnrichService(
		repo,
		openfoodfacts.NewClient(cfg.Catalogs.OpenFoodFacts.BaseURL, ua, cfg.Catalogs.OpenFoodFacts.Timeout),
		openverse.NewClient(cfg.Catalogs.Openverse.BaseURL, ua, cfg.Catalogs.Openverse.Timeout),
		wikipedia.NewClient(cfg.Catalogs.Wikipedia.BaseURL, ua, cfg.Catalogs.Wikipedia.Timeout),
		usecase.EnrichOptions{
			Limit: cfg.Enrich.Limit,
			Delay: time.Duration(cfg.Enrich.DelayMS) * time.Millisecond,
		},
		log,
	)

	result, err := svc.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed: %d\n", result.Processed)
	fmt.Fprintf(out, "Updated:   %d\n", result.Updated)
	fmt.Fprintf(out, "Skipped:   %d\n", result.Skipped)

	fmt.Fprintln(out, "By source:")
	for _, source := range []string{"openfoodfacts", "openverse", "wikipedia", "generic"} {
		if n := result.BySource[source]; n > 0 {
			fmt.Fprintf(out, "  %-14s %d\n", source, n)
		}
	}

	fmt.Fprintf(out, "Coverage:  %d/%d products have an image\n",
		result.WithImage, result.TotalProducts)

	return nil
}
