package main

import (
	"catalog-scraper/config"
	"catalog-scraper/models"
	"catalog-scraper/scraper/jumia"
	"catalog-scraper/services"
	"catalog-scraper/storage"
	"catalog-scraper/utils"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	envFile   string
	express   bool
	localOnly bool
	verbose   bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "catalog-scraper",
	Short: "Scrape product listings from the Jumia catalog, sorted by price.",
	Long: "Without a subcommand an interactive menu asks for the listing to scrape.\n" +
		"Settings come from SCRAPER_* environment variables or a .env file.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		utils.SetVerbose(verbose)
		var err error
		if envFile != "" {
			cfg, err = config.Load(envFile)
		} else {
			cfg, err = config.Load()
		}
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPanel(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var blackFridayCmd = &cobra.Command{
	Use:   "black-friday",
	Short: "Scrape every page of the Black Friday catalog.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd.Context(), func(s *jumia.Scraper) (*models.ResultSet, error) {
			return s.RunSequential(cmd.Context(), jumia.BlackFridayPath, express, localOnly)
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search the catalog and scrape every result page.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return execute(cmd.Context(), func(s *jumia.Scraper) (*models.ResultSet, error) {
			return s.RunSearch(cmd.Context(), query, express, localOnly)
		})
	},
}

var flashSalesCmd = &cobra.Command{
	Use:   "flash-sales",
	Short: "Scrape the current flash sales page.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd.Context(), func(s *jumia.Scraper) (*models.ResultSet, error) {
			return s.RunSinglePage(cmd.Context(), jumia.FlashSalesPath, express, localOnly)
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to a .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pagination state changes")
	for _, c := range []*cobra.Command{blackFridayCmd, searchCmd, flashSalesCmd} {
		c.Flags().BoolVar(&express, "express", false, "only express shipping listings")
		c.Flags().BoolVar(&localOnly, "local", false, "only listings shipped from within the country")
		rootCmd.AddCommand(c)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}

// execute wires the sinks and backends, runs one mode and prints the result.
func execute(ctx context.Context, run func(*jumia.Scraper) (*models.ResultSet, error)) error {
	writers := storage.MultiWriter{storage.NewCSVWriter(cfg.OutputDir)}

	if cfg.DatabaseURL != "" {
		pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DatabaseURL)
		if err != nil {
			utils.Error("PostgreSQL disabled: %v", err)
		} else {
			defer pgWriter.Close()
			if err := pgWriter.EnsureSchema(ctx); err != nil {
				utils.Error("PostgreSQL disabled: %v", err)
			} else {
				writers = append(writers, pgWriter)
			}
		}
	}

	backends, err := jumia.BackendsByName(cfg.Backends)
	if err != nil {
		if backends == nil {
			return err
		}
		utils.Warn("%v", err)
	}

	aggregator := services.NewAggregator(writers, services.NewChartRenderer(os.Stdout, cfg.TopN, cfg.HistogramBins))
	scraper := jumia.NewScraper(cfg, backends, aggregator)

	rs, err := run(scraper)
	if err != nil {
		return err
	}

	if rs.Len() == 0 {
		utils.Warn("No products scraped.")
		return nil
	}
	services.PrintProducts(os.Stdout, rs.Products)
	services.PrintReport(os.Stdout, services.GenerateReport(rs.Products))
	printSummary(rs)
	return nil
}

func printSummary(rs *models.ResultSet) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════╗")
	fmt.Println("║                SCRAPE COMPLETE               ║")
	fmt.Println("╠══════════════════════════════════════════════╣")
	fmt.Printf("║  Products : %-33d║\n", rs.Len())
	fmt.Printf("║  Pages    : %-33d║\n", rs.Pages)
	fmt.Println("╚══════════════════════════════════════════════╝")
	fmt.Println()
}
