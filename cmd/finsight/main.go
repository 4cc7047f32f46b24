package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bobmcallan/finsight/internal/app"
	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
	"github.com/bobmcallan/finsight/internal/recorder"
	"github.com/bobmcallan/finsight/internal/services/analyzer"
	"github.com/bobmcallan/finsight/internal/storage"
)

func main() {
	// Env from .env overrides nothing already set in the environment
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(ctx, os.Args[2:])
	case "history":
		err = runHistory(ctx, os.Args[2:])
	case "clear-cache":
		err = runClearCache(ctx, os.Args[2:])
	case "version":
		fmt.Println(common.GetFullVersion())
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `finsight %s - portfolio analysis engine

Usage:
  finsight analyze -portfolio <file> [flags]   Run a portfolio analysis
  finsight history [-limit N]                  Show recent analysis runs
  finsight clear-cache                         Drop all cached market data
  finsight version                             Print version

Analyze flags:
  -portfolio string   Portfolio file (.csv or .yaml)
  -config string      Config file path (default "finsight.toml")
  -json               Emit the full report as JSON
  -no-insights        Skip AI commentary
  -force              Bypass the market data cache
  -charts string      Write per-symbol price charts (PNG) to this directory
`, common.GetVersion())
}

func runAnalyze(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	portfolioPath := fs.String("portfolio", "", "portfolio file (.csv or .yaml)")
	configPath := fs.String("config", "finsight.toml", "config file path")
	jsonOut := fs.Bool("json", false, "emit the full report as JSON")
	noInsights := fs.Bool("no-insights", false, "skip AI commentary")
	force := fs.Bool("force", false, "bypass the market data cache")
	chartDir := fs.String("charts", "", "write per-symbol price charts to this directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *portfolioPath == "" {
		return fmt.Errorf("missing -portfolio flag")
	}

	portfolio, err := analyzer.LoadPortfolio(*portfolioPath)
	if err != nil {
		return err
	}

	a, err := app.NewApp(ctx, *configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	analysis, err := a.Analyzer.Analyze(ctx, portfolio, interfaces.AnalyzeOptions{
		IncludeInsights: !*noInsights,
		ForceRefresh:    *force,
	})
	if err != nil {
		return err
	}

	if *chartDir != "" {
		if err := writeCharts(ctx, a, analysis.Holdings, *chartDir); err != nil {
			a.Logger.Warn().Err(err).Msg("Chart rendering failed")
		}
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	renderAnalysis(os.Stdout, analysis)
	return nil
}

// writeCharts refetches each non-degraded holding's series from the
// gateway and writes one PNG per symbol.
func writeCharts(ctx context.Context, a *app.App, holdings []models.HoldingAnalysis, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	maWindow := 0
	for _, w := range a.Config.Analysis.MAWindows {
		if w > maWindow {
			maWindow = w
		}
	}

	for _, h := range holdings {
		if h.Degraded {
			continue
		}
		series, err := a.Market.GetHistory(ctx, h.Holding.Symbol, a.Config.Analysis.LookbackDays)
		if err != nil {
			a.Logger.Warn().Err(err).Str("symbol", h.Holding.Symbol).Msg("Skipping chart")
			continue
		}
		png, err := analyzer.RenderPriceChart(series, maWindow)
		if err != nil {
			a.Logger.Warn().Err(err).Str("symbol", h.Holding.Symbol).Msg("Skipping chart")
			continue
		}
		path := filepath.Join(dir, h.Holding.Symbol+".png")
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return fmt.Errorf("failed to write chart %s: %w", path, err)
		}
		a.Logger.Info().Str("path", path).Msg("Chart written")
	}

	return nil
}

// runClearCache opens the cache store directly so no API keys are needed
func runClearCache(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clear-cache", flag.ExitOnError)
	configPath := fs.String("config", "finsight.toml", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	cache, err := storage.NewBadgerCache(common.NewLogger(cfg.Logging.Level), cfg.Storage.Cache.Path, cfg.Cache.GetTTL())
	if err != nil {
		return err
	}
	defer cache.Close()

	if err := cache.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Cache cleared.")
	return nil
}

// runHistory opens the run store directly so no API keys are needed
func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configPath := fs.String("config", "finsight.toml", "config file path")
	limit := fs.Int("limit", 10, "number of runs to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if cfg.Storage.Runs.Path == "" {
		fmt.Println("Run history is disabled.")
		return nil
	}

	store, err := recorder.NewSQLiteRecorder(cfg.Storage.Runs.Path, common.NewLogger(cfg.Logging.Level))
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(ctx, *limit)
	if err != nil {
		return err
	}

	renderHistory(os.Stdout, runs)
	return nil
}
