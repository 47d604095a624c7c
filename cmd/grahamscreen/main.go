package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"grahamscreen/pkg/config"
	"grahamscreen/pkg/fetch"
	"grahamscreen/pkg/logging"
	"grahamscreen/pkg/pricefeed"
	"grahamscreen/pkg/report"
	"grahamscreen/pkg/screener"
	"grahamscreen/pkg/tickers"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML config file (default "+config.DefaultConfigFile+" when present)")
		tickerFile  = flag.String("tickers", "", "JSON ticker list, overrides config")
		logFile     = flag.String("log", "", "run log path, overrides config")
		resultsFile = flag.String("results", "", "JSON results path, overrides config")
		feedName    = flag.String("feed", "", "live price feed (alpaca or yahoo), overrides config")
		noColor     = flag.Bool("no-color", false, "disable ANSI colors")
	)
	flag.Parse()

	if err := run(*configPath, *tickerFile, *logFile, *resultsFile, *feedName, *noColor); err != nil {
		fmt.Fprintf(os.Stderr, "grahamscreen: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, tickerFile, logFile, resultsFile, feedName string, noColor bool) error {
	// Feed credentials live in the environment; a .env file is optional.
	_ = godotenv.Load()

	if configPath == "" {
		if _, err := os.Stat(config.DefaultConfigFile); err == nil {
			configPath = config.DefaultConfigFile
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if tickerFile != "" {
		cfg.Paths.TickerFile = tickerFile
	}
	if logFile != "" {
		cfg.Paths.LogFile = logFile
	}
	if resultsFile != "" {
		cfg.Paths.ResultsFile = resultsFile
	}
	if feedName != "" {
		cfg.Feed.Provider = feedName
	}
	if noColor {
		cfg.Display.Color = "never"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := uuid.NewString()
	logger, closeLog, err := logging.NewRunLogger(cfg.Paths.LogFile, runID)
	if err != nil {
		return err
	}
	defer closeLog()

	printer := report.NewPrinter(
		os.Stdout,
		report.ColorEnabled(cfg.Display.Color, os.Stdout),
		report.TerminalWidth(cfg.Display.Width),
	)
	if cfg.Display.ClearScreen {
		printer.ClearScreen()
	}
	printer.Banner()

	list, err := tickers.Load(cfg.Paths.TickerFile, logger)
	if err != nil {
		logger.Error("no tickers to process", zap.Error(err))
		return err
	}

	feed, err := pricefeed.New(cfg.Feed.Provider)
	if err != nil {
		logger.Error("price feed unavailable", zap.Error(err))
		return err
	}
	if feed != nil {
		logger.Info("using live price feed", zap.String("feed", feed.Name()))
	}

	fetcher := fetch.NewFetcher(cfg.HTTP.Timeout(), cfg.HTTP.UserAgent, logger)
	s := screener.New(cfg, fetcher, feed, printer, logger)
	summary := s.Run(runID, list)

	if cfg.Paths.ResultsFile != "" {
		if err := screener.WriteResults(cfg.Paths.ResultsFile, summary); err != nil {
			logger.Error("failed to write results", zap.Error(err))
			return err
		}
		logger.Info("results written",
			zap.String("path", cfg.Paths.ResultsFile),
			zap.Int("results", len(summary.Results)))
	}
	return nil
}
