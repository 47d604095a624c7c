package screener

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"grahamscreen/pkg/config"
	"grahamscreen/pkg/extract"
	"grahamscreen/pkg/fetch"
	"grahamscreen/pkg/parse"
	"grahamscreen/pkg/pricefeed"
	"grahamscreen/pkg/report"
	"grahamscreen/pkg/valuation"
)

// Screener runs the batch: one ticker at a time, in input order. A ticker
// whose data cannot be gathered is skipped; the batch never aborts because
// of one ticker.
type Screener struct {
	cfg     *config.Config
	fetcher *fetch.Fetcher
	feed    pricefeed.Feed
	printer *report.Printer
	logger  *zap.Logger
}

func New(cfg *config.Config, fetcher *fetch.Fetcher, feed pricefeed.Feed, printer *report.Printer, logger *zap.Logger) *Screener {
	return &Screener{
		cfg:     cfg,
		fetcher: fetcher,
		feed:    feed,
		printer: printer,
		logger:  logger,
	}
}

// Summary is the outcome of one run, serialized to the results file.
type Summary struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Results     []valuation.Result `json:"results"`
	WorthBuying []string           `json:"worth_buying"`
}

// Run processes every ticker sequentially, printing the report as it goes.
func (s *Screener) Run(runID string, tickers []string) *Summary {
	s.logger.Info("processing tickers", zap.Int("count", len(tickers)))

	summary := &Summary{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Results:     []valuation.Result{},
		WorthBuying: []string{},
	}

	for _, ticker := range tickers {
		s.printer.Processing(ticker)

		result, err := s.screen(ticker)
		if err != nil {
			if errors.Is(err, valuation.ErrNotProfitable) {
				s.logger.Info("stock not worth buying",
					zap.String("ticker", ticker), zap.Error(err))
			} else {
				s.logger.Error("skipping ticker",
					zap.String("ticker", ticker), zap.Error(err))
			}
			continue
		}

		s.printer.ResultLine(result)
		summary.Results = append(summary.Results, *result)
		if result.Recommendation == valuation.Buy {
			summary.WorthBuying = append(summary.WorthBuying, ticker)
		}
	}

	s.printer.WorthBuying(summary.WorthBuying)
	return summary
}

// screen gathers the four figures for one ticker and evaluates them. The
// quote page is fetched once for the price and again for EPS, and the bond
// page is fetched fresh for every ticker; nothing is cached.
func (s *Screener) screen(ticker string) (*valuation.Result, error) {
	price, err := s.currentPrice(ticker)
	if err != nil {
		return nil, fmt.Errorf("current price: %w", err)
	}

	eps, err := s.scrapeRatio(ticker, config.URLFor(s.cfg.Pages.Quote, ticker), s.cfg.Selectors.EPS, "eps")
	if err != nil {
		return nil, fmt.Errorf("eps: %w", err)
	}

	growth, err := s.scrapeRatio(ticker, config.URLFor(s.cfg.Pages.Analysis, ticker), s.cfg.Selectors.Growth, "growth")
	if err != nil {
		return nil, fmt.Errorf("growth estimate: %w", err)
	}

	yield, err := s.scrapeRatio(ticker, s.cfg.Pages.BondYield, s.cfg.Selectors.BondYield, "bond_yield")
	if err != nil {
		return nil, fmt.Errorf("bond yield: %w", err)
	}

	return valuation.Evaluate(valuation.Quote{
		Ticker:    ticker,
		Price:     price,
		EPS:       eps,
		Growth:    growth,
		BondYield: yield,
	})
}

// currentPrice asks the live feed first when one is configured, falling back
// to the page scrape on any feed error.
func (s *Screener) currentPrice(ticker string) (decimal.Decimal, error) {
	if s.feed != nil {
		price, err := s.feed.LatestPrice(ticker)
		if err == nil {
			return price, nil
		}
		s.logger.Warn("price feed failed, falling back to page scrape",
			zap.String("feed", s.feed.Name()),
			zap.String("ticker", ticker),
			zap.Error(err))
	}
	return s.scrapePrice(ticker)
}

func (s *Screener) scrapePrice(ticker string) (decimal.Decimal, error) {
	url := config.URLFor(s.cfg.Pages.Quote, ticker)
	body, err := s.fetcher.Page(url)
	if err != nil {
		return decimal.Decimal{}, err
	}
	text, err := extract.FirstText(body, s.cfg.Selectors.Price)
	if err != nil {
		s.logger.Error("stock price element not found or empty",
			zap.String("ticker", ticker), zap.String("url", url), zap.Error(err))
		return decimal.Decimal{}, err
	}
	price, err := parse.Price(text)
	if err != nil {
		s.logger.Error("stock price is not a number",
			zap.String("ticker", ticker), zap.String("raw", text), zap.Error(err))
		return decimal.Decimal{}, err
	}
	return price, nil
}

func (s *Screener) scrapeRatio(ticker, url, selector, field string) (decimal.Decimal, error) {
	body, err := s.fetcher.Page(url)
	if err != nil {
		return decimal.Decimal{}, err
	}
	text, err := extract.FirstText(body, selector)
	if err != nil {
		s.logger.Error("target element not found",
			zap.String("ticker", ticker), zap.String("field", field),
			zap.String("url", url), zap.Error(err))
		return decimal.Decimal{}, err
	}
	value, err := parse.Ratio(text)
	if err != nil {
		s.logger.Error("unable to parse value",
			zap.String("ticker", ticker), zap.String("field", field),
			zap.String("raw", text), zap.Error(err))
		return decimal.Decimal{}, err
	}
	return value, nil
}

// WriteResults saves the run summary as indented JSON.
func WriteResults(path string, summary *Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, pretty.Pretty(data), 0o644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	return nil
}
