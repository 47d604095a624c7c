package pricefeed

import (
	"fmt"
	"os"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// Feed supplies a live trade price for a symbol. A feed replaces only the
// scraped current price; EPS, growth, and bond yield always come from the
// page pipeline so their paired scaling stays consistent.
type Feed interface {
	Name() string
	LatestPrice(ticker string) (decimal.Decimal, error)
}

// New returns the configured feed, or nil when provider is empty (pure
// scraping, the default).
func New(provider string) (Feed, error) {
	switch provider {
	case "":
		return nil, nil
	case "alpaca":
		f, err := newAlpacaFeed()
		if err != nil {
			return nil, err
		}
		return f, nil
	case "yahoo":
		return &yahooFeed{}, nil
	default:
		return nil, fmt.Errorf("unknown price feed provider %q", provider)
	}
}

type alpacaFeed struct {
	client *marketdata.Client
}

func newAlpacaFeed() (*alpacaFeed, error) {
	apiKey := os.Getenv("ALPACA_API_KEY")
	apiSecret := os.Getenv("ALPACA_SECRET_KEY")
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("alpaca feed requires ALPACA_API_KEY and ALPACA_SECRET_KEY")
	}
	client := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})
	return &alpacaFeed{client: client}, nil
}

func (f *alpacaFeed) Name() string { return "alpaca" }

func (f *alpacaFeed) LatestPrice(ticker string) (decimal.Decimal, error) {
	trade, err := f.client.GetLatestTrade(ticker, marketdata.GetLatestTradeRequest{})
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("latest trade for %s: %w", ticker, err)
	}
	return decimal.NewFromFloat(trade.Price), nil
}

type yahooFeed struct{}

func (f *yahooFeed) Name() string { return "yahoo" }

func (f *yahooFeed) LatestPrice(ticker string) (decimal.Decimal, error) {
	q, err := quote.Get(ticker)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("quote lookup for %s: %w", ticker, err)
	}
	if q == nil {
		return decimal.Decimal{}, fmt.Errorf("no quote returned for %s", ticker)
	}
	return decimal.NewFromFloat(q.RegularMarketPrice), nil
}
