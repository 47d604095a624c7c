package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grahamscreen.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", cfg.HTTP.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if cfg.Pages.Quote != DefaultQuotePage {
		t.Errorf("Pages.Quote = %q, want %q", cfg.Pages.Quote, DefaultQuotePage)
	}
	if cfg.Selectors.Price != DefaultPriceSelector {
		t.Errorf("Selectors.Price = %q, want the default selector", cfg.Selectors.Price)
	}
	if cfg.Paths.TickerFile != DefaultTickerFile || cfg.Paths.LogFile != DefaultLogFile {
		t.Errorf("Paths = %+v, want default ticker and log files", cfg.Paths)
	}
	if cfg.Display.Color != "auto" {
		t.Errorf("Display.Color = %q, want auto", cfg.Display.Color)
	}
	if cfg.Feed.Provider != "" {
		t.Errorf("Feed.Provider = %q, want empty", cfg.Feed.Provider)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfigFile(t, `
http:
  timeout_seconds: 5
pages:
  quote: "https://example.com/q/{ticker}"
selectors:
  price: "span.price"
paths:
  ticker_file: "watchlist.json"
  results_file: ""
feed:
  provider: yahoo
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.HTTP.TimeoutSeconds)
	}
	if cfg.Pages.Quote != "https://example.com/q/{ticker}" {
		t.Errorf("Pages.Quote = %q", cfg.Pages.Quote)
	}
	// untouched fields keep their defaults
	if cfg.Pages.Analysis != DefaultAnalysisPage {
		t.Errorf("Pages.Analysis = %q, want default", cfg.Pages.Analysis)
	}
	if cfg.Selectors.Price != "span.price" {
		t.Errorf("Selectors.Price = %q, want span.price", cfg.Selectors.Price)
	}
	if cfg.Selectors.EPS != DefaultEPSSelector {
		t.Errorf("Selectors.EPS = %q, want default", cfg.Selectors.EPS)
	}
	if cfg.Paths.TickerFile != "watchlist.json" {
		t.Errorf("Paths.TickerFile = %q, want watchlist.json", cfg.Paths.TickerFile)
	}
	if cfg.Paths.ResultsFile != "" {
		t.Errorf("Paths.ResultsFile = %q, want empty (artifact disabled)", cfg.Paths.ResultsFile)
	}
	if cfg.Feed.Provider != "yahoo" {
		t.Errorf("Feed.Provider = %q, want yahoo", cfg.Feed.Provider)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SCREEN_TICKER_FILE", "/data/tickers.json")
	path := writeConfigFile(t, `
paths:
  ticker_file: "${SCREEN_TICKER_FILE}"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.TickerFile != "/data/tickers.json" {
		t.Errorf("Paths.TickerFile = %q, want /data/tickers.json", cfg.Paths.TickerFile)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{
			name:     "negative timeout",
			contents: "http:\n  timeout_seconds: -5\n",
			wantErr:  "timeout_seconds",
		},
		{
			name:     "quote template without placeholder",
			contents: "pages:\n  quote: \"https://example.com/quote\"\n",
			wantErr:  "placeholder",
		},
		{
			name:     "bad color mode",
			contents: "display:\n  color: sometimes\n",
			wantErr:  "display.color",
		},
		{
			name:     "unknown feed provider",
			contents: "feed:\n  provider: bloomberg\n",
			wantErr:  "feed.provider",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.contents)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestURLFor(t *testing.T) {
	got := URLFor("https://finance.yahoo.com/quote/{ticker}/analysis", "AAPL")
	want := "https://finance.yahoo.com/quote/AAPL/analysis"
	if got != want {
		t.Errorf("URLFor = %q, want %q", got, want)
	}
}

func TestHTTPTimeout(t *testing.T) {
	c := HTTPConfig{TimeoutSeconds: 10}
	if got := c.Timeout(); got != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", got)
	}
}
