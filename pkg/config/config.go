package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TickerPlaceholder is substituted with the symbol in page templates.
const TickerPlaceholder = "{ticker}"

// DefaultConfigFile is picked up from the working directory when no -config
// flag is given.
const DefaultConfigFile = "grahamscreen.yaml"

// Defaults reproduce the screener's original targets: the Yahoo Finance
// quote and analysis pages and the YCharts Moody's AAA bond-yield indicator.
const (
	DefaultQuotePage    = "https://finance.yahoo.com/quote/{ticker}"
	DefaultAnalysisPage = "https://finance.yahoo.com/quote/{ticker}/analysis"
	DefaultBondPage     = "https://ycharts.com/indicators/moodys_seasoned_aaa_corporate_bond_yield"

	DefaultTickerFile  = "tickers.json"
	DefaultLogFile     = "stock_analysis.log"
	DefaultResultsFile = "screen_results.json"

	DefaultTimeoutSeconds = 10
)

// The CSS selectors the figures are extracted with. Site layouts change;
// these are plain configuration and can be replaced wholesale from the YAML
// file without touching any code.
const (
	DefaultPriceSelector = `#quote-header-info > div.My\(6px\).Pos\(r\).smartphone_Mt\(6px\).W\(100\%\) > div.D\(ib\).Va\(m\).Maw\(65\%\).Ov\(h\) > div > fin-streamer.Fw\(b\).Fz\(36px\).Mb\(-4px\).D\(ib\)`

	DefaultEPSSelector = `#quote-summary > div.D\(ib\).W\(1\/2\).Bxz\(bb\).Pstart\(12px\).Va\(t\).ie-7_D\(i\).ie-7_Pos\(a\).smartphone_D\(b\).smartphone_W\(100\%\).smartphone_Pstart\(0px\).smartphone_BdB.smartphone_Bdc\(\$seperatorColor\) > table > tbody > tr:nth-child(4) > td.Ta\(end\).Fw\(600\).Lh\(14px\)`

	DefaultGrowthSelector = `#Col1-0-AnalystLeafPage-Proxy > section > table:nth-child(7) > tbody > tr:nth-child(5) > td:nth-child(2)`

	DefaultBondYieldSelector = `body > main > div > div:nth-child(5) > div > div > div > div > div.col-md-8 > div.hidden-md > div:nth-child(3) > div.panel-content > div > div:nth-child(1) > table > tbody > tr:nth-child(1) > td:nth-child(2)`
)

// Config is built once at startup and treated as read-only afterwards.
type Config struct {
	HTTP      HTTPConfig     `yaml:"http"`
	Pages     PagesConfig    `yaml:"pages"`
	Selectors SelectorConfig `yaml:"selectors"`
	Paths     PathsConfig    `yaml:"paths"`
	Feed      FeedConfig     `yaml:"feed"`
	Display   DisplayConfig  `yaml:"display"`
}

type HTTPConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PagesConfig holds the page templates. Quote and Analysis must contain the
// {ticker} placeholder; BondYield is one shared page.
type PagesConfig struct {
	Quote     string `yaml:"quote"`
	Analysis  string `yaml:"analysis"`
	BondYield string `yaml:"bond_yield"`
}

type SelectorConfig struct {
	Price     string `yaml:"price"`
	EPS       string `yaml:"eps"`
	Growth    string `yaml:"growth"`
	BondYield string `yaml:"bond_yield"`
}

type PathsConfig struct {
	TickerFile  string `yaml:"ticker_file"`
	LogFile     string `yaml:"log_file"`
	ResultsFile string `yaml:"results_file"` // empty disables the artifact
}

// FeedConfig selects an optional live price source: "alpaca", "yahoo", or
// empty for pure page scraping.
type FeedConfig struct {
	Provider string `yaml:"provider"`
}

type DisplayConfig struct {
	Color       string `yaml:"color"` // auto | always | never
	Width       int    `yaml:"width"` // 0 detects from COLUMNS, else 80
	ClearScreen bool   `yaml:"clear_screen"`
}

// URLFor substitutes the ticker into a page template.
func URLFor(template, ticker string) string {
	return strings.ReplaceAll(template, TickerPlaceholder, ticker)
}

// Default returns the configuration matching the original tool's behavior.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Pages: PagesConfig{
			Quote:     DefaultQuotePage,
			Analysis:  DefaultAnalysisPage,
			BondYield: DefaultBondPage,
		},
		Selectors: SelectorConfig{
			Price:     DefaultPriceSelector,
			EPS:       DefaultEPSSelector,
			Growth:    DefaultGrowthSelector,
			BondYield: DefaultBondYieldSelector,
		},
		Paths: PathsConfig{
			TickerFile:  DefaultTickerFile,
			LogFile:     DefaultLogFile,
			ResultsFile: DefaultResultsFile,
		},
		Display: DisplayConfig{
			Color:       "auto",
			ClearScreen: true,
		},
	}
}

// Load builds the configuration: defaults first, then the YAML file at path
// layered on top when one is given. Environment references (${VAR}) inside
// the file are expanded before parsing, so secrets stay out of the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults refills required fields a config file blanked out.
// Paths.ResultsFile stays untouched: empty means "no artifact".
func (c *Config) applyDefaults() {
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Pages.Quote == "" {
		c.Pages.Quote = DefaultQuotePage
	}
	if c.Pages.Analysis == "" {
		c.Pages.Analysis = DefaultAnalysisPage
	}
	if c.Pages.BondYield == "" {
		c.Pages.BondYield = DefaultBondPage
	}
	if c.Selectors.Price == "" {
		c.Selectors.Price = DefaultPriceSelector
	}
	if c.Selectors.EPS == "" {
		c.Selectors.EPS = DefaultEPSSelector
	}
	if c.Selectors.Growth == "" {
		c.Selectors.Growth = DefaultGrowthSelector
	}
	if c.Selectors.BondYield == "" {
		c.Selectors.BondYield = DefaultBondYieldSelector
	}
	if c.Paths.TickerFile == "" {
		c.Paths.TickerFile = DefaultTickerFile
	}
	if c.Paths.LogFile == "" {
		c.Paths.LogFile = DefaultLogFile
	}
	if c.Display.Color == "" {
		c.Display.Color = "auto"
	}
}

func (c *Config) Validate() error {
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be positive, got %d", c.HTTP.TimeoutSeconds)
	}
	if !strings.Contains(c.Pages.Quote, TickerPlaceholder) {
		return fmt.Errorf("pages.quote must contain the %s placeholder", TickerPlaceholder)
	}
	if !strings.Contains(c.Pages.Analysis, TickerPlaceholder) {
		return fmt.Errorf("pages.analysis must contain the %s placeholder", TickerPlaceholder)
	}
	if c.Pages.BondYield == "" {
		return fmt.Errorf("pages.bond_yield must be set")
	}
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("display.color must be auto, always, or never, got %q", c.Display.Color)
	}
	switch c.Feed.Provider {
	case "", "alpaca", "yahoo":
	default:
		return fmt.Errorf("feed.provider must be alpaca or yahoo, got %q", c.Feed.Provider)
	}
	if c.Display.Width < 0 {
		return fmt.Errorf("display.width must not be negative, got %d", c.Display.Width)
	}
	return nil
}
