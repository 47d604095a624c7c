package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"grahamscreen/pkg/valuation"
)

// ANSI escape codes used by the terminal report.
const (
	ColorGreen  = "\033[92m"
	ColorBlue   = "\033[94m"
	ColorRed    = "\033[91m"
	ColorYellow = "\033[93m"
	ColorReset  = "\033[0m"
)

// BannerTitle heads every run.
const BannerTitle = "Stock Analysis Tool"

const defaultWidth = 80

// Printer renders the interactive report. With color off the same text is
// printed uncolored; centering uses the configured width.
type Printer struct {
	out   io.Writer
	color bool
	width int
}

func NewPrinter(out io.Writer, color bool, width int) *Printer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Printer{out: out, color: color, width: width}
}

// ColorEnabled resolves a color mode ("auto", "always", "never") against the
// output stream and the NO_COLOR convention.
func ColorEnabled(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	info, err := out.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// TerminalWidth returns the configured width when positive, else COLUMNS,
// else 80.
func TerminalWidth(configured int) int {
	if configured > 0 {
		return configured
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return defaultWidth
}

func (p *Printer) paint(text, color string) string {
	if !p.color {
		return text
	}
	return color + text + ColorReset
}

func (p *Printer) centered(text string) string {
	pad := (p.width - len(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// ClearScreen wipes the terminal and homes the cursor.
func (p *Printer) ClearScreen() {
	fmt.Fprint(p.out, "\033[2J\033[H")
}

func (p *Printer) Banner() {
	fmt.Fprintln(p.out, p.paint(p.centered(BannerTitle), ColorYellow))
}

func (p *Printer) Processing(ticker string) {
	fmt.Fprintf(p.out, "Processing %s...\n", ticker)
}

// ResultLine prints one evaluated ticker, centered, green for a buy and red
// otherwise.
func (p *Printer) ResultLine(r *valuation.Result) {
	line := fmt.Sprintf("Ticker: %s, Current Price: %s, Intrinsic Value: %s, MOS Value: %s, Recommendation: %s",
		r.Ticker,
		r.Price.StringFixed(2),
		r.IntrinsicValue.StringFixed(2),
		r.MarginOfSafety.StringFixed(2),
		r.Recommendation,
	)
	color := ColorRed
	if r.Recommendation == valuation.Buy {
		color = ColorGreen
	}
	fmt.Fprintln(p.out, p.paint(p.centered(line), color))
}

// WorthBuying prints the closing summary block.
func (p *Printer) WorthBuying(tickers []string) {
	if len(tickers) == 0 {
		fmt.Fprintln(p.out, p.paint("No tickers worth buying identified.", ColorRed))
		return
	}
	fmt.Fprintln(p.out, "\nTickers worth buying:")
	for _, t := range tickers {
		fmt.Fprintln(p.out, p.paint(t, ColorGreen))
	}
}
