package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoMatch reports that a selector matched no element, or matched an
// element with no text.
var ErrNoMatch = errors.New("no element matched selector")

// FirstText returns the text content of the first element matching the CSS
// selector. Selectors are opaque configuration; nothing here is specific to
// any one page layout.
func FirstText(html []byte, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return "", fmt.Errorf("%w: %q matched an empty element", ErrNoMatch, selector)
	}
	return text, nil
}
