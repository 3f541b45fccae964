package textquery

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// splitAttr splits "selector @attr" into its parts. Without an "@" suffix
// attr is empty and the element text is extracted.
func splitAttr(expression string) (selector, attr string) {
	i := strings.LastIndexByte(expression, '@')
	if i < 0 {
		return strings.TrimSpace(expression), ""
	}
	return strings.TrimSpace(expression[:i]), strings.TrimSpace(expression[i+1:])
}

// ValidateCSS checks that a CSS expression compiles.
func ValidateCSS(expression string) error {
	selector, attr := splitAttr(expression)
	if selector == "" {
		return fmt.Errorf("CSS selector expression is required")
	}
	if strings.Contains(expression, "@") && attr == "" {
		return fmt.Errorf("attribute name is required after '@'")
	}
	if _, err := cascadia.ParseGroup(selector); err != nil {
		return fmt.Errorf("invalid CSS selector: %w", err)
	}
	return nil
}

// QueryCSS extracts trimmed text from the elements matching a CSS selector.
// An expression of the form "selector @attr" extracts an attribute instead.
// Empty values are skipped.
func QueryCSS(body []byte, expression string, maxResults int) (*QueryResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return QueryCSSDocument(doc, expression, maxResults)
}

// QueryCSSDocument is QueryCSS on a parsed document.
func QueryCSSDocument(doc *goquery.Document, expression string, maxResults int) (*QueryResult, error) {
	if err := ValidateCSS(expression); err != nil {
		return nil, err
	}
	selector, attr := splitAttr(expression)

	c := newCollector(maxResults)
	doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var text string
		if attr != "" {
			text, _ = s.Attr(attr)
			text = strings.TrimSpace(text)
		} else {
			text = strings.TrimSpace(s.Text())
		}
		if text == "" {
			return true
		}
		return c.add(text)
	})

	return c.result(ModeCSS), nil
}
