package textquery

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// ValidateXPath checks that an XPath expression compiles.
func ValidateXPath(expression string) error {
	if strings.TrimSpace(expression) == "" {
		return fmt.Errorf("XPath expression is required")
	}
	if _, err := xpath.Compile(expression); err != nil {
		return fmt.Errorf("invalid XPath expression: %w", err)
	}
	return nil
}

// QueryXPath extracts trimmed text from the HTML nodes matching an XPath
// expression. Attribute selections (//a/@href) yield the attribute value.
func QueryXPath(body []byte, expression string, maxResults int) (*QueryResult, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return QueryXPathNode(doc, expression, maxResults)
}

// QueryXPathNode is QueryXPath on a parsed node tree.
func QueryXPathNode(doc *html.Node, expression string, maxResults int) (*QueryResult, error) {
	expr, err := xpath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}

	c := newCollector(maxResults)
	for _, node := range htmlquery.QuerySelectorAll(doc, expr) {
		text := strings.TrimSpace(htmlquery.InnerText(node))
		if text == "" {
			continue
		}
		if !c.add(text) {
			break
		}
	}

	return c.result(ModeXPath), nil
}
