package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/usestring/easyeda-mcp/pkg/contenttype"
)

var pageHeaders = http.Header{
	"Accept":          {"text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"},
	"Accept-Language": {"en-US,en;q=0.9"},
}

// ProductPageURL returns the LCSC product detail page URL for a part.
func (c *Client) ProductPageURL(lcscID string) string {
	return c.productBaseURL + "/product-detail/" + url.PathEscape(lcscID) + ".html"
}

// GetProductPage fetches the raw HTML of a part's LCSC product page.
// Unsuccessful statuses are returned as *APIError and non-HTML bodies as
// *ResponseError.
func (c *Client) GetProductPage(ctx context.Context, lcscID string) ([]byte, error) {
	resp, err := c.get(ctx, c.ProductPageURL(lcscID), nil, pageHeaders)
	if err != nil {
		return nil, fmt.Errorf("getting product page %q: %w", lcscID, err)
	}
	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("getting product page %q: %w", lcscID, apiError(resp))
	}
	if !contenttype.IsPage(resp.ContentType) {
		return nil, fmt.Errorf("getting product page %q: %w", lcscID, &ResponseError{
			Endpoint: "product page",
			Problems: []string{fmt.Sprintf("content type %q is not HTML", resp.ContentType)},
		})
	}
	return resp.Body, nil
}
