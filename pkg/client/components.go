package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// componentHeaders are the headers the EasyEDA web client sends to the
// components API. Accept-Encoding is left to the transport, which
// negotiates and decodes gzip itself.
var componentHeaders = http.Header{
	"Accept":       {"application/json, text/javascript, */*; q=0.01"},
	"Content-Type": {"application/x-www-form-urlencoded; charset=UTF-8"},
}

// ComponentURL returns the components API URL for a part.
func (c *Client) ComponentURL(lcscID string) string {
	return c.apiBaseURL + "/api/products/" + url.PathEscape(lcscID) + "/components"
}

// GetComponent fetches the CAD data of a part from the components API and
// returns its result object. It returns ErrComponentNotFound if the API
// reports no data for the part.
func (c *Client) GetComponent(ctx context.Context, lcscID string) (map[string]any, error) {
	query := url.Values{"version": {APIVersion}}
	resp, err := c.get(ctx, c.ComponentURL(lcscID), query, componentHeaders)
	if err != nil {
		return nil, fmt.Errorf("getting component %q: %w", lcscID, err)
	}
	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("getting component %q: %w", lcscID, apiError(resp))
	}

	var body any
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("getting component %q: decoding response: %w", lcscID, err)
	}

	obj, _ := body.(map[string]any)
	if len(obj) == 0 || obj["success"] == false || obj["result"] == nil {
		slog.Debug("components API returned no data",
			slog.String("lcsc_id", lcscID),
			slog.Any("code", obj["code"]),
		)
		return nil, fmt.Errorf("getting component %q: %w", lcscID, ErrComponentNotFound)
	}

	if err := validateComponentResponse(body); err != nil {
		return nil, fmt.Errorf("getting component %q: %w", lcscID, err)
	}

	return obj["result"].(map[string]any), nil
}
