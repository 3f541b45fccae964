package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/usestring/easyeda-mcp/pkg/contenttype"
)

// ModelURL returns the 3D model endpoint URL for a model UUID.
func (c *Client) ModelURL(uuid string) string {
	return c.modelBaseURL + "/analyzer/api/3dmodel/" + url.PathEscape(uuid)
}

// Get3DModelOBJ fetches the raw OBJ text of a 3D model. Any status other
// than 200 yields ErrModelNotFound.
func (c *Client) Get3DModelOBJ(ctx context.Context, uuid string) (string, error) {
	resp, err := c.get(ctx, c.ModelURL(uuid), nil, nil)
	if err != nil {
		return "", fmt.Errorf("getting 3D model %q: %w", uuid, err)
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("no 3D model data found",
			slog.String("uuid", uuid),
			slog.Int("status", resp.StatusCode),
		)
		return "", fmt.Errorf("getting 3D model %q: %w", uuid, ErrModelNotFound)
	}
	if !contenttype.IsText(resp.ContentType, resp.Body) {
		return "", fmt.Errorf("getting 3D model %q: %w", uuid, &ResponseError{
			Endpoint: "3D model",
			Problems: []string{fmt.Sprintf("content type %q is not OBJ text", resp.ContentType)},
		})
	}
	return string(resp.Body), nil
}
