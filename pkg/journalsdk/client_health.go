package journalsdk

import (
	"context"
	"net/http"
)

// Livez reports whether the service process is up.
func (c *Client) Livez(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Readyz reports whether the service can reach its database.
func (c *Client) Readyz(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
