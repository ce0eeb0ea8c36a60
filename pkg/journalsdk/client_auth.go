package journalsdk

import (
	"context"
	"net/http"
)

// Register creates a new account and returns a Session already
// authenticated with the freshly issued token.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", registerRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusCreated); err != nil {
		return nil, err
	}

	return &Session{client: c, accessToken: auth.AccessToken, user: auth.User}, nil
}

// Login exchanges credentials for an authenticated Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusOK); err != nil {
		return nil, err
	}

	return &Session{client: c, accessToken: auth.AccessToken, user: auth.User}, nil
}
