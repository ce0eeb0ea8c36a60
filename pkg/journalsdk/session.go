package journalsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Session is an authenticated view of the service. Every request sets
// the stored bearer token.
type Session struct {
	client      *Client
	accessToken string
	user        User
}

// AccessToken returns the raw bearer token, e.g. for persisting across
// restarts.
func (s *Session) AccessToken() string {
	return s.accessToken
}

// User returns the account snapshot captured at login or registration.
// It is zero for sessions built from a stored token; use Me for a
// fresh copy.
func (s *Session) User() User {
	return s.user
}

func (s *Session) doAuthJSON(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}
