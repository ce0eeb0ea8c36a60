package journalsdk

import (
	"context"
	"net/http"
)

// Me fetches the authenticated user's account details.
func (s *Session) Me(ctx context.Context) (User, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/users/me", nil)
	if err != nil {
		return User{}, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return User{}, err
	}
	return out.User, nil
}
