package journalsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// UploadImage uploads an image file and returns its public URL for use
// as a story's imageUrl.
func (s *Session) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.url("/v1/images"), &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	var out UploadResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

// DeleteImage removes a previously uploaded image by its public URL.
func (s *Session) DeleteImage(ctx context.Context, imageURL string) error {
	resp, err := s.doAuthJSON(ctx, http.MethodDelete,
		"/v1/images?imageUrl="+url.QueryEscape(imageURL), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}
