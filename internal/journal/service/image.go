package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/wayfarerhq/wayfarer/internal/journal/filestore"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageNotFound    = errors.New("image not found")
)

// allowedImageExts are the only extensions accepted for upload.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ImageService stores uploaded story images and hands out the public
// URLs that travel stories reference.
type ImageService struct {
	Files filestore.FileStore

	// ImageBaseURL is the public prefix under which stored objects are
	// reachable, e.g. "http://localhost:8080/uploads" for the disk
	// driver or the bucket URL for object storage.
	ImageBaseURL string
}

// Upload validates the file extension, stores the image under a fresh
// unique name and returns its public URL. The original filename only
// contributes its extension.
func (s *ImageService) Upload(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedImageExts[ext] {
		return "", ErrUnsupportedImage
	}

	name := idx.New().String() + ext
	if err := s.Files.Save(ctx, name, r, size); err != nil {
		return "", err
	}

	return strings.TrimSuffix(s.ImageBaseURL, "/") + "/" + name, nil
}

// Remove deletes the stored image a public URL points at. Only the
// final path segment identifies the object, so stale or foreign hosts
// in the URL are harmless.
func (s *ImageService) Remove(ctx context.Context, imageURL string) error {
	name := objectName(imageURL)
	if name == "" {
		return ErrImageNotFound
	}

	if err := s.Files.Delete(ctx, name); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	return nil
}

func objectName(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		p = u.Path
	}
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
