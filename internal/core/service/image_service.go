package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

// MaxImageSize is the upload limit per file.
const MaxImageSize = 3_000_000

// ImageFields are the multipart fields accepted by Upload, one file each.
var ImageFields = []string{"picture", "coverImage"}

type ImageService struct {
	storage   ports.ObjectStorage
	publicURL string
	log       zerolog.Logger
}

// NewImageService stores objects in storage and reports them under publicURL,
// usually the bucket's public base URL.
func NewImageService(storage ports.ObjectStorage, publicURL string, log zerolog.Logger) *ImageService {
	return &ImageService{storage: storage, publicURL: strings.TrimRight(publicURL, "/"), log: log}
}

func (s *ImageService) Upload(ctx context.Context, files []ports.UploadFile) (map[string]string, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoImages
	}

	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if !allowedField(f.Field) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnexpectedImage, f.Field)
		}
		if _, dup := seen[f.Field]; dup {
			return nil, fmt.Errorf("%w: %s given more than once", domain.ErrUnexpectedImage, f.Field)
		}
		seen[f.Field] = struct{}{}
		if f.Size > MaxImageSize {
			return nil, fmt.Errorf("%w: %s", domain.ErrImageTooLarge, f.Field)
		}
	}

	out := make(map[string]string, len(files))
	for _, f := range files {
		key := objectKey(f.Filename)
		if err := s.storage.Put(ctx, key, f.Body, f.Size, f.ContentType); err != nil {
			return nil, fmt.Errorf("store %s: %w", f.Field, err)
		}
		out[f.Field] = s.publicURL + "/" + key
		s.log.Info().Str("field", f.Field).Str("key", key).Int64("size", f.Size).Msg("image stored")
	}
	return out, nil
}

// Delete removes every referenced object concurrently. A failed removal does
// not cancel the others; the first failure is returned once all have finished.
func (s *ImageService) Delete(ctx context.Context, paths []string) error {
	var g errgroup.Group
	for _, p := range paths {
		key := keyFromPath(p)
		if key == "" {
			continue
		}
		g.Go(func() error {
			if err := s.storage.Delete(ctx, key); err != nil {
				return fmt.Errorf("unable to remove object %s: %w", key, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Info().Int("count", len(paths)).Msg("images removed")
	return nil
}

func allowedField(field string) bool {
	for _, f := range ImageFields {
		if f == field {
			return true
		}
	}
	return false
}

func objectKey(filename string) string {
	return uuid.NewString() + strings.ToLower(path.Ext(filename))
}

// keyFromPath takes the last path segment, so both public URLs and bare keys
// work.
func keyFromPath(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
