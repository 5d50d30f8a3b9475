// Package media uploads post and profile images to object storage and hands
// back durable public URLs. The storage backend is a collaborator: given a
// blob it either stores it under a key or fails.
package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var ErrValidation = errors.New("validation error")

const (
	TypeImage = "image"
	TypeVideo = "video"

	MaxImageSize = 5 * 1024 * 1024
	MaxVideoSize = 50 * 1024 * 1024
)

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
}

type Service struct {
	storage ObjectStorage
	folder  string
}

// Item is a stored media object as embedded into posts and accounts. Key is
// the storage object key, kept so callers can roll the upload back when the
// owning record fails to persist.
type Item struct {
	Type string
	URL  string
	Key  string
}

func NewService(storage ObjectStorage, folder string) *Service {
	return &Service{
		storage: storage,
		folder:  strings.TrimSpace(folder),
	}
}

// Upload validates the blob against the per-kind size limit, stores it and
// returns its durable URL. Kind is derived from the content type prefix.
func (s *Service) Upload(ctx context.Context, userID, fileName, contentType string, body io.Reader, size int64) (Item, error) {
	if userID == "" || body == nil || size <= 0 {
		return Item{}, ErrValidation
	}
	if s.storage == nil {
		return Item{}, fmt.Errorf("media storage is not configured")
	}

	kind, err := KindForContentType(contentType)
	if err != nil {
		return Item{}, err
	}
	if err := CheckSize(kind, size); err != nil {
		return Item{}, err
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Item{}, fmt.Errorf("ensure bucket: %w", err)
	}

	key, err := s.buildObjectKey(userID, fileName)
	if err != nil {
		return Item{}, fmt.Errorf("build object key: %w", err)
	}

	if err := s.storage.Put(ctx, key, body, size, contentType); err != nil {
		return Item{}, fmt.Errorf("put object: %w", err)
	}

	return Item{Type: kind, URL: s.storage.PublicURL(key), Key: key}, nil
}

// Remove deletes a previously uploaded object so a failed record write does
// not leave an orphan behind in storage.
func (s *Service) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if s.storage == nil {
		return fmt.Errorf("media storage is not configured")
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func KindForContentType(contentType string) (string, error) {
	switch {
	case strings.HasPrefix(contentType, "image"):
		return TypeImage, nil
	case strings.HasPrefix(contentType, "video"):
		return TypeVideo, nil
	default:
		return "", ErrValidation
	}
}

func CheckSize(kind string, size int64) error {
	switch kind {
	case TypeImage:
		if size > MaxImageSize {
			return fmt.Errorf("%w: image too large", ErrValidation)
		}
	case TypeVideo:
		if size > MaxVideoSize {
			return fmt.Errorf("%w: video too large", ErrValidation)
		}
	default:
		return ErrValidation
	}
	return nil
}

func (s *Service) buildObjectKey(userID, fileName string) (string, error) {
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(fileName))
	key := hex.EncodeToString(suffix) + ext
	if s.folder != "" {
		return path.Join(s.folder, userID, key), nil
	}
	return path.Join(userID, key), nil
}
