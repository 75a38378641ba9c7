package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"listing-media/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrForeignURL is returned when a URL does not point into this store.
var ErrForeignURL = errors.New("url does not belong to this store")

// ErrBucketMissing is returned by Ready when the configured bucket does not exist.
var ErrBucketMissing = errors.New("bucket does not exist")

// DeletionHandler reacts to an object removed outside this service.
type DeletionHandler func(ctx context.Context, url string) error

// Store addresses objects in one bucket by public URL.
type Store struct {
	client  storage.Client
	bucket  string
	baseURL string
	logger  *zap.Logger

	mu       sync.RWMutex
	handlers []DeletionHandler
}

// NewStore creates a Store over the configured bucket.
func NewStore(client storage.Client, cfg storage.Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: BaseURL(cfg),
		logger:  logger,
	}
}

// BaseURL returns the URL prefix objects of the configured bucket are served under.
func BaseURL(cfg storage.Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, strings.TrimRight(endpoint, "/"), cfg.Bucket)
}

// Bucket returns the bucket name.
func (s *Store) Bucket() string {
	return s.bucket
}

// URL returns the public URL for an object path.
func (s *Store) URL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

// PathOf returns the object path a URL points at.
func (s *Store) PathOf(rawURL string) (string, error) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", ErrForeignURL
	}
	path := strings.TrimPrefix(rawURL, prefix)
	if path == "" {
		return "", ErrForeignURL
	}
	return path, nil
}

// Put stores data at path and returns its public URL.
func (s *Store) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", path, err)
	}
	return s.URL(path), nil
}

// Ready confirms the bucket exists. A missing bucket makes every object look
// absent, so callers deciding on absence must check Ready first.
func (s *Store) Ready(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketMissing, s.bucket)
	}
	return nil
}

// Exists reports whether the object behind url exists. A nil error with false
// means the store confirmed absence; any error means the answer is unknown.
func (s *Store) Exists(ctx context.Context, rawURL string) (bool, error) {
	path, err := s.PathOf(rawURL)
	if err != nil {
		return false, err
	}
	_, err = s.client.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if storage.IsNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// Delete removes the object behind url. Deleting an absent object succeeds.
func (s *Store) Delete(ctx context.Context, rawURL string) error {
	path, err := s.PathOf(rawURL)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil && !storage.IsNotFound(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Subscribe registers a handler for out-of-band deletions.
func (s *Store) Subscribe(h DeletionHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// NotifyDeleted dispatches a deletion to every handler in registration order
// and returns the joined handler errors.
func (s *Store) NotifyDeleted(ctx context.Context, rawURL string) error {
	s.mu.RLock()
	handlers := append([]DeletionHandler(nil), s.handlers...)
	s.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, rawURL); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Listen streams object-removed notifications under prefix and dispatches them
// until ctx is cancelled.
func (s *Store) Listen(ctx context.Context, prefix string) {
	events := s.client.ListenBucketNotification(ctx, s.bucket, prefix, "", []string{"s3:ObjectRemoved:*"})
	for info := range events {
		if info.Err != nil {
			s.logger.Warn("Bucket notification error", zap.Error(info.Err))
			continue
		}
		for _, record := range info.Records {
			key, err := url.QueryUnescape(record.S3.Object.Key)
			if err != nil {
				key = record.S3.Object.Key
			}
			objectURL := s.URL(key)
			if err := s.NotifyDeleted(ctx, objectURL); err != nil {
				s.logger.Warn("Deletion handler failed", zap.String("url", objectURL), zap.Error(err))
			}
		}
	}
}
