package events

import (
	"context"
	"encoding/json"
	"strings"

	"listing-media/core/apperror"
	"listing-media/core/messaging"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Notifier dispatches a blob deletion to its subscribers.
type Notifier interface {
	NotifyDeleted(ctx context.Context, url string) error
}

// BlobDeleted is the payload of an out-of-band deletion event.
type BlobDeleted struct {
	URL string `json:"url"`
}

// Service routes deletion events from every transport to the notifier.
type Service struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewService creates a new events service.
func NewService(notifier Notifier, logger *zap.Logger) *Service {
	return &Service{notifier: notifier, logger: logger}
}

// Dispatch validates ev and hands it to the notifier. Subscriber failures are
// reported as transient so the sender retries.
func (s *Service) Dispatch(ctx context.Context, ev BlobDeleted) error {
	const op = "events.blob_deleted"
	ev.URL = strings.TrimSpace(ev.URL)
	if ev.URL == "" {
		return apperror.Validation(op, "url is required")
	}
	if err := s.notifier.NotifyDeleted(ctx, ev.URL); err != nil {
		return apperror.Wrap(apperror.KindTransientStorage, op, err)
	}
	s.logger.Debug("Blob deletion dispatched", zap.String("url", ev.URL))
	return nil
}

// HandleMessage decodes one message payload and dispatches it.
func (s *Service) HandleMessage(ctx context.Context, data []byte) error {
	var ev BlobDeleted
	if err := json.Unmarshal(data, &ev); err != nil {
		return apperror.Validation("events.blob_deleted", "invalid payload: %v", err)
	}
	return s.Dispatch(ctx, ev)
}

// Subscribe consumes deletion events from the configured subject.
func (s *Service) Subscribe(sub *messaging.Subscriber, cfg messaging.Config) (*nats.Subscription, error) {
	return sub.Subscribe(cfg.DeletionSubject, cfg.QueueGroup, s.HandleMessage)
}
