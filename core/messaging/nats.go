package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	connectWait   = 5 * time.Second
	maxReconnects = -1
	reconnectWait = 2 * time.Second
)

// NewConnection connects to NATS and logs connection state changes.
func NewConnection(cfg Config, logger *zap.Logger) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("listing-media"),
		nats.Timeout(connectWait),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	return nc, nil
}

// Handler processes one message payload.
type Handler func(ctx context.Context, data []byte) error

// Subscriber runs handlers for queue-group subscriptions.
type Subscriber struct {
	conn    *nats.Conn
	timeout time.Duration
	logger  *zap.Logger
}

// NewSubscriber creates a Subscriber. conn may be nil in tests that only call Handle.
func NewSubscriber(conn *nats.Conn, cfg Config, logger *zap.Logger) *Subscriber {
	timeout := time.Duration(cfg.HandlerTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Subscriber{conn: conn, timeout: timeout, logger: logger}
}

// Subscribe attaches h to subject within queue.
func (s *Subscriber) Subscribe(subject, queue string, h Handler) (*nats.Subscription, error) {
	sub, err := s.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		_ = s.Handle(msg, h)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.logger.Info("Subscribed", zap.String("subject", subject), zap.String("queue", queue))
	return sub, nil
}

// Handle runs h for one message under the handler timeout and logs failures.
func (s *Subscriber) Handle(msg *nats.Msg, h Handler) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := h(ctx, msg.Data); err != nil {
		s.logger.Error("Message handler failed", zap.String("subject", msg.Subject), zap.Error(err))
		return err
	}
	return nil
}
