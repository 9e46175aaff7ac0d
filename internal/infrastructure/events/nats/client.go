package nats

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/narwhalmedia/requestbot/pkg/config"
)

// Client wraps a core NATS connection. Events are fire-and-forget
// notifications, so no JetStream streams are created.
type Client struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewClient connects to cfg.URL. The returned cleanup drains and closes the
// connection.
func NewClient(cfg config.NATSConfig, clientName string, logger *zap.Logger) (*Client, func(), error) {
	opts := []nats.Option{
		nats.Name(clientName),
		nats.MaxReconnects(cfg.MaxReconnect),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			fields := []zap.Field{zap.Error(err)}
			if sub != nil {
				fields = append(fields, zap.String("subject", sub.Subject))
			}
			logger.Error("NATS async error", fields...)
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	client := &Client{
		nc:     nc,
		logger: logger.Named("nats"),
	}

	cleanup := func() {
		if err := nc.Drain(); err != nil {
			logger.Error("failed to drain NATS connection", zap.Error(err))
		}
		nc.Close()
	}

	logger.Info("NATS client initialized",
		zap.String("url", nc.ConnectedUrl()),
		zap.String("client_name", clientName),
	)

	return client, cleanup, nil
}

// PublishMsg sends msg on the core connection.
func (c *Client) PublishMsg(msg *nats.Msg) error {
	return c.nc.PublishMsg(msg)
}

// IsConnected reports whether the connection is currently up.
func (c *Client) IsConnected() bool {
	return c.nc.IsConnected()
}
