package nats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/smartlocker/internal/pkg/logger"
)

// Client wraps a NATS connection and its JetStream context
type Client struct {
	conn *nats.Conn
	js   jetstream.JetStream

	mu        sync.RWMutex
	consumers map[string]jetstream.Consumer
}

// PublishOptions describes one JetStream publish
type PublishOptions struct {
	Subject string
	Data    []byte
	MsgID   string
	Timeout time.Duration
}

// NewClient connects to NATS and opens JetStream
func NewClient(url string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name("smartlocker"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", logger.Err(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", logger.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Client{
		conn:      conn,
		js:        js,
		consumers: make(map[string]jetstream.Consumer),
	}, nil
}

// GetConn returns the underlying connection
func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

// GetJetStream returns the JetStream context
func (c *Client) GetJetStream() jetstream.JetStream {
	return c.js
}

// CreateStream creates the stream or updates it to match cfg
func (c *Client) CreateStream(ctx context.Context, cfg StreamConfig) (jetstream.Stream, error) {
	stream, err := c.js.CreateOrUpdateStream(ctx, cfg.toJetStream())
	if err != nil {
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
	}
	logger.Info("JetStream stream ready",
		logger.String("stream", cfg.Name),
		logger.Strings("subjects", cfg.Subjects))
	return stream, nil
}

// CreateConsumer creates or updates a durable consumer and caches it
func (c *Client) CreateConsumer(ctx context.Context, cfg ConsumerConfig) (jetstream.Consumer, error) {
	consumer, err := c.js.CreateOrUpdateConsumer(ctx, cfg.StreamName, cfg.toJetStream())
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer %s on %s: %w", cfg.ConsumerName, cfg.StreamName, err)
	}

	c.mu.Lock()
	c.consumers[cfg.key()] = consumer
	c.mu.Unlock()

	return consumer, nil
}

// Consumer returns a consumer previously created through this client
func (c *Client) Consumer(streamName, consumerName string) (jetstream.Consumer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	consumer, ok := c.consumers[streamName+":"+consumerName]
	return consumer, ok
}

// PublishWithOptions publishes to JetStream and waits for the stream ack.
// MsgID enables server side de-duplication of redelivered publishes.
func (c *Client) PublishWithOptions(ctx context.Context, opts PublishOptions) (*jetstream.PubAck, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var pubOpts []jetstream.PublishOpt
	if opts.MsgID != "" {
		pubOpts = append(pubOpts, jetstream.WithMsgID(opts.MsgID))
	}

	ack, err := c.js.Publish(ctx, opts.Subject, opts.Data, pubOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to publish to %s: %w", opts.Subject, err)
	}
	return ack, nil
}

// ListStreams returns the names of the streams visible to this connection
func (c *Client) ListStreams(ctx context.Context) ([]string, error) {
	lister := c.js.StreamNames(ctx)
	var names []string
	for name := range lister.Name() {
		names = append(names, name)
	}
	if err := lister.Err(); err != nil {
		return names, fmt.Errorf("failed to list streams: %w", err)
	}
	return names, nil
}

// Close drains nothing and closes the connection
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}
