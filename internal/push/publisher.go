// Package push is the out-of-band notification channel: direct messages are
// published to a per-recipient redis channel, and subscribers authenticate
// with a short-lived channel token. It is separate from the websocket relay
// and carries no room traffic.
package push

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"log/slog"

	"chat-relay/internal/app"
)

// Notification is the payload delivered on a recipient's channel.
type Notification struct {
	ID       int64  `json:"id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
	SentAt   string `json:"sentAt"`
}

type Publisher struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewPublisher connects to redis and verifies connectivity
func NewPublisher(ctx context.Context, cfg app.Config, log *slog.Logger) (*Publisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Publisher{rdb: rdb, log: log}, nil
}

// Publish sends a notification to the recipient's channel
func (p *Publisher) Publish(ctx context.Context, n Notification) error {
	raw, _ := json.Marshal(n)
	if err := p.rdb.Publish(ctx, channel(n.Receiver), raw).Err(); err != nil {
		return err
	}
	p.log.Debug("push.published", "receiver", n.Receiver, "id", n.ID)
	return nil
}

// Close shuts down the redis connection
func (p *Publisher) Close() { _ = p.rdb.Close() }

// channel namespacing for per-user pub/sub
func channel(username string) string { return "chat:" + username }

// SentAtFormat renders a message timestamp the way clients expect it.
func SentAtFormat(t time.Time) string { return t.UTC().Format("2006-01-02 15:04:05") }
