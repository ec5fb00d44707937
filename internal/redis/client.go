package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client is the process-wide Redis handle. One client serves both the
// engagement-stream publisher and the notification workers; go-redis
// pools connections underneath it.
type Client struct {
	*redis.Client
}

// NewClient builds a client from a redis:// URL
// (redis://[:password@]host:port[/db]). The connection is not touched
// here; call Ping during startup.
func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Client{Client: redis.NewClient(opts)}, nil
}

// Ping fails fast when Redis is unreachable. Without it the first
// symptom would be a stalled worker loop, not a startup error.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}
