package feed

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisOptions configures the redis change bus
type RedisOptions struct {
	Addr     string
	Password string
	Channel  string
}

type redisBus struct {
	log     zerolog.Logger
	rdb     *goredis.Client
	channel string
}

// NewRedisBus connects to redis and verifies the connection
func NewRedisBus(opts RedisOptions, log zerolog.Logger) (Bus, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	channel := opts.Channel
	if channel == "" {
		channel = "portfolio:changes"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return newRedisBusWithClient(rdb, channel, log), nil
}

func newRedisBusWithClient(rdb *goredis.Client, channel string, log zerolog.Logger) *redisBus {
	return &redisBus{
		log:     log.With().Str("component", "redis_bus").Str("channel", channel).Logger(),
		rdb:     rdb,
		channel: channel,
	}
}

// Publish announces that path changed
func (b *redisBus) Publish(ctx context.Context, path string) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis bus not initialized")
	}
	return b.rdb.Publish(ctx, b.channel, path).Err()
}

// Start forwards every notification on the channel to onChange until ctx is
// done. Messages arrive in publish order.
func (b *redisBus) Start(ctx context.Context, onChange func(path string)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis bus not initialized")
	}
	if onChange == nil {
		return fmt.Errorf("onChange callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					b.log.Warn().Msg("Redis subscription closed")
					_ = sub.Close()
					return
				}
				if m.Payload == "" {
					continue
				}
				onChange(m.Payload)
			}
		}
	}()

	b.log.Info().Msg("Redis change bus subscribed")
	return nil
}

func (b *redisBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
