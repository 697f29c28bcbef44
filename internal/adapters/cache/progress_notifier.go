package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

var (
	_ domain.ProgressNotifier   = (*RedisProgressNotifier)(nil)
	_ domain.ProgressSubscriber = (*RedisProgressNotifier)(nil)
)

// RedisProgressNotifier fans progress events out over Redis pub/sub so every
// API instance can stream them to its connected clients.
type RedisProgressNotifier struct {
	client *redis.Client
	log    *logger.Logger
}

func NewRedisProgressNotifier(client *redis.Client, log *logger.Logger) *RedisProgressNotifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &RedisProgressNotifier{
		client: client,
		log:    log.With("component", "progress_notifier"),
	}
}

func progressChannel(userID string) string {
	return fmt.Sprintf("progress:%s", userID)
}

func (n *RedisProgressNotifier) Notify(ctx context.Context, event domain.ProgressChanged) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode progress event: %w", err)
	}
	if err := n.client.Publish(ctx, progressChannel(event.UserID), data).Err(); err != nil {
		return fmt.Errorf("publish progress event: %w", err)
	}
	return nil
}

func (n *RedisProgressNotifier) Subscribe(ctx context.Context, userID string) (<-chan domain.ProgressChanged, func(), error) {
	sub := n.client.Subscribe(ctx, progressChannel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe progress events: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan domain.ProgressChanged, 16)

	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event domain.ProgressChanged
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					n.log.Warn("dropping malformed progress event", "channel", msg.Channel, "error", err)
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, cancel, nil
}
