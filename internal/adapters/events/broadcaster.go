package events

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

const subscriberBuffer = 16

var (
	_ domain.ProgressNotifier   = (*Broadcaster)(nil)
	_ domain.ProgressSubscriber = (*Broadcaster)(nil)
)

// Broadcaster is the single-process ProgressNotifier. Slow subscribers lose
// events instead of blocking the publisher.
type Broadcaster struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan domain.ProgressChanged
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[string]map[int]chan domain.ProgressChanged),
	}
}

func (b *Broadcaster) Notify(ctx context.Context, event domain.ProgressChanged) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[event.UserID] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (b *Broadcaster) Subscribe(ctx context.Context, userID string) (<-chan domain.ProgressChanged, func(), error) {
	ch := make(chan domain.ProgressChanged, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[int]chan domain.ProgressChanged)
	}
	b.subs[userID][id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], id)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel, nil
}

// Subscribers reports how many streams are open for the user.
func (b *Broadcaster) Subscribers(userID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[userID])
}
