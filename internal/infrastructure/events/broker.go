package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Broker fans a payload-free "data changed" signal out to subscribers of one client.
// Each subscriber holds at most one pending signal; extra signals are dropped because
// a single refresh already picks up every change.
type Broker struct {
	mu     sync.Mutex
	subs   map[string]map[chan struct{}]struct{}
	logger *zap.Logger
}

func NewBroker(logger *zap.Logger) *Broker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broker{
		subs:   make(map[string]map[chan struct{}]struct{}),
		logger: logger,
	}
}

// Subscribe registers a listener for clientID. The returned cancel func must be called
// once the listener goes away; it closes the channel.
func (b *Broker) Subscribe(clientID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	set, ok := b.subs[clientID]
	if !ok {
		set = make(map[chan struct{}]struct{})
		b.subs[clientID] = set
	}
	set[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			delete(b.subs[clientID], ch)
			if len(b.subs[clientID]) == 0 {
				delete(b.subs, clientID)
			}
			close(ch)
		})
	}

	return ch, cancel
}

func (b *Broker) NotifyDataChanged(_ context.Context, clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for ch := range b.subs[clientID] {
		select {
		case ch <- struct{}{}:
			delivered++
		default:
		}
	}

	b.logger.Debug("data changed", zap.String("client_id", clientID), zap.Int("delivered", delivered))
}

func (b *Broker) Subscribers(clientID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[clientID])
}
