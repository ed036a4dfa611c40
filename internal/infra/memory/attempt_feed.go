package memory

import (
	"context"
	"sync"

	"brainy-quiz-service/internal/domain"
)

// AttemptFeed is an in-process implementation of app.AttemptFeed.
// Updates only reach subscribers connected to this instance; see the redis package for fan-out across instances.
type AttemptFeed struct {
	mu          sync.Mutex
	subscribers map[string]map[chan domain.HistoryEntry]struct{}
}

func NewAttemptFeed() *AttemptFeed {
	return &AttemptFeed{subscribers: make(map[string]map[chan domain.HistoryEntry]struct{})}
}

func (f *AttemptFeed) Publish(_ context.Context, userID string, entry domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers[userID] {
		select {
		case ch <- entry:
		default:
			// Slow subscriber: drop its oldest pending entry so the publisher never blocks.
			select {
			case <-ch:
			default:
			}
			ch <- entry
		}
	}
	return nil
}

func (f *AttemptFeed) Subscribe(_ context.Context, userID string) (<-chan domain.HistoryEntry, func(), error) {
	ch := make(chan domain.HistoryEntry, 8)

	f.mu.Lock()
	subs, ok := f.subscribers[userID]
	if !ok {
		subs = make(map[chan domain.HistoryEntry]struct{})
		f.subscribers[userID] = subs
	}
	subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		subs := f.subscribers[userID]
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(f.subscribers, userID)
		}
	}
	return ch, cancel, nil
}

// Subscribers reports how many live subscriptions userID has.
func (f *AttemptFeed) Subscribers(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers[userID])
}
