package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"brainy-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// feedBuffer is how many undelivered entries a subscriber may hold before the oldest is dropped.
const feedBuffer = 8

// AttemptFeed is a Redis pub/sub implementation of app.AttemptFeed.
// Entries are published as JSON on quiz:feed:{userID}, so every instance
// behind a load balancer can serve a user's live feed.
type AttemptFeed struct {
	client *redis.Client
}

func NewAttemptFeed(client *redis.Client) *AttemptFeed {
	return &AttemptFeed{client: client}
}

func (f *AttemptFeed) Publish(ctx context.Context, userID string, entry domain.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal feed entry: %w", err)
	}
	if err := f.client.Publish(ctx, f.channel(userID), payload).Err(); err != nil {
		return fmt.Errorf("publish feed entry: %w", err)
	}
	return nil
}

func (f *AttemptFeed) Subscribe(ctx context.Context, userID string) (<-chan domain.HistoryEntry, func(), error) {
	pubsub := f.client.Subscribe(ctx, f.channel(userID))
	// Wait for the subscription to be confirmed so no publish is missed after we return.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe feed: %w", err)
	}

	out := make(chan domain.HistoryEntry, feedBuffer)
	done := make(chan struct{})
	messages := pubsub.Channel()

	go func() {
		defer close(out)
		for {
			select {
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var entry domain.HistoryEntry
				if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
					log.Printf("feed %s: bad payload: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- entry:
				default:
					// Slow subscriber: drop its oldest pending entry instead of stalling the relay.
					select {
					case <-out:
					default:
					}
					out <- entry
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}
	return out, cancel, nil
}

func (f *AttemptFeed) channel(userID string) string {
	return "quiz:feed:" + userID
}
