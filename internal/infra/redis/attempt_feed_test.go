package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"brainy-quiz-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestAttemptFeedRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	defer client.Close()
	feed := NewAttemptFeed(client)
	ctx := context.Background()

	updates, cancel, err := feed.Subscribe(ctx, "u1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	date := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	want := domain.HistoryEntry{QuizID: "quiz-1", QuizTitle: "Letters", Score: 2, Date: date}
	if err := feed.Publish(ctx, "u1", want); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-updates:
		if got.QuizID != want.QuizID || got.QuizTitle != want.QuizTitle || got.Score != want.Score || !got.Date.Equal(date) {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for feed entry")
	}
}

func TestAttemptFeedUsesPerUserChannel(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	defer client.Close()
	feed := NewAttemptFeed(client)
	ctx := context.Background()

	listener := newClient(mr)
	defer listener.Close()
	pubsub := listener.Subscribe(ctx, "quiz:feed:u1")
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		t.Fatalf("confirm subscription: %v", err)
	}
	messages := pubsub.Channel()

	other, cancelOther, err := feed.Subscribe(ctx, "u2")
	if err != nil {
		t.Fatalf("subscribe u2: %v", err)
	}
	defer cancelOther()

	if err := feed.Publish(ctx, "u1", domain.HistoryEntry{QuizID: "quiz-9", Score: 3}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-messages:
		if msg.Channel != "quiz:feed:u1" {
			t.Fatalf("unexpected channel %s", msg.Channel)
		}
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if entry.QuizID != "quiz-9" || entry.Score != 3 {
			t.Fatalf("unexpected payload %+v", entry)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected message on quiz:feed:u1")
	}

	select {
	case entry := <-other:
		t.Fatalf("u2 should not receive u1 entries, got %+v", entry)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAttemptFeedDropsOldestForSlowSubscriber(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	defer client.Close()
	feed := NewAttemptFeed(client)
	ctx := context.Background()

	updates, cancel, err := feed.Subscribe(ctx, "u1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	const published = 20
	for i := 0; i < published; i++ {
		if err := feed.Publish(ctx, "u1", domain.HistoryEntry{QuizID: "quiz-1", Score: i}); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	// Wait for the relay to take in every entry without anyone reading.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(updates) == feedBuffer {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(200 * time.Millisecond)

	var got []int
	for len(updates) > 0 {
		got = append(got, (<-updates).Score)
	}
	if len(got) != feedBuffer {
		t.Fatalf("expected %d buffered entries, got %v", feedBuffer, got)
	}
	if got[len(got)-1] != published-1 {
		t.Fatalf("expected newest entry kept, got %v", got)
	}
	if got[0] != published-feedBuffer {
		t.Fatalf("expected oldest entries dropped, got %v", got)
	}
}

func TestAttemptFeedCancelClosesChannel(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	defer client.Close()
	feed := NewAttemptFeed(client)

	updates, cancel, err := feed.Subscribe(context.Background(), "u1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	cancel()
	cancel()

	select {
	case _, ok := <-updates:
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("channel not closed after cancel")
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
