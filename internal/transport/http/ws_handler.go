package http

import (
	"encoding/json"
	"log"
	"net/http"

	"brainy-quiz-service/internal/auth"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// serveFeed upgrades to a websocket and streams the caller's newly recorded attempts.
// The first message is "ready"; every later attempt arrives as {"type":"attempt"}.
func (h *Handler) serveFeed(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserID(r.Context())
	if h.feed == nil {
		writeError(w, http.StatusServiceUnavailable, "Feed unavailable")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.feed.Subscribe(r.Context(), callerID)
	if err != nil {
		log.Printf("feed subscribe for user %s: %v", callerID, err)
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: "Feed unavailable"}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer goroutine; gorilla connections do not support concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case entry, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage{Type: "attempt", Payload: entry}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage{Type: "ready"}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "ping":
			send <- outboundMessage{Type: "pong"}
		default:
			send <- outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
