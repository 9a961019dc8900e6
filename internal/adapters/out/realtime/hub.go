// Package realtime fans lifecycle updates out to websocket clients by topic.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Envelope is the frame every subscriber receives.
type Envelope struct {
	Topic     string    `json:"topic"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub implements ports.RealtimePublisher over websocket clients. A client
// receives the frames of every topic it is subscribed to; a client that does
// not keep up is dropped.
type Hub struct {
	mu      sync.RWMutex
	topics  map[string]map[*Client]struct{}
	clients map[*Client][]string
	logger  *slog.Logger
	now     func() time.Time
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]struct{}),
		clients: make(map[*Client][]string),
		logger:  logger.With("component", "realtime_hub"),
		now:     time.Now,
	}
}

// Register attaches c to topics.
func (h *Hub) Register(c *Client, topics ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range topics {
		subscribers, ok := h.topics[topic]
		if !ok {
			subscribers = make(map[*Client]struct{})
			h.topics[topic] = subscribers
		}
		subscribers[c] = struct{}{}
	}
	h.clients[c] = append(h.clients[c], topics...)
	h.logger.Debug("client registered", "account_id", c.accountID, "topics", topics)
}

// Unregister detaches c from all topics and closes its queue. Safe to call
// more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregisterLocked(c)
}

func (h *Hub) unregisterLocked(c *Client) {
	topics, ok := h.clients[c]
	if !ok {
		return
	}
	for _, topic := range topics {
		delete(h.topics[topic], c)
		if len(h.topics[topic]) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(h.clients, c)
	close(c.send)
}

// Subscribers reports how many clients listen on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) Publish(ctx context.Context, topic string, payload any) error {
	frame, err := json.Marshal(Envelope{Topic: topic, Payload: payload, Timestamp: h.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", topic, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var slow []*Client
	for c := range h.topics[topic] {
		select {
		case c.send <- frame:
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		h.logger.WarnContext(ctx, "dropping slow client", "account_id", c.accountID, "topic", topic)
		h.unregisterLocked(c)
	}
	return nil
}

// Close drops every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.unregisterLocked(c)
	}
}
