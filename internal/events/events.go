package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"equiptrack/config"
	"equiptrack/internal/database"
	"equiptrack/internal/logger"
)

const (
	RecordCreated = "record.created"
	RecordUpdated = "record.updated"
	RecordDeleted = "record.deleted"

	channelName = "equiptrack:record-events"
)

type Event struct {
	Type      string    `json:"type"`
	RecordID  string    `json:"recordId"`
	CompanyID string    `json:"companyId"`
	Category  string    `json:"category"`
	At        time.Time `json:"at"`
}

// EventBus fans record-change events out to in-process subscribers
// (websocket clients) and, when a cache is configured, publishes them on
// a valkey channel so other instances see them too.
type EventBus struct {
	cache database.CacheClient
	log   logger.Logger

	mu          sync.Mutex
	subscribers map[int]chan Event
	nextID      int
	closed      bool
}

func New(cache database.CacheClient, config config.Config) *EventBus {
	return &EventBus{
		cache:       cache,
		log:         logger.New("events"),
		subscribers: make(map[int]chan Event),
	}
}

func (b *EventBus) Publish(ctx context.Context, event Event) {
	log := b.log.Function("Publish")

	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.Lock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Slow subscriber, drop rather than block the write path
		}
	}
	b.mu.Unlock()

	if b.cache != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Er("failed to marshal event", err, "event", event.Type)
			return
		}
		if err := b.cache.Do(ctx, b.cache.B().Publish().Channel(channelName).Message(string(payload)).Build()).Error(); err != nil {
			log.Warn("failed to publish event to cache channel", "error", err, "event", event.Type)
		}
	}
}

// Subscribe returns a buffered event channel and an unsubscribe func.
func (b *EventBus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 16)
	b.subscribers[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}
}

func (b *EventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}

	return nil
}
