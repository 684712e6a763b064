package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/pkg/logger"
)

const redisChannel = "telemetry_feed"

// Hub fans telemetry events out to every connected websocket client. When a
// Redis connection is available, events are also relayed across instances.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	// instanceID lets the Redis subscriber skip messages this instance
	// already delivered locally.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"clients": h.count()})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"clients": h.count()})
		}
	}
}

func (h *Hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type relayEnvelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

// Broadcast delivers a telemetry event to all local clients and relays it to
// other instances through Redis.
func (h *Hub) Broadcast(event *entity.TelemetryEvent) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "telemetry",
		"data": map[string]interface{}{
			"id":          event.Id,
			"event_type":  event.EventType,
			"payload":     event.Payload,
			"occurred_at": event.OccurredAt,
		},
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize telemetry event", map[string]interface{}{"error": err.Error()})
		return
	}

	h.broadcastLocal(data)

	if h.rdb != nil {
		envelope, _ := json.Marshal(relayEnvelope{Origin: h.instanceID, Message: data})
		if err := h.rdb.Publish(context.Background(), redisChannel, envelope).Err(); err != nil {
			h.logger.Warn("Hub", "Redis relay failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer, drop the connection.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	sub := h.rdb.Subscribe(context.Background(), redisChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var envelope relayEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			continue
		}
		if envelope.Origin == h.instanceID {
			continue
		}
		h.broadcastLocal(envelope.Message)
	}
}
