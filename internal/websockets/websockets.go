package websockets

import (
	"equiptrack/config"
	"equiptrack/internal/database"
	"equiptrack/internal/events"
	"equiptrack/internal/logger"

	"github.com/gofiber/websocket/v2"
)

// Manager streams record-change events to connected clients. The UI
// listens and re-fetches its lists; no state is kept per client beyond
// the connection itself.
type Manager struct {
	eventBus *events.EventBus
	log      logger.Logger
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	return &Manager{
		eventBus: eventBus,
		log:      logger.New("websockets"),
	}, nil
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	eventCh, unsubscribe := m.eventBus.Subscribe()
	defer unsubscribe()

	log.Info("websocket client connected", "remote", c.RemoteAddr().String())

	for event := range eventCh {
		if err := c.WriteJSON(event); err != nil {
			log.Warn("websocket write failed, dropping client", "error", err)
			return
		}
	}
}
