package ws

import (
	"context"
	"net/http"

	"github.com/HerbHall/coopsense/internal/event"
	"github.com/HerbHall/coopsense/internal/monitor"
	"github.com/HerbHall/coopsense/internal/server"
	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// Handler provides the WebSocket endpoint for the live monitor feed.
type Handler struct {
	hub    *Hub
	bus    *event.Bus
	logger *zap.Logger
}

// Compile-time check that Handler satisfies the server's route interface.
var _ server.RouteRegistrar = (*Handler)(nil)

// NewHandler creates a WebSocket handler and subscribes to monitor events.
func NewHandler(bus *event.Bus, logger *zap.Logger) *Handler {
	h := &Handler{
		hub:    NewHub(logger),
		bus:    bus,
		logger: logger,
	}
	h.subscribeToEvents()
	return h
}

// RegisterRoutes registers WebSocket routes on the server mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/ws", h.handleStream)
}

// handleStream upgrades the connection to WebSocket and streams monitor
// events until the client disconnects.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The feed is read-only and unauthenticated; cross-origin
		// dashboards are expected consumers.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		remote: r.RemoteAddr,
		send:   make(chan Message, 256),
		logger: h.logger,
	}

	h.hub.Register(client)

	// Run read and write pumps. When either exits, clean up.
	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		close(done)
	}()

	// readPump blocks until client disconnects.
	client.readPump(ctx)

	// Client disconnected -- stop write pump and unregister.
	h.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

// subscribeToEvents relays monitor bus topics to all connected clients.
func (h *Handler) subscribeToEvents() {
	if h.bus == nil {
		return
	}

	relay := func(msgType MessageType) event.Handler {
		return func(_ context.Context, ev event.Event) {
			h.hub.Broadcast(Message{
				Type:      msgType,
				Timestamp: ev.Timestamp,
				Data:      ev.Payload,
			})
		}
	}

	h.bus.Subscribe(monitor.TopicTickCompleted, relay(MessageTickCompleted))
	h.bus.Subscribe(monitor.TopicReadingRejected, relay(MessageReadingRejected))
	h.bus.Subscribe(monitor.TopicAlertRaised, relay(MessageAlertRaised))
	h.bus.Subscribe(monitor.TopicAlertCleared, relay(MessageAlertCleared))

	h.logger.Info("subscribed to monitor events for WebSocket broadcasting")
}
