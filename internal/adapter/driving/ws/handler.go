// Package ws exposes the relay over a WebSocket message channel. Each text
// frame from the client is one relay request; replies carry the request's id
// and may arrive in any order.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ericfisherdev/professionalaize/internal/application"
	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

const (
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = 30 * time.Second
	maxFrameBytes = 1 << 20
	sendQueueSize = 64
)

// ErrSessionClosed is returned by a reply whose session has already gone away.
var ErrSessionClosed = errors.New("websocket session closed")

// Dispatcher is the relay entry point the channel feeds.
type Dispatcher interface {
	Dispatch(ctx context.Context, req model.RelayRequest, reply application.ReplyFunc) bool
}

// RequestFrame is a client-to-server message.
type RequestFrame struct {
	ID string `json:"id"`
	model.RelayRequest
}

// ReplyFrame is a server-to-client message.
type ReplyFrame struct {
	ID string `json:"id"`
	model.RelayResponse
}

// Handler upgrades HTTP requests to WebSocket sessions and tracks the open ones.
type Handler struct {
	relay          Dispatcher
	logger         *slog.Logger
	allowedOrigins []string
	upgrader       websocket.Upgrader

	mu       sync.Mutex
	sessions map[*session]struct{}
}

// NewHandler creates a Handler. Browser connections are accepted from the
// request's own host and from allowedOrigins; "*" allows any origin.
func NewHandler(relay Dispatcher, logger *slog.Logger, allowedOrigins []string) *Handler {
	h := &Handler{
		relay:          relay,
		logger:         logger,
		allowedOrigins: allowedOrigins,
		sessions:       make(map[*session]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// RegisterRoutes registers the WebSocket endpoint on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /ws", h.ServeWS)
}

// SessionCount returns the number of open sessions.
func (h *Handler) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close closes every open session.
func (h *Handler) Close() {
	h.mu.Lock()
	open := make([]*session, 0, len(h.sessions))
	for s := range h.sessions {
		open = append(open, s)
	}
	h.mu.Unlock()

	for _, s := range open {
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		s.close()
	}
}

// ServeWS upgrades the connection and serves the session until the client
// disconnects.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	s := newSession(conn, h.logger.With("session_id", uuid.NewString()))
	h.register(s)
	defer h.unregister(s)

	s.logger.Debug("websocket connected", "remote", r.RemoteAddr)
	go s.writePump()

	// In-flight requests keep running after the client leaves; their replies
	// then fail with ErrSessionClosed.
	ctx := context.WithoutCancel(r.Context())
	s.readLoop(ctx, h.relay)

	s.logger.Debug("websocket disconnected")
}

func (h *Handler) register(s *session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()
}

func (h *Handler) unregister(s *session) {
	s.close()
	h.mu.Lock()
	delete(h.sessions, s)
	h.mu.Unlock()
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(h.allowedOrigins, "*") || slices.Contains(h.allowedOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// session is one WebSocket connection. All writes go through the write pump.
type session struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func newSession(conn *websocket.Conn, logger *slog.Logger) *session {
	return &session{
		conn:   conn,
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// enqueue hands msg to the write pump.
func (s *session) enqueue(msg []byte) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.send <- msg:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

func (s *session) reply(id string) application.ReplyFunc {
	return func(resp model.RelayResponse) error {
		msg, err := json.Marshal(ReplyFrame{ID: id, RelayResponse: resp})
		if err != nil {
			return err
		}
		return s.enqueue(msg)
	}
}

func (s *session) readLoop(ctx context.Context, relay Dispatcher) {
	s.conn.SetReadLimit(maxFrameBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Info("websocket read failed", "error", err)
			}
			return
		}

		var frame RequestFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.logger.Warn("dropping undecodable frame", "error", err)
			continue
		}

		if !relay.Dispatch(ctx, frame.RelayRequest, s.reply(frame.ID)) {
			s.logger.Debug("no handler for frame", "id", frame.ID, "action", frame.Action)
		}
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.close()
	}()

	for {
		select {
		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
