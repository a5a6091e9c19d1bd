package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/simaogato/salesdash-backend/internal/adapter/presenter"
	"github.com/simaogato/salesdash-backend/internal/domain"
	"github.com/simaogato/salesdash-backend/internal/logger"
	"github.com/simaogato/salesdash-backend/internal/usecase/dashboard"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Send pings with this period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024
)

// Message types exchanged on /ws
const (
	MessageSelect    = "select"
	MessageDashboard = "dashboard"
	MessageError     = "error"
)

// ClientMessage is sent by the browser: {"type":"select","periods":["2011-01"]}
type ClientMessage struct {
	Type    string   `json:"type"`
	Periods []string `json:"periods"`
}

// ServerMessage is pushed to the browser after connect and after every selection change
type ServerMessage struct {
	Type      string               `json:"type"`
	SessionID string               `json:"sessionId"`
	Dashboard *presenter.Dashboard `json:"dashboard,omitempty"`
	Error     string               `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SelectionSocket pushes recomputed dashboards over a websocket.
// Each connection is handled by one loop, so its selection changes apply in arrival order.
type SelectionSocket struct {
	dashboard *dashboard.DashboardService
}

// NewSelectionSocket creates a new SelectionSocket instance
func NewSelectionSocket(dashboardService *dashboard.DashboardService) *SelectionSocket {
	return &SelectionSocket{dashboard: dashboardService}
}

// HandleConnections upgrades the request and serves the session until the peer leaves
func (s *SelectionSocket) HandleConnections(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.New().String()
	ctxLogger := logger.FromContext(r.Context()).With("sessionID", sessionID)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		ctxLogger.Warn("Failed to upgrade websocket", "error", err)
		return
	}
	defer conn.Close()

	ctxLogger.Info("Websocket session opened", "remoteAddr", r.RemoteAddr)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	initial := presenter.FromView(s.dashboard.Current())
	if err := writeMessage(conn, ServerMessage{Type: MessageDashboard, SessionID: sessionID, Dashboard: &initial}); err != nil {
		ctxLogger.Warn("Failed to send initial dashboard", "error", err)
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			logClose(ctxLogger, err)
			return
		}

		var reply ServerMessage
		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			reply = ServerMessage{Type: MessageError, SessionID: sessionID, Error: "invalid message: " + err.Error()}
		} else {
			reply = s.handleMessage(sessionID, msg)
		}
		if err := writeMessage(conn, reply); err != nil {
			ctxLogger.Warn("Failed to write websocket message", "error", err)
			return
		}
	}
}

func (s *SelectionSocket) handleMessage(sessionID string, msg ClientMessage) ServerMessage {
	switch msg.Type {
	case MessageSelect:
		view := s.dashboard.OnSelectionChanged(domain.NewFilterSelection(presenter.ToPeriods(msg.Periods)...))
		d := presenter.FromView(view)
		return ServerMessage{Type: MessageDashboard, SessionID: sessionID, Dashboard: &d}
	default:
		return ServerMessage{Type: MessageError, SessionID: sessionID, Error: "unknown message type: " + msg.Type}
	}
}

func writeMessage(conn *websocket.Conn, msg ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// keepAlive pings the peer until done is closed.
// WriteControl may run concurrently with the session loop's writes.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func logClose(l *slog.Logger, err error) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) && (closeErr.Code == websocket.CloseNormalClosure || closeErr.Code == websocket.CloseGoingAway) {
		l.Info("Websocket session closed", "code", closeErr.Code)
		return
	}
	l.Warn("Websocket session ended", "error", err)
}
