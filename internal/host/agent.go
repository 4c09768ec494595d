package host

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/smartmouse/smartmouse/internal/mouse"
)

// Agent exposes a local host over websocket so a Remote can drive it.
type Agent struct {
	host     mouse.Host
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewAgent(h mouse.Host, logger *slog.Logger) *Agent {
	return &Agent{
		host:   h,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns a mux serving the agent on /ws.
func (a *Agent) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", a)
	return mux
}

func (a *Agent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Error("Websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	a.logger.Info("Remote controller connected", slog.String("addr", r.RemoteAddr))
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				a.logger.Warn("Remote controller read error", slog.Any("error", err))
			}
			return
		}

		switch msg.Type {
		case MsgMove:
			a.host.Reposition(msg.point())
		case MsgQuery:
		default:
			a.logger.Warn("Unknown message type", slog.String("type", msg.Type))
		}

		if err := conn.WriteJSON(a.state()); err != nil {
			a.logger.Warn("Remote controller write error", slog.Any("error", err))
			return
		}
	}
}

func (a *Agent) state() Message {
	pos := a.host.CursorPosition()
	w, h := a.host.CanvasBounds()
	return Message{
		Type:     MsgState,
		X:        pos.X,
		Y:        pos.Y,
		Width:    w,
		Height:   h,
		Running:  a.host.SessionRunning(),
		Exterior: a.host.ExteriorPoint(),
		Ts:       time.Now().UnixMilli(),
	}
}
