package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/smartmouse/smartmouse/internal/mouse"
)

const remoteTimeout = 5 * time.Second

// Remote drives an Agent over websocket. Every call is a synchronous
// request/response, so the cursor position it reports is the agent's actual
// one. When the connection breaks the session reports as stopped.
type Remote struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	last   Message
	broken bool
	logger *slog.Logger
}

// DialRemote connects to an agent listening at addr (host:port).
func DialRemote(ctx context.Context, addr string, logger *slog.Logger) (*Remote, error) {
	if addr == "" {
		return nil, errors.New("remote address is empty")
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error connecting to agent %s: %w", u.String(), err)
	}

	r := &Remote{conn: conn, logger: logger}
	if _, err := r.exchange(Message{Type: MsgQuery}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("agent handshake failed: %w", err)
	}
	logger.Info("Connected to agent", slog.String("url", u.String()))
	return r, nil
}

func (r *Remote) exchange(req Message) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.broken {
		return r.last, errors.New("connection closed")
	}

	req.Ts = time.Now().UnixMilli()
	r.conn.SetWriteDeadline(time.Now().Add(remoteTimeout))
	if err := r.conn.WriteJSON(req); err != nil {
		r.broken = true
		return r.last, err
	}

	var resp Message
	r.conn.SetReadDeadline(time.Now().Add(remoteTimeout))
	if err := r.conn.ReadJSON(&resp); err != nil {
		r.broken = true
		return r.last, err
	}
	r.last = resp
	return resp, nil
}

func (r *Remote) CursorPosition() mouse.Point {
	st, err := r.exchange(Message{Type: MsgQuery})
	if err != nil {
		r.logger.Warn("Failed to query agent", slog.Any("error", err))
	}
	return st.point()
}

func (r *Remote) Reposition(p mouse.Point) {
	if _, err := r.exchange(Message{Type: MsgMove, X: p.X, Y: p.Y}); err != nil {
		r.logger.Warn("Failed to send move to agent", slog.Any("point", p), slog.Any("error", err))
	}
}

// CanvasBounds reports the bounds from the agent's latest state.
func (r *Remote) CanvasBounds() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last.Width, r.last.Height
}

func (r *Remote) SessionRunning() bool {
	st, err := r.exchange(Message{Type: MsgQuery})
	return err == nil && st.Running
}

func (r *Remote) ExteriorPoint() mouse.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last.Exterior
}

func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broken = true
	_ = r.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return r.conn.Close()
}
