package host

import (
	"context"

	"github.com/smartmouse/smartmouse/internal/mouse"
)

type sessionHost struct {
	Handle
	ctx context.Context
}

// WithSession ties a host's session to ctx: once ctx is done the host stops
// accepting new moves. A move that already started still completes, since the
// session is only consulted when a move begins.
func WithSession(ctx context.Context, h Handle) Handle {
	return &sessionHost{Handle: h, ctx: ctx}
}

func (s *sessionHost) SessionRunning() bool {
	return s.ctx.Err() == nil && s.Handle.SessionRunning()
}

var _ mouse.Host = (*sessionHost)(nil)
