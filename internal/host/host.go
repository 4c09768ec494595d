// Package host provides the cursor surfaces a mouse.Mouse can drive.
package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smartmouse/smartmouse/internal/config"
	"github.com/smartmouse/smartmouse/internal/mouse"
)

const (
	KindVirtual = "virtual"
	KindWindows = "windows"
	KindBrowser = "browser"
	KindRemote  = "remote"
)

// Handle is a host that holds resources until closed.
type Handle interface {
	mouse.Host
	Close() error
}

// New opens the host selected by cfg.Kind.
func New(ctx context.Context, cfg config.Host, logger *slog.Logger) (Handle, error) {
	switch cfg.Kind {
	case KindVirtual, "":
		return NewVirtual(cfg.CanvasWidth, cfg.CanvasHeight), nil
	case KindWindows:
		w, err := NewWindows(cfg.WindowTitle, logger)
		if err != nil {
			return nil, err
		}
		return w, nil
	case KindBrowser:
		b, err := NewBrowser(ctx, cfg.BrowserURL, cfg.Headless, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindRemote:
		r, err := DialRemote(ctx, cfg.RemoteAddr, logger)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, fmt.Errorf("unknown host kind %q", cfg.Kind)
}
