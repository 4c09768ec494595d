//go:build windows

package host

import (
	"fmt"
	"log/slog"

	"github.com/lxn/win"
	"github.com/smartmouse/smartmouse/internal/mouse"
	"github.com/smartmouse/smartmouse/internal/utils/winproc"
	"golang.org/x/sys/windows"
)

// Windows drives the system cursor relative to a window's client area. With
// no title it uses the whole desktop.
type Windows struct {
	hwnd   win.HWND
	logger *slog.Logger
}

func NewWindows(title string, logger *slog.Logger) (*Windows, error) {
	// read real pixel sizes on scaled displays
	winproc.SetProcessDpiAware.Call()

	hwnd := win.GetDesktopWindow()
	if title != "" {
		name, err := windows.UTF16PtrFromString(title)
		if err != nil {
			return nil, fmt.Errorf("invalid window title %q: %w", title, err)
		}
		hwnd = win.FindWindow(nil, name)
		if hwnd == 0 {
			return nil, fmt.Errorf("window %q not found", title)
		}
	}

	return &Windows{hwnd: hwnd, logger: logger}, nil
}

func (w *Windows) CursorPosition() mouse.Point {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		w.logger.Warn("GetCursorPos failed")
	}
	win.ScreenToClient(w.hwnd, &pt)
	return mouse.Point{X: int(pt.X), Y: int(pt.Y)}
}

func (w *Windows) Reposition(p mouse.Point) {
	pt := win.POINT{X: int32(p.X), Y: int32(p.Y)}
	win.ClientToScreen(w.hwnd, &pt)
	if !win.SetCursorPos(pt.X, pt.Y) {
		w.logger.Warn("SetCursorPos failed", slog.Any("point", p))
	}
}

func (w *Windows) CanvasBounds() (int, int) {
	var rc win.RECT
	if !win.GetClientRect(w.hwnd, &rc) {
		return 0, 0
	}
	return int(rc.Right - rc.Left), int(rc.Bottom - rc.Top)
}

// SessionRunning is false once the window is gone or minimized.
func (w *Windows) SessionRunning() bool {
	if !win.IsWindow(w.hwnd) {
		return false
	}
	minimized, _, _ := winproc.IsIconic.Call(uintptr(w.hwnd))
	return minimized == 0
}

func (w *Windows) ExteriorPoint() mouse.Point {
	return mouse.Point{X: -1, Y: -1}
}

func (w *Windows) Close() error {
	return nil
}
