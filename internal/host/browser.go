package host

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/smartmouse/smartmouse/internal/mouse"
)

// Browser drives the CDP mouse of a single page. The canvas is the page's
// layout viewport.
type Browser struct {
	launch  *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page
	logger  *slog.Logger
}

// NewBrowser launches a browser and opens pageURL in it.
func NewBrowser(ctx context.Context, pageURL string, headless bool, logger *slog.Logger) (*Browser, error) {
	launch := launcher.New().Context(ctx).Headless(headless)
	controlURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		launch.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		_ = browser.Close()
		launch.Cleanup()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = browser.Close()
		launch.Cleanup()
		return nil, fmt.Errorf("failed to wait for %s: %w", pageURL, err)
	}

	logger.Info("Browser host ready", slog.String("url", pageURL), slog.Bool("headless", headless))
	return &Browser{launch: launch, browser: browser, page: page, logger: logger}, nil
}

func (b *Browser) CursorPosition() mouse.Point {
	p := b.page.Mouse.Position()
	return mouse.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

func (b *Browser) Reposition(p mouse.Point) {
	if err := b.page.Mouse.MoveTo(proto.NewPoint(float64(p.X), float64(p.Y))); err != nil {
		b.logger.Warn("Failed to dispatch mouse move", slog.Any("point", p), slog.Any("error", err))
	}
}

func (b *Browser) CanvasBounds() (int, int) {
	metrics, err := proto.PageGetLayoutMetrics{}.Call(b.page)
	if err != nil || metrics.CSSLayoutViewport == nil {
		b.logger.Warn("Failed to read layout metrics", slog.Any("error", err))
		return 0, 0
	}
	return metrics.CSSLayoutViewport.ClientWidth, metrics.CSSLayoutViewport.ClientHeight
}

// SessionRunning is false once the page's context is done.
func (b *Browser) SessionRunning() bool {
	return b.page.GetContext().Err() == nil
}

func (b *Browser) ExteriorPoint() mouse.Point {
	return mouse.Point{X: -1, Y: -1}
}

func (b *Browser) Close() error {
	err := b.browser.Close()
	b.launch.Cleanup()
	return err
}
