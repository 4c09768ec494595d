//go:build !windows

package host

import (
	"errors"
	"log/slog"
)

var errWindowsOnly = errors.New("windows host is only available on windows")

// Windows is unavailable on this platform.
type Windows struct {
	Virtual
}

func NewWindows(string, *slog.Logger) (*Windows, error) {
	return nil, errWindowsOnly
}
