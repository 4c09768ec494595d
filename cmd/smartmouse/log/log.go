package log

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
	buffer  *bufio.Writer
)

// NewLogger writes text records to stderr and to a dated file in dir. name is
// prepended to the file name when set. Stdout is left to command output.
func NewLogger(debug bool, dir, name string) (*slog.Logger, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating log folder: %w", err)
	}

	fileName := "smartmouse-" + time.Now().Format("2006-01-02-15-04-05") + ".txt"
	if name != "" {
		fileName = name + "-" + fileName
	}
	f, err := os.OpenFile(filepath.Join(dir, fileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}

	mu.Lock()
	logFile = f
	buffer = bufio.NewWriterSize(f, 4096)
	mu.Unlock()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(io.MultiWriter(os.Stderr, lockedWriter{}), &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format("15:04:05.000"))
			}
			return a
		},
	})

	return slog.New(handler), nil
}

type lockedWriter struct{}

func (lockedWriter) Write(p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	if buffer == nil {
		return len(p), nil
	}
	return buffer.Write(p)
}

func FlushLog() {
	mu.Lock()
	defer mu.Unlock()
	if buffer != nil {
		buffer.Flush()
	}
}

func FlushAndClose() {
	mu.Lock()
	defer mu.Unlock()
	if buffer != nil {
		buffer.Flush()
		buffer = nil
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
