package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/midgard-scene/pkg/queue"
)

// Console is a zapcore.WriteSyncer that hands encoded log lines to the
// frame loop. Writes are safe from any goroutine; Drain is called once per
// frame by the loop that owns the console view.
type Console struct {
	lines *queue.Queue[string]
}

// NewConsole creates a console sink with room for capacity pending lines.
func NewConsole(capacity int) *Console {
	return &Console{lines: queue.New[string](capacity)}
}

// Write queues one encoded entry without its trailing newline.
func (c *Console) Write(p []byte) (int, error) {
	c.lines.Push(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Sync implements zapcore.WriteSyncer.
func (c *Console) Sync() error { return nil }

// Drain calls fn for every line queued since the last Drain.
func (c *Console) Drain(fn func(line string)) int {
	return c.lines.Drain(fn)
}

// Pending returns the number of queued lines.
func (c *Console) Pending() int { return c.lines.Len() }

// Core returns a plain-text zap core writing into the console.
func (c *Console) Core(level string) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	})
	return zapcore.NewCore(enc, c, parseLevel(level))
}

// AttachConsole tees the global logger into c.
func AttachConsole(c *Console, level string) {
	Log = zap.New(zapcore.NewTee(Log.Core(), c.Core(level)), zap.AddCaller())
	Sugar = Log.Sugar()
}
