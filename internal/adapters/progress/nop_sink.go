package progress

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/txledger/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() *NopSink {
	return &NopSink{}
}

func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

func (n *NopSink) Info(message string) {}

func (n *NopSink) Error(message string) {}

// LogSink forwards progress to a structured logger for non-interactive runs
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a progress sink that logs through log
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("component", "progress")}
}

func (s *LogSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.log.DebugContext(ctx, event.Message, "stage", event.Stage, "current", event.Current, "total", event.Total)
}

func (s *LogSink) Info(message string) {
	s.log.Info(message)
}

func (s *LogSink) Error(message string) {
	s.log.Error(message)
}

var (
	_ usecase.ProgressSink = (*NopSink)(nil)
	_ usecase.ProgressSink = (*LogSink)(nil)
)
