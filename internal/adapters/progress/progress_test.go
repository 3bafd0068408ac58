package progress

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

func TestSpinnerSink(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	var out bytes.Buffer

	sink := newSpinnerSink(&out)
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "checking", Current: 1, Total: 2, Message: "Checking 0x01", Spinner: true})
	assert.Contains(t, sink.spinner.Suffix, "[1/2] Checking 0x01")

	// not a terminal, so the spinner never actually starts
	assert.False(t, sink.spinner.Active())

	sink.Info("0x01 SUCCESS")

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "complete", Message: "1 finalized"})

	assert.Contains(t, out.String(), "0x01 SUCCESS")
	assert.Contains(t, out.String(), "✓ 1 finalized")
}

func TestLogSink(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sink := NewLogSink(log)
	sink.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "checking", Current: 1, Total: 3, Message: "Checking"})
	sink.Error("lookup failed")

	assert.Contains(t, out.String(), "stage=checking")
	assert.Contains(t, out.String(), "component=progress")
	assert.Contains(t, out.String(), "level=ERROR msg=\"lookup failed\"")
}
