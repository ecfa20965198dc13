//go:build unix

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalContext_CapturesSignal(t *testing.T) {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
	select {
	case <-sc.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by SIGINT")
	}
	assert.Equal(t, os.Interrupt, sc.Signal())

	var buf bytes.Buffer
	sc.LogStop(slog.New(slog.NewTextHandler(&buf, nil)))
	assert.Contains(t, buf.String(), "stopped by signal")
	assert.Contains(t, buf.String(), "signal=interrupt")
}

func TestSignalContext_CancelWithoutSignal(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())

	var buf bytes.Buffer
	sc.LogStop(slog.New(slog.NewTextHandler(&buf, nil)))
	assert.Empty(t, buf.String())
}
