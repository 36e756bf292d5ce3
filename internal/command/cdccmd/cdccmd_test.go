package cdccmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMonitor fails immediately when err is set, otherwise blocks until
// cancelled like a healthy polling monitor.
type stubMonitor struct {
	err error
}

func (s stubMonitor) Run(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestRunMonitorsStopsSiblingsOnFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("checkpoint table unavailable")
	done := make(chan error, 1)
	go func() {
		done <- runMonitors(context.Background(), []monitorRunner{
			stubMonitor{err: boom},
			stubMonitor{},
			stubMonitor{},
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("healthy monitors kept running after a sibling failed")
	}
}

func TestRunMonitorsCleanShutdownOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runMonitors(ctx, []monitorRunner{stubMonitor{}, stubMonitor{}})
	assert.NoError(t, err)
}
