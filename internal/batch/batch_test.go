package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func players(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("player-%02d", i)
	}
	return out
}

func TestRun_CollectsAllResults(t *testing.T) {
	names := players(25)

	report, err := Run(context.Background(), names, func(_ context.Context, p string) (int, error) {
		return len(p), nil
	}, Options{Workers: 4})
	require.NoError(t, err)

	assert.Len(t, report.Results, 25)
	assert.Empty(t, report.Failures)
	assert.Equal(t, names, report.Players())
	assert.Equal(t, 9, report.Results["player-07"])
}

func TestRun_FailureDoesNotAbortSiblings(t *testing.T) {
	names := players(10)
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	report, err := Run(context.Background(), names, func(_ context.Context, p string) (string, error) {
		switch p {
		case "player-03":
			return "", errors.New("unexpected record shape")
		case "player-06":
			panic("index out of range")
		}
		return strings.ToUpper(p), nil
	}, Options{Workers: 3, Logger: logger})
	require.NoError(t, err)

	assert.Len(t, report.Results, 8)
	assert.NotContains(t, report.Results, "player-03")
	assert.NotContains(t, report.Results, "player-06")
	require.Len(t, report.Failures, 2)
	assert.Equal(t, "player-03", report.Failures[0].Player)
	assert.Equal(t, "player-06", report.Failures[1].Player)
	assert.Contains(t, report.Failures[1].Err.Error(), "panic")

	logs := logBuf.String()
	assert.Contains(t, logs, "player=player-03")
	assert.Contains(t, logs, "player=player-06")
}

func TestRun_RespectsWorkerLimit(t *testing.T) {
	var inFlight, peak atomic.Int32

	_, err := Run(context.Background(), players(20), func(_ context.Context, _ string) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	}, Options{Workers: 3})
	require.NoError(t, err)

	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRun_ProgressLinesDoNotInterleave(t *testing.T) {
	var buf syncBuffer
	names := players(40)

	_, err := Run(context.Background(), names, func(_ context.Context, p string) (int, error) {
		if p == "player-13" {
			return 0, errors.New("boom")
		}
		return 1, nil
	}, Options{Workers: 8, Progress: &buf})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 40)
	seen := make(map[string]bool)
	for _, line := range lines {
		counter, rest, ok := strings.Cut(line, "] ")
		require.True(t, ok, "malformed progress line %q", line)
		assert.True(t, strings.HasPrefix(counter, "["), "malformed counter in %q", line)
		fields := strings.Fields(rest)
		require.Len(t, fields, 2, "malformed progress line %q", line)
		assert.Contains(t, []string{"done", "FAIL"}, fields[0])
		seen[fields[1]] = true
	}
	assert.Len(t, seen, 40)
	assert.Contains(t, buf.String(), "FAIL player-13")
	assert.Contains(t, lines[39], "[40/40]")
	assert.True(t, strings.HasPrefix(lines[0], "[ 1/40] "), "counter should be padded: %q", lines[0])
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, players(5), func(_ context.Context, _ string) (int, error) {
		return 1, nil
	}, Options{Workers: 2})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_ZeroWorkersMeansOne(t *testing.T) {
	report, err := Run(context.Background(), players(3), func(_ context.Context, _ string) (int, error) {
		return 1, nil
	}, Options{})
	require.NoError(t, err)
	assert.Len(t, report.Results, 3)
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
