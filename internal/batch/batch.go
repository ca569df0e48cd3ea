// Package batch fans one task per player out over a bounded worker pool.
// A failing or panicking task is reported and skipped; it never cancels its
// siblings.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"
)

var (
	cDone = color.New(color.FgGreen)
	cFail = color.New(color.FgRed, color.Bold)
	cMute = color.New(color.Faint)
)

// Options configures a Run.
type Options struct {
	// Workers bounds concurrent tasks; values below 1 mean 1.
	Workers int
	// Progress receives one line per finished player. Nil disables it.
	Progress io.Writer
	// Logger receives per-player failures. Nil discards them.
	Logger *slog.Logger
}

// Failure records one player whose task did not produce a result.
type Failure struct {
	Player string
	Err    error
}

// Report is the collected output of a Run. Results holds one entry per
// successful player; completion order across players is not preserved.
type Report[T any] struct {
	Results  map[string]T
	Failures []Failure
}

// Players returns the successful player names in sorted order.
func (r *Report[T]) Players() []string {
	out := make([]string, 0, len(r.Results))
	for p := range r.Results {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// sink is the concurrency-safe result collector.
type sink[T any] struct {
	mu       sync.Mutex
	results  map[string]T
	failures []Failure
}

func (s *sink[T]) ok(player string, v T) {
	s.mu.Lock()
	s.results[player] = v
	s.mu.Unlock()
}

func (s *sink[T]) fail(player string, err error) {
	s.mu.Lock()
	s.failures = append(s.failures, Failure{Player: player, Err: err})
	s.mu.Unlock()
}

// progress serialises report lines so concurrent players never interleave.
type progress struct {
	mu    sync.Mutex
	w     io.Writer
	total int
	done  int
}

func (p *progress) line(player string, err error) {
	if p.w == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	counter := cMute.Sprintf("[%*d/%d]", len(fmt.Sprint(p.total)), p.done, p.total)
	if err != nil {
		fmt.Fprintf(p.w, "%s %s %s\n", counter, cFail.Sprint("FAIL"), player)
		return
	}
	fmt.Fprintf(p.w, "%s %s %s\n", counter, cDone.Sprint("done"), player)
}

// Run calls fn once per player with at most opts.Workers calls in flight and
// collects the successful results. Per-player errors and panics are logged
// and recorded in Report.Failures. Run only returns an error when ctx is
// cancelled before all players are dispatched.
func Run[T any](ctx context.Context, players []string, fn func(ctx context.Context, player string) (T, error), opts Options) (*Report[T], error) {
	workers := max(opts.Workers, 1)
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &sink[T]{results: make(map[string]T, len(players))}
	prog := &progress{w: opts.Progress, total: len(players)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, player := range players {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			v, err := call(gctx, player, fn)
			prog.line(player, err)
			if err != nil {
				logger.Warn("player failed", "player", player, "err", err)
				s.fail(player, err)
				return nil
			}
			s.ok(player, v)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}

	sort.Slice(s.failures, func(i, j int) bool { return s.failures[i].Player < s.failures[j].Player })
	logger.Info("batch complete",
		"players", humanize.Comma(int64(len(players))),
		"ok", humanize.Comma(int64(len(s.results))),
		"failed", len(s.failures))

	return &Report[T]{Results: s.results, Failures: s.failures}, nil
}

// call runs fn, turning a panic into an error.
func call[T any](ctx context.Context, player string, fn func(context.Context, string) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, player)
}
