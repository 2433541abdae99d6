package playground

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iw2rmb/orusplay/buffer"
)

// Executor runs Orus source and returns its output. *vm.Loader satisfies it.
type Executor interface {
	Run(ctx context.Context, src string) (string, error)
}

// Source tells where a result's failure was produced.
type Source int

const (
	// SourceRuntime covers results produced by the executor.
	SourceRuntime Source = iota
	// SourceLocal covers code rejected before it reached the executor.
	SourceLocal
)

func (s Source) String() string {
	if s == SourceLocal {
		return "local"
	}
	return "runtime"
}

// Result is the outcome of one Run.
type Result struct {
	ID         uint64
	Output     string
	Err        error
	Source     Source
	Duration   time.Duration
	ErrorCount int
}

// Failed reports whether the run returned an error.
func (r Result) Failed() bool { return r.Err != nil }

// Runner hands out execution ids and decides which results are still wanted.
// Every Run takes the next id; Clear and Cancel advance the counter so results
// of runs started earlier come back stale.
type Runner struct {
	exec Executor
	log  *slog.Logger

	id atomic.Uint64

	mu     sync.Mutex
	active uint64
	cancel context.CancelFunc
}

func NewRunner(exec Executor, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{exec: exec, log: log}
}

// Current returns the id of the most recent run or invalidation.
func (r *Runner) Current() uint64 { return r.id.Load() }

// IsCurrent reports whether id still belongs to the latest run.
func (r *Runner) IsCurrent(id uint64) bool { return r.id.Load() == id }

// Run cleans and validates code, executes it and reports whether the result
// is still current. A stale result should be dropped by the caller. Starting a
// run cancels the one in flight.
func (r *Runner) Run(ctx context.Context, code string) (Result, bool) {
	return r.run(ctx, r.id.Add(1), code)
}

// Start takes the next id immediately and returns the run to perform later,
// for hosts that execute asynchronously. A Clear or a newer Start issued
// before the returned function is called makes it return a stale empty
// result without executing.
func (r *Runner) Start(code string) func(context.Context) (Result, bool) {
	id := r.id.Add(1)
	return func(ctx context.Context) (Result, bool) {
		if !r.IsCurrent(id) {
			return Result{ID: id}, false
		}
		return r.run(ctx, id, code)
	}
}

func (r *Runner) run(ctx context.Context, id uint64, code string) (Result, bool) {
	code = buffer.Clean(code)

	if err := ValidateCode(code); err != nil {
		res := failed(id, err, SourceLocal, 0)
		return res, r.IsCurrent(id)
	}

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.active, r.cancel = id, cancel
	r.mu.Unlock()

	start := time.Now()
	out, err := r.exec.Run(ctx, code)
	elapsed := time.Since(start)

	r.mu.Lock()
	if r.active == id {
		r.active, r.cancel = 0, nil
	}
	r.mu.Unlock()
	cancel()

	var res Result
	if err != nil {
		res = failed(id, err, SourceRuntime, elapsed)
	} else {
		res = Result{ID: id, Output: out, Duration: elapsed, ErrorCount: CountErrors(out)}
	}

	if !r.IsCurrent(id) {
		r.log.Debug("dropping stale run result", "id", id, "current", r.Current())
		return res, false
	}
	r.log.Debug("run finished", "id", id, "duration", elapsed, "errors", res.ErrorCount)
	return res, true
}

// Clear invalidates any in-flight run, as when the output panel is cleared.
func (r *Runner) Clear() { r.invalidate() }

// Cancel stops the in-flight run and invalidates its result.
func (r *Runner) Cancel() { r.invalidate() }

func (r *Runner) invalidate() {
	r.id.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.active, r.cancel = 0, nil
	}
}

func failed(id uint64, err error, src Source, d time.Duration) Result {
	return Result{
		ID:         id,
		Output:     "Error: " + err.Error(),
		Err:        err,
		Source:     src,
		Duration:   d,
		ErrorCount: 1,
	}
}

// CountErrors counts output lines mentioning "error" or "exception" in any
// letter case.
func CountErrors(output string) int {
	n := 0
	for _, line := range strings.Split(output, "\n") {
		if IsErrorLine(line) {
			n++
		}
	}
	return n
}

// IsErrorLine reports whether line is counted by CountErrors.
func IsErrorLine(line string) bool {
	l := strings.ToLower(line)
	return strings.Contains(l, "error") || strings.Contains(l, "exception")
}
