package playground

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execFunc func(ctx context.Context, src string) (string, error)

func (f execFunc) Run(ctx context.Context, src string) (string, error) { return f(ctx, src) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_Success(t *testing.T) {
	var got string
	r := NewRunner(execFunc(func(_ context.Context, src string) (string, error) {
		got = src
		return "Hello\nruntime error: oops\n", nil
	}), quietLogger())

	res, ok := r.Run(context.Background(), "print(&quot;Hello&quot;)")
	require.True(t, ok)
	assert.Equal(t, `print("Hello")`, got)
	assert.Equal(t, uint64(1), res.ID)
	assert.NoError(t, res.Err)
	assert.False(t, res.Failed())
	assert.Equal(t, SourceRuntime, res.Source)
	assert.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, "Hello\nruntime error: oops\n", res.Output)
}

func TestRunner_SendsComparisonsIntact(t *testing.T) {
	var got string
	r := NewRunner(execFunc(func(_ context.Context, src string) (string, error) {
		got = src
		return "1\n", nil
	}), quietLogger())

	s := NewSession("")
	s.SetCode(comparisonProgram)
	res, ok := r.Run(context.Background(), s.Code())
	require.True(t, ok)
	assert.NoError(t, res.Err)
	assert.Equal(t, comparisonProgram, got)
}

func TestRunner_Failure(t *testing.T) {
	r := NewRunner(execFunc(func(context.Context, string) (string, error) {
		return "", errors.New("Execution failed")
	}), quietLogger())

	res, ok := r.Run(context.Background(), "x")
	require.True(t, ok)
	assert.True(t, res.Failed())
	assert.Equal(t, "Error: Execution failed", res.Output)
	assert.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, SourceRuntime, res.Source)
}

func TestRunner_RejectsInvalidCodeLocally(t *testing.T) {
	r := NewRunner(execFunc(func(context.Context, string) (string, error) {
		t.Fatal("executor must not run")
		return "", nil
	}), quietLogger())

	res, ok := r.Run(context.Background(), strings.Repeat("x", MaxCodeLength+1))
	require.True(t, ok)
	assert.ErrorIs(t, res.Err, ErrCodeTooLong)
	assert.Equal(t, SourceLocal, res.Source)
	assert.Equal(t, "local", res.Source.String())
}

func TestRunner_CancelMakesResultStale(t *testing.T) {
	started := make(chan struct{})
	r := NewRunner(execFunc(func(ctx context.Context, _ string) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	}), quietLogger())

	var (
		res Result
		ok  bool
		wg  sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		res, ok = r.Run(context.Background(), "loop {}")
	}()

	<-started
	r.Cancel()
	wg.Wait()

	assert.False(t, ok)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.False(t, r.IsCurrent(res.ID))
	assert.Equal(t, uint64(2), r.Current())
}

func TestRunner_NewRunSupersedesOld(t *testing.T) {
	release := make(chan struct{})
	firstStarted := make(chan struct{})
	var calls int
	var mu sync.Mutex

	r := NewRunner(execFunc(func(ctx context.Context, src string) (string, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-release
			return "first\n", nil
		}
		return "second\n", nil
	}), quietLogger())

	var (
		first   Result
		firstOK bool
		wg      sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, firstOK = r.Run(context.Background(), "a")
	}()
	<-firstStarted

	second, secondOK := r.Run(context.Background(), "b")
	close(release)
	wg.Wait()

	assert.True(t, secondOK)
	assert.Equal(t, "second\n", second.Output)
	assert.False(t, firstOK)
	assert.Equal(t, "first\n", first.Output)
	assert.Less(t, first.ID, second.ID)
}

func TestRunner_ClearBumpsID(t *testing.T) {
	r := NewRunner(execFunc(func(context.Context, string) (string, error) { return "", nil }), nil)
	before := r.Current()
	r.Clear()
	assert.Equal(t, before+1, r.Current())
}

func TestRunner_StartReservesID(t *testing.T) {
	calls := 0
	r := NewRunner(execFunc(func(context.Context, string) (string, error) {
		calls++
		return "out", nil
	}), quietLogger())

	first := r.Start("a")
	second := r.Start("b")

	res, ok := first(context.Background())
	assert.False(t, ok)
	assert.Equal(t, uint64(1), res.ID)
	assert.Zero(t, calls)

	res, ok = second(context.Background())
	require.True(t, ok)
	assert.Equal(t, "out", res.Output)
	assert.Equal(t, 1, calls)

	cleared := r.Start("c")
	r.Clear()
	_, ok = cleared(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}

func TestCountErrors(t *testing.T) {
	assert.Equal(t, 0, CountErrors("ok\nfine"))
	assert.Equal(t, 2, CountErrors("Error: x\nok\nUnhandled EXCEPTION"))
	assert.Equal(t, 1, CountErrors("error and exception"))
	assert.True(t, IsErrorLine("TypeError: x"))
	assert.False(t, IsErrorLine("all good"))
}
