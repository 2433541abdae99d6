package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/iw2rmb/orusplay"
	"github.com/iw2rmb/orusplay/buffer"
	"github.com/iw2rmb/orusplay/internal/config"
	"github.com/iw2rmb/orusplay/internal/logger"
	"github.com/iw2rmb/orusplay/playground"
	"github.com/iw2rmb/orusplay/vm"
)

// newLoader builds the runtime loader from the configured sources followed by
// the locations derived from the base URL.
func newLoader(rt config.RuntimeConfig) *vm.Loader {
	var sources []string
	seen := map[string]bool{}
	for _, s := range append(append([]string(nil), rt.Sources...), vm.Candidates(rt.BaseURL, rt.Asset)...) {
		if !seen[s] {
			seen[s] = true
			sources = append(sources, s)
		}
	}

	ua := rt.UserAgent
	if ua == "" || ua == "orusplay" {
		ua = orusplay.UserAgent()
	}
	return vm.NewLoader(vm.LoaderConfig{
		Sources: sources,
		Fetcher: vm.DefaultFetcher(ua),
		Logger:  logger.With("component", "vm"),
	})
}

// loadRuntime loads l within the configured load timeout.
func loadRuntime(ctx context.Context, l *vm.Loader, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	start := time.Now()
	if err := l.Load(ctx); err != nil {
		return err
	}
	logger.Info("runtime loaded", "version", l.Version(), "source", l.Source(), "took", time.Since(start))
	return nil
}

// timedExecutor bounds every execution by a timeout.
type timedExecutor struct {
	loader  *vm.Loader
	timeout time.Duration
}

func (e timedExecutor) Run(ctx context.Context, src string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.loader.Run(ctx, src)
}

// readProgram returns the program named by an example title, a file argument,
// or standard input ("-" or no argument). The text is cleaned.
func readProgram(args []string, example string, stdin io.Reader) (name, code string, err error) {
	switch {
	case example != "":
		ex, ok := playground.Example(example)
		if !ok {
			return "", "", fmt.Errorf("%w: %s", playground.ErrNoSuchExample, example)
		}
		return ex.Title, buffer.Clean(ex.Code), nil
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "stdin", buffer.Clean(string(data)), nil
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return filepath.Base(args[0]), buffer.Clean(string(data)), nil
	}
}
