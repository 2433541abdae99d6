package vm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

const (
	// NoOutput is returned for a successful run that printed nothing.
	NoOutput = "Code executed successfully (no output)"

	unknownVersion = "unknown"
)

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// Sources are tried in order until one loads.
	Sources []string
	Fetcher Fetcher
	// Factory defaults to WasmFactory.
	Factory Factory
	Logger  *slog.Logger
}

// Loader owns the process-wide runtime module. Load is idempotent and
// concurrent callers share one in-flight attempt; a failed attempt is retried
// by the next call. Runs are serialized because the module has a single output
// stream.
type Loader struct {
	sources []string
	fetcher Fetcher
	factory Factory
	log     *slog.Logger

	group singleflight.Group
	ready atomic.Bool

	mu      sync.Mutex
	module  Module
	version string
	source  string

	runMu   sync.Mutex
	capture Capture
}

func NewLoader(cfg LoaderConfig) *Loader {
	l := &Loader{
		sources: append([]string(nil), cfg.Sources...),
		fetcher: cfg.Fetcher,
		factory: cfg.Factory,
		log:     cfg.Logger,
	}
	if l.fetcher == nil {
		l.fetcher = DefaultFetcher("")
	}
	if l.factory == nil {
		l.factory = WasmFactory
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	return l
}

// IsReady reports whether a module is loaded and initialized.
func (l *Loader) IsReady() bool { return l.ready.Load() }

// Version returns the runtime version, or "" before a successful Load.
func (l *Loader) Version() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Source returns the location the module was loaded from.
func (l *Loader) Source() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.source
}

// Load fetches, instantiates and initializes the runtime unless that already
// happened.
func (l *Loader) Load(ctx context.Context) error {
	if l.ready.Load() {
		return nil
	}
	_, err, _ := l.group.Do("load", func() (any, error) {
		if l.ready.Load() {
			return nil, nil
		}
		return nil, l.load(ctx)
	})
	return err
}

func (l *Loader) load(ctx context.Context) error {
	if len(l.sources) == 0 {
		return newError(KindModuleLoad, "no Orus runtime sources configured", nil)
	}

	var (
		attempted []string
		lastErr   error
	)
	for _, src := range l.sources {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		mod, version, err := l.loadFrom(ctx, src)
		if err != nil {
			attempted = append(attempted, src)
			lastErr = err
			l.log.Warn("failed to load Orus runtime", "source", src, "error", err)
			continue
		}

		l.mu.Lock()
		l.module = mod
		l.version = version
		l.source = src
		l.mu.Unlock()
		l.ready.Store(true)
		l.log.Info("Orus runtime ready", "source", src, "version", version)
		return nil
	}

	detail := "unknown error"
	if lastErr != nil {
		detail = lastErr.Error()
	}
	kind := KindModuleLoad
	if IsKind(lastErr, KindInitialization) {
		kind = KindInitialization
	}
	return newError(kind, fmt.Sprintf(
		"Failed to load Orus runtime module from any known location. Attempted: %s. Last error: %s",
		strings.Join(attempted, ", "), detail), lastErr)
}

func (l *Loader) loadFrom(ctx context.Context, src string) (Module, string, error) {
	asset, err := l.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, "", asKind(err, KindModuleLoad, "fetch "+src)
	}

	mod, err := l.factory(ctx, asset, &l.capture)
	if err != nil {
		return nil, "", asKind(err, KindModuleLoad, "instantiate "+src)
	}

	res, err := mod.InitVM(ctx)
	if err != nil {
		_ = mod.Close(ctx)
		return nil, "", newError(KindInitialization, "Failed to initialize Orus VM", err)
	}
	if res != 0 {
		_ = mod.Close(ctx)
		return nil, "", newError(KindInitialization, fmt.Sprintf("Failed to initialize Orus VM (code %d)", res), nil)
	}

	version, err := mod.Version(ctx)
	if err != nil || version == "" {
		version = unknownVersion
	}
	return mod, version, nil
}

// Run loads the runtime if needed and executes src, returning everything it
// printed. Error lines appear in the output prefixed with "Error: ". A failed
// run that printed nothing, or an engine failure, is a KindRuntime error.
func (l *Loader) Run(ctx context.Context, src string) (string, error) {
	if err := l.Load(ctx); err != nil {
		return "", err
	}

	l.runMu.Lock()
	defer l.runMu.Unlock()

	l.mu.Lock()
	mod := l.module
	l.mu.Unlock()
	if mod == nil {
		return "", newError(KindModuleLoad, "Orus runtime not available", nil)
	}

	l.capture.Reset()
	res, err := mod.RunSource(ctx, src)
	if err != nil {
		l.capture.PrintErr("Execution error: " + err.Error())
		if ctx.Err() != nil {
			// The engine closes the module when the context ends.
			l.discard(ctx, mod)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", newError(KindRuntime, "Orus execution interrupted", err)
		}
		return "", newError(KindRuntime, "Orus execution error", err)
	}

	out := l.capture.String()
	if res != 0 && out == "" {
		return "", newError(KindRuntime, "Execution failed", nil)
	}

	out = strings.ReplaceAll(out, "\r\n", "\n")
	if out == "" {
		return NoOutput, nil
	}
	return out, nil
}

func (l *Loader) discard(ctx context.Context, mod Module) {
	l.mu.Lock()
	if l.module == mod {
		l.module = nil
		l.ready.Store(false)
	}
	l.mu.Unlock()
	_ = mod.Close(context.WithoutCancel(ctx))
	l.log.Warn("Orus runtime discarded after interrupted run")
}

// Close releases the module. A later Load starts over.
func (l *Loader) Close(ctx context.Context) error {
	l.runMu.Lock()
	defer l.runMu.Unlock()

	l.mu.Lock()
	mod := l.module
	l.module = nil
	l.version = ""
	l.source = ""
	l.ready.Store(false)
	l.mu.Unlock()

	if mod == nil {
		return nil
	}
	return mod.Close(ctx)
}

// asKind keeps an existing *Error and wraps anything else as kind.
func asKind(err error, kind Kind, msg string) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return newError(kind, msg, err)
}
