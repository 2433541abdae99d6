package vm

import (
	"context"
	"errors"
	"sync"
)

type fakeModule struct {
	mu       sync.Mutex
	out      *Capture
	initCode int32
	initErr  error
	version  string
	run      func(out *Capture, src string) (int32, error)
	runs     []string
	closed   bool
}

func (m *fakeModule) InitVM(context.Context) (int32, error) { return m.initCode, m.initErr }

func (m *fakeModule) Version(context.Context) (string, error) {
	if m.version == "" {
		return "", errors.New("no version")
	}
	return m.version, nil
}

func (m *fakeModule) RunSource(_ context.Context, src string) (int32, error) {
	m.mu.Lock()
	m.runs = append(m.runs, src)
	m.mu.Unlock()
	if m.run == nil {
		return 0, nil
	}
	return m.run(m.out, src)
}

func (m *fakeModule) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// staticFetcher serves assets from a map; missing sources fail.
type staticFetcher struct {
	mu     sync.Mutex
	assets map[string][]byte
	calls  []string
}

func (f *staticFetcher) Fetch(_ context.Context, src string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, src)
	f.mu.Unlock()
	data, ok := f.assets[src]
	if !ok {
		return nil, newError(KindModuleLoad, "Failed to fetch Orus runtime from "+src+" (status 404)", nil)
	}
	return data, nil
}

func moduleFactory(mod *fakeModule, created *int, mu *sync.Mutex) Factory {
	return func(_ context.Context, _ []byte, out *Capture) (Module, error) {
		mu.Lock()
		*created++
		mu.Unlock()
		mod.out = out
		return mod, nil
	}
}
