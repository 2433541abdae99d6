package vm

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Exported functions expected from a WASI reactor build of the runtime.
const (
	exportInit    = "initWebVM"
	exportVersion = "getVersion"
	exportRun     = "runSource"
	exportMalloc  = "malloc"
	exportFree    = "free"
)

// WasmFactory compiles and instantiates a WASI build of the runtime with
// wazero. Cancelling a call's context closes the module, after which the
// Loader drops it and loads a fresh one on the next call.
func WasmFactory(ctx context.Context, asset []byte, out *Capture) (Module, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, newError(KindModuleLoad, "instantiate WASI", err)
	}

	compiled, err := rt.CompileModule(ctx, asset)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, newError(KindModuleLoad, "compile runtime module", err)
	}

	stdout := newLineWriter(out.Print)
	stderr := newLineWriter(out.PrintErr)
	cfg := wazero.NewModuleConfig().
		WithName("orus").
		WithStdout(stdout).
		WithStderr(stderr).
		WithSysWalltime().
		WithSysNanotime().
		WithSysNanosleep().
		WithRandSource(rand.Reader).
		WithStartFunctions("_initialize")

	mod, err := rt.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, newError(KindModuleLoad, "instantiate runtime module", err)
	}

	for _, name := range []string{exportInit, exportVersion, exportRun, exportMalloc} {
		if mod.ExportedFunction(name) == nil {
			_ = rt.Close(ctx)
			return nil, newError(KindModuleLoad, fmt.Sprintf("runtime module does not export %q", name), nil)
		}
	}

	return &wasmModule{rt: rt, mod: mod, stdout: stdout, stderr: stderr}, nil
}

type wasmModule struct {
	rt     wazero.Runtime
	mod    api.Module
	stdout *lineWriter
	stderr *lineWriter
}

func (m *wasmModule) InitVM(ctx context.Context) (int32, error) {
	defer m.flush()
	res, err := m.mod.ExportedFunction(exportInit).Call(ctx)
	if err != nil {
		return 0, err
	}
	return resultI32(res)
}

func (m *wasmModule) Version(ctx context.Context) (string, error) {
	res, err := m.mod.ExportedFunction(exportVersion).Call(ctx)
	if err != nil {
		return "", err
	}
	if len(res) == 0 {
		return "", errors.New("getVersion returned no value")
	}
	return m.readCString(api.DecodeU32(res[0]))
}

func (m *wasmModule) RunSource(ctx context.Context, src string) (int32, error) {
	defer m.flush()

	ptr, err := m.writeCString(ctx, src)
	if err != nil {
		return 0, err
	}
	defer m.free(ctx, ptr)

	res, err := m.mod.ExportedFunction(exportRun).Call(ctx, api.EncodeU32(ptr))
	if err != nil {
		return 0, err
	}
	return resultI32(res)
}

func (m *wasmModule) Close(ctx context.Context) error {
	m.flush()
	return m.rt.Close(ctx)
}

func (m *wasmModule) flush() {
	m.stdout.Flush()
	m.stderr.Flush()
}

// writeCString copies s plus a NUL terminator into guest memory.
func (m *wasmModule) writeCString(ctx context.Context, s string) (uint32, error) {
	size := uint64(len(s) + 1)
	res, err := m.mod.ExportedFunction(exportMalloc).Call(ctx, size)
	if err != nil {
		return 0, fmt.Errorf("malloc: %w", err)
	}
	if len(res) == 0 || res[0] == 0 {
		return 0, errors.New("malloc returned null")
	}
	ptr := api.DecodeU32(res[0])

	buf := make([]byte, 0, size)
	buf = append(buf, s...)
	buf = append(buf, 0)
	if !m.mod.Memory().Write(ptr, buf) {
		return 0, fmt.Errorf("write %d bytes at %#x: out of range", size, ptr)
	}
	return ptr, nil
}

func (m *wasmModule) free(ctx context.Context, ptr uint32) {
	if fn := m.mod.ExportedFunction(exportFree); fn != nil {
		_, _ = fn.Call(ctx, api.EncodeU32(ptr))
	}
}

// maxCString bounds reads of NUL-terminated strings from guest memory.
const maxCString = 1 << 16

func (m *wasmModule) readCString(ptr uint32) (string, error) {
	mem := m.mod.Memory()
	var out []byte
	for i := uint32(0); i < maxCString; i++ {
		b, ok := mem.ReadByte(ptr + i)
		if !ok {
			return "", fmt.Errorf("read string at %#x: out of range", ptr)
		}
		if b == 0 {
			return string(out), nil
		}
		out = append(out, b)
	}
	return "", fmt.Errorf("read string at %#x: unterminated", ptr)
}

func resultI32(res []uint64) (int32, error) {
	if len(res) == 0 {
		return 0, errors.New("function returned no value")
	}
	return api.DecodeI32(res[0]), nil
}
