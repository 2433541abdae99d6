// Package vm loads the Orus language runtime and runs source code through it.
//
// The runtime itself is opaque: it is reached through the small Module
// contract (initialize, report a version, run a program) and reports output by
// printing. The Loader owns one module instance for the whole process.
package vm

import "context"

// Module is one instantiated runtime.
type Module interface {
	// InitVM prepares the interpreter; 0 means success.
	InitVM(ctx context.Context) (int32, error)
	Version(ctx context.Context) (string, error)
	// RunSource executes a program; 0 means success.
	RunSource(ctx context.Context, src string) (int32, error)
	Close(ctx context.Context) error
}

// Factory instantiates a Module from a fetched asset. The module must send its
// standard output to out.Print and its standard error to out.PrintErr.
type Factory func(ctx context.Context, asset []byte, out *Capture) (Module, error)
