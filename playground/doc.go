// Package playground holds the host-side state of an Orus playground: open
// files, the example catalog, share links and the runner that decides which
// execution results are still wanted.
package playground
