package vm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// maxAssetSize bounds the size of a fetched runtime asset.
const maxAssetSize = 64 << 20

// Fetcher retrieves the bytes of a runtime asset.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, src string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, src string) ([]byte, error) { return f(ctx, src) }

// HTTPFetcher fetches assets over HTTP(S). Any non-2xx status is an error.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

func (f HTTPFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, newError(KindModuleLoad, fmt.Sprintf("build request for %s", src), err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, newError(KindModuleLoad, fmt.Sprintf("fetch Orus runtime from %s", src), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(KindModuleLoad,
			fmt.Sprintf("Failed to fetch Orus runtime from %s (status %d)", src, resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, newError(KindModuleLoad, fmt.Sprintf("read Orus runtime from %s", src), err)
	}
	if len(data) > maxAssetSize {
		return nil, newError(KindModuleLoad, fmt.Sprintf("Orus runtime at %s exceeds %d bytes", src, maxAssetSize), nil)
	}
	return data, nil
}

// FileFetcher reads assets from the local file system. Both plain paths and
// file:// URLs are accepted.
type FileFetcher struct{}

func (FileFetcher) Fetch(_ context.Context, src string) ([]byte, error) {
	path := src
	if strings.HasPrefix(src, "file://") {
		u, err := url.Parse(src)
		if err != nil {
			return nil, newError(KindModuleLoad, fmt.Sprintf("parse %s", src), err)
		}
		path = u.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(KindModuleLoad, fmt.Sprintf("read Orus runtime from %s", src), err)
	}
	return data, nil
}

// SchemeFetcher dispatches http and https sources to HTTP and everything else
// to File.
type SchemeFetcher struct {
	HTTP Fetcher
	File Fetcher
}

// DefaultFetcher returns a SchemeFetcher using http.DefaultClient.
func DefaultFetcher(userAgent string) SchemeFetcher {
	return SchemeFetcher{
		HTTP: HTTPFetcher{UserAgent: userAgent},
		File: FileFetcher{},
	}
}

func (f SchemeFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return f.HTTP.Fetch(ctx, src)
	}
	return f.File.Fetch(ctx, src)
}
