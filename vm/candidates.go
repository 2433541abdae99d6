package vm

import (
	"net/url"
	"path"
	"strings"
)

// Candidates lists the locations tried for asset, in order and without
// duplicates:
//
//  1. asset resolved against base treated as a directory,
//  2. asset resolved against base as given (relative to its last segment),
//  3. asset at the root of base's host.
//
// base may be a URL or a local path. An empty base yields the asset name and
// its root path.
func Candidates(base, asset string) []string {
	asset = strings.TrimPrefix(asset, "/")
	if asset == "" {
		return nil
	}

	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	if base == "" {
		add(asset)
		add("/" + asset)
		return out
	}

	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" {
		// Local path.
		add(path.Join(base, asset))
		if !strings.HasSuffix(base, "/") {
			add(path.Join(path.Dir(base), asset))
		}
		add("/" + asset)
		return out
	}

	ref := &url.URL{Path: asset}
	dir := *u
	if !strings.HasSuffix(dir.Path, "/") {
		dir.Path += "/"
	}
	add(dir.ResolveReference(ref).String())
	add(u.ResolveReference(ref).String())
	root := url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/" + asset}
	add(root.String())
	return out
}
