package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Name is a logical asset name the card pipeline asks for.
type Name string

const (
	Background  Name = "background"
	FontDisplay Name = "fontDisplay"
	FontHeading Name = "fontHeading"
	FontBody    Name = "fontBody"
)

// Bundled file names for each logical asset.
var fileNames = map[Name]string{
	Background:  "1.jpg",
	FontDisplay: "Anurati-Regular.otf",
	FontHeading: "赤明工业革命SC-Regular.otf",
	FontBody:    "站酷快乐体.ttf",
}

// ErrNotFound marks an asset that could not be resolved anywhere in the
// search order.
var ErrNotFound = errors.New("asset not found")

// Resolver resolves logical asset names to bytes. Every call re-resolves
// from scratch; resolution is cheap relative to rendering.
type Resolver struct {
	base string
}

// NewResolver returns a Resolver whose bundled-asset search starts from
// base. An empty base means the directory of the running executable.
func NewResolver(base string) *Resolver {
	if base == "" {
		if exe, err := os.Executable(); err == nil {
			base = filepath.Dir(exe)
		} else {
			base = "."
		}
	}
	return &Resolver{base: base}
}

// Resolve returns the bytes for name, honoring an optional user override
// path. The search order is fixed: the override if it exists on disk, then
// ../assets, ../../assets and ./assets relative to the resolver base.
// Absence is reported as ErrNotFound.
func (r *Resolver) Resolve(name Name, override string) ([]byte, error) {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return os.ReadFile(override)
		}
	}

	file, ok := fileNames[name]
	if !ok {
		return nil, fmt.Errorf("unknown asset %q", name)
	}

	for _, dir := range searchDirs(r.base) {
		p := filepath.Join(dir, file)
		if _, err := os.Stat(p); err == nil {
			return os.ReadFile(p)
		}
	}
	return nil, fmt.Errorf("%w: %s (%s)", ErrNotFound, name, file)
}

// searchDirs covers both the installed layout (assets beside the binary's
// parent) and the development layout (assets at the repo root).
func searchDirs(base string) []string {
	return []string{
		filepath.Join(base, "..", "assets"),
		filepath.Join(base, "..", "..", "assets"),
		filepath.Join(base, "assets"),
	}
}
