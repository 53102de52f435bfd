package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every file below the discovery root.
const DefaultPattern = "**"

// File is a discovered log file.
type File struct {
	// Kind is the classification of the file name.
	Kind Kind `json:"kind"`

	// Path is the file location: the root joined with the match, or its
	// absolute form.
	Path string `json:"path"`
}

type discoverOptions struct {
	pattern  string
	absolute bool
}

// DiscoverOption configures Discover.
type DiscoverOption func(*discoverOptions)

// WithPattern restricts discovery to files matching a doublestar glob,
// evaluated relative to the root.
func WithPattern(pattern string) DiscoverOption {
	return func(o *discoverOptions) {
		if pattern != "" {
			o.pattern = pattern
		}
	}
}

// WithAbsolute reports absolute paths instead of root-relative ones.
func WithAbsolute(absolute bool) DiscoverOption {
	return func(o *discoverOptions) {
		o.absolute = absolute
	}
}

// Discover walks root and returns every file whose name classifies to a known
// kind, sorted by path. Files with unknown names are silently excluded.
func Discover(root string, opts ...DiscoverOption) ([]File, error) {
	o := discoverOptions{pattern: DefaultPattern}
	for _, opt := range opts {
		opt(&o)
	}

	if !doublestar.ValidatePattern(o.pattern) {
		return nil, fmt.Errorf("invalid pattern %q", o.pattern)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading root %s: %w", root, err)
	}

	// A single file given as root is classified on its own.
	if !info.IsDir() {
		kind, ok := FromPath(root)
		if !ok {
			return nil, nil
		}
		path, err := displayPath(root, "", o.absolute)
		if err != nil {
			return nil, err
		}
		return []File{{Kind: kind, Path: path}}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(root), o.pattern,
		doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	files := make([]File, 0, len(matches))
	for _, match := range matches {
		kind, ok := FromPath(match)
		if !ok {
			continue
		}
		path, err := displayPath(root, match, o.absolute)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Kind: kind, Path: path})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

func displayPath(root, rel string, absolute bool) (string, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	if !absolute {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}
