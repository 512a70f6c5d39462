package fonts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source fetches font payloads by URL
type Source interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch implements Source
func (f SourceFunc) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }

// FileSource reads fonts from the local file system. Relative paths resolve
// against Root.
type FileSource struct {
	Root string
}

// Fetch implements Source
func (s FileSource) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(url, "file://")
	if !filepath.IsAbs(path) && s.Root != "" {
		path = filepath.Join(s.Root, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	return data, nil
}

// Router sends http(s) URLs to Remote and everything else to Local
type Router struct {
	Remote Source
	Local  Source
}

// Fetch implements Source
func (r Router) Fetch(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		if r.Remote == nil {
			return nil, fmt.Errorf("no remote font source for %s", url)
		}
		return r.Remote.Fetch(ctx, url)
	}
	if r.Local == nil {
		return nil, fmt.Errorf("no local font source for %s", url)
	}
	return r.Local.Fetch(ctx, url)
}
