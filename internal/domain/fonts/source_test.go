package fonts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fonts"), 0o755))
	path := filepath.Join(dir, "fonts", "a.ttf")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	t.Run("relative to root", func(t *testing.T) {
		data, err := FileSource{Root: dir}.Fetch(context.Background(), "fonts/a.ttf")
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), data)
	})

	t.Run("absolute", func(t *testing.T) {
		data, err := FileSource{Root: "/nowhere"}.Fetch(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), data)
	})

	t.Run("file scheme", func(t *testing.T) {
		data, err := FileSource{}.Fetch(context.Background(), "file://"+path)
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), data)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := FileSource{Root: dir}.Fetch(context.Background(), "fonts/missing.ttf")
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := FileSource{Root: dir}.Fetch(ctx, "fonts/a.ttf")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRouter(t *testing.T) {
	remote := SourceFunc(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("remote"), nil
	})
	local := SourceFunc(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("local"), nil
	})
	r := Router{Remote: remote, Local: local}

	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/a.ttf", "remote"},
		{"http://cdn.example.com/a.ttf", "remote"},
		{"./static-ux/fonts/a.ttf", "local"},
		{"file:///tmp/a.ttf", "local"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			data, err := r.Fetch(context.Background(), tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}

	_, err := Router{Local: local}.Fetch(context.Background(), "https://x/a.ttf")
	assert.Error(t, err)
	_, err = Router{Remote: remote}.Fetch(context.Background(), "a.ttf")
	assert.Error(t, err)
}
