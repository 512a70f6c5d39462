package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/appshell/internal/domain/fonts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const yamlManifest = `
name: guide
title: Program Guide
version: "1.2.0"
fonts:
  - family: GuideSans
    url: fonts/guide.ttf
    descriptors:
      weight: "700"
  - family: Remote
    url: https://cdn.example.com/remote.woff2
`

const tomlManifest = `
name = "player"
title = "Player"

[[fonts]]
family = "PlayerMono"
url = "/opt/fonts/mono.ttf"
`

func TestCatalogRegister(t *testing.T) {
	c := New()

	app, err := c.Register(Manifest{Name: "guide", Fonts: []fonts.FontSpec{{Family: "A", URL: "a.ttf"}}})
	require.NoError(t, err)
	assert.Equal(t, "guide", app.Name())
	assert.Len(t, app.Fonts(), 1)

	_, err = c.Register(Manifest{Name: "guide"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = c.Register(Manifest{})
	assert.ErrorIs(t, err, ErrInvalidManifest)

	_, err = c.Register(Manifest{Name: "x", Fonts: []fonts.FontSpec{{Family: "A"}}})
	assert.ErrorIs(t, err, ErrInvalidManifest)

	_, err = c.Register(Manifest{Name: "has space"})
	assert.ErrorIs(t, err, ErrInvalidManifest)

	_, err = c.Register(Manifest{Name: "y", Version: "latest"})
	assert.ErrorIs(t, err, ErrInvalidManifest)

	got, ok := c.Get("guide")
	require.True(t, ok)
	assert.Same(t, app, got)
	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestAppFontsIsACopy(t *testing.T) {
	c := New()
	app, err := c.Register(Manifest{Name: "a", Fonts: []fonts.FontSpec{{Family: "A", URL: "a.ttf"}}})
	require.NoError(t, err)

	f := app.Fonts()
	f[0].URL = "changed.ttf"
	assert.Equal(t, "a.ttf", app.Fonts()[0].URL)
}

func TestListIsSorted(t *testing.T) {
	c := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := c.Register(Manifest{Name: name})
		require.NoError(t, err)
	}
	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "zeta", list[2].Name)
}

func TestDecodeManifest(t *testing.T) {
	m, err := DecodeManifest(".yaml", []byte(yamlManifest))
	require.NoError(t, err)
	assert.Equal(t, "guide", m.Name)
	assert.Equal(t, "1.2.0", m.Version)
	require.Len(t, m.Fonts, 2)
	assert.Equal(t, "700", m.Fonts[0].Descriptors["weight"])

	m, err = DecodeManifest(".toml", []byte(tomlManifest))
	require.NoError(t, err)
	assert.Equal(t, "player", m.Name)
	require.Len(t, m.Fonts, 1)
	assert.Equal(t, "PlayerMono", m.Fonts[0].Family)

	m, err = DecodeManifest(".json", []byte(`{"name":"settings","fonts":[{"family":"S","url":"s.ttf"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "settings", m.Name)

	_, err = DecodeManifest(".ini", []byte("name=x"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = DecodeManifest(".toml", []byte("name = "))
	assert.Error(t, err)
}

func TestLoadManifestResolvesLocalFonts(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "guide/app.yaml", yamlManifest)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
	assert.Equal(t, filepath.Join(dir, "guide", "fonts", "guide.ttf"), m.Fonts[0].URL)
	assert.Equal(t, "https://cdn.example.com/remote.woff2", m.Fonts[1].URL)
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "guide/app.yaml", yamlManifest)
	writeFile(t, dir, "nested/deep/player.toml", tomlManifest)
	writeFile(t, dir, "broken.yml", "name: [unterminated")
	writeFile(t, dir, "nameless.toml", `title = "No name"`)
	writeFile(t, dir, "readme.md", "# not a manifest")

	c := New()
	loaded, failed, err := NewSeeder(c, dir, "", nil).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 2, failed)

	_, ok := c.Get("guide")
	assert.True(t, ok)
	_, ok = c.Get("player")
	assert.True(t, ok)
}

func TestSeedDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "name: same")
	writeFile(t, dir, "b.yaml", "name: same")

	c := New()
	loaded, failed, err := NewSeeder(c, dir, "*.yaml", nil).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	assert.Equal(t, 1, failed)
	app, _ := c.Get("same")
	assert.Equal(t, filepath.Join(dir, "a.yaml"), app.Manifest().Path)
}

func TestSeedMissingDirectory(t *testing.T) {
	loaded, failed, err := NewSeeder(New(), filepath.Join(t.TempDir(), "missing"), "", nil).Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, loaded)
	assert.Zero(t, failed)
}

func TestSeedInvalidPattern(t *testing.T) {
	_, _, err := NewSeeder(New(), t.TempDir(), "[", nil).Seed(context.Background())
	assert.Error(t, err)
}

func TestSeedCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "name: a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewSeeder(New(), dir, "", nil).Seed(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
