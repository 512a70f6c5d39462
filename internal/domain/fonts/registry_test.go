package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Len())

	pending := NewFace(FontSpec{Family: "Roboto", URL: "roboto.ttf"})
	loaded, err := FaceFromData(FontSpec{Family: "Go", URL: "go.ttf"}, goregular.TTF)
	require.NoError(t, err)

	r.Add(pending)
	r.Add(loaded)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"Go", "Roboto"}, r.Families())
	assert.Len(t, r.Lookup("Roboto"), 1)
	assert.Empty(t, r.Lookup("Missing"))

	assert.True(t, r.Check("Go"))
	assert.False(t, r.Check("Roboto"))

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "Roboto", snap[0].Family)
	assert.Equal(t, StatusUnloaded, snap[0].Status)
	assert.Equal(t, StatusLoaded, snap[1].Status)
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	a := NewFace(FontSpec{Family: "Roboto", URL: "a.ttf"})
	b := NewFace(FontSpec{Family: "Roboto", URL: "b.ttf"})
	c := NewFace(FontSpec{Family: "Icons", URL: "c.ttf"})
	r.Add(a)
	r.Add(b)
	r.Add(c)

	assert.Equal(t, 2, r.Remove(a, c, NewFace(FontSpec{Family: "Other"})))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []string{"Roboto"}, r.Families())
	require.Len(t, r.Lookup("Roboto"), 1)
	assert.Same(t, b, r.Lookup("Roboto")[0])
	assert.Empty(t, r.Lookup("Icons"))

	assert.Zero(t, r.Remove())
	assert.Equal(t, 1, r.Remove(b))
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Families())
}
