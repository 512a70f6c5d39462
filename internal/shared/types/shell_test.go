package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapability(t *testing.T) {
	tests := []struct {
		in   string
		want Capability
	}{
		{"web", CapabilityWeb},
		{"Native", CapabilityNative},
		{" none ", CapabilityNone},
		{"", CapabilityNone},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCapability(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCapability("spark")
	assert.Error(t, err)
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "web", CapabilityWeb.String())
	assert.Equal(t, "native", CapabilityNative.String())
	assert.Equal(t, "none", CapabilityNone.String())
	assert.Equal(t, "unknown", Capability(42).String())
}

func TestColorFromOption(t *testing.T) {
	c, ok := ColorFromOption([]float64{1, 0, 0, 1})
	require.True(t, ok)
	assert.Equal(t, Color{1, 0, 0, 1}, c)

	c, ok = ColorFromOption(uint32(0xff00ff00))
	require.True(t, ok)
	assert.Equal(t, Color{0, 1, 0, 1}, c)

	c, ok = ColorFromOption("black")
	assert.False(t, ok)
	assert.Equal(t, Transparent, c)

	_, ok = ColorFromOption([]float64{1, 2})
	assert.False(t, ok)
}

func TestCapabilityTextRoundTrip(t *testing.T) {
	for _, c := range []Capability{CapabilityNone, CapabilityWeb, CapabilityNative} {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var got Capability
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, c, got)
	}

	var c Capability
	assert.Error(t, c.UnmarshalText([]byte("tizen")))
}
