package types

import (
	"fmt"
	"strings"
)

// Capability selects between platform specific implementations
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityWeb
	CapabilityNative
)

// String returns the string representation of the capability
func (c Capability) String() string {
	switch c {
	case CapabilityNone:
		return "none"
	case CapabilityWeb:
		return "web"
	case CapabilityNative:
		return "native"
	default:
		return "unknown"
	}
}

// ParseCapability converts a configuration value to a Capability
func ParseCapability(value string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "":
		return CapabilityNone, nil
	case "web":
		return CapabilityWeb, nil
	case "native":
		return CapabilityNative, nil
	default:
		return CapabilityNone, fmt.Errorf("unknown capability %q", value)
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Capability) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Capability) UnmarshalText(text []byte) error {
	parsed, err := ParseCapability(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Color is an RGBA color with components in [0, 1]
type Color [4]float64

// Transparent is the zero clear color
var Transparent = Color{0, 0, 0, 0}

// ColorFromOption converts a render surface option value to a Color.
// Unknown shapes yield Transparent and false.
func ColorFromOption(v any) (Color, bool) {
	switch c := v.(type) {
	case Color:
		return c, true
	case [4]float64:
		return Color(c), true
	case []float64:
		if len(c) != 4 {
			return Transparent, false
		}
		return Color{c[0], c[1], c[2], c[3]}, true
	case uint32:
		// 0xAARRGGBB
		return Color{
			float64((c>>16)&0xff) / 255,
			float64((c>>8)&0xff) / 255,
			float64(c&0xff) / 255,
			float64((c>>24)&0xff) / 255,
		}, true
	default:
		return Transparent, false
	}
}

// Rect is a position and size in stage pixels
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// DefaultVideoPos covers a full 1080p stage
var DefaultVideoPos = Rect{X: 0, Y: 0, W: 1920, H: 1080}
