package media

import "github.com/GriffinCanCode/appshell/internal/shared/types"

// NativeFactory is supplied by a native runtime
type NativeFactory interface {
	Create() Player
}

// NativeFactoryFunc adapts a function to NativeFactory
type NativeFactoryFunc func() Player

// Create implements NativeFactory
func (f NativeFactoryFunc) Create() Player { return f() }

// Factory builds a player
type Factory func() Player

// Factories maps a capability to the factory of its player
type Factories map[types.Capability]Factory

// Resolve builds the player for capability. A missing factory, or one that
// returns nil, yields the no-op player.
func Resolve(capability types.Capability, factories Factories) Player {
	if factory, ok := factories[capability]; ok && factory != nil {
		if p := factory(); p != nil {
			return p
		}
	}
	return NewNoopPlayer()
}
