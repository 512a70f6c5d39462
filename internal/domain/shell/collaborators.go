package shell

import (
	"github.com/GriffinCanCode/appshell/internal/domain/focus"
	"github.com/GriffinCanCode/appshell/internal/domain/fonts"
)

// AppType is a hosted application type
type AppType interface {
	Name() string
	Fonts() []fonts.FontSpec
}

// Node is a mounted application instance. A node that also implements
// focus.Contributor takes part in focus passes.
type Node interface {
	ID() string
}

// Container mounts the hosted application into the scene
type Container interface {
	Mount(app AppType) Node
	Clear()
}

// RenderSurface is the render surface the shell reads options from
type RenderSurface = focus.Surface
