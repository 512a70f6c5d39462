// Package focus computes and applies the settings of one focus pass.
package focus

import (
	"sync"

	"github.com/GriffinCanCode/appshell/internal/domain/media"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/appshell/internal/shared/types"
)

// ClearColorOption is the render surface option the clear color is read from
const ClearColorOption = "clearColor"

// Settings is the outcome of one focus pass
type Settings struct {
	ClearColor  types.Color
	Mediaplayer media.Settings
}

// Surface is the part of the render surface the bridge touches
type Surface interface {
	Option(name string) (any, bool)
	SetClearColor(color types.Color)
}

// Contributor lets a focused element override pass settings
type Contributor interface {
	FocusSettings(s *Settings)
}

// ContributorFunc adapts a function to Contributor
type ContributorFunc func(s *Settings)

// FocusSettings implements Contributor
func (f ContributorFunc) FocusSettings(s *Settings) { f(s) }

// Bridge carries focus settings to the render surface and media player
type Bridge struct {
	surface Surface
	player  media.Player
	metrics *monitoring.Metrics

	mu        sync.Mutex
	applied   bool
	lastClear types.Color
}

// NewBridge creates a bridge. metrics may be nil.
func NewBridge(surface Surface, player media.Player, metrics *monitoring.Metrics) *Bridge {
	return &Bridge{surface: surface, player: player, metrics: metrics}
}

// Collect builds the default settings for a pass
func (b *Bridge) Collect() Settings {
	s := Settings{
		ClearColor:  types.Transparent,
		Mediaplayer: media.DefaultSettings(),
	}
	if v, ok := b.surface.Option(ClearColorOption); ok {
		if c, ok := types.ColorFromOption(v); ok {
			s.ClearColor = c
		}
	}
	return s
}

// Apply pushes s. The clear color only reaches the surface when it changed,
// and media settings only reach an attached player.
func (b *Bridge) Apply(s Settings) {
	b.mu.Lock()
	changed := !b.applied || s.ClearColor != b.lastClear
	if changed {
		b.applied = true
		b.lastClear = s.ClearColor
		b.surface.SetClearColor(s.ClearColor)
	}
	b.mu.Unlock()

	if changed {
		b.metrics.IncClearColorUpdate()
	}
	if b.player.Attached() {
		b.player.UpdateSettings(s.Mediaplayer)
	}
}

// Pass runs one focus pass: collect, let contributors override in order, apply
func (b *Bridge) Pass(contributors ...Contributor) Settings {
	s := b.Collect()
	for _, c := range contributors {
		if c != nil {
			c.FocusSettings(&s)
		}
	}
	b.Apply(s)
	b.metrics.IncFocusPass()
	return s
}
