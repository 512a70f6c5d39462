package media

import "sync/atomic"

// NoopPlayer stands in when the runtime has no media support. It is never
// attached, so settings are never forwarded to it.
type NoopPlayer struct {
	skip atomic.Bool
}

// NewNoopPlayer creates a no-op player
func NewNoopPlayer() *NoopPlayer { return &NoopPlayer{} }

func (*NoopPlayer) Kind() Kind                      { return KindNoop }
func (*NoopPlayer) Attached() bool                  { return false }
func (*NoopPlayer) Attach()                         {}
func (*NoopPlayer) Detach()                         {}
func (*NoopPlayer) UpdateSettings(Settings)         {}
func (p *NoopPlayer) SkipRenderToTexture() bool     { return p.skip.Load() }
func (p *NoopPlayer) SetSkipRenderToTexture(v bool) { p.skip.Store(v) }
