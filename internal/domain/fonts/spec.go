package fonts

import "context"

// FontSpec describes one font resource to preload
type FontSpec struct {
	Family      string            `json:"family" yaml:"family" toml:"family"`
	URL         string            `json:"url" yaml:"url" toml:"url"`
	Descriptors map[string]string `json:"descriptors,omitempty" yaml:"descriptors,omitempty" toml:"descriptors,omitempty"`
}

// Pending is one in-flight platform load operation
type Pending interface {
	Wait(ctx context.Context) error
}

// PendingFunc adapts a function to Pending
type PendingFunc func(ctx context.Context) error

// Wait implements Pending
func (f PendingFunc) Wait(ctx context.Context) error { return f(ctx) }

// NativeBatch is what a platform backend hands back for one LoadFonts call.
// Resources is only meaningful once every Pending operation succeeded.
type NativeBatch struct {
	Pending   []Pending
	Resources func() []*Face
}

// PlatformFontBackend is the font loader of a native runtime
type PlatformFontBackend interface {
	LoadFonts(ctx context.Context, specs []FontSpec) (NativeBatch, error)
}
