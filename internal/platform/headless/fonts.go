package headless

import (
	"context"

	"github.com/GriffinCanCode/appshell/internal/domain/fonts"
)

// FontBackend is a native font loader. Every spec is loaded on its own
// goroutine as soon as LoadFonts is called.
type FontBackend struct {
	source fonts.Source
}

// NewFontBackend creates a backend reading payloads from source
func NewFontBackend(source fonts.Source) *FontBackend {
	return &FontBackend{source: source}
}

type op struct {
	done chan struct{}
	face *fonts.Face
	err  error
}

func (o *op) Wait(ctx context.Context) error {
	select {
	case <-o.done:
		return o.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LoadFonts implements fonts.PlatformFontBackend
func (b *FontBackend) LoadFonts(ctx context.Context, specs []fonts.FontSpec) (fonts.NativeBatch, error) {
	ops := make([]*op, len(specs))
	pending := make([]fonts.Pending, len(specs))

	for i, spec := range specs {
		o := &op{done: make(chan struct{})}
		ops[i], pending[i] = o, o

		go func() {
			defer close(o.done)
			data, err := b.source.Fetch(ctx, spec.URL)
			if err != nil {
				o.err = err
				return
			}
			o.face, o.err = fonts.FaceFromData(spec, data)
		}()
	}

	return fonts.NativeBatch{
		Pending: pending,
		Resources: func() []*fonts.Face {
			out := make([]*fonts.Face, 0, len(ops))
			for _, o := range ops {
				select {
				case <-o.done:
					if o.face != nil {
						out = append(out, o.face)
					}
				default:
				}
			}
			return out
		},
	}, nil
}
