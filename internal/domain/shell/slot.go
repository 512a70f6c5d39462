package shell

import (
	"time"

	"github.com/GriffinCanCode/appshell/internal/domain/fonts"
	"github.com/GriffinCanCode/appshell/internal/shared/id"
)

// AppDescriptor describes the hosted application instance
type AppDescriptor struct {
	ID        id.AppID
	Type      AppType
	FontFaces []*fonts.Face
	CreatedAt time.Time
	StartedAt time.Time
}

func (d *AppDescriptor) clone() AppDescriptor {
	out := *d
	if d.FontFaces != nil {
		out.FontFaces = make([]*fonts.Face, len(d.FontFaces))
		copy(out.FontFaces, d.FontFaces)
	}
	return out
}

// slot owns the single current descriptor
type slot struct {
	current *AppDescriptor
}

func (s *slot) replace(d *AppDescriptor) { s.current = d }

func (s *slot) clear() { s.current = nil }

func (s *slot) get() *AppDescriptor { return s.current }
