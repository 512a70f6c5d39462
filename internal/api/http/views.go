package http

import (
	"time"

	"github.com/GriffinCanCode/appshell/internal/domain/focus"
	"github.com/GriffinCanCode/appshell/internal/domain/fonts"
	"github.com/GriffinCanCode/appshell/internal/domain/shell"
	"github.com/GriffinCanCode/appshell/internal/shared/types"
)

// ShellView is the JSON form of the shell
type ShellView struct {
	State           shell.State      `json:"state"`
	Capability      types.Capability `json:"capability"`
	Active          bool             `json:"active"`
	Focused         string           `json:"focused,omitempty"`
	DefaultFontFace string           `json:"default_font_face"`
	UseImageServer  bool             `json:"use_image_server"`
	Player          PlayerView       `json:"player"`
	App             *DescriptorView  `json:"app,omitempty"`
}

// PlayerView is the JSON form of the media player
type PlayerView struct {
	Kind                string `json:"kind"`
	Attached            bool   `json:"attached"`
	SkipRenderToTexture bool   `json:"skip_render_to_texture"`
}

// DescriptorView is the JSON form of the hosted application
type DescriptorView struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Faces     []fonts.FaceInfo `json:"faces"`
	CreatedAt time.Time        `json:"created_at"`
	StartedAt *time.Time       `json:"started_at,omitempty"`
}

// FocusView is the JSON form of focus settings
type FocusView struct {
	ClearColor  types.Color `json:"clear_color"`
	Mediaplayer MediaView   `json:"mediaplayer"`
}

// MediaView is the JSON form of media settings
type MediaView struct {
	Consumer string     `json:"consumer,omitempty"`
	Stream   string     `json:"stream,omitempty"`
	Hide     bool       `json:"hide"`
	VideoPos types.Rect `json:"video_pos"`
}

func shellView(s *shell.Shell) ShellView {
	p := s.Player()
	v := ShellView{
		State:           s.State(),
		Capability:      s.Capability(),
		Active:          s.Active(),
		DefaultFontFace: s.DefaultFontFace(),
		UseImageServer:  s.UseImageServer(),
		Player: PlayerView{
			Kind:                string(p.Kind()),
			Attached:            p.Attached(),
			SkipRenderToTexture: p.SkipRenderToTexture(),
		},
	}
	if n := s.Focused(); n != nil {
		v.Focused = n.ID()
	}
	if d, ok := s.Descriptor(); ok {
		v.App = descriptorView(d)
	}
	return v
}

func descriptorView(d shell.AppDescriptor) *DescriptorView {
	v := &DescriptorView{
		ID:        d.ID.String(),
		Name:      d.Type.Name(),
		Faces:     make([]fonts.FaceInfo, len(d.FontFaces)),
		CreatedAt: d.CreatedAt,
	}
	for i, f := range d.FontFaces {
		v.Faces[i] = f.Info()
	}
	if !d.StartedAt.IsZero() {
		started := d.StartedAt
		v.StartedAt = &started
	}
	return v
}

func focusView(s focus.Settings) FocusView {
	return FocusView{
		ClearColor: s.ClearColor,
		Mediaplayer: MediaView{
			Consumer: s.Mediaplayer.ConsumerID(),
			Stream:   s.Mediaplayer.Stream,
			Hide:     s.Mediaplayer.Hide,
			VideoPos: s.Mediaplayer.VideoPos,
		},
	}
}
