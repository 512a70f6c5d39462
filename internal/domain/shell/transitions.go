package shell

import (
	"context"
	"time"

	"github.com/GriffinCanCode/appshell/internal/domain/fonts"
	"github.com/GriffinCanCode/appshell/internal/shared/id"
)

// input carries trigger arguments into effects
type input struct {
	ctx   context.Context
	app   AppType
	gen   uint64
	faces []*fonts.Face
}

type effect func(s *Shell, in input)

type edge struct {
	from    State
	trigger Trigger
}

type rule struct {
	to    State
	exit  effect
	enter effect
}

// transitions is the complete table. Pairs not listed are ignored.
var transitions map[edge]rule

func init() {
	transitions = map[edge]rule{
		{StateIdle, TriggerStart}:     {to: StateLoading, enter: (*Shell).beginLoading},
		{StateLoading, TriggerLoaded}: {to: StateStarted, enter: (*Shell).attach},
		{StateLoading, TriggerStop}:   {to: StateIdle, enter: (*Shell).abortLoading},
		{StateStarted, TriggerStop}:   {to: StateIdle, exit: (*Shell).detach, enter: (*Shell).reset},
	}
}

func (s *Shell) beginLoading(in input) {
	s.gen++
	gen := s.gen

	d := &AppDescriptor{
		ID:        id.NewAppID(),
		Type:      in.app,
		CreatedAt: time.Now(),
	}
	s.slot.replace(d)

	appFonts := in.app.Fonts()
	specs := make([]fonts.FontSpec, 0, len(appFonts)+2)
	specs = append(specs, appFonts...)
	specs = append(specs, s.Baseline()...)

	ctx := in.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	// Stop cancels the load explicitly, the caller's deadline does not
	load := s.preloader.Begin(context.WithoutCancel(ctx), specs)
	s.load = load
	go s.await(gen, load)
}

func (s *Shell) attach(in input) {
	d := s.slot.get()
	d.FontFaces = in.faces
	d.StartedAt = time.Now()

	s.focused = s.container.Mount(d.Type)
}

func (s *Shell) abortLoading(input) {
	if s.load != nil {
		s.load.Cancel()
		s.load.Release()
		s.load = nil
	}
	s.gen++
	s.slot.clear()
}

func (s *Shell) detach(input) {
	s.container.Clear()
	s.focused = nil
}

func (s *Shell) reset(input) {
	if s.load != nil {
		s.load.Release()
		s.load = nil
	}
	s.slot.clear()
}
