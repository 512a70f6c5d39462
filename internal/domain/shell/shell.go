package shell

import (
	"context"
	"sync"
	"time"

	"github.com/GriffinCanCode/appshell/internal/domain/focus"
	"github.com/GriffinCanCode/appshell/internal/domain/fonts"
	"github.com/GriffinCanCode/appshell/internal/domain/media"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/appshell/internal/shared/types"
	"go.uber.org/zap"
)

const (
	DefaultFontFace        = "RobotoRegular"
	DefaultStaticFilesPath = "./"
)

// Options configures a Shell
type Options struct {
	Capability          types.Capability
	StaticFilesPath     string
	DefaultFontFace     string
	UseImageServer      bool
	SkipRenderToTexture bool

	Container Container
	Surface   RenderSurface
	Preloader *fonts.Preloader
	Player    media.Player

	// OnExit is invoked when back is handled at the top level
	OnExit func()

	Logger  *logging.Logger
	Metrics *monitoring.Metrics
}

// Shell is the application lifecycle state machine
type Shell struct {
	capability          types.Capability
	staticFilesPath     string
	defaultFontFace     string
	useImageServer      bool
	skipRenderToTexture bool
	onExit              func()

	container Container
	preloader *fonts.Preloader
	player    media.Player
	bridge    *focus.Bridge
	logger    *logging.Logger
	metrics   *monitoring.Metrics

	mu      sync.Mutex
	state   State
	slot    slot
	gen     uint64
	load    *fonts.Load
	focused Node
	active  bool
	changed chan struct{}
	pending []Transition

	notifyMu sync.Mutex

	lmu       sync.RWMutex
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(Transition)
}

// New creates an idle shell
func New(opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Shell{
		capability:          opts.Capability,
		staticFilesPath:     opts.StaticFilesPath,
		defaultFontFace:     opts.DefaultFontFace,
		useImageServer:      opts.UseImageServer,
		skipRenderToTexture: opts.SkipRenderToTexture,
		onExit:              opts.OnExit,
		container:           opts.Container,
		preloader:           opts.Preloader,
		player:              opts.Player,
		logger:              logger.Component("shell"),
		metrics:             opts.Metrics,
		state:               StateIdle,
		changed:             make(chan struct{}),
	}

	if s.staticFilesPath == "" {
		s.staticFilesPath = DefaultStaticFilesPath
	}
	if s.defaultFontFace == "" {
		s.defaultFontFace = DefaultFontFace
	}
	if s.container == nil {
		s.container = nopContainer{}
	}
	if s.preloader == nil {
		s.preloader = fonts.NewPreloader(s.capability, fonts.Options{Logger: logger, Metrics: opts.Metrics})
	}
	if s.player == nil {
		s.player = media.NewNoopPlayer()
	}
	surface := opts.Surface
	if surface == nil {
		surface = nopSurface{}
	}
	s.bridge = focus.NewBridge(surface, s.player, opts.Metrics)

	s.metrics.SetInitialState(StateIdle.String())
	return s
}

// Start requests that app be hosted. It reports whether the trigger was
// accepted, which only happens while Idle.
func (s *Shell) Start(ctx context.Context, app AppType) bool {
	if app == nil {
		return false
	}
	s.mu.Lock()
	ok := s.fire(TriggerStart, input{ctx: ctx, app: app})
	s.mu.Unlock()

	s.flush()
	return ok
}

// Stop unhosts the current application. Stopping an idle shell is a no-op.
func (s *Shell) Stop() bool {
	s.mu.Lock()
	ok := s.fire(TriggerStop, input{})
	s.mu.Unlock()

	s.flush()
	return ok
}

// await re-enters the machine once load settles
func (s *Shell) await(gen uint64, load *fonts.Load) {
	<-load.Done()

	s.mu.Lock()
	s.fire(TriggerLoaded, input{gen: gen, faces: load.Faces()})
	s.mu.Unlock()

	s.flush()
}

// fire runs one trigger through the table. Caller holds mu.
func (s *Shell) fire(trigger Trigger, in input) bool {
	r, ok := transitions[edge{s.state, trigger}]
	if !ok {
		s.reject(trigger, "Ignoring trigger")
		return false
	}
	if trigger == TriggerLoaded && in.gen != s.gen {
		s.reject(trigger, "Discarding stale font load")
		return false
	}

	from := s.state
	before := s.slot.get()

	if r.exit != nil {
		r.exit(s, in)
	}
	s.state = r.to
	if r.enter != nil {
		r.enter(s, in)
	}

	t := Transition{From: from, To: r.to, Trigger: trigger, At: time.Now()}
	d := s.slot.get()
	if d == nil {
		d = before
	}
	if d != nil {
		t.AppID = d.ID.String()
		t.App = d.Type.Name()
		t.Faces = len(d.FontFaces)
	}

	s.metrics.RecordTransition(from.String(), r.to.String())
	s.logger.Info("Shell transition",
		zap.String("from", from.String()),
		zap.String("to", r.to.String()),
		zap.String("trigger", trigger.String()),
		zap.String("app_id", t.AppID),
		zap.Int("faces", t.Faces),
	)

	close(s.changed)
	s.changed = make(chan struct{})
	s.pending = append(s.pending, t)
	return true
}

func (s *Shell) reject(trigger Trigger, msg string) {
	s.metrics.RecordRejected(s.state.String(), trigger.String())
	s.logger.Debug(msg,
		zap.String("state", s.state.String()),
		zap.String("trigger", trigger.String()),
	)
}

// flush delivers pending transitions in order. A listener that triggers a
// new transition has it delivered by the flush already running.
func (s *Shell) flush() {
	for {
		if !s.notifyMu.TryLock() {
			return
		}
		for {
			s.mu.Lock()
			batch := s.pending
			s.pending = nil
			s.mu.Unlock()

			if len(batch) == 0 {
				break
			}
			s.lmu.RLock()
			listeners := make([]listener, len(s.listeners))
			copy(listeners, s.listeners)
			s.lmu.RUnlock()

			for _, t := range batch {
				for _, l := range listeners {
					l.fn(t)
				}
			}
		}
		s.notifyMu.Unlock()

		s.mu.Lock()
		empty := len(s.pending) == 0
		s.mu.Unlock()
		if empty {
			return
		}
	}
}

// Subscribe registers fn to receive every accepted transition, in order.
// It returns a function that removes the subscription.
func (s *Shell) Subscribe(fn func(Transition)) func() {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// WaitFor blocks until the shell is in state or ctx is done
func (s *Shell) WaitFor(ctx context.Context, state State) error {
	for {
		s.mu.Lock()
		cur, ch := s.state, s.changed
		s.mu.Unlock()

		if cur == state {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// State returns the current state
func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Descriptor returns a copy of the current descriptor
func (s *Shell) Descriptor() (AppDescriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.slot.get()
	if d == nil {
		return AppDescriptor{}, false
	}
	return d.clone(), true
}

// Focused returns the node holding focus, or nil
func (s *Shell) Focused() Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Activate attaches the media player. It reports false if already active.
func (s *Shell) Activate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return false
	}
	s.player.SetSkipRenderToTexture(s.skipRenderToTexture)
	s.player.Attach()
	s.active = true
	s.logger.Debug("Shell activated", zap.String("player", string(s.player.Kind())))
	return true
}

// Deactivate detaches the media player. It reports false if not active.
func (s *Shell) Deactivate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return false
	}
	s.player.Detach()
	s.active = false
	s.logger.Debug("Shell deactivated")
	return true
}

// Active reports whether the shell is active
func (s *Shell) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// FocusPass runs one focus pass. The focused application contributes
// overrides when it implements focus.Contributor.
func (s *Shell) FocusPass() focus.Settings {
	s.mu.Lock()
	node := s.focused
	s.mu.Unlock()

	var contributors []focus.Contributor
	if c, ok := node.(focus.Contributor); ok {
		contributors = append(contributors, c)
	}
	return s.bridge.Pass(contributors...)
}

// HandleBack handles a back key that nothing below the shell consumed. Only
// a web shell can exit.
func (s *Shell) HandleBack() bool {
	if s.capability != types.CapabilityWeb || s.onExit == nil {
		return false
	}
	s.logger.Info("Exiting on back")
	s.onExit()
	return true
}

// Path resolves rel under the static assets directory
func (s *Shell) Path(rel string) string {
	return s.staticFilesPath + "static-ux/" + rel
}

// Baseline returns the fonts every application gets
func (s *Shell) Baseline() []fonts.FontSpec {
	return []fonts.FontSpec{
		{Family: "RobotoRegular", URL: s.Path("fonts/roboto-regular.ttf"), Descriptors: map[string]string{}},
		{Family: "Material-Icons", URL: s.Path("fonts/Material-Icons.ttf"), Descriptors: map[string]string{}},
	}
}

func (s *Shell) Capability() types.Capability { return s.capability }
func (s *Shell) DefaultFontFace() string      { return s.defaultFontFace }
func (s *Shell) UseImageServer() bool         { return s.useImageServer }
func (s *Shell) Player() media.Player         { return s.player }
func (s *Shell) Preloader() *fonts.Preloader  { return s.preloader }

type nopContainer struct{}

func (nopContainer) Mount(app AppType) Node { return nopNode(app.Name()) }
func (nopContainer) Clear()                 {}

type nopNode string

func (n nopNode) ID() string { return string(n) }

type nopSurface struct{}

func (nopSurface) Option(string) (any, bool) { return nil, false }
func (nopSurface) SetClearColor(types.Color) {}
