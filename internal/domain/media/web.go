package media

import (
	"sync"

	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/appshell/internal/shared/types"
	"go.uber.org/zap"
)

// Pipeline is the underlying playback engine of the web player
type Pipeline interface {
	Open(stream string) error
	Close()
	SetVisible(visible bool)
	SetVideoRect(rect types.Rect)
}

// WebOptions configures a WebPlayer
type WebOptions struct {
	// TextureMode renders video into a texture instead of a positioned layer
	TextureMode bool
	Logger      *logging.Logger
	Metrics     *monitoring.Metrics
}

// WebPlayer drives a Pipeline from focus settings. Only fields that changed
// since the previous update reach the pipeline.
type WebPlayer struct {
	mu          sync.Mutex
	pipeline    Pipeline
	textureMode bool
	skip        bool
	attached    bool
	current     Settings
	primed      bool

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewWebPlayer creates a web player on top of pipeline
func NewWebPlayer(pipeline Pipeline, opts WebOptions) *WebPlayer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &WebPlayer{
		pipeline:    pipeline,
		textureMode: opts.TextureMode,
		logger:      logger.Component("media"),
		metrics:     opts.Metrics,
	}
}

func (p *WebPlayer) Kind() Kind { return KindWeb }

func (p *WebPlayer) Attached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attached
}

func (p *WebPlayer) Attach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attached = true
}

// Detach closes any open stream and releases the current consumer
func (p *WebPlayer) Detach() {
	p.mu.Lock()
	if !p.attached {
		p.mu.Unlock()
		return
	}
	prev := p.current
	if prev.Stream != "" {
		p.pipeline.Close()
	}
	p.attached = false
	p.current = Settings{}
	p.primed = false
	p.mu.Unlock()

	if prev.Consumer != nil {
		prev.Consumer.HandleMediaEvent(Event{Type: EventDetached, Stream: prev.Stream})
	}
}

func (p *WebPlayer) SkipRenderToTexture() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.skip
}

func (p *WebPlayer) SetSkipRenderToTexture(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.skip = v
}

// Current returns the last applied settings
func (p *WebPlayer) Current() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// UpdateSettings applies s. It is ignored while detached.
func (p *WebPlayer) UpdateSettings(s Settings) {
	p.mu.Lock()
	if !p.attached {
		p.mu.Unlock()
		return
	}

	prev := p.current
	first := !p.primed
	p.primed = true

	if first || s.Stream != prev.Stream {
		if prev.Stream != "" {
			p.pipeline.Close()
		}
		if s.Stream != "" {
			if err := p.pipeline.Open(s.Stream); err != nil {
				p.logger.Warn("Failed to open stream", zap.String("stream", s.Stream), zap.Error(err))
				s.Stream = ""
			}
		}
	}
	if first || s.Hide != prev.Hide {
		p.pipeline.SetVisible(!s.Hide)
	}
	if (first || s.VideoPos != prev.VideoPos) && !p.rendersToTexture() {
		p.pipeline.SetVideoRect(s.VideoPos)
	}
	p.current = s
	p.mu.Unlock()

	p.metrics.IncMediaUpdate()

	if s.ConsumerID() != prev.ConsumerID() {
		if prev.Consumer != nil {
			prev.Consumer.HandleMediaEvent(Event{Type: EventDetached, Stream: prev.Stream})
		}
		if s.Consumer != nil {
			s.Consumer.HandleMediaEvent(Event{Type: EventAttached, Stream: s.Stream})
		}
	}
}

// rendersToTexture reports whether video goes to a texture, in which case the
// video layer is not positioned. Caller holds mu.
func (p *WebPlayer) rendersToTexture() bool {
	return p.textureMode && !p.skip
}
