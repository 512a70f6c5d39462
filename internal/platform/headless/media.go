package headless

import (
	"sync"

	"github.com/GriffinCanCode/appshell/internal/domain/media"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appshell/internal/shared/types"
	"go.uber.org/zap"
)

// NativePlayer is the player a native runtime hands out. It records the
// settings it receives.
type NativePlayer struct {
	mu       sync.Mutex
	attached bool
	skip     bool
	last     media.Settings
	updates  int
}

func (p *NativePlayer) Kind() media.Kind { return media.KindNative }

func (p *NativePlayer) Attached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attached
}

func (p *NativePlayer) Attach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attached = true
}

func (p *NativePlayer) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attached = false
}

func (p *NativePlayer) UpdateSettings(s media.Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = s
	p.updates++
}

func (p *NativePlayer) SkipRenderToTexture() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.skip
}

func (p *NativePlayer) SetSkipRenderToTexture(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.skip = v
}

// Last returns the last settings received and the update count
func (p *NativePlayer) Last() (media.Settings, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.updates
}

// MediaFactory creates native players
type MediaFactory struct{}

// Create implements media.NativeFactory
func (MediaFactory) Create() media.Player { return &NativePlayer{} }

// PipelineState is a snapshot of a Pipeline
type PipelineState struct {
	Stream  string     `json:"stream,omitempty"`
	Open    bool       `json:"open"`
	Visible bool       `json:"visible"`
	Rect    types.Rect `json:"rect"`
	Calls   int        `json:"calls"`
}

// Pipeline is a web media pipeline that only tracks state
type Pipeline struct {
	mu     sync.Mutex
	state  PipelineState
	logger *logging.Logger
}

// NewPipeline creates a pipeline. logger may be nil.
func NewPipeline(logger *logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{logger: logger.Component("pipeline")}
}

func (p *Pipeline) Open(stream string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Stream = stream
	p.state.Open = true
	p.state.Calls++
	p.logger.Debug("Open stream", zap.String("stream", stream))
	return nil
}

func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger.Debug("Close stream", zap.String("stream", p.state.Stream))
	p.state.Stream = ""
	p.state.Open = false
	p.state.Calls++
}

func (p *Pipeline) SetVisible(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Visible = visible
	p.state.Calls++
}

func (p *Pipeline) SetVideoRect(rect types.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Rect = rect
	p.state.Calls++
}

// State returns a snapshot of the pipeline
func (p *Pipeline) State() PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
