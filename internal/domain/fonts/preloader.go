package fonts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/appshell/internal/shared/id"
	"github.com/GriffinCanCode/appshell/internal/shared/types"
	"go.uber.org/zap"
)

// Options configures a Preloader
type Options struct {
	Registry    *Registry
	Source      Source
	Backend     PlatformFontBackend
	Concurrency int
	Timeout     time.Duration
	Logger      *logging.Logger
	Metrics     *monitoring.Metrics
}

// Preloader loads font sets with the strategy bound to its capability
type Preloader struct {
	capability types.Capability
	strategy   strategy
	registry   *Registry
	timeout    time.Duration
	logger     *logging.Logger
	metrics    *monitoring.Metrics
}

// NewPreloader binds the loading strategy for capability. A native
// capability without a backend degrades to the empty strategy.
func NewPreloader(capability types.Capability, opts Options) *Preloader {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Component("fonts")

	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	p := &Preloader{
		capability: capability,
		registry:   registry,
		timeout:    opts.Timeout,
		logger:     logger,
		metrics:    opts.Metrics,
	}

	switch capability {
	case types.CapabilityWeb:
		src := opts.Source
		if src == nil {
			src = FileSource{}
		}
		p.strategy = webStrategy{registry: registry, source: src, limit: opts.Concurrency}
	case types.CapabilityNative:
		if opts.Backend == nil {
			logger.Warn("Native capability without a font backend, fonts will not be preloaded")
			p.strategy = noneStrategy{}
			break
		}
		p.strategy = nativeStrategy{backend: opts.Backend}
	default:
		p.strategy = noneStrategy{}
	}

	return p
}

// Capability returns the capability the strategy was bound for
func (p *Preloader) Capability() types.Capability { return p.capability }

// Registry returns the font set faces are registered in
func (p *Preloader) Registry() *Registry { return p.registry }

// Begin starts loading specs and returns immediately. The handle settles
// exactly once, whether loading succeeded, failed or was cancelled.
func (p *Preloader) Begin(ctx context.Context, specs []FontSpec) *Load {
	var cancel context.CancelFunc
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	l := &Load{
		ID:     id.NewLoadID(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	specs = append([]FontSpec(nil), specs...)
	go p.run(ctx, l, specs)
	return l
}

// Preload loads specs and blocks until the result is known
func (p *Preloader) Preload(ctx context.Context, specs []FontSpec) []*Face {
	l := p.Begin(ctx, specs)
	<-l.Done()
	return l.Faces()
}

func (p *Preloader) run(ctx context.Context, l *Load, specs []FontSpec) {
	start := time.Now()
	var (
		faces  []*Face
		failed int
		err    error
	)

	defer func() {
		if r := recover(); r != nil {
			faces, failed = nil, len(specs)
			err = fmt.Errorf("font strategy panicked: %v", r)
		}
		if err != nil {
			p.logger.Warn("Font loading issues",
				zap.String("load_id", l.ID.String()),
				zap.String("capability", p.capability.String()),
				zap.Int("requested", len(specs)),
				zap.Int("failed", failed),
				zap.Error(err),
			)
		}
		p.metrics.RecordPreload(p.capability.String(), time.Since(start), len(faces), failed)
		l.settle(faces, err)
	}()

	faces, failed, err = p.strategy.load(ctx, l, specs)
}

// Load is the handle of one preload
type Load struct {
	ID id.LoadID

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	mu         sync.Mutex
	faces      []*Face
	err        error
	registry   *Registry
	registered []*Face
	released   bool
}

// Done is closed once the load settled
func (l *Load) Done() <-chan struct{} { return l.done }

// Faces returns the loaded faces, or nil while the load is in flight
func (l *Load) Faces() []*Face {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.faces == nil {
		return nil
	}
	out := make([]*Face, len(l.faces))
	copy(out, l.faces)
	return out
}

// Err returns the aggregated loading error. It is diagnostic only, a failed
// load still settles with whatever faces did load.
func (l *Load) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Cancel aborts outstanding fetches. The handle still settles.
func (l *Load) Cancel() { l.cancel() }

// Release removes the faces this load registered from the runtime font set.
// Faces the load would register afterwards are not registered at all.
func (l *Load) Release() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.released = true
	faces := l.registered
	l.registered = nil
	if l.registry == nil {
		return 0
	}
	return l.registry.Remove(faces...)
}

func (l *Load) register(r *Registry, f *Face) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.released {
		return
	}
	l.registry = r
	r.Add(f)
	l.registered = append(l.registered, f)
}

func (l *Load) settle(faces []*Face, err error) {
	l.once.Do(func() {
		l.mu.Lock()
		if faces == nil {
			faces = []*Face{}
		}
		l.faces = faces
		l.err = err
		l.mu.Unlock()

		l.cancel()
		close(l.done)
	})
}
