package fonts

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/appshell/internal/shared/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/font/gofont/goregular"
)

func observedLogger() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.Wrap(zap.New(core)), logs
}

// failingSource serves a valid font except for URLs containing "bad"
func failingSource() Source {
	return SourceFunc(func(ctx context.Context, url string) ([]byte, error) {
		if strings.Contains(url, "bad") {
			return nil, errors.New("404 not found")
		}
		return goregular.TTF, nil
	})
}

func specs(urls ...string) []FontSpec {
	out := make([]FontSpec, len(urls))
	for i, u := range urls {
		out[i] = FontSpec{Family: "F" + u, URL: u}
	}
	return out
}

func TestPreloadNone(t *testing.T) {
	p := NewPreloader(types.CapabilityNone, Options{})
	faces := p.Preload(context.Background(), specs("a.ttf", "b.ttf"))
	assert.NotNil(t, faces)
	assert.Empty(t, faces)
	assert.Equal(t, types.CapabilityNone, p.Capability())
}

func TestPreloadWebAllSucceed(t *testing.T) {
	reg := NewRegistry()
	p := NewPreloader(types.CapabilityWeb, Options{Registry: reg, Source: failingSource(), Concurrency: 2})

	faces := p.Preload(context.Background(), specs("1.ttf", "2.ttf", "3.ttf", "4.ttf"))
	require.Len(t, faces, 4)
	for i, f := range faces {
		assert.Equal(t, StatusLoaded, f.Status())
		assert.Equal(t, specs("1.ttf", "2.ttf", "3.ttf", "4.ttf")[i].URL, f.Source)
	}
	assert.Equal(t, 4, reg.Len())
	assert.Same(t, reg, p.Registry())
}

func TestPreloadWebPartialFailure(t *testing.T) {
	logger, logs := observedLogger()
	p := NewPreloader(types.CapabilityWeb, Options{Source: failingSource(), Logger: logger})

	l := p.Begin(context.Background(), specs("1.ttf", "bad1.ttf", "2.ttf", "bad2.ttf"))
	<-l.Done()

	faces := l.Faces()
	require.Len(t, faces, 2)
	assert.Equal(t, "1.ttf", faces[0].Source)
	assert.Equal(t, "2.ttf", faces[1].Source)
	assert.Error(t, l.Err())

	warnings := logs.FilterMessage("Font loading issues").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
	assert.Equal(t, int64(2), warnings[0].ContextMap()["failed"])
}

func TestPreloadWebAllFail(t *testing.T) {
	p := NewPreloader(types.CapabilityWeb, Options{Source: failingSource()})
	faces := p.Preload(context.Background(), specs("bad1.ttf", "bad2.ttf"))
	assert.Empty(t, faces)
	assert.Equal(t, 2, p.Registry().Len())
}

func TestPreloadWebRecordsMetrics(t *testing.T) {
	m := monitoring.NewMetrics()
	p := NewPreloader(types.CapabilityWeb, Options{Source: failingSource(), Metrics: m})

	p.Preload(context.Background(), specs("1.ttf", "bad.ttf"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FacesLoaded.WithLabelValues("web")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FaceFailures.WithLabelValues("web")))
}

type fakeBackend struct {
	calls     int32
	pending   []Pending
	resources []*Face
	err       error
}

func (b *fakeBackend) LoadFonts(ctx context.Context, specs []FontSpec) (NativeBatch, error) {
	atomic.AddInt32(&b.calls, 1)
	if b.err != nil {
		return NativeBatch{}, b.err
	}
	return NativeBatch{
		Pending:   b.pending,
		Resources: func() []*Face { return b.resources },
	}, nil
}

func okPending() Pending {
	return PendingFunc(func(ctx context.Context) error { return nil })
}

func TestPreloadNativeSuccess(t *testing.T) {
	face, err := FaceFromData(FontSpec{Family: "Go"}, goregular.TTF)
	require.NoError(t, err)
	backend := &fakeBackend{
		pending:   []Pending{okPending(), okPending()},
		resources: []*Face{face},
	}

	p := NewPreloader(types.CapabilityNative, Options{Backend: backend})
	faces := p.Preload(context.Background(), specs("a.ttf", "b.ttf"))
	require.Len(t, faces, 1)
	assert.Same(t, face, faces[0])
	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.calls))
}

func TestPreloadNativeAnyFailureYieldsNothing(t *testing.T) {
	face, err := FaceFromData(FontSpec{Family: "Go"}, goregular.TTF)
	require.NoError(t, err)
	backend := &fakeBackend{
		pending: []Pending{
			okPending(),
			PendingFunc(func(ctx context.Context) error { return errors.New("decode failed") }),
		},
		resources: []*Face{face},
	}

	logger, logs := observedLogger()
	p := NewPreloader(types.CapabilityNative, Options{Backend: backend, Logger: logger})
	l := p.Begin(context.Background(), specs("a.ttf", "b.ttf"))
	<-l.Done()

	assert.Empty(t, l.Faces())
	assert.Error(t, l.Err())
	assert.Equal(t, 1, logs.FilterMessage("Font loading issues").Len())
}

func TestPreloadNativeBackendError(t *testing.T) {
	p := NewPreloader(types.CapabilityNative, Options{Backend: &fakeBackend{err: errors.New("no gpu")}})
	assert.Empty(t, p.Preload(context.Background(), specs("a.ttf")))
}

func TestPreloadNativeWithoutBackend(t *testing.T) {
	logger, logs := observedLogger()
	p := NewPreloader(types.CapabilityNative, Options{Logger: logger})
	assert.Empty(t, p.Preload(context.Background(), specs("a.ttf")))
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestPreloadRecoversFromPanic(t *testing.T) {
	p := NewPreloader(types.CapabilityNative, Options{Backend: panicBackend{}})
	l := p.Begin(context.Background(), specs("a.ttf"))
	<-l.Done()
	assert.Empty(t, l.Faces())
	assert.Error(t, l.Err())
}

type panicBackend struct{}

func (panicBackend) LoadFonts(context.Context, []FontSpec) (NativeBatch, error) {
	panic("backend bug")
}

func blockingSource() Source {
	return SourceFunc(func(ctx context.Context, url string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
}

func TestLoadCancel(t *testing.T) {
	p := NewPreloader(types.CapabilityWeb, Options{Source: blockingSource()})
	l := p.Begin(context.Background(), specs("slow.ttf"))

	assert.Nil(t, l.Faces())
	l.Cancel()

	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("load did not settle after cancel")
	}
	assert.Empty(t, l.Faces())
	assert.ErrorIs(t, l.Err(), context.Canceled)
}

func TestLoadTimeout(t *testing.T) {
	p := NewPreloader(types.CapabilityWeb, Options{Source: blockingSource(), Timeout: 20 * time.Millisecond})
	l := p.Begin(context.Background(), specs("slow.ttf"))

	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("load did not settle after timeout")
	}
	assert.ErrorIs(t, l.Err(), context.DeadlineExceeded)
}

func TestBeginCopiesSpecs(t *testing.T) {
	p := NewPreloader(types.CapabilityWeb, Options{Source: failingSource()})
	in := specs("1.ttf")
	l := p.Begin(context.Background(), in)
	in[0].URL = "bad.ttf"
	<-l.Done()
	assert.Len(t, l.Faces(), 1)
}

func TestLoadReleaseDropsRegisteredFaces(t *testing.T) {
	reg := NewRegistry()
	p := NewPreloader(types.CapabilityWeb, Options{Registry: reg, Source: failingSource()})

	for i := 0; i < 50; i++ {
		l := p.Begin(context.Background(), specs("1.ttf", "bad.ttf", "2.ttf"))
		<-l.Done()
		assert.Equal(t, 3, reg.Len())
		assert.Equal(t, 3, l.Release())
		assert.Zero(t, reg.Len())
	}
	assert.Empty(t, reg.Families())
}

func TestLoadReleaseBeforeRegistration(t *testing.T) {
	reg := NewRegistry()
	p := NewPreloader(types.CapabilityWeb, Options{Registry: reg, Source: blockingSource()})

	l := p.Begin(context.Background(), specs("1.ttf", "2.ttf"))
	l.Release()
	l.Cancel()
	<-l.Done()

	assert.Zero(t, reg.Len())
	assert.Zero(t, l.Release())
}

func TestLoadReleaseNative(t *testing.T) {
	face, err := FaceFromData(FontSpec{Family: "Go"}, goregular.TTF)
	require.NoError(t, err)
	reg := NewRegistry()
	b := &fakeBackend{pending: []Pending{okPending()}, resources: []*Face{face}}
	p := NewPreloader(types.CapabilityNative, Options{Registry: reg, Backend: b})

	l := p.Begin(context.Background(), specs("1.ttf"))
	<-l.Done()
	assert.Zero(t, l.Release())
	assert.Len(t, l.Faces(), 1)
}
