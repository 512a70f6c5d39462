package server

import (
	"context"
	"strconv"
	"sync"

	"github.com/GriffinCanCode/appshell/internal/domain/shell"
	"github.com/GriffinCanCode/appshell/internal/infrastructure/tracing"
)

// loadTracer turns each Loading period of the shell into one span
type loadTracer struct {
	tracer *tracing.Tracer

	mu   sync.Mutex
	span *tracing.Span
}

func newLoadTracer(t *tracing.Tracer) *loadTracer {
	return &loadTracer{tracer: t}
}

func (l *loadTracer) observe(t shell.Transition) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case t.To == shell.StateLoading:
		span, _ := l.tracer.StartSpan(context.Background(), "shell.load")
		span.StartTime = t.At
		span.SetTag("app", t.App)
		span.SetTag("app_id", t.AppID)
		l.span = span
	case t.From == shell.StateLoading && l.span != nil:
		span := l.span
		l.span = nil
		span.SetTag("outcome", t.Trigger.String())
		span.SetTag("faces", strconv.Itoa(t.Faces))
		span.Finish()
		l.tracer.Submit(span)
	}
}
