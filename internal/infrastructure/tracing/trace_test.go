package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New("test", zap.New(core)), logs
}

func TestStartSpanContinuesTrace(t *testing.T) {
	tracer, _ := newObserved()
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "parent")
	assert.True(t, strings.HasPrefix(string(parent.TraceID), "trace_"))
	assert.True(t, strings.HasPrefix(string(parent.SpanID), "span_"))
	assert.Empty(t, parent.ParentID)

	child, _ := tracer.StartSpan(ctx, "child")
	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.NotEqual(t, parent.SpanID, child.SpanID)
}

func TestCloseDrainsSpans(t *testing.T) {
	tracer, logs := newObserved()

	ok, _ := tracer.StartSpan(context.Background(), "ok")
	ok.SetTag("k", "v")
	ok.Finish()
	tracer.Submit(ok)

	bad, _ := tracer.StartSpan(context.Background(), "bad")
	bad.SetError(errors.New("boom"))
	bad.Finish()
	tracer.Submit(bad)

	tracer.Close()
	tracer.Close()

	require.Equal(t, 1, logs.FilterMessage("span completed").Len())
	errs := logs.FilterMessage("span completed with error").All()
	require.Len(t, errs, 1)
	assert.Equal(t, int64(500), errs[0].ContextMap()["status"])

	// dropped silently once closed
	tracer.Submit(ok)
	assert.Equal(t, 2, logs.Len())
}

func TestInjectExtractRoundTrip(t *testing.T) {
	ctx := WithTrace(context.Background(), "trace_1", "span_1")
	headers := map[string]string{}
	InjectTraceContext(ctx, headers)

	traceID, spanID := ExtractTraceContext(headers)
	assert.Equal(t, TraceID("trace_1"), traceID)
	assert.Equal(t, SpanID("span_1"), spanID)
	assert.Equal(t, "[trace:trace_1 span:span_1]", FormatTrace(traceID, spanID))
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer, logs := newObserved()

	r := gin.New()
	r.Use(HTTPMiddleware(tracer))
	var seen TraceID
	r.GET("/shell", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/shell", nil)
	req.Header.Set(TraceHeader, "trace_upstream")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, TraceID("trace_upstream"), seen)
	assert.Equal(t, "trace_upstream", w.Header().Get(TraceHeader))
	assert.NotEmpty(t, w.Header().Get(SpanHeader))

	tracer.Close()
	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET /shell", fields["operation"])
	assert.Equal(t, "418", fields["http.status"])
}
