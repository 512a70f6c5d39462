/*
Package tracing provides lightweight request and lifecycle tracing.

Spans carry a trace ID and a span ID, propagate through context.Context and
the X-Trace-ID / X-Span-ID headers, and are written to the structured log by
a buffered collector when finished.

# Usage

	tracer := tracing.New("shell", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
	span.SetTag("key", "value")
*/
package tracing
