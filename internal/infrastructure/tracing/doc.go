/*
Package tracing follows a request through the server.

Every HTTP request gets a span named after its route. A caller that sends
X-Trace-ID (and optionally X-Span-ID) has its trace continued; otherwise a
new trace id is minted. Both ids are echoed in the response headers so a
browser log line can be matched with the server log.

Finished spans are handed to a buffered collector and logged through zap:
at debug level normally, at error level when the request failed.

# Usage

	tracer := tracing.New("termquest", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "save")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
