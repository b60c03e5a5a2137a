/*
Package tracing provides lightweight request tracing.

# Overview

Every HTTP request gets a span. The trace ID is taken from the X-Trace-ID
header when the caller sends one and minted otherwise; both IDs are echoed
in the response headers. Finished spans are handed to a buffered collector
that writes one structured zap entry per request.

# Usage

	tracer := tracing.New("gallery", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Correlate a log entry with the request
	logger.Info("image deleted", tracing.Fields(c.Request.Context())...)

# Trace Format

  - X-Trace-ID: "trace_" prefixed ULID for the whole request flow
  - X-Span-ID: "span_" prefixed ULID for the current operation

Spans are dropped, with a warning, when the 1000-entry buffer is full.
*/
package tracing
