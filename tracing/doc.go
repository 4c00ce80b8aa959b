// Package tracing records one OpenTelemetry span per dispatched purchase
// request. A Tracer owns its provider and, when it writes to a file, the file
// handle; call Shutdown to flush and release both.
package tracing
