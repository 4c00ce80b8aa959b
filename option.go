package approver

import (
	"io"
	"log/slog"

	"github.com/viant/approver/service/approval"
	"github.com/viant/approver/service/meta"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service
type Option func(s *Service)

// WithConfig sets the configuration, DefaultConfig() otherwise
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithWriter sets where approval messages are printed, os.Stdout by default
func WithWriter(w io.Writer) Option {
	return func(s *Service) {
		s.writer = w
	}
}

// WithEmitter replaces the printer; every handled decision is passed to emitter.
func WithEmitter(emitter approval.Emitter) Option {
	return func(s *Service) {
		s.emitter = emitter
	}
}

// WithLogger sets the logger, otherwise one is built from Config.Log
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetaService sets the meta service used by NewFromURL
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithDiagnostics sets where logs and spans without an output file are
// written, os.Stderr by default.
func WithDiagnostics(w io.Writer) Option {
	return func(s *Service) {
		s.diagnostics = w
	}
}

// WithTracing enables tracing, overriding Config.Trace. Spans are written to
// outputFile, or to the diagnostics writer when outputFile is empty. The file
// is created when the service is built and closed by Service.Close.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.trace = &TraceConfig{Enabled: true, Service: serviceName, Version: serviceVersion, OutputFile: outputFile}
	}
}

// WithTracingExporter enables tracing with a custom exporter (OTLP, Jaeger, ...).
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.trace = &TraceConfig{Enabled: true, Service: serviceName, Version: serviceVersion}
		s.traceExporter = exporter
	}
}
