package approver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/viant/approver/internal/logging"
	"github.com/viant/approver/progress"
	"github.com/viant/approver/service/approval"
	"github.com/viant/approver/service/meta"
	"github.com/viant/approver/service/printer"
	"github.com/viant/approver/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Service dispatches purchase requests through the configured approval chain.
type Service struct {
	config      *Config
	chain       *approval.Chain
	emitter     approval.Emitter
	writer      io.Writer
	logger      *slog.Logger
	diagnostics io.Writer
	metaService *meta.Service
	tracer      *tracing.Tracer

	trace         *TraceConfig
	traceExporter sdktrace.SpanExporter
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Chain returns the approval chain
func (s *Service) Chain() *approval.Chain {
	return s.chain
}

// Logger returns the service logger
func (s *Service) Logger() *slog.Logger {
	return s.logger
}

// Close flushes pending spans and releases the trace output.
func (s *Service) Close(ctx context.Context) error {
	return s.tracer.Shutdown(ctx)
}

// Process dispatches amount through the chain. An amount above every threshold
// returns a decision with Handled == false and prints nothing.
func (s *Service) Process(ctx context.Context, amount int) (*approval.Decision, error) {
	ctx, span := s.tracer.StartDispatch(ctx, amount)
	decision, err := s.chain.Dispatch(ctx, amount)
	span.End(decision, err)
	if decision != nil {
		delta := progress.Delta{Total: 1, Unhandled: 1}
		if decision.Handled {
			delta = progress.Delta{Total: 1, Handled: 1, Approver: decision.Approver}
		}
		progress.UpdateCtx(ctx, delta)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to process purchase request", "amount", amount, "error", err)
		return decision, err
	}
	s.logger.DebugContext(ctx, "processed purchase request",
		"request_id", decision.RequestID, "amount", amount, "approver", decision.Approver, "handled", decision.Handled)
	return decision, nil
}

func (s *Service) apply(options []Option) {
	for _, option := range options {
		option(s)
	}
}

func (s *Service) build() error {
	s.ensureBaseSetup()
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	levels, err := s.config.Levels()
	if err != nil {
		return err
	}
	if s.chain, err = approval.NewBuilder(s.emitter).WithLogger(s.logger).Add(levels...).Build(); err != nil {
		return err
	}
	if s.tracer, err = s.newTracer(); err != nil {
		return fmt.Errorf("failed to initialise tracing: %w", err)
	}
	return nil
}

// newTracer honours WithTracing/WithTracingExporter over Config.Trace. Without
// an output file spans go to the diagnostics writer, never to the approval output.
func (s *Service) newTracer() (*tracing.Tracer, error) {
	trace := s.config.Trace
	if s.trace != nil {
		trace = *s.trace
	}
	switch {
	case s.traceExporter != nil:
		return tracing.New(trace.Service, trace.Version, s.traceExporter)
	case !trace.Enabled:
		return tracing.Noop(), nil
	case trace.OutputFile != "":
		return tracing.NewFile(trace.Service, trace.Version, trace.OutputFile)
	default:
		return tracing.NewWriter(trace.Service, trace.Version, s.diagnostics)
	}
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.writer == nil {
		s.writer = os.Stdout
	}
	if s.diagnostics == nil {
		s.diagnostics = os.Stderr
	}
	if s.emitter == nil {
		s.emitter = printer.New(printer.WithWriter(s.writer))
	}
	if s.logger == nil {
		s.logger = logging.New(s.diagnostics, s.config.Log.Level, s.config.Log.Format)
	}
}

// New creates an approver service
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	ret.apply(options)
	if err := ret.build(); err != nil {
		return nil, err
	}
	return ret, nil
}

// NewFromURL loads the configuration at URL and creates a service from it.
// The loaded configuration supersedes any WithConfig option.
func NewFromURL(ctx context.Context, URL string, options ...Option) (*Service, error) {
	ret := &Service{}
	ret.apply(options)
	config, err := LoadConfig(ctx, ret.metaService, URL)
	if err != nil {
		return nil, err
	}
	ret.config = config
	if err = ret.build(); err != nil {
		return nil, err
	}
	return ret, nil
}
