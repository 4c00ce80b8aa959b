package tracing

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/viant/approver/service/approval"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	tracerName   = "github.com/viant/approver"
	dispatchSpan = "approval.process"

	AttrRequestID = "purchase.request_id"
	AttrAmount    = "purchase.amount"
	AttrApprover  = "purchase.approver"
	AttrHandled   = "purchase.handled"
)

// Tracer starts dispatch spans.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	closer   io.Closer
}

// Noop returns a tracer that records nothing.
func Noop() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer(tracerName)}
}

// New creates a tracer exporting synchronously to exporter.
func New(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (*Tracer, error) {
	if exporter == nil {
		return Noop(), nil
	}
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	return &Tracer{tracer: provider.Tracer(tracerName), provider: provider}, nil
}

// NewWriter creates a tracer printing spans as JSON to w.
func NewWriter(serviceName, serviceVersion string, w io.Writer) (*Tracer, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}
	return New(serviceName, serviceVersion, exporter)
}

// NewFile creates a tracer writing spans to outputFile. The file is closed by Shutdown.
func NewFile(serviceName, serviceVersion, outputFile string) (*Tracer, error) {
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, err
	}
	ret, err := NewWriter(serviceName, serviceVersion, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	ret.closer = f
	return ret, nil
}

// StartDispatch starts the span covering one dispatch of amount.
func (t *Tracer) StartDispatch(ctx context.Context, amount int) (context.Context, *DispatchSpan) {
	ctx, span := t.tracer.Start(ctx, dispatchSpan,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int(AttrAmount, amount)))
	return ctx, &DispatchSpan{span: span}
}

// Shutdown flushes the provider and closes the output file, if any.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.provider != nil {
		errs = append(errs, t.provider.Shutdown(ctx))
		t.provider = nil
	}
	if t.closer != nil {
		errs = append(errs, t.closer.Close())
		t.closer = nil
	}
	return errors.Join(errs...)
}

// DispatchSpan is an in-flight dispatch span.
type DispatchSpan struct {
	span trace.Span
}

// End records the decision and err, then ends the span. The approver is
// omitted for an unhandled request.
func (s *DispatchSpan) End(decision *approval.Decision, err error) {
	if s == nil {
		return
	}
	if decision != nil {
		s.span.SetAttributes(
			attribute.String(AttrRequestID, decision.RequestID),
			attribute.Bool(AttrHandled, decision.Handled),
		)
		if decision.Handled {
			s.span.SetAttributes(attribute.String(AttrApprover, decision.Approver))
		}
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
