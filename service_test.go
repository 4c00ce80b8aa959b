package approver

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/approver/progress"
	"github.com/viant/approver/service/approval"
	"github.com/viant/approver/tracing"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Process(t *testing.T) {
	buf := &bytes.Buffer{}
	srv, err := New(WithWriter(buf), WithLogger(quietLogger()))
	assert.NoError(t, err)

	ctx, tally := progress.WithNewTally(context.Background(), nil)
	for _, amount := range []int{800, 4500, 12000} {
		_, err = srv.Process(ctx, amount)
		assert.NoError(t, err)
	}

	assert.Equal(t, "Manager approves the purchase request of 800\n"+
		"Director approves the purchase request of 4500\n", buf.String())
	assert.EqualValues(t, progress.Counts{
		Total:      3,
		Handled:    2,
		Unhandled:  1,
		ByApprover: map[string]int{"Manager": 1, "Director": 1},
	}, tally.Snapshot())
}

func TestService_ProcessDecision(t *testing.T) {
	testCases := []struct {
		description string
		amount      int
		approver    string
		handled     bool
	}{
		{description: "manager", amount: 1000, approver: "Manager", handled: true},
		{description: "director", amount: 1001, approver: "Director", handled: true},
		{description: "vice president", amount: 10000, approver: "Vice President", handled: true},
		{description: "unhandled", amount: 10001},
	}

	buf := &bytes.Buffer{}
	srv, err := New(WithWriter(buf), WithLogger(quietLogger()))
	assert.NoError(t, err)
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			decision, err := srv.Process(context.Background(), testCase.amount)
			assert.NoError(t, err)
			assert.Equal(t, testCase.amount, decision.Amount)
			assert.Equal(t, testCase.approver, decision.Approver)
			assert.Equal(t, testCase.handled, decision.Handled)
			assert.NotEmpty(t, decision.RequestID)
		})
	}
}

func TestService_WithEmitter(t *testing.T) {
	var decisions []*approval.Decision
	emitter := approval.EmitterFunc(func(_ context.Context, d *approval.Decision) error {
		decisions = append(decisions, d)
		return nil
	})
	srv, err := New(WithEmitter(emitter), WithLogger(quietLogger()))
	assert.NoError(t, err)

	_, err = srv.Process(context.Background(), 4500)
	assert.NoError(t, err)
	_, err = srv.Process(context.Background(), 20000)
	assert.NoError(t, err)

	assert.Len(t, decisions, 1)
	assert.Equal(t, "Director", decisions[0].Approver)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(WithConfig(&Config{}), WithLogger(quietLogger()))
	assert.ErrorIs(t, err, approval.ErrEmptyChain)
}

func TestNewFromURL(t *testing.T) {
	dir := t.TempDir()
	URL := filepath.Join(dir, "approver.yaml")
	assert.NoError(t, os.WriteFile(URL, []byte(`chain:
  - name: Team Lead
    threshold: 200
  - role: manager
  - role: director
    threshold: ${env.DIRECTOR_LIMIT}
`), 0o644))
	t.Setenv("DIRECTOR_LIMIT", "7500")

	buf := &bytes.Buffer{}
	srv, err := NewFromURL(context.Background(), URL, WithWriter(buf), WithLogger(quietLogger()))
	assert.NoError(t, err)
	assert.EqualValues(t, []approval.Level{
		{Name: "Team Lead", Threshold: 200},
		{Name: "Manager", Threshold: 1000},
		{Name: "Director", Threshold: 7500},
	}, srv.Chain().Levels())

	for _, amount := range []int{150, 900, 7000, 9000} {
		_, err = srv.Process(context.Background(), amount)
		assert.NoError(t, err)
	}
	assert.Equal(t, "Team Lead approves the purchase request of 150\n"+
		"Manager approves the purchase request of 900\n"+
		"Director approves the purchase request of 7000\n", buf.String())

	_, err = NewFromURL(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestService_Tracing(t *testing.T) {
	t.Run("configured without output file keeps approval output clean", func(t *testing.T) {
		config := DefaultConfig()
		config.Trace.Enabled = true
		out, diagnostics := &bytes.Buffer{}, &bytes.Buffer{}
		srv, err := New(WithConfig(config), WithWriter(out), WithDiagnostics(diagnostics), WithLogger(quietLogger()))
		assert.NoError(t, err)

		_, err = srv.Process(context.Background(), 800)
		assert.NoError(t, err)
		assert.NoError(t, srv.Close(context.Background()))

		assert.Equal(t, "Manager approves the purchase request of 800\n", out.String())
		assert.Contains(t, diagnostics.String(), "approval.process")
	})

	t.Run("custom exporter", func(t *testing.T) {
		exporter := tracetest.NewInMemoryExporter()
		srv, err := New(WithWriter(&bytes.Buffer{}), WithLogger(quietLogger()),
			WithTracingExporter("approver", "test", exporter))
		assert.NoError(t, err)

		_, err = srv.Process(context.Background(), 12000)
		assert.NoError(t, err)
		spans := exporter.GetSpans()
		if assert.Len(t, spans, 1) {
			for _, kv := range spans[0].Attributes {
				switch kv.Key {
				case tracing.AttrAmount:
					assert.Equal(t, int64(12000), kv.Value.AsInt64())
				case tracing.AttrHandled:
					assert.False(t, kv.Value.AsBool())
				case tracing.AttrApprover:
					t.Errorf("unhandled request must not carry an approver")
				}
			}
		}
		assert.NoError(t, srv.Close(context.Background()))
	})

	t.Run("tracing disabled", func(t *testing.T) {
		srv, err := New(WithWriter(&bytes.Buffer{}), WithLogger(quietLogger()))
		assert.NoError(t, err)
		_, err = srv.Process(context.Background(), 1)
		assert.NoError(t, err)
		assert.NoError(t, srv.Close(context.Background()))
	})
}

func TestNewFromURL_Tracing(t *testing.T) {
	dir := t.TempDir()
	traceFile := filepath.Join(dir, "spans.json")

	_, err := NewFromURL(context.Background(), filepath.Join(dir, "missing.yaml"),
		WithTracing("approver", "test", traceFile), WithLogger(quietLogger()))
	assert.Error(t, err)
	_, statErr := os.Stat(traceFile)
	assert.True(t, os.IsNotExist(statErr))

	URL := filepath.Join(dir, "approver.yaml")
	assert.NoError(t, os.WriteFile(URL, []byte("chain:\n  - role: director\n"), 0o644))
	srv, err := NewFromURL(context.Background(), URL,
		WithTracing("approver", "test", traceFile), WithWriter(&bytes.Buffer{}), WithLogger(quietLogger()))
	assert.NoError(t, err)
	_, err = srv.Process(context.Background(), 4500)
	assert.NoError(t, err)
	assert.NoError(t, srv.Close(context.Background()))

	data, err := os.ReadFile(traceFile)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "approval.process")
}
