package approval

import (
	"context"
	"fmt"
	"time"
)

// Decision is the outcome of one dispatch.
type Decision struct {
	RequestID string    `json:"requestId,omitempty"`
	Amount    int       `json:"amount"`
	Approver  string    `json:"approver,omitempty"` // empty when unhandled
	Handled   bool      `json:"handled"`
	DecidedAt time.Time `json:"decidedAt"`
}

// Message returns the human-readable approval line, or "" for an unhandled request.
func (d *Decision) Message() string {
	if d == nil || !d.Handled {
		return ""
	}
	return fmt.Sprintf("%s approves the purchase request of %d", d.Approver, d.Amount)
}

// Emitter receives every handled decision.
type Emitter interface {
	Emit(ctx context.Context, d *Decision) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, d *Decision) error

// Emit calls fn(ctx, d).
func (fn EmitterFunc) Emit(ctx context.Context, d *Decision) error {
	return fn(ctx, d)
}
