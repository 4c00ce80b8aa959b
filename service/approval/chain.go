package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/approver/internal/clock"
	"github.com/viant/approver/internal/idgen"
)

// Builder assembles the ordered levels of a Chain.
type Builder struct {
	levels  []Level
	emitter Emitter
	logger  *slog.Logger
	errs    []error
}

// NewBuilder creates a builder whose chain reports approvals to emitter.
func NewBuilder(emitter Emitter) *Builder {
	return &Builder{emitter: emitter}
}

// WithLogger sets the logger used to trace forwarding at debug level.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Add appends levels in escalation order.
func (b *Builder) Add(levels ...Level) *Builder {
	for _, level := range levels {
		position := len(b.levels)
		if level.Name == "" {
			b.errs = append(b.errs, fmt.Errorf("%w: level #%d has no name", ErrInvalidLevel, position))
		}
		if level.Threshold <= 0 {
			b.errs = append(b.errs, fmt.Errorf("%w: level %q threshold %d must be > 0", ErrInvalidThreshold, level.Name, level.Threshold))
		}
		b.levels = append(b.levels, level)
	}
	return b
}

// AddRoles appends the levels of the supplied roles.
func (b *Builder) AddRoles(roles ...Role) *Builder {
	for _, role := range roles {
		b.Add(role.Level())
	}
	return b
}

// Build validates the collected levels and returns an immutable chain.
func (b *Builder) Build() (*Chain, error) {
	errs := b.errs
	if len(b.levels) == 0 {
		errs = append(errs, ErrEmptyChain)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{
		levels:  append([]Level(nil), b.levels...),
		emitter: b.emitter,
		logger:  logger,
	}, nil
}

// Chain is a fixed sequence of approval levels.
type Chain struct {
	levels  []Level
	emitter Emitter
	logger  *slog.Logger
}

// Levels returns a copy of the chain levels in escalation order.
func (c *Chain) Levels() []Level {
	return append([]Level(nil), c.levels...)
}

// Dispatch passes amount along the chain. The first level covering it approves
// and the decision is emitted. When no level covers the amount the returned
// decision has Handled == false and nothing is emitted.
func (c *Chain) Dispatch(ctx context.Context, amount int) (*Decision, error) {
	decision := &Decision{RequestID: idgen.New(), Amount: amount}
	for i, level := range c.levels {
		if !level.Covers(amount) {
			c.logger.DebugContext(ctx, "forwarding purchase request",
				"request_id", decision.RequestID, "amount", amount, "from", level.Name, "position", i)
			continue
		}
		decision.Approver = level.Name
		decision.Handled = true
		decision.DecidedAt = clock.Now()
		if c.emitter == nil {
			return decision, nil
		}
		if err := c.emitter.Emit(ctx, decision); err != nil {
			return decision, fmt.Errorf("failed to emit decision %s: %w", decision.RequestID, err)
		}
		return decision, nil
	}
	decision.DecidedAt = clock.Now()
	c.logger.DebugContext(ctx, "purchase request left unhandled",
		"request_id", decision.RequestID, "amount", amount)
	return decision, nil
}

// Link materialises the chain as linked nodes joined with SetNext and returns the head.
func (c *Chain) Link() Approver {
	var head, tail Approver
	for _, level := range c.levels {
		node := NewNode(level, c.emitter)
		if head == nil {
			head, tail = node, node
			continue
		}
		tail = tail.SetNext(node)
	}
	return head
}
