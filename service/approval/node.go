package approval

import (
	"context"

	"github.com/viant/approver/internal/clock"
)

// Approver is a single link in an approval chain.
type Approver interface {
	// SetNext stores next as the successor and returns next, so links can be
	// chained: a.SetNext(b).SetNext(c).
	SetNext(next Approver) Approver

	// Process approves amount or forwards it unchanged to the successor. A
	// request that no link covers produces nothing.
	Process(ctx context.Context, amount int) error
}

// Node is the configurable Approver; the built-in roles differ only by Level.
type Node struct {
	level   Level
	next    Approver
	emitter Emitter
}

// NewNode creates a chain terminus for level that reports approvals to emitter.
func NewNode(level Level, emitter Emitter) *Node {
	return &Node{level: level, emitter: emitter}
}

// NewManager creates a node approving up to 1000.
func NewManager(emitter Emitter) *Node { return NewNode(Manager.Level(), emitter) }

// NewDirector creates a node approving up to 5000.
func NewDirector(emitter Emitter) *Node { return NewNode(Director.Level(), emitter) }

// NewVicePresident creates a node approving up to 10000.
func NewVicePresident(emitter Emitter) *Node { return NewNode(VicePresident.Level(), emitter) }

// Level returns the node level.
func (n *Node) Level() Level { return n.level }

// Next returns the successor or nil for a chain terminus.
func (n *Node) Next() Approver { return n.next }

// SetNext implements Approver.
func (n *Node) SetNext(next Approver) Approver {
	n.next = next
	return next
}

// Process implements Approver. The only error is an emitter failure.
func (n *Node) Process(ctx context.Context, amount int) error {
	if n.level.Covers(amount) {
		if n.emitter == nil {
			return nil
		}
		return n.emitter.Emit(ctx, &Decision{
			Amount:    amount,
			Approver:  n.level.Name,
			Handled:   true,
			DecidedAt: clock.Now(),
		})
	}
	if n.next != nil {
		return n.next.Process(ctx, amount)
	}
	return nil
}

var _ Approver = (*Node)(nil)
