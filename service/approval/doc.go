// Package approval implements purchase approval as a chain of responsibility.
//
// A purchase request carries only an amount. It enters the chain at the first
// level and is passed along until a level whose threshold covers the amount
// approves it. An amount above every threshold falls off the end of the chain:
// nothing is emitted and no error is raised.
//
// Two equivalent forms are provided:
//
//   - Node links approvers one to another with SetNext, the classic form:
//
//     manager := approval.NewManager(out)
//     manager.SetNext(approval.NewDirector(out)).SetNext(approval.NewVicePresident(out))
//     _ = manager.Process(ctx, 800)
//
//   - Chain is assembled up front by a Builder into an immutable, ordered
//     sequence of levels and dispatches by index, so it can never hold a
//     cyclic or dangling link. Dispatch also reports the outcome explicitly.
package approval
