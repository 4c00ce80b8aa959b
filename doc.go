// Package approver routes purchase requests through a chain of approval
// authorities.
//
// Each authority has an inclusive spending threshold. A request is passed
// along the chain until an authority whose threshold covers the amount
// approves it; an amount above every threshold is left unhandled and produces
// no output. The default chain is:
//
//   - Manager: up to 1000
//   - Director: up to 5000
//   - Vice President: up to 10000
//
// Typical use:
//
//	srv, _ := approver.New()
//	decision, _ := srv.Process(ctx, 4500) // prints "Director approves the purchase request of 4500"
//
// The chain can be configured from YAML located on any storage supported by
// viant/afs, see NewFromURL. The underlying mechanism lives in service/approval.
package approver
