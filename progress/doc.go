// Package progress keeps running counters of dispatched purchase requests so a
// caller can report how many were approved, by whom, and how many fell off the
// end of the chain.
package progress
