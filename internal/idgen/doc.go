// Package idgen hands out request identifiers. It is internal so that callers
// treat identifiers as opaque strings and tests can stub the generator.
package idgen
