package idgen

import "github.com/google/uuid"

// NewFunc generates a request identifier; override it in tests for stable IDs.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new request identifier.
func New() string { return NewFunc() }
