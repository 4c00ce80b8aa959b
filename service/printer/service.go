package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/viant/approver/service/approval"
)

const name = "printer"

// Service prints one line per approved purchase request.
type Service struct {
	mu     sync.Mutex
	writer io.Writer
}

// Option configures the printer.
type Option func(s *Service)

// WithWriter redirects output, os.Stdout by default.
func WithWriter(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.writer = w
		}
	}
}

// New creates a printer service
func New(options ...Option) *Service {
	ret := &Service{writer: os.Stdout}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Emit implements approval.Emitter; unhandled decisions print nothing.
func (s *Service) Emit(_ context.Context, d *approval.Decision) error {
	message := d.Message()
	if message == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.writer, message)
	return err
}

var _ approval.Emitter = (*Service)(nil)
