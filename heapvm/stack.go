package heapvm

import "github.com/pkg/errors"

// DefaultStackSize is the byte budget for locals and parameters when no
// Option overrides it.
const DefaultStackSize = 4096

// Option configures a Stack at construction time via the functional
// options pattern, so an embedding host can override the stack size
// without changing NewStack's signature.
type Option func(*Stack)

// WithStackSize overrides the byte budget for the process-global stack
// block.
func WithStackSize(size int) Option {
	return func(s *Stack) { s.budget = size }
}

// Stack is the single preallocated byte region used for every local
// variable and parameter in the call chain. It is represented as a Block
// with Used permanently true so the collector never reclaims it, and it
// is never linked onto the Heap's own block list.
type Stack struct {
	Block  *Block
	budget int
}

// NewStack allocates a stack of DefaultStackSize bytes, or as overridden
// by opts.
func NewStack(opts ...Option) *Stack {
	s := &Stack{budget: DefaultStackSize}
	for _, opt := range opts {
		opt(s)
	}
	s.Block = NewBlock(s.budget)
	s.Block.Used = true
	return s
}

// Budget returns the stack's byte capacity.
func (s *Stack) Budget() int { return s.budget }

// ErrStackOverflow is returned by CheckFits when a declaration would grow
// past the stack's byte budget.
var ErrStackOverflow = errors.New("stack overflow: out of memory")

// CheckFits reports ErrStackOverflow if offset+size would exceed the
// stack's budget.
func (s *Stack) CheckFits(offset, size int) error {
	if offset+size > s.budget {
		return ErrStackOverflow
	}
	return nil
}
