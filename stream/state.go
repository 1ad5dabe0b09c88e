package stream

import (
	"fmt"

	"github.com/signadot/go-ojai/fieldpath"
)

// Context is the kind of container a frame of State represents.
type Context int

const (
	ContextNone Context = iota
	ContextMap
	ContextArray
)

func (c Context) String() string {
	switch c {
	case ContextNone:
		return "NONE"
	case ContextMap:
		return "MAP"
	case ContextArray:
		return "ARRAY"
	default:
		return fmt.Sprintf("Context(%d)", int(c))
	}
}

// State is the container stack shared by Reader and Builder.
//
// A map frame remembers the field name most recently announced in it; an
// array frame counts the values added to it, starting from -1.
type State struct {
	stack []frame
}

type frame struct {
	ctx    Context
	field  string
	hasKey bool
	index  int
}

func NewState() *State {
	return &State{}
}

// Depth returns the number of open containers.
func (s *State) Depth() int {
	return len(s.stack)
}

// Top returns the context of the innermost open container, ContextNone if
// there is none.
func (s *State) Top() Context {
	if len(s.stack) == 0 {
		return ContextNone
	}
	return s.stack[len(s.stack)-1].ctx
}

func (s *State) current() *frame {
	return &s.stack[len(s.stack)-1]
}

// Push opens a container.
func (s *State) Push(ctx Context) {
	s.stack = append(s.stack, frame{ctx: ctx, index: -1})
}

// Pop closes the innermost container, which must be of kind expected.
func (s *State) Pop(expected Context) error {
	if top := s.Top(); top != expected {
		return &StateError{
			Op:       "pop",
			Expected: expected,
			Actual:   top,
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// SetField records the field name of the next value in the innermost map.
func (s *State) SetField(name string) {
	cur := s.current()
	cur.field = name
	cur.hasKey = true
}

// Advance moves the innermost array to its next index and returns it.
func (s *State) Advance() int {
	cur := s.current()
	cur.index++
	return cur.index
}

// Field returns the last field name of the innermost map.
func (s *State) Field() (string, bool) {
	if s.Top() != ContextMap {
		return "", false
	}
	return s.current().field, true
}

// Index returns the current index of the innermost array.
func (s *State) Index() (int, bool) {
	if s.Top() != ContextArray {
		return -1, false
	}
	return s.current().index, true
}

// Path returns the position of the innermost value: the field or index
// each open container last recorded. A freshly opened container that has
// not yet seen a value contributes nothing.
func (s *State) Path() *fieldpath.FieldPath {
	return s.pathTo(len(s.stack))
}

// pathTo builds the position recorded by the first n frames.
func (s *State) pathTo(n int) *fieldpath.FieldPath {
	var seg *fieldpath.Segment
	for i := n - 1; i >= 0; i-- {
		f := &s.stack[i]
		switch f.ctx {
		case ContextMap:
			if seg == nil && !f.hasKey {
				continue
			}
			seg = fieldpath.NewNameSegment(f.field, seg, false)
		case ContextArray:
			if seg == nil && f.index < 0 {
				continue
			}
			seg = fieldpath.NewIndexSegment(f.index, seg)
		}
	}
	return fieldpath.New(seg)
}
