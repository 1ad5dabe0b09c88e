package fieldpath

import (
	"iter"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// FieldPath is an immutable chain of segments. The zero length path is
// Empty.
type FieldPath struct {
	root *Segment
}

// Empty is the path with no segments, addressing the document itself.
var Empty = &FieldPath{}

// New returns the path starting at root. A nil root gives Empty.
func New(root *Segment) *FieldPath {
	if root == nil {
		return Empty
	}
	return &FieldPath{root: root}
}

// Parse parses text into a FieldPath. Results are cached by text: parsing
// the same literal again returns the same pointer while it stays cached.
func Parse(text string) (*FieldPath, error) {
	if p, ok := cache.Get(text); ok {
		return p, nil
	}
	root, err := parseSegments(text)
	if err != nil {
		return nil, err
	}
	p := &FieldPath{root: root}
	if prev, ok, _ := cache.PeekOrAdd(text, p); ok {
		return prev, nil
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *FieldPath {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseAll parses each text, stopping at the first error.
func ParseAll(texts ...string) ([]*FieldPath, error) {
	res := make([]*FieldPath, 0, len(texts))
	for _, text := range texts {
		p, err := Parse(text)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

// Root returns the first segment, nil for Empty.
func (p *FieldPath) Root() *Segment { return p.root }

func (p *FieldPath) IsEmpty() bool { return p.root == nil }

// Len returns the number of segments.
func (p *FieldPath) Len() int {
	n := 0
	for s := p.root; s != nil; s = s.child {
		n++
	}
	return n
}

// Segments iterates over the segments from root to leaf.
func (p *FieldPath) Segments() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		for s := p.root; s != nil; s = s.child {
			if !yield(s) {
				return
			}
		}
	}
}

// Last returns the leaf segment, nil for Empty.
func (p *FieldPath) Last() *Segment {
	s := p.root
	for s != nil && s.child != nil {
		s = s.child
	}
	return s
}

func (p *FieldPath) Child(name string) *FieldPath {
	return p.ChildSegment(NewNameSegment(name, nil, false))
}

func (p *FieldPath) ChildIndex(index int) *FieldPath {
	return p.ChildSegment(NewIndexSegment(index, nil))
}

// ChildSegment returns p extended by the chain starting at seg.
func (p *FieldPath) ChildSegment(seg *Segment) *FieldPath {
	return New(p.root.CloneWithNewChild(seg))
}

// WithParent returns parent followed by p.
func (p *FieldPath) WithParent(parent *FieldPath) *FieldPath {
	return New(parent.root.CloneWithNewChild(p.root))
}

// Parent returns p without its last segment. The parent of a single
// segment path, and of Empty, is Empty.
func (p *FieldPath) Parent() *FieldPath {
	if p.root == nil || p.root.child == nil {
		return Empty
	}
	var specs []*Segment
	for s := p.root; s.child != nil; s = s.child {
		specs = append(specs, s)
	}
	var seg *Segment
	for i := len(specs) - 1; i >= 0; i-- {
		seg = specs[i].rebuild(seg)
	}
	return New(seg)
}

// AfterAncestor returns the part of p below ancestor. ok is false when
// ancestor is not a prefix of p.
func (p *FieldPath) AfterAncestor(ancestor *FieldPath) (rest *FieldPath, ok bool) {
	s, a := p.root, ancestor.root
	for ; a != nil; s, a = s.child, a.child {
		if s == nil || !s.segmentEqual(a) {
			return nil, false
		}
	}
	return New(s), true
}

// SegmentAfterAncestor returns the first segment of p below ancestor, or
// nil when there is none.
func (p *FieldPath) SegmentAfterAncestor(ancestor *FieldPath) *Segment {
	s, a := p.root, ancestor.root
	for ; a != nil; s, a = s.child, a.child {
		if s == nil || !s.segmentEqual(a) {
			return nil
		}
	}
	return s
}

// IsAtOrBelow reports whether p equals o or is a descendant of it.
func (p *FieldPath) IsAtOrBelow(o *FieldPath) bool {
	return p.hasPrefix(o)
}

// IsAtOrAbove reports whether p equals o or is an ancestor of it.
func (p *FieldPath) IsAtOrAbove(o *FieldPath) bool {
	return o.IsAtOrBelow(p)
}

func (p *FieldPath) hasPrefix(o *FieldPath) bool {
	s, a := p.root, o.root
	for ; a != nil; s, a = s.child, a.child {
		if s == nil || !s.segmentEqual(a) {
			return false
		}
	}
	return true
}

// Contains reports whether one of p and o is a prefix of the other,
// treating index segments as wildcards.
func (p *FieldPath) Contains(o *FieldPath) bool {
	return p.root.Contains(o.root)
}

func (p *FieldPath) Equal(o *FieldPath) bool {
	if p == o {
		return true
	}
	if o == nil {
		return false
	}
	return p.root.Equal(o.root)
}

func (p *FieldPath) Compare(o *FieldPath) int {
	return p.root.Compare(o.root)
}

func (p *FieldPath) Hash() uint64 {
	return p.root.Hash()
}

// Key returns a string which is equal for two paths exactly when the paths
// are Equal, suitable as a map key.
func (p *FieldPath) Key() string {
	var sb strings.Builder
	for s := p.root; s != nil; s = s.child {
		if !s.named {
			s.writeSegment(&sb, false)
			continue
		}
		if s != p.root {
			sb.WriteByte('.')
		}
		sb.WriteByte('`')
		escapeName(&sb, strings.ToLower(s.name))
		sb.WriteByte('`')
	}
	return sb.String()
}

func (p *FieldPath) String() string {
	return p.root.PathString(false)
}

func (p *FieldPath) PathString(quoteAll bool) string {
	return p.root.PathString(quoteAll)
}

// JSONString returns String as a quoted JSON string.
func (p *FieldPath) JSONString() string {
	// invalid UTF-8 is replaced by U+FFFD; the error only reports it
	d, _ := jsontext.AppendQuote(nil, p.String())
	return string(d)
}

func (p *FieldPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *FieldPath) UnmarshalText(d []byte) error {
	q, err := Parse(string(d))
	if err != nil {
		return err
	}
	*p = *q
	return nil
}
