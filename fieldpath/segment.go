package fieldpath

import (
	"cmp"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Segment is one step of a FieldPath: either a field name or an array
// index. Segments are immutable and form a forward-only chain through
// Child.
type Segment struct {
	name   string
	index  int
	named  bool
	quoted bool
	child  *Segment
	hash   uint64
}

// NewNameSegment returns a name segment followed by child. quoted only
// affects printing.
func NewNameSegment(name string, child *Segment, quoted bool) *Segment {
	s := &Segment{name: name, named: true, quoted: quoted, child: child}
	s.hash = s.computeHash()
	return s
}

// NewIndexSegment returns an index segment followed by child. An index of
// -1 is the unspecified index "[]".
func NewIndexSegment(index int, child *Segment) *Segment {
	if index < -1 {
		panic(fmt.Sprintf("fieldpath: invalid array index %d", index))
	}
	s := &Segment{index: index, child: child}
	s.hash = s.computeHash()
	return s
}

func (s *Segment) IsNamed() bool   { return s.named }
func (s *Segment) IsIndexed() bool { return !s.named }

// Name returns the unescaped field name of a name segment.
func (s *Segment) Name() string { return s.name }

// Index returns the array index of an index segment, -1 if unspecified.
func (s *Segment) Index() int {
	if s.named {
		return -1
	}
	return s.index
}

// HasIndex reports whether an index segment carries a concrete index.
func (s *Segment) HasIndex() bool { return !s.named && s.index >= 0 }

func (s *Segment) IsQuoted() bool { return s.quoted }

// Child returns the next segment or nil for the last one.
func (s *Segment) Child() *Segment { return s.child }

// IsLeaf reports whether s is the last segment of its chain.
func (s *Segment) IsLeaf() bool { return s.child == nil }

// IsMap reports whether s is followed by a name segment.
func (s *Segment) IsMap() bool { return s.child != nil && s.child.named }

// IsArray reports whether s is followed by an index segment.
func (s *Segment) IsArray() bool { return s.child != nil && !s.child.named }

func (s *Segment) segmentHash() uint64 {
	h := fnv.New64a()
	if s.named {
		h.Write([]byte{'n'})
		h.Write([]byte(strings.ToLower(s.name)))
	} else {
		h.Write([]byte{'i'})
		h.Write(strconv.AppendInt(nil, int64(s.index), 10))
	}
	return h.Sum64()
}

func (s *Segment) computeHash() uint64 {
	h := s.segmentHash()
	if s.child != nil {
		h = h*31 + s.child.hash
	}
	return h
}

// Hash returns a hash of the chain starting at s, consistent with Equal.
func (s *Segment) Hash() uint64 {
	if s == nil {
		return 0
	}
	return s.hash
}

func (s *Segment) segmentEqual(o *Segment) bool {
	if s == o {
		return true
	}
	if o == nil || s.named != o.named {
		return false
	}
	if s.named {
		return strings.ToLower(s.name) == strings.ToLower(o.name)
	}
	return s.index == o.index
}

// segmentCompare orders index segments before name segments.
func (s *Segment) segmentCompare(o *Segment) int {
	switch {
	case s.named && o.named:
		return strings.Compare(strings.ToLower(s.name), strings.ToLower(o.name))
	case !s.named && !o.named:
		return cmp.Compare(s.index, o.index)
	case s.named:
		return 1
	default:
		return -1
	}
}

// Equal reports whether the chains starting at s and o are structurally
// equal.
func (s *Segment) Equal(o *Segment) bool {
	for s != nil && o != nil {
		if s == o {
			return true
		}
		if s.hash != o.hash || !s.segmentEqual(o) {
			return false
		}
		s, o = s.child, o.child
	}
	return s == nil && o == nil
}

// Compare orders chains segment by segment; a chain sorts before any chain
// it is a proper prefix of.
func (s *Segment) Compare(o *Segment) int {
	for {
		switch {
		case s == nil && o == nil:
			return 0
		case s == nil:
			return -1
		case o == nil:
			return 1
		}
		if c := s.segmentCompare(o); c != 0 {
			return c
		}
		s, o = s.child, o.child
	}
}

// Contains reports whether one of the chains s and o is a prefix of the
// other. Any index segment met on either side makes the answer true: array
// positions are not compared.
func (s *Segment) Contains(o *Segment) bool {
	for {
		if s == o || s == nil || o == nil {
			return true
		}
		if s.IsIndexed() || o.IsIndexed() {
			return true
		}
		if !s.segmentEqual(o) {
			return false
		}
		if s.child == nil || o.child == nil {
			return true
		}
		s, o = s.child, o.child
	}
}

// Clone deep copies the chain starting at s.
func (s *Segment) Clone() *Segment {
	if s == nil {
		return nil
	}
	return s.rebuild(s.child.Clone())
}

// CloneWithNewChild copies the chain starting at s and appends c after its
// last segment.
func (s *Segment) CloneWithNewChild(c *Segment) *Segment {
	if s == nil {
		return c
	}
	if s.child == nil {
		return s.rebuild(c)
	}
	return s.rebuild(s.child.CloneWithNewChild(c))
}

func (s *Segment) rebuild(child *Segment) *Segment {
	if s.named {
		return NewNameSegment(s.name, child, s.quoted)
	}
	return NewIndexSegment(s.index, child)
}

// PathString prints the chain starting at s. With quoteAll every name is
// back-tick quoted; otherwise only names that need it are.
func (s *Segment) PathString(quoteAll bool) string {
	var sb strings.Builder
	for seg := s; seg != nil; seg = seg.child {
		if seg.named && seg != s {
			sb.WriteByte('.')
		}
		seg.writeSegment(&sb, quoteAll)
	}
	return sb.String()
}

func (s *Segment) String() string {
	return s.PathString(false)
}

func (s *Segment) writeSegment(sb *strings.Builder, quoteAll bool) {
	if !s.named {
		sb.WriteByte('[')
		if s.index >= 0 {
			sb.WriteString(strconv.Itoa(s.index))
		}
		sb.WriteByte(']')
		return
	}
	if !quoteAll && !s.quoted && !NeedsQuote(s.name) {
		sb.WriteString(s.name)
		return
	}
	sb.WriteByte('`')
	escapeName(sb, s.name)
	sb.WriteByte('`')
}

// NeedsQuote reports whether a field name must be quoted to be parsed back.
func NeedsQuote(name string) bool {
	if name == "" {
		return true
	}
	for _, r := range name {
		switch r {
		case '.', '[', ']', '`', '"', '\\', '-', '/', ' ':
			return true
		}
		if r < ' ' || r == 0x7f || r == utf8.RuneError {
			return true
		}
	}
	return false
}

func escapeName(sb *strings.Builder, name string) {
	for _, r := range name {
		switch r {
		case '`', '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < ' ' || r == 0x7f {
				fmt.Fprintf(sb, `\u%04X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
}
