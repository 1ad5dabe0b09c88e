package fieldpath

import (
	"errors"
	"slices"
	"testing"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		len   int
	}{
		{name: "single", input: "a", want: "a", len: 1},
		{name: "nested", input: "a.b.c", want: "a.b.c", len: 3},
		{name: "index", input: "a[0].b", want: "a[0].b", len: 3},
		{name: "unspecified index", input: "a[]", want: "a[]", len: 2},
		{name: "blank index", input: "a[ ]", want: "a[]", len: 2},
		{name: "padded index", input: "a[ 3 ]", want: "a[3]", len: 2},
		{name: "nested index", input: "a[1][2]", want: "a[1][2]", len: 3},
		{name: "backtick", input: "`a.b`.c", want: "`a.b`.c", len: 2},
		{name: "double quote", input: `"a.b".c`, want: "`a.b`.c", len: 2},
		{name: "escaped dot", input: `a\.b`, want: "`a.b`", len: 1},
		{name: "space", input: "test path", want: "`test path`", len: 1},
		{name: "hyphen", input: "a-b.c", want: "`a-b`.c", len: 2},
		{name: "unicode escape", input: `x.\u0041`, want: "x.A", len: 2},
		{name: "escaped backtick", input: "`a\\`b`", want: "`a\\`b`", len: 1},
		{name: "leading index", input: "[0].a", want: "[0].a", len: 2},
		{name: "leading unspecified index", input: "[][2]", want: "[][2]", len: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
			if got := p.Len(); got != tt.len {
				t.Errorf("Parse(%q).Len() = %d, want %d", tt.input, got, tt.len)
			}
			back, err := Parse(p.String())
			if err != nil {
				t.Fatalf("re-parse %q: %v", p.String(), err)
			}
			if !back.Equal(p) {
				t.Errorf("%q did not survive printing as %q", tt.input, p.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		column int
		token  string
	}{
		{input: "", column: 1, token: "<EOF>"},
		{input: "a..b", column: 3, token: "'.'"},
		{input: "a.", column: 3, token: "<EOF>"},
		{input: "[x]", column: 2, token: "'x'"},
		{input: ".a", column: 1, token: "'.'"},
		{input: "a[x]", column: 3, token: "'x'"},
		{input: "a[1", column: 4, token: "<EOF>"},
		{input: "a]", column: 2, token: "']'"},
		{input: "`abc", column: 1, token: "'`'"},
		{input: `a\q`, column: 2, token: `'\\'`},
		{input: "a`b`", column: 2, token: "'`'"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.input)
		if err == nil {
			t.Errorf("Parse(%q): expected error", tt.input)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q): error %v is not ErrSyntax", tt.input, err)
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("Parse(%q): error %T is not a *SyntaxError", tt.input, err)
		}
		if se.Line != 1 || se.Column != tt.column || se.Token != tt.token {
			t.Errorf("Parse(%q): got %d:%d %s, want 1:%d %s", tt.input, se.Line, se.Column, se.Token, tt.column, tt.token)
		}
	}
}

func TestParseCached(t *testing.T) {
	a := MustParse("cached.path[1]")
	b := MustParse("cached.path[1]")
	if a != b {
		t.Errorf("expected identical pointers for identical literals")
	}
}

func TestCaseInsensitiveEquality(t *testing.T) {
	a := MustParse("A.b[2].Cee")
	b := MustParse("a.B[2].cee")
	if !a.Equal(b) {
		t.Errorf("expected %s == %s", a, b)
	}
	if a.Hash() != b.Hash() {
		t.Errorf("equal paths hash differently: %x %x", a.Hash(), b.Hash())
	}
	if a.Key() != b.Key() {
		t.Errorf("equal paths have different keys: %q %q", a.Key(), b.Key())
	}
	if a.Compare(b) != 0 {
		t.Errorf("equal paths compare %d", a.Compare(b))
	}
	if a.Equal(MustParse("a.b[3].cee")) {
		t.Errorf("paths with different indexes compare equal")
	}
}

func TestCompare(t *testing.T) {
	in := []string{"a.c", "a.b", "a[0]", "a", "b", "a.b.c", "a[1]"}
	want := []string{"a", "a[0]", "a[1]", "a.b", "a.b.c", "a.c", "b"}
	paths, err := ParseAll(in...)
	if err != nil {
		t.Fatal(err)
	}
	slices.SortFunc(paths, (*FieldPath).Compare)
	got := make([]string, len(paths))
	for i, p := range paths {
		got[i] = p.String()
	}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"a.b", "a.b.c", true},
		{"a.b.c", "a.b", true},
		{"a.b", "a.c", false},
		{"a[1].x", "a[2].y", true},
		{"a.b", "a.b", true},
		{"x", "y", false},
	}
	for _, tt := range tests {
		if got := MustParse(tt.a).Contains(MustParse(tt.b)); got != tt.want {
			t.Errorf("%s contains %s: got %v", tt.a, tt.b, got)
		}
	}
}

func TestRelatives(t *testing.T) {
	p := MustParse("a.b[2]")
	if got := p.Parent().String(); got != "a.b" {
		t.Errorf("parent: got %q", got)
	}
	if got := MustParse("a").Parent(); got != Empty {
		t.Errorf("parent of single segment: got %q", got)
	}
	if got := Empty.Child("x").ChildIndex(3).Child("y").String(); got != "x[3].y" {
		t.Errorf("children: got %q", got)
	}
	if got := MustParse("c").WithParent(MustParse("a.b")).String(); got != "a.b.c" {
		t.Errorf("with parent: got %q", got)
	}
	if got := p.Last(); got.Index() != 2 {
		t.Errorf("last: got %v", got)
	}
	if p.String() != "a.b[2]" {
		t.Errorf("path was mutated: %q", p)
	}
}

func TestAfterAncestor(t *testing.T) {
	p := MustParse("a.b.c")
	rest, ok := p.AfterAncestor(MustParse("A"))
	if !ok || rest.String() != "b.c" {
		t.Errorf("after a: got %v %v", rest, ok)
	}
	if _, ok := p.AfterAncestor(MustParse("x")); ok {
		t.Errorf("x is not an ancestor of %s", p)
	}
	if rest, ok := p.AfterAncestor(p); !ok || rest != Empty {
		t.Errorf("after self: got %v %v", rest, ok)
	}
	if rest, ok := MustParse("a.b[1].c").AfterAncestor(MustParse("a.b")); !ok || rest.String() != "[1].c" {
		t.Errorf("after a.b: got %v %v", rest, ok)
	}
	seg := MustParse("a.b[1]").SegmentAfterAncestor(MustParse("a.b"))
	if seg == nil || seg.Index() != 1 {
		t.Errorf("segment after ancestor: got %v", seg)
	}
}

func TestAtOrBelow(t *testing.T) {
	ab := MustParse("a.b")
	abc := MustParse("a.b.c")
	if !abc.IsAtOrBelow(ab) || !ab.IsAtOrBelow(ab) {
		t.Errorf("expected a.b.c and a.b at or below a.b")
	}
	if ab.IsAtOrBelow(abc) {
		t.Errorf("a.b is not below a.b.c")
	}
	if !ab.IsAtOrAbove(abc) || abc.IsAtOrAbove(ab) {
		t.Errorf("unexpected at or above")
	}
	if !ab.IsAtOrBelow(Empty) {
		t.Errorf("every path is below the empty path")
	}
}

func TestSegments(t *testing.T) {
	p := MustParse("a[0].b")
	var kinds []bool
	for seg := range p.Segments() {
		kinds = append(kinds, seg.IsNamed())
	}
	if !slices.Equal(kinds, []bool{true, false, true}) {
		t.Errorf("got %v", kinds)
	}
	root := p.Root()
	if !root.IsArray() || root.Child().IsArray() || !root.Child().IsMap() || !root.Child().Child().IsLeaf() {
		t.Errorf("unexpected segment shapes for %s", p)
	}
}

func TestTextAndJSON(t *testing.T) {
	p := MustParse("a.`b c`[4]")
	d, err := p.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var back FieldPath
	if err := back.UnmarshalText(d); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(p) {
		t.Errorf("expected %s, got %s", p, &back)
	}
	if got := MustParse("a.b").JSONString(); got != `"a.b"` {
		t.Errorf("json string: got %s", got)
	}
	if got := p.PathString(true); got != "`a`.`b c`[4]" {
		t.Errorf("quote all: got %s", got)
	}
}

func TestBuiltPathRoundTrip(t *testing.T) {
	name := func(n string, child *Segment) *Segment { return NewNameSegment(n, child, false) }
	index := func(i int, child *Segment) *Segment { return NewIndexSegment(i, child) }
	tests := []struct {
		name string
		root *Segment
	}{
		{name: "names", root: name("a", name("b", nil))},
		{name: "leading index", root: index(0, name("a", nil))},
		{name: "only indexes", root: index(-1, index(7, nil))},
		{name: "index between names", root: name("a", index(3, name("b", nil)))},
		{name: "quoted flag", root: NewNameSegment("plain", name("x", nil), true)},
		{name: "control characters", root: name("a\tb\n", nil)},
		{name: "quotes and backslash", root: name("`q\"\\", index(1, nil))},
		{name: "empty name", root: name("", name("", nil))},
		{name: "invalid utf8", root: name("a\xffb", nil)},
		{name: "punctuation", root: name("a.b[c]-d/e f", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.root)
			for _, quoteAll := range []bool{true, false} {
				text := p.PathString(quoteAll)
				back, err := Parse(text)
				if err != nil {
					t.Fatalf("Parse(%q): %v", text, err)
				}
				if !back.Equal(p) {
					t.Errorf("%q parsed back as %q", text, back.PathString(true))
				}
			}
		})
	}
	if got := Empty.ChildIndex(0).Child("a").PathString(true); got != "[0].`a`" {
		t.Errorf("got %s", got)
	}
}

func TestSegmentClone(t *testing.T) {
	orig := MustParse("a[2].`b c`[].d").Root()
	clone := orig.Clone()
	if !clone.Equal(orig) || clone.Compare(orig) != 0 {
		t.Fatalf("clone %s differs from %s", clone, orig)
	}
	for s, c := orig, clone; s != nil; s, c = s.Child(), c.Child() {
		if s == c {
			t.Errorf("clone shares segment %s", s)
		}
		if c == nil {
			t.Fatalf("clone is shorter than %s", orig)
		}
		if s.IsQuoted() != c.IsQuoted() || s.Index() != c.Index() {
			t.Errorf("segment %s not copied exactly", s)
		}
	}
	var nilSeg *Segment
	if nilSeg.Clone() != nil {
		t.Errorf("clone of nil")
	}
}
