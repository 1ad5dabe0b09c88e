package projection

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/go-ojai/fieldpath"
	"github.com/signadot/go-ojai/stream"
)

func project(t *testing.T, in string, paths ...string) string {
	t.Helper()
	fps, err := fieldpath.ParseAll(paths...)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := Project(stream.NewBuilder(buf), stream.NewReader(strings.NewReader(in)), fps...); err != nil {
		t.Fatalf("%s %v: %v", in, paths, err)
	}
	return strings.TrimSpace(buf.String())
}

func TestProject(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		paths []string
		want  string
	}{
		{
			name:  "field and whole array",
			in:    `{"a":{"b":1,"c":2},"d":[1,2,3]}`,
			paths: []string{"a.b", "d"},
			want:  `{"a":{"b":1},"d":[1,2,3]}`,
		},
		{
			name:  "missing fields",
			in:    `{"a":1,"b":2}`,
			paths: []string{"a.a1", "b.b1"},
			want:  `{}`,
		},
		{
			name:  "scalar wanted as container",
			in:    `{"c":{"d":3},"e":4}`,
			paths: []string{"c.d.x"},
			want:  `{"c":{}}`,
		},
		{
			name:  "case insensitive",
			in:    `{"Name":{"First":"x","Last":"y"}}`,
			paths: []string{"name.first"},
			want:  `{"Name":{"First":"x"}}`,
		},
		{
			name:  "shorter path wins",
			in:    `{"a":{"b":{"c":1,"d":2}}}`,
			paths: []string{"a.b.c", "a.b"},
			want:  `{"a":{"b":{"c":1,"d":2}}}`,
		},
		{
			name:  "elements of an array of maps",
			in:    `{"a":[{"b":1,"c":2},{"b":3},5],"d":0}`,
			paths: []string{"a[].b"},
			want:  `{"a":[{"b":1},{"b":3}]}`,
		},
		{
			name:  "entire array also wants the map form",
			in:    `{"a":{"b":1,"c":2}}`,
			paths: []string{"a[].b"},
			want:  `{"a":{"b":1}}`,
		},
		{
			name:  "index collapses to all elements",
			in:    `{"q":[[1],[2]],"r":[{},[]]}`,
			paths: []string{"q[0]", "r[1]"},
			want:  `{"q":[[1],[2]],"r":[{},[]]}`,
		},
		{
			name:  "terminal index keeps no map members",
			in:    `{"a":{"x":1},"b":[{"x":1},2]}`,
			paths: []string{"a[]", "b[]"},
			want:  `{"a":{},"b":[{"x":1},2]}`,
		},
		{
			name:  "empty containers",
			in:    `{"o":{},"p":[],"t":{"u":{}},"z":null,"y":1}`,
			paths: []string{"o", "p", "t.u", "z"},
			want:  `{"o":{},"p":[],"t":{"u":{}},"z":null}`,
		},
		{
			name:  "extended scalars",
			in:    `{"a":{"$numberLong":5},"b":{"$dateDay":"2015-01-21"},"c":{"x":{"$decimal":"1.10"}}}`,
			paths: []string{"a", "c.x"},
			want:  `{"a":{"$numberLong":5},"c":{"x":{"$decimal":"1.10"}}}`,
		},
		{
			name:  "nothing wanted",
			in:    `{"a":[1,{"b":2}]}`,
			paths: nil,
			want:  `{}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := project(t, tc.in, tc.paths...); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestProjectWholeDocument(t *testing.T) {
	in := `{"a":[1,{"b":2}],"c":{"$numberInt":3}}`
	buf := &bytes.Buffer{}
	err := Project(stream.NewBuilder(buf), stream.NewReader(strings.NewReader(in)), fieldpath.Empty)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != in {
		t.Errorf("got %s", got)
	}
}

func TestShortCircuitEquivalence(t *testing.T) {
	in := `{"a":{"x":[1,{"y":[2,{"z":3}]}],"w":{"v":[[]]}},"b":4}`
	whole := project(t, in, "a")
	parts := project(t, in, "a.x", "a.w")
	deep := project(t, in, "a.x[].y[].z", "a.x", "a.w.v")
	want := `{"a":{"x":[1,{"y":[2,{"z":3}]}],"w":{"v":[[]]}}}`
	if whole != want {
		t.Errorf("whole: %s", whole)
	}
	if parts != whole || deep != whole {
		t.Errorf("projections differ:\n%s\n%s\n%s", whole, parts, deep)
	}
}

type pos struct {
	inMap bool
	name  string
}

func (p pos) InMap() bool       { return p.inMap }
func (p pos) FieldName() string { return p.name }

func TestProjectorShortCircuit(t *testing.T) {
	p := NewProjector(NewTree(fieldpath.MustParse("a")))
	steps := []struct {
		ev    stream.EventType
		at    pos
		emit  bool
		short bool
	}{
		{stream.EventStartMap, pos{true, "a"}, true, true},
		{stream.EventStartArray, pos{true, "b"}, true, true},
		{stream.EventDouble, pos{}, true, true},
		{stream.EventEndArray, pos{true, "b"}, true, true},
		{stream.EventEndMap, pos{true, "a"}, true, false},
		{stream.EventDouble, pos{true, "c"}, false, false},
		{stream.EventStartMap, pos{true, "A"}, true, true},
		{stream.EventEndMap, pos{true, "A"}, true, false},
	}
	for i, s := range steps {
		p.MoveTo(s.ev, s.at)
		if p.ShouldEmit() != s.emit || p.InShortCircuit() != s.short {
			t.Errorf("step %d %s: emit %t short %t", i, s.ev, p.ShouldEmit(), p.InShortCircuit())
		}
	}
}

func TestTree(t *testing.T) {
	tests := []struct {
		paths []string
		tree  string
		want  []string
	}{
		{
			paths: []string{"a.b", "d"},
			tree:  `{"a":{"b":true},"d":true}`,
			want:  []string{"a.b", "d"},
		},
		{
			paths: []string{"a.b.c", "a.b", "a.b.d"},
			tree:  `{"a":{"b":true}}`,
			want:  []string{"a.b"},
		},
		{
			paths: []string{"a[].b"},
			tree:  `{"a":{"b":true,"[]":{"b":true}}}`,
			want:  []string{"a[].b", "a.b"},
		},
		{
			paths: []string{"a[3].b", "a[1].c"},
			tree:  `{"a":{"[]":{"b":true,"c":true}}}`,
			want:  []string{"a[].b", "a[].c"},
		},
		{
			paths: []string{"X.y", "x.Z"},
			tree:  `{"X":{"y":true,"Z":true}}`,
			want:  []string{"X.y", "X.Z"},
		},
	}
	for _, tc := range tests {
		fps, err := fieldpath.ParseAll(tc.paths...)
		if err != nil {
			t.Fatal(err)
		}
		tree := NewTree(fps...)
		if got := tree.String(); got != tc.tree {
			t.Errorf("%v: tree %s, want %s", tc.paths, got, tc.tree)
		}
		var got []string
		for _, p := range tree.Paths() {
			got = append(got, p.String())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%v: paths (-want +got):\n%s", tc.paths, diff)
		}
	}
}

func TestSharedTree(t *testing.T) {
	tree := NewTree(fieldpath.MustParse("a.b"), fieldpath.MustParse("c"))
	base := NewProjector(tree)
	in := `{"a":{"b":[1,2],"x":3},"c":{"d":{"e":4}},"f":5}`
	want := `{"a":{"b":[1,2]},"c":{"d":{"e":4}}}`

	var wg sync.WaitGroup
	res := make([]string, 8)
	for i := range res {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := base.CloneWithSharedTree()
			buf := &bytes.Buffer{}
			r := NewReader(stream.NewReader(strings.NewReader(in)), p)
			if err := stream.Copy(stream.NewBuilder(buf), r); err != nil {
				res[i] = err.Error()
				return
			}
			res[i] = strings.TrimSpace(buf.String())
		}()
	}
	wg.Wait()
	for i, got := range res {
		if got != want {
			t.Errorf("reader %d: %s", i, got)
		}
	}
}

func TestReaderPositions(t *testing.T) {
	tree := NewTree(fieldpath.MustParse("b[].c"))
	r := NewReader(stream.NewReader(strings.NewReader(`{"a":1,"b":[{"c":2,"d":3}]}`)), NewProjector(tree))
	var got []string
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, ev.String()+" "+r.Path().String())
	}
	want := []string{
		"START_MAP ",
		"START_ARRAY b",
		"START_MAP b[0]",
		"DOUBLE b[0].c",
		"END_MAP b[0]",
		"END_ARRAY b",
		"END_MAP ",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
