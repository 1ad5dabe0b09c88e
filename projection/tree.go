package projection

import (
	"slices"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/signadot/go-ojai/fieldpath"
)

// anyElement is the key of the child standing for every element of an
// array. Concrete indexes in wanted paths collapse onto it.
const anyElement = "[]"

const (
	rootNode = 0
	noNode   = -1
)

// Tree is the union of a set of wanted field paths, one node per distinct
// step. Nodes live in a slice and refer to each other by index. A Tree is
// not modified after NewTree returns and may be shared between goroutines.
type Tree struct {
	nodes []node
}

type node struct {
	name     string // as first added; "" for the root and array steps
	parent   int
	children map[string]int
	// everything below is wanted
	leaf bool
}

// NewTree builds the tree for paths. An empty path wants the whole
// document.
func NewTree(paths ...*fieldpath.FieldPath) *Tree {
	t := &Tree{nodes: []node{{parent: noNode}}}
	for _, p := range paths {
		if p.IsEmpty() {
			t.nodes[rootNode].leaf = true
			t.nodes[rootNode].children = nil
			continue
		}
		if t.nodes[rootNode].leaf {
			continue
		}
		t.add(rootNode, p.Root())
	}
	return t
}

func segKey(seg *fieldpath.Segment) string {
	if seg.IsIndexed() {
		return anyElement
	}
	return nameKey(seg.Name())
}

func nameKey(name string) string {
	return "." + strings.ToLower(name)
}

func (t *Tree) add(parent int, seg *fieldpath.Segment) {
	key := segKey(seg)
	c, ok := t.nodes[parent].children[key]
	if !ok {
		c = len(t.nodes)
		t.nodes = append(t.nodes, node{parent: parent})
		if seg.IsNamed() {
			t.nodes[c].name = seg.Name()
		}
		if t.nodes[parent].children == nil {
			t.nodes[parent].children = map[string]int{}
		}
		t.nodes[parent].children[key] = c
	}
	if seg.IsLeaf() {
		// a shorter path subsumes longer ones: (a.b.c, a.b) => a.b
		t.nodes[c].leaf = true
		t.nodes[c].children = nil
		return
	}
	if t.nodes[c].leaf {
		return
	}
	child := seg.Child()
	if child.IsIndexed() && !child.HasIndex() {
		t.addEntireArray(c, child)
	}
	t.add(c, child)
}

// addEntireArray handles "x[]" followed by more steps: the steps after the
// brackets are also wanted directly under x, so a[].b adds a.b and
// a[][].b[].c adds a[].b[].c, a[].b.c and so on.
func (t *Tree) addEntireArray(n int, idx *fieldpath.Segment) {
	next := idx.Child()
	if next == nil || (next.IsIndexed() && !next.HasIndex()) {
		return
	}
	t.add(n, next)
}

// child returns the child of n for the position of the current reader
// field, or noNode.
func (t *Tree) child(n int, inMap bool, name string) int {
	children := t.nodes[n].children
	if children == nil {
		return noNode
	}
	key := anyElement
	if inMap {
		key = nameKey(name)
	}
	if c, ok := children[key]; ok {
		return c
	}
	return noNode
}

// Len returns the number of nodes, including the root.
func (t *Tree) Len() int { return len(t.nodes) }

// WholeDocument reports whether an empty path made everything wanted.
func (t *Tree) WholeDocument() bool { return t.nodes[rootNode].leaf }

// Paths returns the wanted paths the tree reduces to, sorted.
func (t *Tree) Paths() []*fieldpath.FieldPath {
	var res []*fieldpath.FieldPath
	var walk func(n int, p *fieldpath.FieldPath)
	walk = func(n int, p *fieldpath.FieldPath) {
		nd := &t.nodes[n]
		if nd.leaf || (n != rootNode && len(nd.children) == 0) {
			res = append(res, p)
			return
		}
		for _, key := range t.sortedKeys(n) {
			c := nd.children[key]
			if key == anyElement {
				walk(c, p.ChildIndex(-1))
			} else {
				walk(c, p.Child(t.nodes[c].name))
			}
		}
	}
	walk(rootNode, fieldpath.Empty)
	slices.SortFunc(res, func(a, b *fieldpath.FieldPath) int { return a.Compare(b) })
	return res
}

func (t *Tree) sortedKeys(n int) []string {
	keys := make([]string, 0, len(t.nodes[n].children))
	for k := range t.nodes[n].children {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// String renders the tree as JSON: each step is an object member, "[]" for
// array elements, and a wanted subtree is true.
func (t *Tree) String() string {
	var b []byte
	var render func(n int)
	render = func(n int) {
		nd := &t.nodes[n]
		if nd.leaf {
			b = append(b, "true"...)
			return
		}
		b = append(b, '{')
		for i, key := range t.sortedKeys(n) {
			if i > 0 {
				b = append(b, ',')
			}
			c := nd.children[key]
			name := anyElement
			if key != anyElement {
				name = t.nodes[c].name
			}
			b, _ = jsontext.AppendQuote(b, name)
			b = append(b, ':')
			render(c)
		}
		b = append(b, '}')
	}
	render(rootNode)
	return string(b)
}
