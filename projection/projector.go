package projection

import (
	"github.com/signadot/go-ojai/debug"
	"github.com/signadot/go-ojai/stream"
)

// Position is what the projector needs to know about the reader field an
// event belongs to.
type Position interface {
	InMap() bool
	FieldName() string
}

// Projector is a cursor over a Tree deciding, event by event, whether a
// reader field is emitted.
//
// Once a container matching a whole wanted subtree is entered the
// projector stops consulting the tree and only counts nesting until the
// container closes.
type Projector struct {
	tree *Tree

	cur  int
	last int
	// open containers below last while short circuited
	level int
	short bool

	// the field is a step towards, or is, a wanted path
	include bool
	// the field is below a wanted path
	all bool
}

func NewProjector(t *Tree) *Projector {
	p := &Projector{tree: t}
	p.Reset()
	if debug.Project() {
		paths := []string{}
		for _, fp := range t.Paths() {
			paths = append(paths, fp.String())
		}
		debug.Logf("project paths %s\n", paths)
	}
	return p
}

// CloneWithSharedTree returns a fresh cursor over the same tree, for use
// with another reader.
func (p *Projector) CloneWithSharedTree() *Projector {
	return NewProjector(p.tree)
}

func (p *Projector) Tree() *Tree { return p.tree }

// Reset moves the cursor to the document root, as if the document's
// start event had just been emitted.
func (p *Projector) Reset() {
	p.cur = rootNode
	p.last = rootNode
	p.level = 0
	p.short = false
	p.include = false
	p.all = false
	if p.tree.WholeDocument() {
		p.short = true
		p.level = 1
		p.include = true
		p.all = true
	}
}

// MoveTo advances the cursor to ev, whose field is described by pos. The
// caller must skip a container whose start event is not emitted; its
// end event is then never passed to MoveTo.
func (p *Projector) MoveTo(ev stream.EventType, pos Position) {
	child := noNode
	if !p.short {
		if ev.IsEnd() {
			// the start was emitted, or the container would have been skipped
			p.include = true
		} else {
			child = p.tree.child(p.cur, pos.InMap(), pos.FieldName())
			p.include = child != noNode && (ev.IsStart() || p.tree.nodes[child].leaf)
		}
	}

	switch {
	case ev.IsStart():
		if !p.ShouldEmit() {
			break
		}
		if p.short {
			p.level++
			break
		}
		p.cur = child
		p.last = child
		if p.tree.nodes[child].leaf {
			p.all = true
			p.level = 1
			p.short = true
		}
	case ev.IsEnd():
		if !p.ShouldEmit() {
			break
		}
		if !p.short {
			p.cur = p.tree.nodes[p.cur].parent
			break
		}
		p.level--
		if p.level == 0 {
			p.short = false
			p.all = false
			p.cur = p.tree.nodes[p.last].parent
		}
	}
	if debug.Project() {
		debug.Logf("project %s %q emit=%t short=%t level=%d\n", ev, pos.FieldName(), p.ShouldEmit(), p.short, p.level)
	}
}

// ShouldEmit reports whether the event last passed to MoveTo is emitted.
func (p *Projector) ShouldEmit() bool {
	return p.include || p.all
}

// InShortCircuit reports whether the cursor is inside a wholly wanted
// container.
func (p *Projector) InShortCircuit() bool {
	return p.short
}

func (p *Projector) String() string {
	return p.tree.String()
}
