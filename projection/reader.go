package projection

import (
	"github.com/signadot/go-ojai/fieldpath"
	"github.com/signadot/go-ojai/stream"
	"github.com/signadot/go-ojai/value"
)

// Reader emits the events of src that belong to wanted fields. The
// document's own start and end events are always emitted; unwanted
// containers are skipped without being decoded.
type Reader struct {
	src stream.DocumentReader
	p   *Projector
}

// NewReader resets p and returns a projecting reader over src. p must not
// be shared with another Reader; see Projector.CloneWithSharedTree.
func NewReader(src stream.DocumentReader, p *Projector) *Reader {
	p.Reset()
	return &Reader{src: src, p: p}
}

func (r *Reader) Next() (stream.EventType, error) {
	for {
		ev, err := r.src.Next()
		if err != nil {
			return ev, err
		}
		if ev == stream.EventStartMap && r.src.Depth() == 1 {
			return ev, nil
		}
		r.p.MoveTo(ev, r.src)
		if r.p.ShouldEmit() {
			return ev, nil
		}
		if err := r.src.SkipChildren(); err != nil {
			return ev, err
		}
	}
}

func (r *Reader) Event() stream.EventType     { return r.src.Event() }
func (r *Reader) SkipChildren() error         { return r.src.SkipChildren() }
func (r *Reader) InMap() bool                 { return r.src.InMap() }
func (r *Reader) FieldName() string           { return r.src.FieldName() }
func (r *Reader) ArrayIndex() int             { return r.src.ArrayIndex() }
func (r *Reader) Depth() int                  { return r.src.Depth() }
func (r *Reader) Path() *fieldpath.FieldPath  { return r.src.Path() }
func (r *Reader) Value() (value.Value, error) { return r.src.Value() }

// Project copies the parts of the document read from src selected by paths
// into dst.
func Project(dst *stream.Builder, src stream.DocumentReader, paths ...*fieldpath.FieldPath) error {
	return stream.Copy(dst, NewReader(src, NewProjector(NewTree(paths...))))
}
