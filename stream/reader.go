package stream

import (
	"io"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/signadot/go-ojai/debug"
	"github.com/signadot/go-ojai/fieldpath"
	"github.com/signadot/go-ojai/token"
	"github.com/signadot/go-ojai/types"
	"github.com/signadot/go-ojai/value"
)

// DocumentReader is the pull interface shared by Reader and the readers
// layered on top of it.
type DocumentReader interface {
	// Next advances to the next event, returning io.EOF once the document
	// has been closed.
	Next() (EventType, error)
	Event() EventType
	// SkipChildren abandons the container whose start event is current,
	// leaving the reader as if its end event had been read.
	SkipChildren() error
	InMap() bool
	FieldName() string
	ArrayIndex() int
	Depth() int
	Path() *fieldpath.FieldPath
	Value() (value.Value, error)
}

// Reader decodes one document, which must be a map, as a sequence of
// events.
//
// FieldName, ArrayIndex and InMap describe where the current value sits in
// its parent. For an end event that is the position of the container just
// closed. The document map itself has no position.
type Reader struct {
	src   *token.Source
	state *State
	opts  *streamOpts

	ev  EventType
	val value.Value
	// number of stack frames describing the position of the current value
	pos int

	started bool
	done    bool
	closed  bool
	shared  bool
	err     error
}

// NewReader returns a Reader for the document at the start of r.
func NewReader(r io.Reader, opts ...StreamOption) *Reader {
	o := makeStreamOpts(opts)
	return newReader(token.NewSource(r, o.tokenOpts()...), o)
}

func newReader(src *token.Source, o *streamOpts) *Reader {
	return &Reader{
		src:   src,
		state: NewState(),
		opts:  o,
		ev:    -1,
	}
}

// Next reads the next event. Errors other than io.EOF are sticky.
func (r *Reader) Next() (EventType, error) {
	if r.closed {
		return r.ev, &StateError{Op: "next", Msg: "reader is closed"}
	}
	if r.err != nil {
		return r.ev, r.err
	}
	if r.done {
		return r.ev, io.EOF
	}
	if err := r.next(); err != nil {
		if err != io.EOF {
			r.err = err
		}
		return r.ev, err
	}
	if debug.Decode() {
		debug.Logf("decode %s at %s\n", r.ev, r.Path())
	}
	return r.ev, nil
}

func (r *Reader) next() error {
	r.val = nil
	if r.state.Depth() == 0 {
		tok, err := r.src.Read()
		if err == io.EOF {
			r.done = true
			return io.EOF
		}
		if err != nil {
			return r.decodeErr(err)
		}
		if tok.Kind() != '{' {
			return r.unexpected(tok, "document must be a map")
		}
		r.started = true
		r.state.Push(ContextMap)
		r.ev = EventStartMap
		r.pos = 0
		return nil
	}
	switch r.state.Top() {
	case ContextMap:
		tok, err := r.read()
		if err != nil {
			return err
		}
		switch tok.Kind() {
		case '}':
			return r.close(ContextMap)
		case '"':
			r.state.SetField(tok.String())
		default:
			return r.unexpected(tok, "expected field name")
		}
	case ContextArray:
		if r.src.PeekKind() == ']' {
			if _, err := r.read(); err != nil {
				return err
			}
			return r.close(ContextArray)
		}
		r.state.Advance()
	}
	tok, err := r.read()
	if err != nil {
		return err
	}
	return r.value(tok)
}

func (r *Reader) value(tok jsontext.Token) error {
	switch tok.Kind() {
	case '{':
		ev, v, ok, err := r.collapse()
		if err != nil {
			return err
		}
		if ok {
			r.scalar(ev, v)
			break
		}
		r.state.Push(ContextMap)
		r.ev = EventStartMap
		r.pos = r.state.Depth() - 1
	case '[':
		r.state.Push(ContextArray)
		r.ev = EventStartArray
		r.pos = r.state.Depth() - 1
	case 'n':
		r.scalar(EventNull, value.Null{})
	case 't', 'f':
		r.scalar(EventBoolean, value.Bool(tok.Bool()))
	case '"':
		r.scalar(EventString, value.String(tok.String()))
	case '0':
		r.scalar(EventDouble, value.Double(tok.Float()))
	default:
		return r.unexpected(tok, "unexpected token")
	}
	if r.opts.typeMap != nil && r.ev.IsScalar() {
		return r.retype()
	}
	return nil
}

func (r *Reader) scalar(ev EventType, v value.Value) {
	r.ev = ev
	r.val = v
	r.pos = r.state.Depth()
}

func (r *Reader) close(ctx Context) error {
	if err := r.state.Pop(ctx); err != nil {
		return &DecodingError{Offset: r.src.Offset(), Err: err}
	}
	r.ev = EventEndMap
	if ctx == ContextArray {
		r.ev = EventEndArray
	}
	r.pos = r.state.Depth()
	if r.pos == 0 {
		r.done = true
	}
	return nil
}

// collapse is called just after '{'. If the object consists of a single
// registered tag with a scalar value it is consumed whole and reported as
// one extended scalar; otherwise every token looked at is pushed back.
func (r *Reader) collapse() (EventType, value.Value, bool, error) {
	if r.src.PeekKind() != '"' {
		return 0, nil, false, nil
	}
	name, err := r.read()
	if err != nil {
		return 0, nil, false, err
	}
	tag := name.String()
	typ, ok := types.TypeForTag(tag)
	if !ok {
		r.src.Unread(jsontext.String(tag))
		return 0, nil, false, nil
	}
	switch r.src.PeekKind() {
	case '"', '0', 'n', 't', 'f':
	default:
		r.src.Unread(jsontext.String(tag))
		return 0, nil, false, nil
	}
	tok, err := r.read()
	if err != nil {
		return 0, nil, false, err
	}
	tok = tok.Clone()
	if r.src.PeekKind() != '}' {
		r.opts.logger.Debug("tagged member is not alone, reading a map", "tag", tag, "path", r.state.Path())
		r.src.Unread(jsontext.String(tag), tok)
		return 0, nil, false, nil
	}
	if _, err := r.read(); err != nil {
		return 0, nil, false, err
	}
	v, err := decodeExtended(typ, tok)
	if err != nil {
		return 0, nil, false, &DecodingError{Offset: r.src.Offset(), Token: tag, Err: err}
	}
	return EventTypeOf(typ), v, true, nil
}

func (r *Reader) read() (jsontext.Token, error) {
	tok, err := r.src.Read()
	if err != nil {
		return tok, r.decodeErr(err)
	}
	return tok, nil
}

func (r *Reader) decodeErr(err error) error {
	if err == io.EOF {
		return &DecodingError{Offset: r.src.Offset(), Token: "<EOF>", Msg: "unexpected end of input", Err: io.ErrUnexpectedEOF}
	}
	return &DecodingError{Offset: r.src.Offset(), Err: err}
}

func (r *Reader) unexpected(tok jsontext.Token, msg string) error {
	return &DecodingError{Offset: r.src.Offset(), Token: describe(tok), Msg: msg}
}

func describe(tok jsontext.Token) string {
	switch k := tok.Kind(); k {
	case '"':
		return strconv.Quote(tok.String())
	case '0':
		return tok.String()
	default:
		return "'" + k.String() + "'"
	}
}

// SkipChildren discards the rest of the container opened by the current
// start event without decoding it. It does nothing for other events.
func (r *Reader) SkipChildren() error {
	if r.err != nil {
		return r.err
	}
	if r.closed {
		return &StateError{Op: "skip", Msg: "reader is closed"}
	}
	if !r.ev.IsStart() {
		return nil
	}
	if err := r.skipContainer(); err != nil {
		r.err = err
		return err
	}
	return nil
}

// skipContainer consumes tokens up to and including the end of the
// innermost open container and pops it.
func (r *Reader) skipContainer() error {
	ctx := r.state.Top()
loop:
	for {
		switch r.src.PeekKind() {
		case '{', '[':
			if err := r.src.SkipValue(); err != nil {
				return r.decodeErr(err)
			}
		case '}', ']':
			if _, err := r.read(); err != nil {
				return err
			}
			break loop
		default:
			if _, err := r.read(); err != nil {
				return err
			}
		}
	}
	r.val = nil
	return r.close(ctx)
}

func (r *Reader) Event() EventType { return r.ev }

// Depth returns the number of open containers, 1 inside the document map.
func (r *Reader) Depth() int { return r.state.Depth() }

func (r *Reader) InMap() bool {
	return r.pos > 0 && r.state.stack[r.pos-1].ctx == ContextMap
}

// FieldName returns the name of the current value within its map, "" when
// the value is not in a map.
func (r *Reader) FieldName() string {
	if !r.InMap() {
		return ""
	}
	return r.state.stack[r.pos-1].field
}

// ArrayIndex returns the index of the current value within its array, -1
// when the value is not in an array.
func (r *Reader) ArrayIndex() int {
	if r.pos == 0 || r.state.stack[r.pos-1].ctx != ContextArray {
		return -1
	}
	return r.state.stack[r.pos-1].index
}

// Path returns the position of the current value within the document.
func (r *Reader) Path() *fieldpath.FieldPath {
	return r.state.pathTo(r.pos)
}

// Offset returns the input offset reached.
func (r *Reader) Offset() int64 { return r.src.Offset() }

// Close releases the underlying source unless it is shared with a
// DocumentStream or was opened with WithKeepSourceOpen. It is safe to call
// more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.shared {
		return nil
	}
	return r.src.Close()
}

// drain reads to the end of the document, starting it if need be.
func (r *Reader) drain() error {
	if r.err != nil || r.done {
		return r.err
	}
	if !r.started {
		if err := r.next(); err != nil {
			if err == io.EOF {
				return nil
			}
			r.err = err
			return err
		}
	}
	for r.state.Depth() > 0 {
		if err := r.skipContainer(); err != nil {
			r.err = err
			return err
		}
	}
	return nil
}
