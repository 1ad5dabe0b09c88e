package stream

import (
	"io"

	"github.com/signadot/go-ojai/debug"
	"github.com/signadot/go-ojai/token"
)

// DocumentStream reads a sequence of documents from one source. It can be
// iterated once.
type DocumentStream struct {
	src      *token.Source
	opts     *streamOpts
	iterated bool
	closed   bool
}

func NewDocumentStream(r io.Reader, opts ...StreamOption) *DocumentStream {
	o := makeStreamOpts(opts)
	return &DocumentStream{
		src:  token.NewSource(r, o.tokenOpts()...),
		opts: o,
	}
}

// Iterator returns the stream's only iterator. Later calls fail with
// ErrStreamInUse.
func (s *DocumentStream) Iterator() (*DocumentIterator, error) {
	if s.closed {
		return nil, &StateError{Op: "iterator", Msg: "stream is closed"}
	}
	if s.iterated {
		return nil, ErrStreamInUse
	}
	s.iterated = true
	return &DocumentIterator{s: s}, nil
}

// ForEach calls fn with a Reader for each document. Whatever fn leaves
// unread of a document is skipped.
func (s *DocumentStream) ForEach(fn func(*Reader) error) error {
	it, err := s.Iterator()
	if err != nil {
		return err
	}
	for {
		r, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
}

// Close releases the source. It is safe to call more than once.
func (s *DocumentStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.src.Close()
}

// DocumentIterator hands out one Reader per document.
type DocumentIterator struct {
	s   *DocumentStream
	cur *Reader
	n   int
}

// Next finishes the previous document and returns a Reader for the next
// one, or io.EOF at the end of the stream.
func (it *DocumentIterator) Next() (*Reader, error) {
	if it.s.closed {
		return nil, &StateError{Op: "next document", Msg: "stream is closed"}
	}
	if it.cur != nil {
		if err := it.cur.drain(); err != nil {
			return nil, err
		}
		it.cur.Close()
		it.cur = nil
	}
	if _, err := it.s.src.Peek(); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &DecodingError{Offset: it.s.src.Offset(), Err: err}
	}
	r := newReader(it.s.src, it.s.opts)
	r.shared = true
	it.cur = r
	it.n++
	if debug.Stream() {
		debug.Logf("stream document %d at offset %d\n", it.n, it.s.src.Offset())
	}
	it.s.opts.logger.Debug("next document", "index", it.n)
	return r, nil
}
