package token

import (
	"io"

	"github.com/go-json-experiment/json/jsontext"
)

// Sink writes JSON tokens to an io.Writer.
type Sink struct {
	w        io.Writer
	enc      *jsontext.Encoder
	keepOpen bool
}

func NewSink(w io.Writer, options ...Opt) *Sink {
	o := makeOpts(options)
	return &Sink{
		w:        w,
		enc:      jsontext.NewEncoder(w, o.json...),
		keepOpen: o.keepOpen,
	}
}

func (s *Sink) Write(tok jsontext.Token) error {
	return s.enc.WriteToken(tok)
}

// WriteRaw writes a literal JSON value, typically a number in an exact
// textual form.
func (s *Sink) WriteRaw(lit string) error {
	return s.enc.WriteValue(jsontext.Value(lit))
}

// Offset returns the number of bytes written so far, including buffered
// output.
func (s *Sink) Offset() int64 {
	return s.enc.OutputOffset()
}

// Close closes the underlying writer unless the Sink was created with
// KeepOpen. Output of complete top level values has already been flushed.
func (s *Sink) Close() error {
	if s.keepOpen {
		return nil
	}
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
