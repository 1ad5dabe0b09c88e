package token

import (
	"io"

	"github.com/go-json-experiment/json/jsontext"
)

// PushbackCap is the number of tokens a Source can hold after Unread.
const PushbackCap = 4

// Opt configures a Source or Sink.
type Opt func(*opts)

type opts struct {
	keepOpen bool
	json     []jsontext.Options
}

// KeepOpen leaves the underlying reader or writer open on Close.
func KeepOpen(v bool) Opt {
	return func(o *opts) { o.keepOpen = v }
}

// JSONOptions passes options through to jsontext.
func JSONOptions(jo ...jsontext.Options) Opt {
	return func(o *opts) { o.json = append(o.json, jo...) }
}

func makeOpts(options []Opt) *opts {
	o := &opts{}
	for _, f := range options {
		f(o)
	}
	return o
}

// Source reads JSON tokens with bounded push-back.
type Source struct {
	r        io.Reader
	dec      *jsontext.Decoder
	keepOpen bool

	// ring buffer of pushed back tokens
	buf  [PushbackCap]jsontext.Token
	head int
	n    int
}

// NewSource returns a Source reading from r.
func NewSource(r io.Reader, options ...Opt) *Source {
	o := makeOpts(options)
	return &Source{
		r:        r,
		dec:      jsontext.NewDecoder(r, o.json...),
		keepOpen: o.keepOpen,
	}
}

// Read returns the next token. A token read from the decoder is only valid
// until the next call on s; callers keeping it longer must Clone it.
func (s *Source) Read() (jsontext.Token, error) {
	if s.n > 0 {
		tok := s.buf[s.head]
		s.buf[s.head] = jsontext.Token{}
		s.head = (s.head + 1) % PushbackCap
		s.n--
		return tok, nil
	}
	return s.dec.ReadToken()
}

// Unread pushes toks back so that the next Read returns toks[0]. It panics
// if the buffer would exceed PushbackCap.
func (s *Source) Unread(toks ...jsontext.Token) {
	if s.n+len(toks) > PushbackCap {
		panic("token: push-back buffer full")
	}
	for i := len(toks) - 1; i >= 0; i-- {
		s.head = (s.head + PushbackCap - 1) % PushbackCap
		s.buf[s.head] = toks[i].Clone()
		s.n++
	}
}

// Peek returns the next token without consuming it.
func (s *Source) Peek() (jsontext.Token, error) {
	tok, err := s.Read()
	if err != nil {
		return tok, err
	}
	s.Unread(tok)
	return s.buf[s.head], nil
}

// PeekKind returns the kind of the next token, or 0 if there is none or it
// is invalid; Read then reports the error.
func (s *Source) PeekKind() jsontext.Kind {
	if s.n > 0 {
		return s.buf[s.head].Kind()
	}
	return s.dec.PeekKind()
}

// Buffered returns the number of pushed back tokens.
func (s *Source) Buffered() int { return s.n }

// SkipValue consumes the next complete value.
func (s *Source) SkipValue() error {
	if s.n == 0 {
		return s.dec.SkipValue()
	}
	depth := 0
	for {
		if depth > 0 && s.n == 0 {
			switch s.dec.PeekKind() {
			case '{', '[':
				if err := s.dec.SkipValue(); err != nil {
					return err
				}
				continue
			}
		}
		tok, err := s.Read()
		if err != nil {
			return err
		}
		switch tok.Kind() {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		}
		if depth <= 0 {
			return nil
		}
	}
}

// Offset returns the input offset of the decoder. Pushed back tokens have
// already been counted.
func (s *Source) Offset() int64 {
	return s.dec.InputOffset()
}

// Close closes the underlying reader unless the Source was created with
// KeepOpen.
func (s *Source) Close() error {
	s.n = 0
	if s.keepOpen {
		return nil
	}
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
