package stream

import (
	"bytes"
	"io"

	"github.com/signadot/go-ojai/value"
)

// ReadValue reads a whole document from src into memory. It returns io.EOF
// when src has no document.
func ReadValue(src DocumentReader) (*value.Map, error) {
	ev, err := src.Next()
	if err != nil {
		return nil, err
	}
	if ev != EventStartMap {
		return nil, &TypeMismatchError{Op: "read value", Got: ev, Msg: "document must start with a map"}
	}
	return readMap(src)
}

func readMap(src DocumentReader) (*value.Map, error) {
	m := value.NewMap()
	for {
		ev, err := src.Next()
		if err != nil {
			return nil, truncated(err)
		}
		if ev == EventEndMap {
			return m, nil
		}
		name := src.FieldName()
		v, err := readAny(src, ev)
		if err != nil {
			return nil, err
		}
		m.Set(name, v)
	}
}

func readArray(src DocumentReader) (value.Array, error) {
	a := value.Array{}
	for {
		ev, err := src.Next()
		if err != nil {
			return nil, truncated(err)
		}
		if ev == EventEndArray {
			return a, nil
		}
		v, err := readAny(src, ev)
		if err != nil {
			return nil, err
		}
		a = append(a, v)
	}
}

func readAny(src DocumentReader, ev EventType) (value.Value, error) {
	switch ev {
	case EventStartMap:
		m, err := readMap(src)
		if err != nil {
			return nil, err
		}
		return m, nil
	case EventStartArray:
		a, err := readArray(src)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return src.Value()
}

func truncated(err error) error {
	if err == io.EOF {
		return &DecodingError{Token: "<EOF>", Msg: "document ended inside a container", Err: io.ErrUnexpectedEOF}
	}
	return err
}

// WriteValue writes m as the document of dst. dst is sealed afterwards.
func WriteValue(dst *Builder, m *value.Map) error {
	if err := dst.AddNewMap(); err != nil {
		return err
	}
	for name, v := range m.Fields() {
		if err := dst.Put(name, v); err != nil {
			return err
		}
	}
	return dst.EndMap()
}

// Marshal encodes m as a tagged JSON document.
func Marshal(m *value.Map, opts ...StreamOption) ([]byte, error) {
	buf := &bytes.Buffer{}
	b := NewBuilder(buf, opts...)
	if err := WriteValue(b, m); err != nil {
		return nil, err
	}
	if err := b.Close(); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes a single tagged JSON document. Anything but white space
// after the document is an error.
func Unmarshal(d []byte, opts ...StreamOption) (*value.Map, error) {
	r := NewReader(bytes.NewReader(d), opts...)
	defer r.Close()
	m, err := ReadValue(r)
	if err == io.EOF {
		return nil, &DecodingError{Token: "<EOF>", Msg: "no document", Err: io.ErrUnexpectedEOF}
	}
	if err != nil {
		return nil, err
	}
	if _, err := r.src.Peek(); err != io.EOF {
		if err == nil {
			return nil, &DecodingError{Offset: r.Offset(), Msg: "data after document"}
		}
		return nil, r.decodeErr(err)
	}
	return m, nil
}
