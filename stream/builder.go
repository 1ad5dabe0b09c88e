package stream

import (
	"io"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/signadot/go-ojai/debug"
	"github.com/signadot/go-ojai/token"
	"github.com/signadot/go-ojai/types"
	"github.com/signadot/go-ojai/value"
)

// Builder writes one document as tagged JSON.
//
// Put calls are legal inside a map, Add calls inside an array. The document
// itself is opened with AddNewMap. Ending the document map seals the
// Builder and closes the sink. Any error is sticky: every later call
// returns it.
type Builder struct {
	sink  *token.Sink
	state *State
	opts  *streamOpts

	err    error
	sealed bool
	closed bool
}

// NewBuilder returns a Builder writing to w.
func NewBuilder(w io.Writer, opts ...StreamOption) *Builder {
	o := makeStreamOpts(opts)
	return &Builder{
		sink:  token.NewSink(w, o.tokenOpts()...),
		state: NewState(),
		opts:  o,
	}
}

// Depth returns the number of open containers.
func (b *Builder) Depth() int { return b.state.Depth() }

// Err returns the sticky error, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}
	return b.err
}

func (b *Builder) check(op string, want Context) error {
	if b.err != nil {
		return b.err
	}
	if b.closed || b.sealed {
		return b.fail(&StateError{Writer: true, Op: op, Msg: "document is finished"})
	}
	if top := b.state.Top(); top != want {
		return b.fail(&StateError{Writer: true, Op: op, Expected: want, Actual: top})
	}
	return nil
}

// key announces the next field of the current map.
func (b *Builder) key(op, field string) error {
	if err := b.check(op, ContextMap); err != nil {
		return err
	}
	b.state.SetField(field)
	if debug.Encode() {
		debug.Logf("encode %s at %s\n", op, b.state.Path())
	}
	return b.write(jsontext.String(field))
}

// elem announces the next element of the current array.
func (b *Builder) elem(op string) error {
	if err := b.check(op, ContextArray); err != nil {
		return err
	}
	b.state.Advance()
	if debug.Encode() {
		debug.Logf("encode %s at %s\n", op, b.state.Path())
	}
	return nil
}

func (b *Builder) write(toks ...jsontext.Token) error {
	for _, tok := range toks {
		if err := b.sink.Write(tok); err != nil {
			return b.fail(&EncodingError{Err: err})
		}
	}
	return nil
}

func (b *Builder) open(ctx Context) error {
	tok := jsontext.BeginObject
	if ctx == ContextArray {
		tok = jsontext.BeginArray
	}
	if err := b.write(tok); err != nil {
		return err
	}
	b.state.Push(ctx)
	return nil
}

func (b *Builder) PutNewMap(field string) error {
	if err := b.key("put new map", field); err != nil {
		return err
	}
	return b.open(ContextMap)
}

func (b *Builder) PutNewArray(field string) error {
	if err := b.key("put new array", field); err != nil {
		return err
	}
	return b.open(ContextArray)
}

// AddNewMap opens a map as the next array element, or as the document
// itself when nothing has been written yet.
func (b *Builder) AddNewMap() error {
	if b.err == nil && !b.sealed && !b.closed && b.state.Depth() == 0 {
		return b.open(ContextMap)
	}
	if err := b.elem("add new map"); err != nil {
		return err
	}
	return b.open(ContextMap)
}

func (b *Builder) AddNewArray() error {
	if err := b.elem("add new array"); err != nil {
		return err
	}
	return b.open(ContextArray)
}

func (b *Builder) EndMap() error {
	return b.end("end map", ContextMap)
}

func (b *Builder) EndArray() error {
	return b.end("end array", ContextArray)
}

func (b *Builder) end(op string, ctx Context) error {
	if err := b.check(op, ctx); err != nil {
		return err
	}
	tok := jsontext.EndObject
	if ctx == ContextArray {
		tok = jsontext.EndArray
	}
	if err := b.write(tok); err != nil {
		return err
	}
	if err := b.state.Pop(ctx); err != nil {
		return b.fail(err)
	}
	if b.state.Depth() == 0 {
		b.sealed = true
		b.opts.logger.Debug("document finished", "offset", b.sink.Offset())
		if err := b.sink.Close(); err != nil {
			return b.fail(&EncodingError{Err: err})
		}
	}
	return nil
}

// Put writes field with any value, including maps and arrays.
func (b *Builder) Put(field string, v value.Value) error {
	if err := b.key("put", field); err != nil {
		return err
	}
	return b.value(v)
}

// Add appends any value to the current array.
func (b *Builder) Add(v value.Value) error {
	if err := b.elem("add"); err != nil {
		return err
	}
	return b.value(v)
}

func (b *Builder) value(v value.Value) error {
	switch x := v.(type) {
	case nil, value.Null:
		return b.write(jsontext.Null)
	case value.Bool:
		return b.write(jsontext.Bool(bool(x)))
	case value.String:
		return b.write(jsontext.String(string(x)))
	case value.Double:
		tok, err := doubleToken(float64(x))
		if err != nil {
			return b.fail(&EncodingError{Err: err})
		}
		return b.write(tok)
	case *value.Map:
		if err := b.write(jsontext.BeginObject); err != nil {
			return err
		}
		for name, fv := range x.Fields() {
			if err := b.write(jsontext.String(name)); err != nil {
				return err
			}
			if err := b.value(fv); err != nil {
				return err
			}
		}
		return b.write(jsontext.EndObject)
	case value.Array:
		if err := b.write(jsontext.BeginArray); err != nil {
			return err
		}
		for _, ev := range x {
			if err := b.value(ev); err != nil {
				return err
			}
		}
		return b.write(jsontext.EndArray)
	}
	return b.extended(v)
}

// extended writes v as a single member object keyed by its tag in the
// configured dialect. Types without a tag in the dialect are written
// bare.
func (b *Builder) extended(v value.Value) error {
	wv, err := encodeExtended(v)
	if err != nil {
		return b.fail(&EncodingError{Err: err})
	}
	tag, ok := types.Tag(v.Type(), b.opts.dialect)
	if ok {
		if err := b.write(jsontext.BeginObject, jsontext.String(tag)); err != nil {
			return err
		}
	}
	if wv.raw != "" {
		if err := b.sink.WriteRaw(wv.raw); err != nil {
			return b.fail(&EncodingError{Err: err})
		}
	} else if err := b.write(wv.tok); err != nil {
		return err
	}
	if ok {
		return b.write(jsontext.EndObject)
	}
	return nil
}

func (b *Builder) PutNull(field string) error {
	return b.Put(field, value.Null{})
}

func (b *Builder) PutBool(field string, v bool) error {
	return b.Put(field, value.Bool(v))
}

func (b *Builder) PutString(field string, v string) error {
	return b.Put(field, value.String(v))
}

func (b *Builder) PutByte(field string, v int8) error {
	return b.Put(field, value.Byte(v))
}

func (b *Builder) PutShort(field string, v int16) error {
	return b.Put(field, value.Short(v))
}

func (b *Builder) PutInt(field string, v int32) error {
	return b.Put(field, value.Int(v))
}

func (b *Builder) PutLong(field string, v int64) error {
	return b.Put(field, value.Long(v))
}

func (b *Builder) PutFloat(field string, v float32) error {
	return b.Put(field, value.Float(v))
}

func (b *Builder) PutDouble(field string, v float64) error {
	return b.Put(field, value.Double(v))
}

func (b *Builder) PutDecimal(field string, v value.Decimal) error {
	return b.Put(field, v)
}

func (b *Builder) PutDate(field string, v value.Date) error {
	return b.Put(field, v)
}

func (b *Builder) PutTime(field string, v value.Time) error {
	return b.Put(field, v)
}

func (b *Builder) PutTimestamp(field string, v value.Timestamp) error {
	return b.Put(field, v)
}

func (b *Builder) PutInterval(field string, v value.Interval) error {
	return b.Put(field, v)
}

func (b *Builder) PutBinary(field string, v []byte) error {
	return b.Put(field, value.Binary(v))
}

func (b *Builder) AddNull() error {
	return b.Add(value.Null{})
}

func (b *Builder) AddBool(v bool) error {
	return b.Add(value.Bool(v))
}

func (b *Builder) AddString(v string) error {
	return b.Add(value.String(v))
}

func (b *Builder) AddByte(v int8) error {
	return b.Add(value.Byte(v))
}

func (b *Builder) AddShort(v int16) error {
	return b.Add(value.Short(v))
}

func (b *Builder) AddInt(v int32) error {
	return b.Add(value.Int(v))
}

func (b *Builder) AddLong(v int64) error {
	return b.Add(value.Long(v))
}

func (b *Builder) AddFloat(v float32) error {
	return b.Add(value.Float(v))
}

func (b *Builder) AddDouble(v float64) error {
	return b.Add(value.Double(v))
}

func (b *Builder) AddDecimal(v value.Decimal) error {
	return b.Add(v)
}

func (b *Builder) AddDate(v value.Date) error {
	return b.Add(v)
}

func (b *Builder) AddTime(v value.Time) error {
	return b.Add(v)
}

func (b *Builder) AddTimestamp(v value.Timestamp) error {
	return b.Add(v)
}

func (b *Builder) AddInterval(v value.Interval) error {
	return b.Add(v)
}

func (b *Builder) AddBinary(v []byte) error {
	return b.Add(value.Binary(v))
}

// PutMapFunc writes field as a map filled in by fn. The map is ended even
// when fn fails, so the container stack stays balanced.
func (b *Builder) PutMapFunc(field string, fn func(*Builder) error) error {
	if err := b.PutNewMap(field); err != nil {
		return err
	}
	return b.scoped(fn, b.EndMap)
}

func (b *Builder) PutArrayFunc(field string, fn func(*Builder) error) error {
	if err := b.PutNewArray(field); err != nil {
		return err
	}
	return b.scoped(fn, b.EndArray)
}

func (b *Builder) AddMapFunc(fn func(*Builder) error) error {
	if err := b.AddNewMap(); err != nil {
		return err
	}
	return b.scoped(fn, b.EndMap)
}

func (b *Builder) AddArrayFunc(fn func(*Builder) error) error {
	if err := b.AddNewArray(); err != nil {
		return err
	}
	return b.scoped(fn, b.EndArray)
}

func (b *Builder) scoped(fn func(*Builder) error, end func() error) error {
	err := fn(b)
	if endErr := end(); err == nil {
		err = endErr
	}
	return err
}

// Close releases the sink. Closing with containers still open is an
// error. Close may be called more than once.
func (b *Builder) Close() error {
	if b.closed {
		return b.err
	}
	b.closed = true
	var err error
	if d := b.state.Depth(); d > 0 && b.err == nil {
		err = b.fail(&StateError{Writer: true, Op: "close", Msg: "document has open containers"})
	}
	if !b.sealed {
		if cerr := b.sink.Close(); cerr != nil && err == nil {
			err = b.fail(&EncodingError{Err: cerr})
		}
	}
	if err == nil {
		err = b.err
	}
	return err
}
