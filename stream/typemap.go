package stream

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/signadot/go-ojai/fieldpath"
	"github.com/signadot/go-ojai/types"
	"github.com/signadot/go-ojai/value"
)

// TypeMap assigns types to fields of plain JSON input. A Reader opened
// with WithTypeMap reports a scalar map member whose path is in the map
// as a value of the mapped type, so that {"a":{"b":"5"}} with a.b mapped
// to INT reads a.b as the int 5.
//
// Nulls, array elements and values already of the mapped type are left
// alone.
type TypeMap struct {
	types map[string]types.Type
}

// NewTypeMap parses the path of every entry of m. Paths may not contain
// index segments and every type must be scalar.
func NewTypeMap(m map[string]types.Type) (*TypeMap, error) {
	tm := &TypeMap{types: make(map[string]types.Type, len(m))}
	for text, t := range m {
		p, err := fieldpath.Parse(text)
		if err != nil {
			return nil, err
		}
		for seg := range p.Segments() {
			if seg.IsIndexed() {
				return nil, fmt.Errorf("type map: %s has an index segment", p)
			}
		}
		if t.IsContainer() {
			return nil, fmt.Errorf("type map: %s cannot be mapped to %s", p, t)
		}
		tm.types[p.Key()] = t
	}
	return tm, nil
}

// Lookup returns the type mapped to p.
func (tm *TypeMap) Lookup(p *fieldpath.FieldPath) (types.Type, bool) {
	t, ok := tm.types[p.Key()]
	return t, ok
}

func (tm *TypeMap) Len() int { return len(tm.types) }

// WithTypeMap makes a Reader convert scalars at the paths of tm.
func WithTypeMap(tm *TypeMap) StreamOption {
	return func(opts *streamOpts) {
		opts.typeMap = tm
	}
}

var errConversion = errors.New("unsupported conversion")

// retype converts the current scalar when its path is mapped.
func (r *Reader) retype() error {
	if r.ev == EventNull || !r.InMap() {
		return nil
	}
	p := r.Path()
	t, ok := r.opts.typeMap.Lookup(p)
	if !ok || t == r.val.Type() {
		return nil
	}
	v, err := convertScalar(r.val, t)
	if err != nil {
		return &DecodingError{Offset: r.src.Offset(), Msg: "field " + p.String(), Err: err}
	}
	r.opts.logger.Debug("retyped", "path", p.String(), "from", r.ev, "to", t)
	r.ev = EventTypeOf(t)
	r.val = v
	return nil
}

func convertScalar(v value.Value, to types.Type) (value.Value, error) {
	var (
		res value.Value
		err = errConversion
	)
	s, isString := v.(value.String)
	switch to {
	case types.Null:
		res, err = value.Null{}, nil
	case types.String:
		res, err = value.String(fmt.Sprint(v)), nil
	case types.Boolean:
		if isString {
			var b bool
			b, err = strconv.ParseBool(string(s))
			res = value.Bool(b)
		} else if f, ok := value.Float64(v); ok {
			res, err = value.Bool(f != 0), nil
		}
	case types.Byte, types.Short, types.Int, types.Long, types.Interval:
		var n int64
		n, err = integralOf(v, integralBits(to))
		res = integralValue(to, n)
	case types.Float, types.Double:
		var f float64
		f, err = floatOf(v)
		if err == nil && to == types.Float && math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
			err = fmt.Errorf("%v out of range for float", f)
		}
		if to == types.Float {
			res = value.Float(f)
		} else {
			res = value.Double(f)
		}
	case types.Decimal:
		if isString {
			res, err = value.ParseDecimal(string(s))
		} else {
			res, err = decimalOf(v)
		}
	case types.Date:
		if isString {
			res, err = value.ParseDate(string(s))
		} else if n, ok := value.Int64(v); ok {
			res, err = value.DateOf(time.UnixMilli(n).UTC()), nil
		}
	case types.Time:
		if isString {
			res, err = value.ParseTime(string(s))
		} else if n, ok := value.Int64(v); ok {
			const day = 24 * 60 * 60 * 1000
			res, err = value.Time(((n%day)+day)%day), nil
		}
	case types.Timestamp:
		if isString {
			res, err = value.ParseTimestamp(string(s))
		} else if n, ok := value.Int64(v); ok {
			res, err = value.Timestamp(n), nil
		}
	case types.Binary:
		if isString {
			res, err = value.ParseBinary(string(s))
		}
	}
	if errors.Is(err, errConversion) {
		return nil, fmt.Errorf("%w: a %s value cannot be converted to %s", errConversion, v.Type(), to)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot convert %q to %s: %w", fmt.Sprint(v), to, err)
	}
	return res, nil
}

func integralBits(t types.Type) int {
	switch t {
	case types.Byte:
		return 8
	case types.Short:
		return 16
	case types.Int:
		return 32
	}
	return 64
}

func integralValue(t types.Type, n int64) value.Value {
	switch t {
	case types.Byte:
		return value.Byte(n)
	case types.Short:
		return value.Short(n)
	case types.Int:
		return value.Int(n)
	case types.Interval:
		return value.Interval(n)
	}
	return value.Long(n)
}

// integralOf truncates numbers toward zero and parses strings. The result
// must fit in bits.
func integralOf(v value.Value, bits int) (int64, error) {
	var n int64
	switch x := v.(type) {
	case value.String:
		return parseIntegral(string(x), bits)
	case value.Interval:
		n = int64(x)
	case value.Decimal:
		whole, _, _ := strings.Cut(x.Text('f'), ".")
		return parseIntegral(whole, bits)
	case value.Float, value.Double:
		f, _ := value.Float64(x)
		f = math.Trunc(f)
		if !value.IsWholeDouble(f) {
			return 0, fmt.Errorf("%v out of range for %d bits", f, bits)
		}
		n = int64(f)
	default:
		m, ok := value.Int64(v)
		if !ok {
			return 0, errConversion
		}
		n = m
	}
	lim := int64(1) << (bits - 1)
	if bits < 64 && (n < -lim || n >= lim) {
		return 0, fmt.Errorf("%d out of range for %d bits", n, bits)
	}
	return n, nil
}

func floatOf(v value.Value) (float64, error) {
	switch x := v.(type) {
	case value.String:
		return strconv.ParseFloat(string(x), 64)
	case value.Interval:
		return float64(x), nil
	}
	if f, ok := value.Float64(v); ok {
		return f, nil
	}
	return 0, errConversion
}

// decimalOf widens any numeric value to a decimal.
func decimalOf(v value.Value) (value.Decimal, error) {
	switch x := v.(type) {
	case value.Decimal:
		return x, nil
	case value.Float, value.Double:
		f, _ := value.Float64(x)
		d := new(apd.Decimal)
		if _, err := d.SetFloat64(f); err != nil {
			return value.Decimal{}, err
		}
		return value.Decimal{Decimal: d}, nil
	}
	if n, ok := value.Int64(v); ok {
		return value.Decimal{Decimal: apd.New(n, 0)}, nil
	}
	return value.Decimal{}, errConversion
}
