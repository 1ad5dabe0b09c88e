package stream

import (
	"errors"
	"math"

	"github.com/signadot/go-ojai/value"
)

// Value returns the current scalar. Start and end events have no value.
func (r *Reader) Value() (value.Value, error) {
	if !r.ev.IsScalar() {
		return nil, &TypeMismatchError{Op: "value", Got: r.ev}
	}
	return r.val, nil
}

func scalarAs[T value.Value](r *Reader, op string) (T, error) {
	v, ok := r.val.(T)
	if !ok {
		var zero T
		return zero, &TypeMismatchError{Op: op, Got: r.ev}
	}
	return v, nil
}

// IsNull reports whether the current event is a null.
func (r *Reader) IsNull() bool { return r.ev == EventNull }

func (r *Reader) Bool() (bool, error) {
	v, err := scalarAs[value.Bool](r, "bool")
	return bool(v), err
}

func (r *Reader) String() (string, error) {
	v, err := scalarAs[value.String](r, "string")
	return string(v), err
}

func (r *Reader) Byte() (int8, error) {
	n, err := r.integral("byte", math.MinInt8, math.MaxInt8)
	return int8(n), err
}

func (r *Reader) Short() (int16, error) {
	n, err := r.integral("short", math.MinInt16, math.MaxInt16)
	return int16(n), err
}

func (r *Reader) Int() (int32, error) {
	n, err := r.integral("int", math.MinInt32, math.MaxInt32)
	return int32(n), err
}

func (r *Reader) Long() (int64, error) {
	return r.integral("long", math.MinInt64, math.MaxInt64)
}

// integral narrows any integral event, or a whole FLOAT or DOUBLE, to the
// range [lo, hi].
func (r *Reader) integral(op string, lo, hi int64) (int64, error) {
	n, ok := value.Int64(r.val)
	if !ok {
		var f float64
		switch x := r.val.(type) {
		case value.Float:
			f = float64(x)
		case value.Double:
			f = float64(x)
		default:
			return 0, &TypeMismatchError{Op: op, Got: r.ev}
		}
		if !value.IsWholeDouble(f) {
			return 0, &TypeMismatchError{Op: op, Got: r.ev, Msg: "value has a fraction"}
		}
		n = int64(f)
	}
	if n < lo || n > hi {
		return 0, &TypeMismatchError{Op: op, Got: r.ev, Msg: "value out of range"}
	}
	return n, nil
}

// Float returns any numeric value as a float32.
func (r *Reader) Float() (float32, error) {
	f, ok := value.Float64(r.val)
	if !ok {
		return 0, &TypeMismatchError{Op: "float", Got: r.ev}
	}
	if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return 0, &TypeMismatchError{Op: "float", Got: r.ev, Msg: "value out of range"}
	}
	return float32(f), nil
}

// Double returns any numeric value as a float64.
func (r *Reader) Double() (float64, error) {
	f, ok := value.Float64(r.val)
	if !ok {
		return 0, &TypeMismatchError{Op: "double", Got: r.ev}
	}
	return f, nil
}

// Decimal returns a DECIMAL, or an integral or floating point value
// converted exactly.
func (r *Reader) Decimal() (value.Decimal, error) {
	d, err := decimalOf(r.val)
	if errors.Is(err, errConversion) {
		return value.Decimal{}, &TypeMismatchError{Op: "decimal", Got: r.ev}
	}
	if err != nil {
		return value.Decimal{}, &TypeMismatchError{Op: "decimal", Got: r.ev, Msg: err.Error()}
	}
	return d, nil
}

func (r *Reader) Date() (value.Date, error) {
	return scalarAs[value.Date](r, "date")
}

func (r *Reader) Time() (value.Time, error) {
	return scalarAs[value.Time](r, "time")
}

func (r *Reader) Timestamp() (value.Timestamp, error) {
	return scalarAs[value.Timestamp](r, "timestamp")
}

func (r *Reader) Interval() (value.Interval, error) {
	return scalarAs[value.Interval](r, "interval")
}

// Binary returns the current BINARY value. The slice is not shared with
// the reader.
func (r *Reader) Binary() ([]byte, error) {
	v, err := scalarAs[value.Binary](r, "binary")
	return []byte(v), err
}
