// Package value holds materialized document values.
//
// Value is a closed sum type: one Go type per semantic type in package
// types. Streaming code never needs these; they exist for callers which
// want a whole document, or a single scalar, in memory.
package value

import (
	"encoding/base64"
	"math"
	"strconv"

	"github.com/signadot/go-ojai/types"
)

// Value is implemented only by the types in this package.
type Value interface {
	Type() types.Type
	isValue()
}

type (
	Null     struct{}
	Bool     bool
	String   string
	Byte     int8
	Short    int16
	Int      int32
	Long     int64
	Float    float32
	Double   float64
	Interval int64
	Binary   []byte
	Array    []Value
)

func (Null) Type() types.Type      { return types.Null }
func (Bool) Type() types.Type      { return types.Boolean }
func (String) Type() types.Type    { return types.String }
func (Byte) Type() types.Type      { return types.Byte }
func (Short) Type() types.Type     { return types.Short }
func (Int) Type() types.Type       { return types.Int }
func (Long) Type() types.Type      { return types.Long }
func (Float) Type() types.Type     { return types.Float }
func (Double) Type() types.Type    { return types.Double }
func (Decimal) Type() types.Type   { return types.Decimal }
func (Date) Type() types.Type      { return types.Date }
func (Time) Type() types.Type      { return types.Time }
func (Timestamp) Type() types.Type { return types.Timestamp }
func (Interval) Type() types.Type  { return types.Interval }
func (Binary) Type() types.Type    { return types.Binary }
func (*Map) Type() types.Type      { return types.Map }
func (Array) Type() types.Type     { return types.Array }

func (Null) isValue()      {}
func (Bool) isValue()      {}
func (String) isValue()    {}
func (Byte) isValue()      {}
func (Short) isValue()     {}
func (Int) isValue()       {}
func (Long) isValue()      {}
func (Float) isValue()     {}
func (Double) isValue()    {}
func (Decimal) isValue()   {}
func (Date) isValue()      {}
func (Time) isValue()      {}
func (Timestamp) isValue() {}
func (Interval) isValue()  {}
func (Binary) isValue()    {}
func (*Map) isValue()      {}
func (Array) isValue()     {}

func (Null) String() string { return "null" }

// Milliseconds returns the interval length.
func (i Interval) Milliseconds() int64 { return int64(i) }

func (i Interval) String() string { return strconv.FormatInt(int64(i), 10) }

// String returns the standard base64 encoding of b.
func (b Binary) String() string { return base64.StdEncoding.EncodeToString(b) }

// ParseBinary decodes standard base64.
func ParseBinary(s string) (Binary, error) {
	d, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return Binary(d), nil
}

// Int64 returns the integral value of an integral v.
func Int64(v Value) (int64, bool) {
	switch x := v.(type) {
	case Byte:
		return int64(x), true
	case Short:
		return int64(x), true
	case Int:
		return int64(x), true
	case Long:
		return int64(x), true
	}
	return 0, false
}

// Float64 returns any numeric v widened to float64.
func Float64(v Value) (float64, bool) {
	switch x := v.(type) {
	case Float:
		return float64(x), true
	case Double:
		return float64(x), true
	case Decimal:
		f, err := x.Float64()
		return f, err == nil
	}
	if n, ok := Int64(v); ok {
		return float64(n), true
	}
	return 0, false
}

// IsWholeDouble reports whether f is written without a fraction: a finite
// whole number within the int64 range.
func IsWholeDouble(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}
