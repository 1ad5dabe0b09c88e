package stream

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/signadot/go-ojai/types"
	"github.com/signadot/go-ojai/value"
)

var errBadWireValue = errors.New("invalid wire value")

// decodeExtended converts the value member of a collapsed tag object.
// Integral and interval tags accept a number or a string holding one;
// temporal tags accept their text form, and TIME and TIMESTAMP also a
// millisecond count.
func decodeExtended(typ types.Type, tok jsontext.Token) (value.Value, error) {
	k := tok.Kind()
	if k != '"' && k != '0' {
		return nil, fmt.Errorf("%w: %s needs a string or number, got %s", errBadWireValue, typ, k)
	}
	s := tok.String()
	switch typ {
	case types.Byte:
		n, err := parseIntegral(s, 8)
		return value.Byte(n), err
	case types.Short:
		n, err := parseIntegral(s, 16)
		return value.Short(n), err
	case types.Int:
		n, err := parseIntegral(s, 32)
		return value.Int(n), err
	case types.Long:
		n, err := parseIntegral(s, 64)
		return value.Long(n), err
	case types.Interval:
		n, err := parseIntegral(s, 64)
		return value.Interval(n), err
	case types.Float:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", errBadWireValue, typ, err)
		}
		return value.Float(f), nil
	case types.Decimal:
		d, err := value.ParseDecimal(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", errBadWireValue, typ, err)
		}
		return d, nil
	case types.Date:
		if k != '"' {
			break
		}
		return value.ParseDate(s)
	case types.Time:
		if k == '0' {
			n, err := parseIntegral(s, 32)
			if err != nil || n < 0 || n >= 24*60*60*1000 {
				return nil, fmt.Errorf("%w: %s out of range: %s", errBadWireValue, typ, s)
			}
			return value.Time(n), nil
		}
		return value.ParseTime(s)
	case types.Timestamp:
		if k == '0' {
			n, err := parseIntegral(s, 64)
			return value.Timestamp(n), err
		}
		return value.ParseTimestamp(s)
	case types.Binary:
		if k != '"' {
			break
		}
		b, err := value.ParseBinary(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", errBadWireValue, typ, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: cannot decode %s from %s", errBadWireValue, typ, k)
}

// parseIntegral parses a signed integer of the given width. Numbers
// written with a fraction or exponent are accepted when they are whole.
func parseIntegral(s string, bits int) (int64, error) {
	n, err := strconv.ParseInt(s, 10, bits)
	if err == nil {
		return n, nil
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return 0, fmt.Errorf("%w: %s out of range for %d bits", errBadWireValue, s, bits)
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || !value.IsWholeDouble(f) {
		return 0, fmt.Errorf("%w: %q is not an integer", errBadWireValue, s)
	}
	lim := math.Ldexp(1, bits-1)
	if f < -lim || f >= lim {
		return 0, fmt.Errorf("%w: %s out of range for %d bits", errBadWireValue, s, bits)
	}
	return int64(f), nil
}

// wireValue is the member value of a tagged object: a token, or a raw
// number literal when raw is set.
type wireValue struct {
	tok jsontext.Token
	raw string
}

// encodeExtended returns the wire form of an extended scalar.
func encodeExtended(v value.Value) (wireValue, error) {
	switch x := v.(type) {
	case value.Byte, value.Short, value.Int, value.Long:
		n, _ := value.Int64(x)
		return wireValue{tok: jsontext.Int(n)}, nil
	case value.Float:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return wireValue{}, fmt.Errorf("cannot encode float %v", f)
		}
		return wireValue{raw: strconv.FormatFloat(f, 'g', -1, 32)}, nil
	case value.Decimal:
		return wireValue{tok: jsontext.String(x.String())}, nil
	case value.Date:
		return wireValue{tok: jsontext.String(x.String())}, nil
	case value.Time:
		return wireValue{tok: jsontext.String(x.String())}, nil
	case value.Timestamp:
		return wireValue{tok: jsontext.String(x.String())}, nil
	case value.Interval:
		return wireValue{tok: jsontext.Int(int64(x))}, nil
	case value.Binary:
		return wireValue{tok: jsontext.String(x.String())}, nil
	}
	return wireValue{}, fmt.Errorf("%s is not an extended type", v.Type())
}

// doubleToken returns the canonical token for a double: whole numbers in
// the int64 range carry no fraction.
func doubleToken(f float64) (jsontext.Token, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return jsontext.Token{}, fmt.Errorf("cannot encode double %v", f)
	}
	if value.IsWholeDouble(f) {
		return jsontext.Int(int64(f)), nil
	}
	return jsontext.Float(f), nil
}
