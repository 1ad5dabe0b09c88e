package value

import (
	"bytes"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/go-ojai/fieldpath"
)

// Equal reports whether a and b have the same type and value. Map field
// order is ignored; decimals must agree in scale.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case Decimal:
		return x.Identical(b.(Decimal))
	case Binary:
		return bytes.Equal(x, b.(Binary))
	case Array:
		y := b.(Array)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Map:
		y := b.(*Map)
		if x.Len() != y.Len() {
			return false
		}
		for n, v := range x.Fields() {
			w, ok := y.Get(n)
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	}
	return a == b
}

// Lookup returns the value at p below v. Field names match exactly first,
// then case-insensitively. An unspecified index never matches.
func Lookup(v Value, p *fieldpath.FieldPath) (Value, bool) {
	for seg := range p.Segments() {
		switch x := v.(type) {
		case *Map:
			if !seg.IsNamed() {
				return nil, false
			}
			w, ok := x.GetFold(seg.Name())
			if !ok {
				return nil, false
			}
			v = w
		case Array:
			if !seg.HasIndex() || seg.Index() >= len(x) {
				return nil, false
			}
			v = x[seg.Index()]
		default:
			return nil, false
		}
	}
	return v, true
}

// JSONEqual reports whether two JSON texts encode the same value, ignoring
// member order and whitespace.
func JSONEqual(a, b []byte) bool {
	return jsonpatch.Equal(a, b)
}
