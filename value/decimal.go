package value

import (
	"github.com/cockroachdb/apd/v3"
)

// Decimal is an arbitrary precision decimal. Sign, digits and scale are
// kept exactly as written.
type Decimal struct {
	*apd.Decimal
}

// ParseDecimal parses a decimal literal such as "-12.50" or "1E+3".
func ParseDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{d}, nil
}

// MustDecimal is like ParseDecimal but panics on error.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) String() string {
	if d.Decimal == nil {
		return "0"
	}
	return d.Decimal.String()
}

// Identical reports whether d and o have the same value and scale, so that
// 1.5 and 1.50 differ.
func (d Decimal) Identical(o Decimal) bool {
	if d.Decimal == nil || o.Decimal == nil {
		return d.Decimal == o.Decimal
	}
	return d.Cmp(o.Decimal) == 0 && d.Exponent == o.Exponent
}
