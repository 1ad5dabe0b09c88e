// Package types defines the semantic value types of a document and the
// static tables that map them onto wire tags.
//
// Intrinsic JSON types (null, boolean, string, double, map, array) travel
// untagged. Every other type is an extended type and is encoded as a single
// member object whose key is the type's tag, e.g.
//
//	{"$dateDay": "2015-01-21"}
package types

import "fmt"

// Type is the semantic type of a document value.
type Type int

const (
	Null Type = iota
	Boolean
	String
	Byte
	Short
	Int
	Long
	Float
	Double
	Decimal
	Date
	Time
	Timestamp
	Interval
	Binary
	Map
	Array
)

var typeNames = [...]string{
	Null:      "NULL",
	Boolean:   "BOOLEAN",
	String:    "STRING",
	Byte:      "BYTE",
	Short:     "SHORT",
	Int:       "INT",
	Long:      "LONG",
	Float:     "FLOAT",
	Double:    "DOUBLE",
	Decimal:   "DECIMAL",
	Date:      "DATE",
	Time:      "TIME",
	Timestamp: "TIMESTAMP",
	Interval:  "INTERVAL",
	Binary:    "BINARY",
	Map:       "MAP",
	Array:     "ARRAY",
}

// Types returns all types in declaration order.
func Types() []Type {
	res := make([]Type, len(typeNames))
	for i := range typeNames {
		res[i] = Type(i)
	}
	return res
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func (t Type) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("unknown type %d", int(t))
	}
	return []byte(typeNames[t]), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	k := string(d)
	for i, name := range typeNames {
		if name == k {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("unknown type %q", k)
}

// IsExtended reports whether values of t are wire encoded with a tag.
func (t Type) IsExtended() bool {
	switch t {
	case Null, Boolean, String, Double, Map, Array:
		return false
	}
	return true
}

// IsIntegral reports whether t is one of the fixed width integer types.
func (t Type) IsIntegral() bool {
	switch t {
	case Byte, Short, Int, Long:
		return true
	}
	return false
}

// IsNumeric reports whether t is an integral or floating point type.
func (t Type) IsNumeric() bool {
	return t.IsIntegral() || t == Float || t == Double
}

func (t Type) IsContainer() bool {
	return t == Map || t == Array
}
