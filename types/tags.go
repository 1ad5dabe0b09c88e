package types

import "fmt"

// Dialect selects the tag vocabulary used when encoding extended types.
//
// The OJAI dialect gives every integral width its own tag. The older
// Argonaut dialect folds BYTE, SHORT and INT onto $numberLong and has no
// float tag, so those widths do not survive a round trip through it.
type Dialect int

const (
	DialectOJAI Dialect = iota
	DialectArgonaut
)

func (d Dialect) String() string {
	switch d {
	case DialectOJAI:
		return "ojai"
	case DialectArgonaut:
		return "argonaut"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect accepts the names returned by Dialect.String plus "legacy"
// and "canonical".
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "ojai", "canonical", "":
		return DialectOJAI, nil
	case "argonaut", "legacy":
		return DialectArgonaut, nil
	}
	return 0, fmt.Errorf("unknown dialect %q", s)
}

const (
	TagByte      = "$numberByte"
	TagShort     = "$numberShort"
	TagInt       = "$numberInt"
	TagLong      = "$numberLong"
	TagFloat     = "$numberFloat"
	TagDecimal   = "$decimal"
	TagDate      = "$dateDay"
	TagTime      = "$time"
	TagTimestamp = "$date"
	TagInterval  = "$interval"
	TagBinary    = "$binary"
)

var ojaiTags = map[Type]string{
	Byte:      TagByte,
	Short:     TagShort,
	Int:       TagInt,
	Long:      TagLong,
	Float:     TagFloat,
	Decimal:   TagDecimal,
	Date:      TagDate,
	Time:      TagTime,
	Timestamp: TagTimestamp,
	Interval:  TagInterval,
	Binary:    TagBinary,
}

var argonautTags = map[Type]string{
	Byte:      TagLong,
	Short:     TagLong,
	Int:       TagLong,
	Long:      TagLong,
	Decimal:   TagDecimal,
	Date:      TagDate,
	Time:      TagTime,
	Timestamp: TagTimestamp,
	Interval:  TagInterval,
	Binary:    TagBinary,
}

// tag -> type for decoding; union of both dialects. $numberLong always
// decodes as LONG since the Argonaut dialect cannot tell widths apart.
var tagTypes = map[string]Type{
	TagByte:      Byte,
	TagShort:     Short,
	TagInt:       Int,
	TagLong:      Long,
	TagFloat:     Float,
	TagDecimal:   Decimal,
	TagDate:      Date,
	TagTime:      Time,
	TagTimestamp: Timestamp,
	TagInterval:  Interval,
	TagBinary:    Binary,
}

// Tag returns the wire tag for t in dialect d. ok is false for types which
// are written untagged in that dialect.
func Tag(t Type, d Dialect) (tag string, ok bool) {
	switch d {
	case DialectArgonaut:
		tag, ok = argonautTags[t]
	default:
		tag, ok = ojaiTags[t]
	}
	return
}

// TypeForTag returns the type encoded by a wire tag of either dialect.
func TypeForTag(tag string) (Type, bool) {
	t, ok := tagTypes[tag]
	return t, ok
}

// IsTag reports whether s is a registered tag of either dialect.
func IsTag(s string) bool {
	_, ok := tagTypes[s]
	return ok
}
