package stream

import (
	"fmt"

	"github.com/signadot/go-ojai/types"
)

// EventType is what a Reader reports for each step through a document.
// Container boundaries have their own events; every scalar is a single
// event named after its type, including extended types which arrive on the
// wire as tagged objects.
type EventType int

const (
	EventStartMap EventType = iota
	EventEndMap
	EventStartArray
	EventEndArray
	EventNull
	EventBoolean
	EventString
	EventByte
	EventShort
	EventInt
	EventLong
	EventFloat
	EventDouble
	EventDecimal
	EventDate
	EventTime
	EventTimestamp
	EventInterval
	EventBinary
)

var eventNames = [...]string{
	EventStartMap:   "START_MAP",
	EventEndMap:     "END_MAP",
	EventStartArray: "START_ARRAY",
	EventEndArray:   "END_ARRAY",
	EventNull:       "NULL",
	EventBoolean:    "BOOLEAN",
	EventString:     "STRING",
	EventByte:       "BYTE",
	EventShort:      "SHORT",
	EventInt:        "INT",
	EventLong:       "LONG",
	EventFloat:      "FLOAT",
	EventDouble:     "DOUBLE",
	EventDecimal:    "DECIMAL",
	EventDate:       "DATE",
	EventTime:       "TIME",
	EventTimestamp:  "TIMESTAMP",
	EventInterval:   "INTERVAL",
	EventBinary:     "BINARY",
}

var eventTypes = [...]types.Type{
	EventStartMap:   types.Map,
	EventEndMap:     types.Map,
	EventStartArray: types.Array,
	EventEndArray:   types.Array,
	EventNull:       types.Null,
	EventBoolean:    types.Boolean,
	EventString:     types.String,
	EventByte:       types.Byte,
	EventShort:      types.Short,
	EventInt:        types.Int,
	EventLong:       types.Long,
	EventFloat:      types.Float,
	EventDouble:     types.Double,
	EventDecimal:    types.Decimal,
	EventDate:       types.Date,
	EventTime:       types.Time,
	EventTimestamp:  types.Timestamp,
	EventInterval:   types.Interval,
	EventBinary:     types.Binary,
}

func (t EventType) valid() bool {
	return t >= 0 && int(t) < len(eventNames)
}

func (t EventType) String() string {
	if !t.valid() {
		return "Unknown"
	}
	return eventNames[t]
}

func (t EventType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("unknown event type %d", int(t))
	}
	return []byte(eventNames[t]), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	k := string(d)
	for i, name := range eventNames {
		if name == k {
			*t = EventType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", k)
}

// Type returns the value type the event carries. Both boundaries of a
// container map to the container's type.
func (t EventType) Type() types.Type {
	return eventTypes[t]
}

func (t EventType) IsStart() bool {
	return t == EventStartMap || t == EventStartArray
}

func (t EventType) IsEnd() bool {
	return t == EventEndMap || t == EventEndArray
}

func (t EventType) IsScalar() bool {
	return t.valid() && t > EventEndArray
}

// EventTypeOf returns the scalar event for t, or the start event for a
// container type.
func EventTypeOf(t types.Type) EventType {
	switch t {
	case types.Map:
		return EventStartMap
	case types.Array:
		return EventStartArray
	}
	for i := EventNull; int(i) < len(eventTypes); i++ {
		if eventTypes[i] == t {
			return i
		}
	}
	panic(fmt.Sprintf("stream: no event for type %s", t))
}
