package value

import (
	"iter"
	"strings"
)

// Map is an ordered set of named fields. Setting an existing name keeps its
// position.
type Map struct {
	names  []string
	values []Value
	index  map[string]int
}

func NewMap() *Map {
	return &Map{index: map[string]int{}}
}

func (m *Map) Len() int { return len(m.names) }

// Set adds or replaces the field name.
func (m *Map) Set(name string, v Value) {
	if m.index == nil {
		m.index = map[string]int{}
	}
	if i, ok := m.index[name]; ok {
		m.values[i] = v
		return
	}
	m.index[name] = len(m.names)
	m.names = append(m.names, name)
	m.values = append(m.values, v)
}

// Get returns the field with exactly this name.
func (m *Map) Get(name string) (Value, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.values[i], true
}

// GetFold returns the field with this name, falling back to the first
// field whose name matches case-insensitively.
func (m *Map) GetFold(name string) (Value, bool) {
	if v, ok := m.Get(name); ok {
		return v, true
	}
	for i, n := range m.names {
		if strings.EqualFold(n, name) {
			return m.values[i], true
		}
	}
	return nil, false
}

// Fields iterates in insertion order.
func (m *Map) Fields() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, n := range m.names {
			if !yield(n, m.values[i]) {
				return
			}
		}
	}
}

// Names returns the field names in insertion order.
func (m *Map) Names() []string {
	return append([]string(nil), m.names...)
}
