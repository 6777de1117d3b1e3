package object

import "fmt"

// Entry is a single key/value pair in a Map.
type Entry struct {
	Key   Object
	Value Object
}

// Map is an immutable mapping from object keys to object values.
//
// Key comparison uses Go interface equality: scalar keys (String, Int,
// Float, Bool) match by value, all other objects match by handle identity.
// Iteration order is the insertion order of each key's first occurrence,
// regardless of map size.
type Map struct {
	entries []Entry
	index   map[Object]int
}

// NewMap builds a map from entries in order. A later entry with an existing
// key replaces that key's value in place, keeping its original position.
func NewMap(entries ...Entry) *Map {
	m := &Map{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[Object]int, len(entries)),
	}
	for _, e := range entries {
		m.put(e.Key, e.Value)
	}
	return m
}

// put is only called during construction, before the map is shared.
func (m *Map) put(key, value Object) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// TypeTag implements Object.
func (m *Map) TypeTag() Tag { return TagMap }

// Size returns the number of entries.
func (m *Map) Size() int { return len(m.entries) }

// Get returns the value stored under key.
func (m *Map) Get(key Object) (Object, error) {
	v, ok := m.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("map key %v: %w", key, ErrKeyNotFound)
	}
	return v, nil
}

// Lookup is the optional-returning variant of Get.
func (m *Map) Lookup(key Object) (Object, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Entries returns the entries in iteration order. The slice is a copy; keys
// and values are shared.
func (m *Map) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Set returns a new map with key bound to value. The receiver is unchanged;
// all other entries are shared.
func (m *Map) Set(key, value Object) *Map {
	out := &Map{
		entries: append([]Entry(nil), m.entries...),
		index:   make(map[Object]int, len(m.index)+1),
	}
	for k, i := range m.index {
		out.index[k] = i
	}
	out.put(key, value)
	return out
}
