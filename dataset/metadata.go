package dataset

import (
	"fmt"
	"strings"

	"github.com/opd-ai/daffbind/interfaces"
)

// MetadataEntry is one typed key/value pair.
type MetadataEntry struct {
	Key   string
	Type  interfaces.MetadataType
	Value any
}

// Metadata is an ordered key/value table. Keys are matched
// case-insensitively and keep the spelling they were first set with.
type Metadata struct {
	entries []MetadataEntry
	index   map[string]int
}

// NewMetadata creates an empty table.
func NewMetadata() *Metadata {
	return &Metadata{index: make(map[string]int)}
}

// Set stores value under key. The Go type of value must match t: bool,
// int, float64 or string. An existing key is overwritten in place.
func (m *Metadata) Set(key string, t interfaces.MetadataType, value any) error {
	if key == "" {
		return fmt.Errorf("metadata key must not be empty")
	}
	if !valueMatches(t, value) {
		return fmt.Errorf("%w: key %q declared %s, value is %T", ErrTypeMismatch, key, t, value)
	}

	e := MetadataEntry{Key: key, Type: t, Value: value}
	lk := strings.ToLower(key)
	if i, ok := m.index[lk]; ok {
		e.Key = m.entries[i].Key
		m.entries[i] = e
		return nil
	}
	m.index[lk] = len(m.entries)
	m.entries = append(m.entries, e)
	return nil
}

func (m *Metadata) SetBool(key string, v bool)     { _ = m.Set(key, interfaces.MetadataBool, v) }
func (m *Metadata) SetInt(key string, v int)       { _ = m.Set(key, interfaces.MetadataInt, v) }
func (m *Metadata) SetFloat(key string, v float64) { _ = m.Set(key, interfaces.MetadataFloat, v) }
func (m *Metadata) SetString(key string, v string) { _ = m.Set(key, interfaces.MetadataString, v) }

func valueMatches(t interfaces.MetadataType, v any) bool {
	switch v.(type) {
	case bool:
		return t == interfaces.MetadataBool
	case int:
		return t == interfaces.MetadataInt
	case float64:
		return t == interfaces.MetadataFloat
	case string:
		return t == interfaces.MetadataString
	default:
		return false
	}
}

// Len returns the number of entries.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the entries in insertion order.
func (m *Metadata) Entries() []MetadataEntry {
	if m == nil {
		return nil
	}
	out := make([]MetadataEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Metadata) lookup(key string) (MetadataEntry, bool) {
	if m == nil {
		return MetadataEntry{}, false
	}
	i, ok := m.index[strings.ToLower(key)]
	if !ok {
		return MetadataEntry{}, false
	}
	return m.entries[i], true
}

// HasKey reports whether key is present.
func (m *Metadata) HasKey(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// KeyType returns the declared type of key.
func (m *Metadata) KeyType(key string) (interfaces.MetadataType, bool) {
	e, ok := m.lookup(key)
	return e.Type, ok
}

// Bool returns a boolean value.
func (m *Metadata) Bool(key string) (bool, error) {
	e, err := m.get(key)
	if err != nil {
		return false, err
	}
	if v, ok := e.Value.(bool); ok {
		return v, nil
	}
	return false, mismatch(e, interfaces.MetadataBool)
}

// Int returns an integer value. Float values are truncated.
func (m *Metadata) Int(key string) (int, error) {
	e, err := m.get(key)
	if err != nil {
		return 0, err
	}
	switch v := e.Value.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	}
	return 0, mismatch(e, interfaces.MetadataInt)
}

// Float returns a floating point value. Integer values are widened.
func (m *Metadata) Float(key string) (float64, error) {
	e, err := m.get(key)
	if err != nil {
		return 0, err
	}
	switch v := e.Value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, mismatch(e, interfaces.MetadataFloat)
}

// String returns a string value.
func (m *Metadata) String(key string) (string, error) {
	e, err := m.get(key)
	if err != nil {
		return "", err
	}
	if v, ok := e.Value.(string); ok {
		return v, nil
	}
	return "", mismatch(e, interfaces.MetadataString)
}

func (m *Metadata) get(key string) (MetadataEntry, error) {
	e, ok := m.lookup(key)
	if !ok {
		return e, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return e, nil
}

func mismatch(e MetadataEntry, want interfaces.MetadataType) error {
	return fmt.Errorf("%w: key %q is %s, requested %s", ErrTypeMismatch, e.Key, e.Type, want)
}
