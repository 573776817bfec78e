package geoip

import (
	"golang.org/x/exp/slices"
)

// Mapping maps range keys to country codes and remembers the order
// in which keys were added first.
type Mapping struct {
	keys   []string
	values map[string]string
}

func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]string)}
}

// Set adds key with value.
// An existing key gets the new value but keeps its position.
func (m *Mapping) Set(key, value string) {
	if _, found := m.values[key]; !found {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Mapping) Get(key string) (string, bool) {
	v, found := m.values[key]
	return v, found
}

func (m *Mapping) Len() int { return len(m.keys) }

// Keys returns keys in insertion order.
func (m *Mapping) Keys() []string { return slices.Clone(m.keys) }

// Each calls f for each pair in insertion order and stops at the
// first error.
func (m *Mapping) Each(f func(key, value string) error) error {
	for _, k := range m.keys {
		if err := f(k, m.values[k]); err != nil {
			return err
		}
	}
	return nil
}
