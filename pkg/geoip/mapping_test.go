package geoip

import (
	"errors"
	"testing"

	"gotest.tools/assert"
)

func TestMappingOrder(t *testing.T) {
	m := NewMapping()
	m.Set("b", "1")
	m.Set("a", "2")
	m.Set("c", "3")
	m.Set("a", "4")
	assert.Equal(t, 3, m.Len())
	assert.DeepEqual(t, []string{"b", "a", "c"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, "4", v)

	var got []string
	err := m.Each(func(k, v string) error {
		got = append(got, k+"="+v)
		return nil
	})
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"b=1", "a=4", "c=3"}, got)
}

func TestMappingKeysIsCopy(t *testing.T) {
	m := NewMapping()
	m.Set("x", "1")
	keys := m.Keys()
	keys[0] = "y"
	assert.DeepEqual(t, []string{"x"}, m.Keys())
}

func TestMappingEachStops(t *testing.T) {
	m := NewMapping()
	m.Set("a", "1")
	m.Set("b", "2")
	stop := errors.New("stop")
	n := 0
	err := m.Each(func(k, v string) error {
		n++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, n)
}
