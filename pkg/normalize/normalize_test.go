package normalize

import (
	"testing"

	"github.com/sunshineplan/nftables-geoip/pkg/geoip"
	"gotest.tools/assert"
)

func TestText(t *testing.T) {
	tests := []struct{ in, out string }{
		{"Côte d'Ivoire, Region [A]", "cote_d'ivoire_region_a"},
		{"CN", "cn"},
		{"1.2.3.0-1.2.3.255", "1.2.3.0-1.2.3.255"},
		{"São Tomé and Príncipe", "sao_tome_and_principe"},
		{"Åland", "aland"},
		{"ﬁle", "file"},
		{"[a,b]", "ab"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.out, Text(tc.in), tc.in)
	}
}

func TestTextIdempotent(t *testing.T) {
	for _, s := range []string{
		"Côte d'Ivoire, Region [A]", "Réunion", "  x  ", "Curaçao", "CN",
	} {
		once := Text(s)
		assert.Equal(t, once, Text(once), s)
	}
}

func TestMapping(t *testing.T) {
	m := geoip.NewMapping()
	m.Set("3.3.3.0-3.3.3.255", "CN")
	m.Set("Zürich [X]", "Schweiz, Süd")
	m.Set("1.1.1.1", "CN")
	got, err := Mapping(m)
	assert.NilError(t, err)
	assert.DeepEqual(t,
		[]string{"3.3.3.0-3.3.3.255", "zurich_x", "1.1.1.1"}, got.Keys())
	v, _ := got.Get("zurich_x")
	assert.Equal(t, "schweiz_sud", v)
	v, _ = got.Get("1.1.1.1")
	assert.Equal(t, "cn", v)
}

func TestMappingEmpty(t *testing.T) {
	for _, pair := range [][2]string{{"", "CN"}, {"1.1.1.1", ""}} {
		m := geoip.NewMapping()
		m.Set("2.2.2.2", "CN")
		m.Set(pair[0], pair[1])
		_, err := Mapping(m)
		assert.Equal(t, ErrEmpty, err)
	}
	assert.ErrorContains(t, ErrEmpty, "BUG:")
}
