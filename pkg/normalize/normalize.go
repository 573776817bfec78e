/*
Package normalize turns arbitrary Unicode text into lowercase tokens
without diacritics, that can be used as bare words in nftables files.
*/
package normalize

import (
	"errors"
	"strings"
	"unicode"

	"github.com/sunshineplan/nftables-geoip/pkg/geoip"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmpty is returned for an empty key or value.
// Rows read from CSV never have one, so this is an internal error.
var ErrEmpty = errors.New(
	"BUG: There is an empty string as key or value inside a mapping")

var replacer = strings.NewReplacer(" ", "_", "[", "", "]", "", ",", "")

// stripAccents removes accents and other nonspacing marks after
// compatibility decomposition.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Text returns normalized form of s.
func Text(s string) string {
	return replacer.Replace(strings.ToLower(stripAccents(s)))
}

// Mapping returns a new mapping with normalized keys and values
// in same order as m.
func Mapping(m *geoip.Mapping) (*geoip.Mapping, error) {
	result := geoip.NewMapping()
	err := m.Each(func(k, v string) error {
		if k == "" || v == "" {
			return ErrEmpty
		}
		result.Set(Text(k), Text(v))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
