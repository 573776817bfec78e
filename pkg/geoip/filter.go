package geoip

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Number of leading columns used from each row.
// Additional columns are ignored.
const numColumns = 3

var errColumns = fmt.Errorf("expected at least %d columns", numColumns)

// Filter selects rows of a single country from DB-IP CSV data.
type Filter struct {
	// Country is compared literally with the country column.
	Country string
	// StrictLast additionally drops rows whose last address
	// isn't a valid IPv4 address not lower than first address.
	StrictLast bool
	Log        zerolog.Logger
}

// Read reads CSV data from r and collects key of each accepted row
// with the country code as value.
func (f *Filter) Read(r io.Reader) (*Mapping, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	m := NewMapping()
	var total, otherCountry, invalid int
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &RowError{Line: pe.StartLine, Err: pe.Err}
			}
			return nil, err
		}
		total++
		line, _ := cr.FieldPos(0)
		if len(record) < numColumns {
			return nil, &RowError{
				Line: line, Record: append([]string(nil), record...), Err: errColumns}
		}
		e := Entry{First: record[0], Last: record[1], Country: record[2]}
		if e.Country != f.Country {
			otherCountry++
			continue
		}
		if !f.valid(e) {
			invalid++
			f.Log.Debug().Int("line", line).Str("first", e.First).
				Str("last", e.Last).Msg("Ignored row without IPv4 range")
			continue
		}
		m.Set(e.Key(), e.Country)
	}
	f.Log.Info().Int("rows", total).Int("other_country", otherCountry).
		Int("invalid", invalid).Int("accepted", m.Len()).
		Msgf("Read rows for country %s", f.Country)
	return m, nil
}

func (f *Filter) valid(e Entry) bool {
	first, ok := parseIPv4(e.First)
	if !ok {
		return false
	}
	if !f.StrictLast {
		return true
	}
	last, ok := parseIPv4(e.Last)
	return ok && !last.Less(first)
}
