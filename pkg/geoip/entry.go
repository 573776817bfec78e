package geoip

import (
	"fmt"
	"strings"

	"inet.af/netaddr"
)

// Entry is a single row of the DB-IP lite country CSV file.
type Entry struct {
	First   string
	Last    string
	Country string
}

// Key returns the key of e in the nftables map.
// nftables doesn't accept ranges with same start and end address,
// hence a single address is used as is.
func (e Entry) Key() string {
	if e.First == e.Last {
		return e.First
	}
	return e.First + "-" + e.Last
}

// parseIPv4 accepts only the canonical dotted quad form of an
// IPv4 address.
func parseIPv4(s string) (netaddr.IP, bool) {
	ip, err := netaddr.ParseIP(s)
	if err != nil || !ip.Is4() || ip.String() != s {
		return netaddr.IP{}, false
	}
	return ip, true
}

// IsIPv4 reports whether s is the canonical form of an IPv4 address.
func IsIPv4(s string) bool {
	_, ok := parseIPv4(s)
	return ok
}

// RowError describes a row of the CSV file that couldn't be read.
type RowError struct {
	Line   int
	Record []string
	Err    error
}

func (e *RowError) Error() string {
	if e.Record == nil {
		return fmt.Sprintf("Malformed row at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("Malformed row at line %d: %v: %s",
		e.Line, e.Err, strings.Join(e.Record, ","))
}

func (e *RowError) Unwrap() error { return e.Err }
