package nft

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sunshineplan/nftables-geoip/pkg/fileop"
	"github.com/sunshineplan/nftables-geoip/pkg/geoip"
)

// Layout of time stamp in header, like "%a %b %d %H:%M %Y" of C strftime.
const timeLayout = "Mon Jan 02 15:04 2006"

const attribution = "# IP Geolocation by DB-IP (https://db-ip.com)" +
	" licensed under CC-BY-SA 4.0"

// Map describes an nftables map of type interval, assigning a
// single mark to all its elements.
type Map struct {
	Name      string
	KeyType   string
	Mark      uint32
	Generator string
	Time      time.Time
}

func (m *Map) printHeader(w io.Writer) error {
	_, err := fmt.Fprintf(w, "# Generated by %s on %s\n%s\n\n",
		m.Generator, m.Time.Format(timeLayout), attribution)
	return err
}

// Print writes header comments and map definition to w.
// Each key of elems becomes an element of the map.
func (m *Map) Print(w io.Writer, elems *geoip.Mapping) error {
	if err := m.printHeader(w); err != nil {
		return err
	}
	mark := strconv.FormatUint(uint64(m.Mark), 10)
	lines := make([]string, 0, elems.Len())
	for _, k := range elems.Keys() {
		lines = append(lines, k+" : "+mark)
	}
	_, err := fmt.Fprintf(w,
		"map %s {\n"+
			"\ttype %s : mark\n"+
			"\tflags interval\n"+
			"\telements = {\n"+
			"\t\t%s\n"+
			"\t}\n"+
			"}\n",
		m.Name, m.KeyType, strings.Join(lines, ",\n\t\t"))
	return err
}

// WriteFile replaces file at path by output of Print.
func (m *Map) WriteFile(path string, elems *geoip.Mapping) error {
	var b bytes.Buffer
	if err := m.Print(&b, elems); err != nil {
		return err
	}
	return fileop.Overwrite(path, b.Bytes())
}
