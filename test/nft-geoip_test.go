package nftgeoip_test

import (
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sunshineplan/nftables-geoip/pkg/nftgeoip"
	"github.com/sunshineplan/nftables-geoip/pkg/oslink"
	"github.com/sunshineplan/nftables-geoip/test/tstdata"
	"gotest.tools/assert"
)

func TestNftGeoip(t *testing.T) {
	for _, file := range tstdata.GetFiles("../testdata") {
		file := file // capture range variable
		t.Run(path.Base(file), func(t *testing.T) {
			l, err := tstdata.ParseFile(file)
			if err != nil {
				log.Fatal(err)
			}
			for _, descr := range l {
				descr := descr // capture range variable
				t.Run(descr.Title, func(t *testing.T) {
					if descr.Todo {
						t.Skip("skipping TODO test")
					}
					geoipTest(t, descr)
				})
			}
		})
	}
}

func now() time.Time { return time.Date(2019, time.March, 5, 9, 7, 0, 0, time.Local) }

func geoipTest(t *testing.T, d *tstdata.Descr) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	args := []string{"PROGRAM", "-q", "-o", outDir}
	if d.Input != "NONE\n" && d.Input != "NONE" {
		inFile := filepath.Join(inDir, "INPUT")
		if err := os.WriteFile(inFile, []byte(d.Input), 0644); err != nil {
			log.Fatal(err)
		}
		args = append(args, "--file-address", inFile)
	}
	args = append(args, strings.Fields(d.Options)...)

	var stdout, stderr strings.Builder
	status := nftgeoip.Main(oslink.Data{
		Args:   args,
		Stdout: &stdout,
		Stderr: &stderr,
		Now:    now,
	})
	errText := strings.ReplaceAll(stderr.String(), inDir+"/", "")
	entries, err := os.ReadDir(outDir)
	if err != nil {
		log.Fatal(err)
	}

	if status == 0 {
		if d.Error != "" {
			t.Error("Unexpected success")
			return
		}
		assert.Equal(t, "", errText)
		assert.Equal(t, 1, len(entries))
		data, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
		assert.NilError(t, err)
		if diff := cmp.Diff(d.Output, string(data)); diff != "" {
			t.Error(diff)
		}
	} else {
		if d.Error == "" {
			t.Errorf("Unexpected failure: %s", errText)
			return
		}
		re := regexp.MustCompile(`(?ms)\nUsage: .*`)
		errText = re.ReplaceAllString(errText, "\n")
		assert.Equal(t, d.Error, errText)
		// Nothing is written on failure.
		assert.Equal(t, 0, len(entries))
	}
	assert.Equal(t, "", stdout.String())
}
