package nftgeoip

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/sunshineplan/nftables-geoip/pkg/abort"
	"github.com/sunshineplan/nftables-geoip/pkg/conf"
	"github.com/sunshineplan/nftables-geoip/pkg/dbip"
	"github.com/sunshineplan/nftables-geoip/pkg/geoip"
	"github.com/sunshineplan/nftables-geoip/pkg/info"
	"github.com/sunshineplan/nftables-geoip/pkg/nft"
	"github.com/sunshineplan/nftables-geoip/pkg/normalize"
	"github.com/sunshineplan/nftables-geoip/pkg/oslink"
)

// Main runs the whole conversion and returns the exit status.
func Main(d oslink.Data) int {
	fs := pflag.NewFlagSet(d.Args[0], pflag.ContinueOnError)
	fs.SetOutput(d.Stderr)

	// Setup custom usage function.
	fs.Usage = func() {
		fmt.Fprintf(d.Stderr,
			"Usage: %s [options] --file-address FILE | --download\n"+
				"Creates nftables map of IPv4 addresses of a single country.\n%s",
			d.Args[0], fs.FlagUsages())
	}

	cfg, err := conf.Parse(fs, d.Args[1:])
	if err != nil {
		if err == pflag.ErrHelp {
			return 1
		}
		fmt.Fprintf(d.Stderr, "Error: %s\n", err)
		fs.Usage()
		return 1
	}

	if d.Now == nil {
		d.Now = time.Now
	}
	log := info.New(d.Stderr, cfg.Quiet, d.ShowDiag)
	if err := run(d, cfg, log); err != nil {
		if errors.Is(err, normalize.ErrEmpty) {
			return abort.Bug(d.Stderr, err)
		}
		return abort.Msg(d.Stderr, "%v", err)
	}
	return 0
}

func run(d oslink.Data, cfg *conf.Config, log zerolog.Logger) error {
	path := cfg.FileAddress
	if cfg.Download {
		url := dbip.URL(cfg.URL, d.Now())
		log.Info().Str("url", url).Msg("Downloading db-ip.com geoip csv file")
		f := &dbip.Fetcher{Client: &http.Client{Timeout: cfg.Timeout}, Log: log}
		var err error
		path, err = f.Fetch(context.Background(), url, cfg.OutputDir)
		if err != nil {
			return err
		}
	}
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("Can't %v", err)
	}
	defer in.Close()

	outPath := filepath.Join(cfg.OutputDir, cfg.OutputFile)
	log.Info().Msgf("Writing nftables map %s", outPath)
	flt := &geoip.Filter{Country: cfg.Country, StrictLast: cfg.StrictLast, Log: log}
	m, err := flt.Read(in)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if m.Len() == 0 {
		log.Info().Msgf("No IPv4 ranges found for country %s", cfg.Country)
	}
	m, err = normalize.Mapping(m)
	if err != nil {
		return err
	}
	nm := &nft.Map{
		Name:      cfg.MapName,
		KeyType:   "ipv4_addr",
		Mark:      cfg.Mark,
		Generator: filepath.Base(d.Args[0]),
		Time:      d.Now(),
	}
	if err := nm.WriteFile(outPath, m); err != nil {
		return err
	}
	log.Info().Int("elements", m.Len()).Msg("Done!")
	return nil
}
