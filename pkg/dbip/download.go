package dbip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

const (
	// DefaultURL points to the free country lite database.
	// "{month}" is replaced by year and month, e.g. "2024-05".
	DefaultURL = "https://download.db-ip.com/free/dbip-country-lite-{month}.csv.gz"

	ArchiveName = "dbip.csv.gz"
	CSVName     = "dbip.csv"

	userAgent = "nftables-geoip/1.0"
)

// URL returns download URL of database released for month of t.
func URL(template string, t time.Time) string {
	return strings.ReplaceAll(template, "{month}", t.Format("2006-01"))
}

// Fetcher downloads and unpacks the gzip compressed CSV file.
type Fetcher struct {
	Client *http.Client
	Log    zerolog.Logger
}

// Fetch downloads url to file ArchiveName in dir, decompresses it
// to file CSVName and removes the archive.
// It returns the name of the CSV file.
func (f *Fetcher) Fetch(ctx context.Context, url, dir string) (string, error) {
	archive := filepath.Join(dir, ArchiveName)
	if err := f.download(ctx, url, archive); err != nil {
		return "", fmt.Errorf(
			"Failed to download DB-IP lite geoip csv file: %w", err)
	}
	path := filepath.Join(dir, CSVName)
	if err := gunzip(archive, path); err != nil {
		return "", fmt.Errorf("Failed to unpack %s: %w", archive, err)
	}
	if err := os.Remove(archive); err != nil {
		return "", fmt.Errorf("Can't %w", err)
	}
	return path, nil
}

func (f *Fetcher) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	n, err := writeFile(path, resp.Body)
	if err != nil {
		return err
	}
	f.Log.Debug().Str("file", path).Int64("bytes", n).Msg("Saved archive")
	return nil
}

func gunzip(from, to string) error {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()
	zr, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer zr.Close()
	_, err = writeFile(to, zr)
	return err
}

func writeFile(path string, r io.Reader) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, r)
	if err != nil {
		out.Close()
		return n, err
	}
	return n, out.Close()
}
