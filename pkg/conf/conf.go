package conf

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/octago/sflags"
	"github.com/octago/sflags/gen/gpflag"
	flag "github.com/spf13/pflag"
	"github.com/sunshineplan/nftables-geoip/pkg/dbip"
	"github.com/sunshineplan/nftables-geoip/pkg/fileop"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Config holds program flags.
type Config struct {
	FileAddress string        `flag:"file-address" desc:"Path to db-ip.com lite csv file with ipv4 and ipv6 geoip information"`
	Download    bool          `flag:"download d" desc:"Fetch geoip data from db-ip.com. This option overrides --file-address"`
	OutputDir   string        `flag:"output-dir o" desc:"Existing directory where downloads and output will be saved. If not specified, working directory"`
	Country     string        `flag:"country c" desc:"Two letter code of country"`
	Mark        uint32        `flag:"mark m" desc:"Mark assigned to addresses of country"`
	MapName     string        `flag:"map-name" desc:"Name of generated nftables map"`
	OutputFile  string        `flag:"output-file" desc:"Name of output file in output directory"`
	URL         string        `flag:"url" desc:"Download URL, {month} is replaced by current year and month"`
	Timeout     time.Duration `flag:"timeout" desc:"Timeout for download, 0 means no timeout"`
	StrictLast  bool          `flag:"strict-last" desc:"Ignore rows where last address of range isn't valid IPv4 either"`
	Quiet       bool          `flag:"quiet q" desc:"Don't print progress messages"`
	ConfigFile  string        `flag:"config" desc:"Read default values of options from this YAML file"`
}

const configFlag = "config"

func defaultOptions(fs *flag.FlagSet) *Config {
	cfg := &Config{
		// China has been the only country until making it configurable.
		Country:    "CN",
		Mark:       156,
		MapName:    "chinaip4",
		OutputFile: "chinaip-ipv4.nft",

		URL: dbip.DefaultURL,

		// Wait forever for a slow download.
		Timeout: 0,
	}
	err := gpflag.ParseTo(cfg, fs, sflags.FlagDivider("-"))
	if err != nil {
		panic(err)
	}
	return cfg
}

// Reads "key: value" pairs from YAML file.
// Values must be scalars.
func readConfig(filename string) (map[string]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Failed to read config file %s: %v", filename, err)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("Failed to parse config file %s: %v", filename, err)
	}
	result := make(map[string]string)
	for key, val := range raw {
		switch val.(type) {
		case nil, map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("Invalid value for %s in %s", key, filename)
		}
		result[key] = fmt.Sprint(val)
	}
	return result, nil
}

// parseFile parses the specified configuration file and populates unset
// flags in fs based on the contents of the file.
func parseFile(filename string, fs *flag.FlagSet) error {
	config, err := readConfig(filename)
	if err != nil {
		return err
	}
	isSet := make(map[*flag.Flag]bool)
	fs.Visit(func(f *flag.Flag) {
		isSet[f] = true
	})
	var errs []error
	fs.VisitAll(func(f *flag.Flag) {
		if f.Name == configFlag {
			return
		}
		val, found := config[f.Name]
		if !found {
			return
		}
		delete(config, f.Name)
		if isSet[f] {
			return
		}
		if err := f.Value.Set(val); err != nil {
			errs = append(errs,
				fmt.Errorf("Invalid value for %s in %s: %s", f.Name, filename, val))
		}
	})
	if len(errs) > 0 {
		return errs[0]
	}
	if len(config) > 0 {
		names := maps.Keys(config)
		slices.Sort(names)
		return fmt.Errorf("Invalid keyword in %s: %s", filename, names[0])
	}
	return nil
}

var countryCode = regexp.MustCompile(`^[A-Z]{2}$`)
var mapName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (c *Config) check() error {
	c.Country = strings.ToUpper(strings.TrimSpace(c.Country))
	if !countryCode.MatchString(c.Country) {
		return fmt.Errorf("Invalid country code: %q", c.Country)
	}
	if !mapName.MatchString(c.MapName) {
		return fmt.Errorf("Invalid name of map: %q", c.MapName)
	}
	if c.OutputFile == "" || strings.ContainsRune(c.OutputFile, os.PathSeparator) {
		return fmt.Errorf("Invalid name of output file: %q", c.OutputFile)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("Invalid timeout: %v", c.Timeout)
	}
	if c.OutputDir != "" && !fileop.IsDir(c.OutputDir) {
		return errors.New(
			"Specified output directory does not exist or is not a directory")
	}
	if !c.Download && c.FileAddress == "" {
		return errors.New("Missing geoip address csv file." +
			" You can instead download it using --download.")
	}
	return nil
}

// Parse reads flags from args into a new Config.
// Flags not given in args are taken from file of option --config.
// Positional arguments are not allowed.
// Returned error is flag.ErrHelp if help was requested.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := defaultOptions(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf("Unexpected argument: %s", fs.Arg(0))
	}
	if cfg.ConfigFile != "" {
		if err := parseFile(cfg.ConfigFile, fs); err != nil {
			return nil, err
		}
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}
