// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"

	"strdb/internal/match"
)

// Flag names shared by the CLI definition and Load.
const (
	FlagFormat      = "format"
	FlagDebug       = "debug"
	FlagSilent      = "silent"
	FlagColor       = "color"
	FlagCacheSize   = "cache-size"
	FlagMetricsFile = "metrics-file"
	FlagFailEmpty   = "fail-empty"
)

// Config is the resolved run configuration: flags, then STRDB_* env vars
// (a .env file in the working directory is loaded first), then defaults.
type Config struct {
	Input       string
	Format      string
	Debug       bool
	Silent      bool
	Color       bool
	CacheSize   int
	MetricsFile string
	FailEmpty   bool
}

func Default() Config {
	return Config{Format: "text", CacheSize: match.DefaultCacheSize}
}

// Flags returns the global flags Load reads.
func Flags(formats []string) []cli.Flag {
	d := Default()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagFormat,
			Aliases: []string{"o"},
			Usage:   fmt.Sprintf("report format: %v", formats),
			Value:   d.Format,
			EnvVars: []string{"STRDB_FORMAT"},
		},
		&cli.BoolFlag{
			Name:    FlagDebug,
			Usage:   "enable debug logging",
			EnvVars: []string{"STRDB_DEBUG"},
		},
		&cli.BoolFlag{
			Name:    FlagSilent,
			Usage:   "disable logging",
			EnvVars: []string{"STRDB_SILENT"},
		},
		&cli.BoolFlag{
			Name:    FlagColor,
			Usage:   "colorize text tables",
			EnvVars: []string{"STRDB_COLOR"},
		},
		&cli.IntFlag{
			Name:    FlagCacheSize,
			Usage:   "number of STR units whose occurrence totals are memoised",
			Value:   d.CacheSize,
			EnvVars: []string{"STRDB_CACHE_SIZE"},
		},
		&cli.StringFlag{
			Name:    FlagMetricsFile,
			Usage:   "write Prometheus metrics in textfile format to this path",
			EnvVars: []string{"STRDB_METRICS_FILE"},
		},
		&cli.BoolFlag{
			Name:    FlagFailEmpty,
			Usage:   "exit 1 when the command's result is empty",
			EnvVars: []string{"STRDB_FAIL_EMPTY"},
		},
	}
}

// Load resolves the configuration for one command invocation. The database
// path is the first positional argument ("-" for stdin).
func Load(cctx *cli.Context, formats []string) (Config, error) {
	c := Config{
		Input:       cctx.Args().First(),
		Format:      cctx.String(FlagFormat),
		Debug:       cctx.Bool(FlagDebug),
		Silent:      cctx.Bool(FlagSilent),
		Color:       cctx.Bool(FlagColor),
		CacheSize:   cctx.Int(FlagCacheSize),
		MetricsFile: cctx.String(FlagMetricsFile),
		FailEmpty:   cctx.Bool(FlagFailEmpty),
	}
	return c, c.Validate(formats)
}

func (c Config) Validate(formats []string) error {
	switch {
	case c.Input == "":
		return errors.New("a database file argument is required (use - for stdin)")
	case !slices.Contains(formats, c.Format):
		return fmt.Errorf("invalid --format %q", c.Format)
	case c.CacheSize < 0:
		return errors.New("--cache-size must be ≥ 0")
	case c.Debug && c.Silent:
		return errors.New("--debug conflicts with --silent")
	}
	return nil
}
