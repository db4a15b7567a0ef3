// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"strdb/internal/config"
	"strdb/internal/loader"
	"strdb/internal/logging"
	"strdb/internal/match"
	"strdb/internal/metrics"
	"strdb/internal/query"
	"strdb/internal/store"
	"strdb/internal/version"
	"strdb/internal/writers"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitEmpty = 1 // --fail-empty and nothing to report
	ExitUsage = 2 // bad flags or unreadable/malformed input
	ExitIO    = 3 // writing the report failed

	ExitInterrupted = 130
)

// session is one loaded and flagged database.
type session struct {
	cfg     config.Config
	store   *store.Store
	engine  *match.Engine
	query   *query.Facade
	metrics *metrics.Metrics
	out     *bufio.Writer
}

func newApp(stdout, stderr io.Writer) *cli.App {
	formats := writers.Formats()
	return &cli.App{
		Name:      "strdb",
		Usage:     "flag and prune STR profiles that match two unknown DNA sequences",
		UsageText: "strdb [global options] command DATABASE",
		Version:   version.Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     config.Flags(formats),
		Commands: []*cli.Command{
			{
				Name:      "flag",
				Usage:     "flag profiles of interest and report every profile",
				ArgsUsage: "DATABASE",
				Action: func(cctx *cli.Context) error {
					return withSession(cctx, formats, func(s *session) (bool, error) {
						r := writers.NewReport(s.store, s.engine)
						return r.Summary.OfInterest == 0, writers.WriteReport(s.cfg.Format, s.out, r)
					})
				},
			},
			{
				Name:      "count",
				Usage:     "count profiles by interest status",
				ArgsUsage: "DATABASE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "interest", Value: true, Usage: "count profiles of interest (--interest=false counts the rest)"},
				},
				Action: func(cctx *cli.Context) error {
					want := cctx.Bool("interest")
					return withSession(cctx, formats, func(s *session) (bool, error) {
						n := s.query.MatchingCount(want)
						return n == 0, writers.WriteCount(s.cfg.Format, s.out, want, n)
					})
				},
			},
			{
				Name:      "unmarked",
				Usage:     "list profiles not of interest in level order",
				ArgsUsage: "DATABASE",
				Action: func(cctx *cli.Context) error {
					return withSession(cctx, formats, func(s *session) (bool, error) {
						names := s.query.UnmarkedNames()
						return len(names) == 0, writers.WriteNames(s.cfg.Format, s.out, names)
					})
				},
			},
			{
				Name:      "cleanup",
				Usage:     "remove profiles not of interest and report the rest",
				ArgsUsage: "DATABASE",
				Action: func(cctx *cli.Context) error {
					return withSession(cctx, formats, func(s *session) (bool, error) {
						var pruned []string
						s.metrics.Time("prune", func() { pruned = s.query.Cleanup() })
						s.metrics.ProfilesPruned.Add(float64(len(pruned)))
						s.metrics.Stored.Set(float64(s.store.Len()))
						logger := logging.GetCtxLogger(logging.WithScope(cctx.Context, "cleanup"))
						logger.Debug().Int("pruned", len(pruned)).Int("remaining", s.store.Len()).Msg("pruned store")

						r := writers.NewReport(s.store, s.engine)
						r.Summary.Pruned = pruned
						return s.store.Len() == 0, writers.WriteReport(s.cfg.Format, s.out, r)
					})
				},
			},
			{
				Name:      "tree",
				Usage:     "draw the search tree shape (profiles of interest marked *); text format only",
				ArgsUsage: "DATABASE",
				Action: func(cctx *cli.Context) error {
					if f := cctx.String(config.FlagFormat); f != "text" && f != "tree" {
						return cli.Exit(fmt.Sprintf("tree: --format %q not supported (tree output is text only)", f), ExitUsage)
					}
					return withSession(cctx, formats, func(s *session) (bool, error) {
						return s.store.Len() == 0, writers.WriteReport("tree", s.out, writers.NewReport(s.store, nil))
					})
				},
			},
		},
		// Exit codes are mapped by RunContext; never let the library exit.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// withSession loads and flags the database named on the command line, runs fn
// and maps the outcome to an exit error. fn reports whether its result was
// empty.
func withSession(cctx *cli.Context, formats []string, fn func(*session) (bool, error)) error {
	cfg, err := config.Load(cctx, formats)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsage)
	}
	logging.InitLogger(logging.Options{Out: cctx.App.ErrWriter, Debug: cfg.Debug, Silent: cfg.Silent})
	if cfg.Color {
		pterm.EnableStyling()
	} else {
		pterm.DisableStyling()
	}

	ctx := cctx.Context
	logger := logging.GetCtxLogger(logging.WithScope(ctx, "app"))
	s := &session{
		cfg:     cfg,
		store:   store.New("", ""),
		engine:  match.New(match.Config{CacheSize: cfg.CacheSize}),
		metrics: metrics.New(),
		out:     bufio.NewWriter(cctx.App.Writer),
	}
	s.query = query.New(s.store)

	var d *loader.Dataset
	s.metrics.Time("load", func() { d, err = loader.LoadFile(ctx, cfg.Input) })
	if err != nil {
		return cli.Exit(err.Error(), ExitUsage)
	}
	d.Populate(ctx, s.store)
	s.metrics.ProfilesLoaded.Add(float64(len(d.People)))
	s.metrics.Stored.Set(float64(s.store.Len()))
	if err := ctx.Err(); err != nil {
		return err
	}

	var hits int
	s.metrics.Time("flag", func() { hits = s.engine.FlagAll(s.store) })
	s.metrics.Flagged.Set(float64(s.store.CountByInterest(true)))
	logger.Debug().Int("profiles", s.store.Len()).Int("met_threshold", hits).
		Int("height", s.store.Height()).Msg("flagged store")
	if err := ctx.Err(); err != nil {
		return err
	}

	empty, werr := fn(s)
	if werr == nil {
		werr = s.out.Flush()
	}
	s.recordCache()
	if cfg.MetricsFile != "" {
		if err := s.metrics.WriteFile(cfg.MetricsFile); err != nil {
			logger.Warn().Err(err).Str("path", cfg.MetricsFile).Msg("writing metrics")
		}
	}

	switch {
	case werr != nil && writers.IsBrokenPipe(werr):
		return nil
	case werr != nil:
		return cli.Exit(werr.Error(), ExitIO)
	case empty && cfg.FailEmpty:
		return cli.Exit("", ExitEmpty)
	}
	return nil
}

func (s *session) recordCache() {
	hits, misses := s.engine.Stats()
	s.metrics.CacheHits.Add(float64(hits))
	s.metrics.CacheMisses.Add(float64(misses))
}

// RunContext runs the CLI and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	err := a.RunContext(parent, append([]string{a.Name}, argv...))
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := err.Error(); msg != "" {
			_, _ = fmt.Fprintln(stderr, msg)
		}
		return ec.ExitCode()
	}
	_, _ = fmt.Fprintln(stderr, err)
	return ExitUsage
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
