// Package cmd implements the fia command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/bondyield"
	"github.com/etnz/bondyield/date"
	"github.com/etnz/bondyield/store/jsonl"
	"github.com/etnz/bondyield/store/postgres"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "fia.toml", "Path to the configuration file (TOML)")
var dataDir = flag.String("data", "", "Path to a JSONL dataset directory, overrides the configured store")
var verbose = flag.Bool("v", false, "Log debug information on stderr")

// output receives the rendered reports.
var output io.Writer = os.Stdout

// app is what every report command needs.
type app struct {
	cfg    *Config
	log    zerolog.Logger
	engine *bondyield.CachedEngine
	close  func() error
}

// newApp loads the configuration and opens the data source.
func newApp() (*app, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.Store.Kind, cfg.Store.Dir = "jsonl", *dataDir
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	log := NewLogger(cfg.Logging.Level, os.Stderr)

	opts, err := cfg.Engine.Options()
	if err != nil {
		return nil, err
	}
	src, closer, err := openSource(cfg.Store)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("store", cfg.Store.Kind).Msg("source opened")
	engine := bondyield.NewEngine(src, bondyield.WithOptions(opts), bondyield.WithLogger(log))
	return &app{
		cfg:    cfg,
		log:    log,
		engine: bondyield.NewCachedEngine(engine, bondyield.NewMapCache()),
		close:  closer,
	}, nil
}

// openSource opens the configured store.
func openSource(c StoreConfig) (bondyield.Source, func() error, error) {
	switch c.Kind {
	case "jsonl", "":
		s, err := jsonl.Open(c.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case "postgres":
		if c.DSN == "" {
			return nil, nil, fmt.Errorf("store.dsn is required for a postgres store")
		}
		s, err := postgres.Open(c.DSN, c.Tables)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", c.Kind)
	}
}

// reportFlags are the flags shared by report commands.
type reportFlags struct {
	period string
	start  string
	end    string
	scope  string
	codes  string
	raw    bool

	cfg *Config // loaded by run
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) { r.setFlags(f, "month") }

func (r *reportFlags) setFlags(f *flag.FlagSet, period string) {
	f.StringVar(&r.period, "p", period, "Predefined period to date (day, month, quarter, year), ignored with -s")
	f.StringVar(&r.start, "s", "", "Start date of the range")
	f.StringVar(&r.end, "e", date.Today().String(), "End date of the range")
	f.StringVar(&r.scope, "scope", "all", "Instrument scope (all, bonds, cds)")
	f.StringVar(&r.codes, "code", "", "Comma separated instrument codes, all held instruments by default")
	f.BoolVar(&r.raw, "raw", false, "Print plain markdown")
}

// request parses the flags into an engine request.
func (r *reportFlags) request() (bondyield.Request, error) {
	var req bondyield.Request
	end, err := date.Parse(r.end)
	if err != nil {
		return req, fmt.Errorf("end date: %w", err)
	}
	start := end
	if r.start != "" {
		if start, err = date.Parse(r.start); err != nil {
			return req, fmt.Errorf("start date: %w", err)
		}
	} else {
		p, err := date.ParsePeriod(r.period)
		if err != nil {
			return req, err
		}
		start = end.StartOf(p)
	}
	scope, err := bondyield.ParseScope(r.scope)
	if err != nil {
		return req, err
	}
	req = bondyield.Request{Range: date.NewRange(start, end), Scope: scope}
	for _, c := range strings.Split(r.codes, ",") {
		if c = strings.TrimSpace(c); c != "" {
			req.Codes = append(req.Codes, c)
		}
	}
	return req, nil
}

// run computes the report described by the flags, printing errors on stderr.
func (r *reportFlags) run(ctx context.Context) (*bondyield.Report, subcommands.ExitStatus) {
	req, err := r.request()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return nil, subcommands.ExitFailure
	}
	defer a.close()
	r.cfg = a.cfg
	if !req.Range.Valid() {
		a.log.Warn().Stringer("range", req.Range).Msg("start date after end date, the report is empty")
	}
	rep, err := a.engine.Run(ctx, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error computing attribution:", err)
		return nil, subcommands.ExitFailure
	}
	return rep, subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it as is when raw.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Fprint(output, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(160))
	if err != nil {
		fmt.Fprint(output, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(output, md)
		return
	}
	fmt.Fprint(output, out)
}
