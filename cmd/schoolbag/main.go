package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/schoolbag/internal/application"
	"github.com/eugenenazirov/schoolbag/internal/config"
	"github.com/eugenenazirov/schoolbag/internal/logging"
	"github.com/eugenenazirov/schoolbag/internal/manifest"
)

type cli struct {
	app *kingpin.Application

	configFile *string
	logLevel   *string

	pack        *kingpin.CmdClause
	listFiles   *[]string
	student     *string
	items       *[]string
	outputFile  *string
	locale      *string
	maxItems    *int
	maxItemsSet bool
	open        *bool
	dryRun      *bool

	inspect     *kingpin.CmdClause
	inspectFile *string
}

func newCLI() *cli {
	c := &cli{app: kingpin.New("schoolbag", "School bag packer - packs a student's bag, checks mandatory items and exports a report")}
	c.configFile = c.app.Flag("config", "Path to YAML configuration file").String()
	c.logLevel = c.app.Flag("log-level", "Log level (debug, info, warn, error)").String()

	c.pack = c.app.Command("pack", "Pack a bag from a packing list or --item flags and export the report").Default()
	c.listFiles = c.pack.Flag("list", "Path to YAML packing list (repeatable, one session each)").Strings()
	c.student = c.pack.Flag("student", "Student name (overrides the packing list)").String()
	c.items = c.pack.Flag("item", "Item to pack as name:weight (repeatable)").Strings()
	c.outputFile = c.pack.Flag("output", "Report file path").String()
	c.locale = c.pack.Flag("locale", "Message language (en, he)").String()
	c.maxItems = c.pack.Flag("max-items", "Bag capacity").IsSetByUser(&c.maxItemsSet).Int()
	c.open = c.pack.Flag("open", "Open the report in the default viewer after exporting (--no-open to skip)").Default("true").Bool()
	c.dryRun = c.pack.Flag("dry-run", "Keep the report in memory instead of writing it").Bool()

	c.inspect = c.app.Command("inspect", "Print a previously exported report")
	c.inspectFile = c.inspect.Arg("file", "Report file").Required().String()
	return c
}

// overrides maps parsed flags onto config overrides; zero values mean "not set".
func (c *cli) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: *c.configFile,
		NoOpen:     !*c.open,
		DryRun:     *c.dryRun,
	}

	if c.maxItemsSet {
		overrides.MaxItems = c.maxItems
	}

	if *c.outputFile != "" {
		overrides.OutputFile = c.outputFile
	}

	if *c.locale != "" {
		overrides.Locale = c.locale
	}

	if *c.logLevel != "" {
		overrides.LogLevel = c.logLevel
	}

	return overrides
}

// manifests resolves the packing sessions: one per --list file, or the
// built-in demo. --student and --item apply to every session; without --list
// the items replace the demo's.
func (c *cli) manifests() ([]manifest.Manifest, error) {
	extra := make([]manifest.Entry, 0, len(*c.items))
	for _, raw := range *c.items {
		entry, err := manifest.ParseItem(raw)
		if err != nil {
			return nil, err
		}
		extra = append(extra, entry)
	}

	if len(*c.listFiles) == 0 {
		m := manifest.Default()
		if len(extra) > 0 {
			m.Items = extra
			m.Unpack = nil
		}
		return []manifest.Manifest{c.withStudent(m)}, nil
	}

	sessions := make([]manifest.Manifest, 0, len(*c.listFiles))
	for _, path := range *c.listFiles {
		m, err := manifest.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load packing list %s: %w", path, err)
		}
		m.Items = append(m.Items, extra...)
		sessions = append(sessions, c.withStudent(m))
	}
	return sessions, nil
}

func (c *cli) withStudent(m manifest.Manifest) manifest.Manifest {
	if *c.student != "" {
		m.Student = *c.student
	}
	return m
}

func main() {
	c := newCLI()
	command := kingpin.MustParse(c.app.Parse(os.Args[1:]))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c, command, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli, command string, out io.Writer) error {
	cfg, err := config.Load(c.overrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, out)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return err
	}

	switch command {
	case c.inspect.FullCommand():
		return app.Inspect(*c.inspectFile)
	default:
		sessions, err := c.manifests()
		if err != nil {
			return err
		}
		if _, err := app.RunAll(ctx, sessions); err != nil {
			logger.Error("packing session failed", zap.Error(err))
			return err
		}
		return nil
	}
}
