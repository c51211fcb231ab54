package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/logstat/internal/config"
	"github.com/vburojevic/logstat/internal/output"
)

// CLI is the root command structure for logstat
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"text,ndjson,yaml" help:"Output format"`
	Quiet   bool   `short:"q" help:"Suppress warnings (only emit the report)"`
	Verbose bool   `short:"v" help:"Log diagnostics to stderr (unrecognized records, command stderr)"`

	// Commands
	Count   CountCmd   `cmd:"" default:"withargs" help:"Count journal lines per facility and per service"`
	Config  ConfigCmd  `cmd:"" help:"Show or manage configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Vars exposes config values as kong variables so they become flag defaults.
// Flags given on the command line still win.
func Vars(cfg *config.Config) kong.Vars {
	if cfg == nil {
		cfg = config.Default()
	}
	return kong.Vars{
		"config_format":         cfg.Format,
		"config_command":        cfg.Defaults.Command,
		"config_skip_malformed": strconv.FormatBool(cfg.Defaults.SkipMalformed),
		"config_workers":        strconv.Itoa(cfg.Defaults.Workers),
		"config_max_line_bytes": strconv.Itoa(cfg.Defaults.MaxLineBytes),
		"config_max_priority":   strconv.Itoa(cfg.Defaults.MaxPriority),
	}
}

// Globals holds shared state for all commands
type Globals struct {
	Format   string
	Quiet    bool
	Verbose  bool
	Stdout   io.Writer
	Stderr   io.Writer
	Stdin    io.Reader
	Config   *config.Config
	FlagsSet map[string]bool
	Clock    clock.Clock
	Logger   *zap.Logger
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Config:  cfg,
		Clock:   clock.New(),
	}

	// Apply config values if CLI flags weren't explicitly set
	if cfg != nil {
		if !cli.Quiet && cfg.Quiet {
			g.Quiet = cfg.Quiet
		}
		if !cli.Verbose && cfg.Verbose {
			g.Verbose = cfg.Verbose
		}
	}

	g.Logger = NewLogger(g.Verbose, g.Stderr)
	return g
}

// FlagProvided reports whether name was given explicitly on the command line
func (g *Globals) FlagProvided(name string) bool {
	return g != nil && g.FlagsSet[name]
}

func (g *Globals) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

func (g *Globals) clock() clock.Clock {
	if g.Clock == nil {
		return clock.New()
	}
	return g.Clock
}

// warn prints a human-readable warning unless quiet or machine output was requested
func (g *Globals) warn(format string, args ...interface{}) {
	if g.Quiet || g.Format != output.FormatText {
		return
	}
	fmt.Fprintf(g.Stderr, "Warning: "+format+"\n", args...)
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	switch globals.Format {
	case output.FormatNDJSON:
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":          "version",
			"schemaVersion": output.SchemaVersion,
			"version":       Version,
			"commit":        Commit,
		})
	default:
		_, err := io.WriteString(globals.Stdout, "logstat version "+Version+" ("+Commit+")\n")
		return err
	}
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
