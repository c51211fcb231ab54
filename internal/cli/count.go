package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/vburojevic/logstat/internal/config"
	"github.com/vburojevic/logstat/internal/domain"
	"github.com/vburojevic/logstat/internal/filter"
	"github.com/vburojevic/logstat/internal/output"
	"github.com/vburojevic/logstat/internal/source"
	"github.com/vburojevic/logstat/internal/stats"
)

// CountCmd aggregates journald JSON lines into a report
type CountCmd struct {
	Files []string `arg:"" optional:"" help:"journald JSON export files (.gz and .zst are decompressed); - reads stdin"`

	Cmd           string   `name:"cmd" default:"${config_command}" help:"Log command to run when no files are given and stdin is a terminal"`
	Since         string   `help:"Only count records at or after this time (RFC3339)"`
	Until         string   `help:"Only count records before this time (RFC3339)"`
	MaxPriority   int      `short:"p" default:"${config_max_priority}" help:"Only count records with priority <= N (0=emerg .. 7=debug, -1 = all)"`
	Unit          []string `short:"u" help:"Only count records from these systemd units (repeatable)"`
	SkipMalformed bool     `default:"${config_skip_malformed}" help:"Count lines that are not journald JSON instead of failing"`
	Workers       int      `default:"${config_workers}" help:"Files aggregated in parallel"`
	MaxLineBytes  int      `default:"${config_max_line_bytes}" help:"Longest accepted input line in bytes"`
	Textfile      string   `help:"Also write the report as Prometheus text exposition to this path"`
	Color         string   `default:"auto" enum:"auto,always,never" help:"Style text output"`
}

// Run executes the count command
func (c *CountCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, globals)
}

func (c *CountCmd) run(ctx context.Context, globals *Globals) error {
	applyCountDefaults(globals.Config, c)

	recordFilter, err := c.buildFilter()
	if err != nil {
		return outputFailure(globals, CodeInvalidRange, err, "Use RFC3339 times, e.g. --since 2024-01-15T10:00:00Z, with --since before --until")
	}

	clk := globals.clock()
	started := clk.Now()

	opts := []stats.Option{
		stats.WithLogger(globals.logger()),
		stats.WithSkipMalformed(c.SkipMalformed),
	}
	if recordFilter.Len() > 0 {
		opts = append(opts, stats.WithFilter(recordFilter))
	}
	agg := stats.New(opts...)

	report, sources, err := c.aggregate(ctx, globals, agg)
	if err != nil {
		var le *domain.LineError
		if errors.As(err, &le) {
			return outputFailure(globals, CodeParseFailed, err, hintForParse(err))
		}
		return outputFailure(globals, CodeSourceFailed, err, hintForSource(err))
	}

	writer, err := output.NewReportWriter(globals.Format, globals.Stdout, c.useColor(globals))
	if err != nil {
		return outputFailure(globals, CodeWriteFailed, err, "")
	}
	if err := writer.WriteReport(output.NewReportOutput(report, sources, started, clk.Now())); err != nil {
		return outputFailure(globals, CodeWriteFailed, err, "")
	}

	if c.Textfile != "" {
		if err := output.WriteTextfile(c.Textfile, report); err != nil {
			return outputFailure(globals, CodeWriteFailed, fmt.Errorf("writing textfile: %w", err), "Check that the textfile directory exists and is writable")
		}
	}

	if report.Rejected > 0 {
		globals.warn("skipped %d malformed lines", report.Rejected)
	}
	return nil
}

// applyCountDefaults fills values left zero when the command was not built by kong
func applyCountDefaults(cfg *config.Config, c *CountCmd) {
	if cfg == nil {
		cfg = config.Default()
	}
	if c.Cmd == "" {
		c.Cmd = cfg.Defaults.Command
	}
	if c.Workers == 0 {
		c.Workers = cfg.Defaults.Workers
	}
	if c.MaxLineBytes == 0 {
		c.MaxLineBytes = cfg.Defaults.MaxLineBytes
	}
	if c.Cmd == "" {
		c.Cmd = source.DefaultCommand
	}
	if c.MaxLineBytes <= 0 {
		c.MaxLineBytes = stats.DefaultMaxLineBytes
	}
}

func (c *CountCmd) buildFilter() (*filter.Chain, error) {
	chain := filter.NewChain()

	if c.Since != "" || c.Until != "" {
		from, err := parseTime("--since", c.Since)
		if err != nil {
			return nil, err
		}
		until, err := parseTime("--until", c.Until)
		if err != nil {
			return nil, err
		}
		tr, err := filter.NewTimeRange(from, until)
		if err != nil {
			return nil, err
		}
		chain.Add(tr)
	}

	if c.MaxPriority >= 0 {
		if c.MaxPriority > 7 {
			return nil, fmt.Errorf("--max-priority must be between 0 and 7, got %d", c.MaxPriority)
		}
		chain.Add(filter.NewPriorityFilter(uint8(c.MaxPriority)))
	}

	if len(c.Unit) > 0 {
		chain.Add(filter.NewUnitFilter(c.Unit))
	}
	return chain, nil
}

func parseTime(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", flag, value, err)
	}
	return t, nil
}

// aggregate picks the input: files, then an explicit --cmd, then piped stdin,
// then the configured log command.
func (c *CountCmd) aggregate(ctx context.Context, globals *Globals, agg *stats.Aggregator) (*domain.LogReport, []string, error) {
	switch {
	case len(c.Files) > 0:
		return c.aggregateFiles(ctx, globals, agg)
	case !globals.FlagProvided("cmd") && stdinPiped(globals.Stdin):
		src := stats.NewReaderSource(globals.Stdin, "stdin", c.MaxLineBytes)
		report, err := agg.Aggregate(ctx, src)
		return report, []string{"stdin"}, err
	default:
		return c.aggregateCommand(ctx, globals, agg)
	}
}

func (c *CountCmd) aggregateFiles(ctx context.Context, globals *Globals, agg *stats.Aggregator) (*domain.LogReport, []string, error) {
	if i := slices.Index(c.Files, source.Stdin); i >= 0 && slices.Contains(c.Files[i+1:], source.Stdin) {
		return nil, nil, errors.New("standard input (-) can only be read once")
	}

	sources := make([]stats.LineSource, 0, len(c.Files))
	names := make([]string, 0, len(c.Files))
	for _, path := range c.Files {
		rc, err := source.OpenFile(path, globals.Stdin)
		if err != nil {
			return nil, nil, err
		}
		defer rc.Close()

		name := path
		if path == source.Stdin {
			name = "stdin"
		}
		sources = append(sources, stats.NewReaderSource(rc, name, c.MaxLineBytes))
		names = append(names, name)
	}

	globals.logger().Debug("aggregating files", zap.Strings("files", names), zap.Int("workers", c.Workers))
	report, err := agg.AggregateAll(ctx, sources, c.Workers)
	return report, names, err
}

func (c *CountCmd) aggregateCommand(ctx context.Context, globals *Globals, agg *stats.Aggregator) (*domain.LogReport, []string, error) {
	cmd, err := source.NewCommand(c.Cmd, globals.logger(), c.MaxLineBytes)
	if err != nil {
		return nil, nil, err
	}
	if err := cmd.Start(ctx); err != nil {
		return nil, nil, err
	}

	report, err := agg.Aggregate(ctx, cmd)
	if err != nil {
		cmd.Stop()
		_ = cmd.Wait()
		return nil, nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, nil, err
	}
	return report, []string{cmd.Name()}, nil
}

func (c *CountCmd) useColor(globals *Globals) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(globals.Stdout)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// stdinPiped reports whether stdin carries data: a pipe, a regular file or an
// in-memory reader. Terminals and character devices such as /dev/null do not.
func stdinPiped(r io.Reader) bool {
	if r == nil {
		return false
	}
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
