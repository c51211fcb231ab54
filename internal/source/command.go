package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vburojevic/logstat/internal/stats"
)

// DefaultCommand exports the whole journal as JSON lines
const DefaultCommand = "journalctl -o json"

// Command runs a log-producing program and serves its stdout as lines
type Command struct {
	name         string
	args         []string
	logger       *zap.Logger
	maxLineBytes int

	cmd    *exec.Cmd
	cancel context.CancelFunc
	group  *errgroup.Group
	lines  *stats.ReaderSource
}

// NewCommand parses a whitespace-separated command line. No shell is involved.
func NewCommand(commandLine string, logger *zap.Logger, maxLineBytes int) (*Command, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("empty log command")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Command{
		name:         fields[0],
		args:         fields[1:],
		logger:       logger,
		maxLineBytes: maxLineBytes,
	}, nil
}

// Start launches the process. Stderr is drained in the background and logged.
func (c *Command) Start(ctx context.Context) error {
	if c.cmd != nil {
		return fmt.Errorf("%s already started", c.name)
	}

	cmdCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(cmdCtx, c.name, c.args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start %s: %w", c.name, err)
	}
	c.logger.Debug("log command started", zap.String("command", c.Name()), zap.Int("pid", cmd.Process.Pid))

	c.cmd = cmd
	c.cancel = cancel
	c.lines = stats.NewReaderSource(stdout, c.Name(), c.maxLineBytes)

	// Drain stderr to avoid deadlocks and surface diagnostics.
	c.group = new(errgroup.Group)
	c.group.Go(func() error {
		sc := bufio.NewScanner(stderr)
		sc.Buffer(make([]byte, 0, 64*1024), 256*1024)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			c.logger.Debug("log command stderr", zap.String("command", c.name), zap.String("line", line))
		}
		return sc.Err()
	})

	return nil
}

// Next returns the next stdout line
func (c *Command) Next() ([]byte, error) {
	if c.lines == nil {
		return nil, fmt.Errorf("%s not started", c.name)
	}
	return c.lines.Next()
}

// Name returns the command line
func (c *Command) Name() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Wait reaps the process after stdout has been read to EOF and reports a
// non-zero exit.
func (c *Command) Wait() error {
	if c.cmd == nil {
		return nil
	}
	defer c.cancel()

	stderrErr := c.group.Wait()
	if err := c.cmd.Wait(); err != nil {
		return fmt.Errorf("%s failed: %w", c.name, err)
	}
	if stderrErr != nil {
		return fmt.Errorf("%s stderr read error: %w", c.name, stderrErr)
	}
	return nil
}

// Stop kills the process if it is still running and releases its resources.
// Used when the consumer gives up before EOF.
func (c *Command) Stop() {
	if c.cmd == nil {
		return
	}
	c.cancel()
	_ = c.group.Wait()
	_ = c.cmd.Wait()
}
