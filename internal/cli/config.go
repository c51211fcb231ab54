package cli

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vburojevic/logstat/internal/config"
	"github.com/vburojevic/logstat/internal/output"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	switch globals.Format {
	case output.FormatNDJSON:
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":     "config",
			"format":   cfg.Format,
			"quiet":    cfg.Quiet,
			"verbose":  cfg.Verbose,
			"defaults": cfg.Defaults,
			"path":     config.ConfigFile(),
		})
	case output.FormatYAML:
		enc := yaml.NewEncoder(globals.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return outputFailure(globals, CodeWriteFailed, err, "")
		}
		return enc.Close()
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Defaults:")
	fmt.Fprintf(globals.Stdout, "  command:        %s\n", cfg.Defaults.Command)
	fmt.Fprintf(globals.Stdout, "  skip_malformed: %v\n", cfg.Defaults.SkipMalformed)
	fmt.Fprintf(globals.Stdout, "  workers:        %d\n", cfg.Defaults.Workers)
	fmt.Fprintf(globals.Stdout, "  max_line_bytes: %d\n", cfg.Defaults.MaxLineBytes)
	if cfg.Defaults.MaxPriority >= 0 {
		fmt.Fprintf(globals.Stdout, "  max_priority:   %d\n", cfg.Defaults.MaxPriority)
	}

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == output.FormatNDJSON {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type": "config_path",
			"path": path,
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.logstat.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.logstat.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/logstat/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# logstat configuration file
# Place this file at ./.logstat.yaml, ~/.logstat.yaml or ~/.config/logstat/config.yaml

# Output format: "text" (default), "ndjson" or "yaml"
format: text

# Suppress warnings
quiet: false

# Log diagnostics to stderr
verbose: false

# Default values for the count command
defaults:
  # Log command run when no files are given and stdin is a terminal
  command: journalctl -o json

  # Count malformed lines instead of failing on the first one
  skip_malformed: false

  # Files aggregated in parallel
  workers: 4

  # Longest accepted input line in bytes
  max_line_bytes: 1048576

  # Only count records with priority <= N (-1 = all)
  max_priority: -1
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}
