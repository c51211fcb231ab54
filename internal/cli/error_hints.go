package cli

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/vburojevic/logstat/internal/domain"
)

func hintForSource(err error) string {
	if err == nil {
		return ""
	}

	if isCommandNotFound(err, "journalctl") {
		return "journalctl not found; install systemd, pass --cmd, or read exported files: `journalctl -o json > journal.json && logstat journal.json`"
	}
	if isCommandNotFound(err, "") {
		return "Check --cmd or defaults.command in the config file (`logstat config show`)"
	}
	if errors.Is(err, os.ErrPermission) || strings.Contains(err.Error(), "Permission denied") {
		return "Reading the full journal may require root or membership in the systemd-journal group"
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "The log command exited with an error; run it by hand or pass --verbose to see its stderr"
	}
	if errors.Is(err, os.ErrNotExist) {
		return "Check the file path; use - to read standard input"
	}
	return ""
}

func hintForParse(err error) string {
	var le *domain.LineError
	if errors.As(err, &le) {
		return "Input must be journald JSON export (`journalctl -o json`); pass --skip-malformed to count bad lines instead of failing"
	}
	return ""
}

func isCommandNotFound(err error, name string) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, exec.ErrNotFound) && name == "" {
		return true
	}

	var ee *exec.Error
	if errors.As(err, &ee) && strings.EqualFold(ee.Name, name) && errors.Is(ee.Err, exec.ErrNotFound) {
		return true
	}

	var pe *os.PathError
	if errors.As(err, &pe) && errors.Is(pe.Err, exec.ErrNotFound) {
		if strings.EqualFold(pe.Path, name) || strings.HasSuffix(pe.Path, string(os.PathSeparator)+name) {
			return true
		}
	}

	return false
}
