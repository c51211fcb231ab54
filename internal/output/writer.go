package output

import (
	"fmt"
	"io"
)

// Output formats accepted by NewReportWriter
const (
	FormatText   = "text"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

// ReportWriter renders a finished report
type ReportWriter interface {
	WriteReport(out *ReportOutput) error
}

// NewReportWriter returns the writer for format. Color only affects text output.
func NewReportWriter(format string, w io.Writer, color bool) (ReportWriter, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(w, color), nil
	case FormatNDJSON:
		return NewNDJSONWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
