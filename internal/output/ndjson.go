package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/vburojevic/logstat/internal/domain"
)

// ReportOutput is the envelope every machine-readable report is wrapped in
type ReportOutput struct {
	Type          string            `json:"type" yaml:"type"` // Always "report"
	SchemaVersion int               `json:"schemaVersion" yaml:"schemaVersion"`
	GeneratedAt   string            `json:"generated_at" yaml:"generated_at"`
	ElapsedMs     int64             `json:"elapsed_ms" yaml:"elapsed_ms"`
	Sources       []string          `json:"sources" yaml:"sources"`
	Report        *domain.LogReport `json:"report" yaml:"report"`
}

// NewReportOutput wraps report with run metadata
func NewReportOutput(report *domain.LogReport, sources []string, started, finished time.Time) *ReportOutput {
	return &ReportOutput{
		Type:          "report",
		SchemaVersion: SchemaVersion,
		GeneratedAt:   finished.UTC().Format(time.RFC3339Nano),
		ElapsedMs:     finished.Sub(started).Milliseconds(),
		Sources:       sources,
		Report:        report,
	}
}

// NDJSONWriter writes reports and errors as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// WriteReport outputs the report envelope as one line
func (w *NDJSONWriter) WriteReport(out *ReportOutput) error {
	out.SchemaVersion = SchemaVersion
	return w.encoder.Encode(out)
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}
