package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes reports as a YAML document
type YAMLWriter struct {
	w io.Writer
}

// NewYAMLWriter creates a new YAML writer
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: w}
}

// WriteReport outputs the report envelope
func (w *YAMLWriter) WriteReport(out *ReportOutput) error {
	out.SchemaVersion = SchemaVersion
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
