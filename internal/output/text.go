package output

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/logstat/internal/domain"
)

// TextWriter renders reports for humans
type TextWriter struct {
	w     io.Writer
	color bool
}

// NewTextWriter creates a new text writer. Styles are applied only when color is set.
func NewTextWriter(w io.Writer, color bool) *TextWriter {
	return &TextWriter{w: w, color: color}
}

func (w *TextWriter) render(style lipgloss.Style, text string) string {
	if !w.color {
		return text
	}
	return style.Render(text)
}

// WriteReport outputs a styled summary followed by facility and service tables
func (w *TextWriter) WriteReport(out *ReportOutput) error {
	r := out.Report
	if r == nil {
		r = domain.NewLogReport()
	}

	var b strings.Builder
	b.WriteString(w.render(Styles.Header, "Journal report") + "\n")
	b.WriteString(w.render(Styles.Label, "Lines: ") + w.render(Styles.Value, strconv.Itoa(r.Total.Line)) + " | ")
	b.WriteString(w.render(Styles.Label, "Message bytes: ") + w.render(Styles.Value, strconv.Itoa(r.Total.MessageLength)) + " | ")
	b.WriteString(w.render(Styles.Label, "Services: ") + w.render(Styles.Value, strconv.Itoa(len(r.Service))) + "\n")
	if r.Filtered > 0 {
		b.WriteString(w.render(Styles.Label, "Filtered: ") + w.render(Styles.Value, strconv.Itoa(r.Filtered)) + "\n")
	}
	if w.color {
		b.WriteString(w.render(Styles.Label, "Status: ") + StatusText(r.Rejected) + "\n")
	} else if r.Rejected > 0 {
		fmt.Fprintf(&b, "Status: %d MALFORMED LINES SKIPPED\n", r.Rejected)
	} else {
		b.WriteString("Status: OK\n")
	}
	if len(out.Sources) > 0 {
		b.WriteString(w.render(Styles.Muted, "Sources: "+strings.Join(out.Sources, ", ")) + "\n")
	}
	if _, err := io.WriteString(w.w, b.String()); err != nil {
		return err
	}

	if len(r.Total.Facility) > 0 {
		if _, err := fmt.Fprintf(w.w, "\n%s\n", w.render(Styles.Header, "Facilities")); err != nil {
			return err
		}
		if err := w.facilityTable(r); err != nil {
			return err
		}
	}

	if len(r.Service) > 0 {
		if _, err := fmt.Fprintf(w.w, "\n%s\n", w.render(Styles.Header, "Services")); err != nil {
			return err
		}
		if err := w.serviceTable(r); err != nil {
			return err
		}
	}
	return nil
}

func (w *TextWriter) facilityTable(r *domain.LogReport) error {
	facilities := make([]domain.Facility, 0, len(r.Total.Facility))
	for f := range r.Total.Facility {
		facilities = append(facilities, f)
	}
	slices.Sort(facilities)

	rows := make([][]string, 0, len(facilities))
	for _, f := range facilities {
		name := string(f)
		if f == domain.FacilityInvalid {
			name = w.render(Styles.Danger, name)
		}
		rows = append(rows, []string{name, strconv.Itoa(r.Total.Facility[f])})
	}

	table := tablewriter.NewWriter(w.w)
	table.Header([]string{"Facility", "Lines"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func (w *TextWriter) serviceTable(r *domain.LogReport) error {
	ranked := domain.RankServices(r)
	rows := make([][]string, 0, len(ranked))
	for _, e := range ranked {
		rows = append(rows, []string{
			e.Name,
			strconv.Itoa(e.Count.TotalLineCount()),
			strconv.Itoa(e.Count.MessageLength),
			w.histogram(e.Count.Priorities),
		})
	}

	table := tablewriter.NewWriter(w.w)
	table.Header([]string{"Service", "Lines", "Bytes", "Priorities"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// histogram formats a priority histogram as "err=1 info=3", most severe first
func (w *TextWriter) histogram(h map[uint8]int) string {
	keys := make([]uint8, 0, len(h))
	for p := range h {
		keys = append(keys, p)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, p := range keys {
		parts = append(parts, w.render(PriorityStyle(p), PriorityName(p))+"="+strconv.Itoa(h[p]))
	}
	return strings.Join(parts, " ")
}
