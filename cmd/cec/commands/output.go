package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/thoreinstein/cec/internal/doctor"
	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/logging"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "encoding JSON"), "")
	}
	return nil
}

// writeReport prints one table row per check, then the fix hints of the
// failed checks and a summary line.
func writeReport(w io.Writer, report *doctor.DoctorReport) {
	colored := logging.SupportsColor(w)

	rows := make([][]string, 0, len(report.Results))
	var hints []string
	for _, r := range report.Results {
		rows = append(rows, []string{r.Platform, r.Category, statusLabel(r.Status, colored), r.Message})
		if r.FixHint != "" && r.Status >= doctor.SeverityWarning {
			hints = append(hints, fmt.Sprintf("  %s: %s", r.Platform, r.FixHint))
		}
	}
	fmt.Fprintln(w, renderTable([]string{"PLATFORM", "CHECK", "STATUS", "MESSAGE"}, rows, nil))

	if len(hints) > 0 {
		fmt.Fprintln(w, "\nHints:")
		for _, h := range hints {
			fmt.Fprintln(w, h)
		}
	}

	fmt.Fprintf(w, "\nSummary: %d passed, %d info, %d warnings, %d errors (%s)\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors,
		report.Duration.Round(time.Millisecond))
}

func statusLabel(s doctor.Severity, colored bool) string {
	var c *color.Color
	icon := "?"
	switch s {
	case doctor.SeverityPass:
		icon, c = "✓", color.New(color.FgGreen)
	case doctor.SeverityInfo:
		icon, c = "ℹ", color.New(color.FgCyan)
	case doctor.SeverityWarning:
		icon, c = "⚠", color.New(color.FgYellow)
	case doctor.SeverityError:
		icon, c = "✗", color.New(color.FgRed)
	default:
		c = color.New(color.Reset)
	}
	if !colored {
		c.DisableColor()
	}
	return c.Sprintf("%s %s", icon, s)
}
