package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-chailights/internal/config"
	"github.com/tartampluch/go-chailights/internal/engine"
)

func (o *options) printReport(cmd *cobra.Command, r engine.Report) error {
	if o.format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), r)
	}
	return write(cmd.OutOrStdout(), reportText(r))
}

func (o *options) printHolidays(cmd *cobra.Command, entries []holidayEntry) error {
	if o.format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), entries)
	}
	return write(cmd.OutOrStdout(), holidaysText(entries))
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return write(w, append(b, '\n'))
}

func write(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}

func joinKeys(keys []engine.DateKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}

// reportText renders a report for a terminal:
//
//	15 Nisan (Today)
//	2023-04-06  15 Nisan 5783  https://...
//	popular: 10 Tishrei (3)
func reportText(r engine.Report) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, r.Label)
	if len(r.Targets) > 1 {
		fmt.Fprintf(&buf, "dates: %s\n", joinKeys(r.Targets))
	}

	if len(r.Matches) == 0 {
		fmt.Fprintln(&buf, "no photos")
	} else {
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		for _, m := range r.Matches {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.GregorianDate, m.HebrewDate, m.ImageURL)
		}
		_ = tw.Flush()
	}

	if len(r.Suggestions) > 0 {
		parts := make([]string, len(r.Suggestions))
		for i, s := range r.Suggestions {
			parts[i] = fmt.Sprintf("%s (%s)", s.Key, s.Label)
		}
		fmt.Fprintf(&buf, "try: %s\n", strings.Join(parts, ", "))
	}

	if len(r.Popular) > 0 {
		parts := make([]string, len(r.Popular))
		for i, p := range r.Popular {
			parts[i] = fmt.Sprintf("%s (%d)", p.Key, p.Count)
		}
		fmt.Fprintf(&buf, "popular: %s\n", strings.Join(parts, ", "))
	}
	return buf.Bytes()
}

func holidaysText(entries []holidayEntry) []byte {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Label, joinKeys(e.Effective))
	}
	_ = tw.Flush()
	return buf.Bytes()
}
