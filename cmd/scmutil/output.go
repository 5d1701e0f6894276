package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"scmutil/internal/deps"
	"scmutil/internal/mimefile"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// checkResult is the JSON shape of one `check` row.
type checkResult struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// writeMimeData prints data as "key: value" lines sorted by key, or as one
// JSON object.
func writeMimeData(w io.Writer, data map[string]string, asJSON bool) error {
	if asJSON {
		return encodeJSON(w, data)
	}
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "%s%s%s\n", key, mimefile.Separator, data[key]); err != nil {
			return err
		}
	}
	return nil
}

// writeCheckResults renders one row per tool, as a table or a JSON array.
// Status cells are coloured only when colorize is set.
func writeCheckResults(w io.Writer, statuses []deps.Status, asJSON, colorize bool) error {
	if asJSON {
		results := make([]checkResult, 0, len(statuses))
		for _, s := range statuses {
			results = append(results, checkResult(s))
		}
		return encodeJSON(w, results)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Tool", "Command", "Status", "Detail"})
	for _, s := range statuses {
		detail := s.Detail
		if detail == "" {
			detail = s.Description
		}
		tw.AppendRow(table.Row{s.Name, s.Command, availabilityLabel(s, colorize), detail})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Status", Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Name: "Detail", WidthMax: 60},
	})
	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func availabilityLabel(status deps.Status, colorize bool) string {
	label, color := "OK", ansiGreen
	switch {
	case status.Available:
	case status.Optional:
		label, color = "MISSING (optional)", ansiYellow
	default:
		label, color = "MISSING", ansiRed
	}
	if !colorize {
		return label
	}
	return color + label + ansiReset
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
