// Package report renders coverage reports.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/phobologic/specgap/internal/model"
	"github.com/phobologic/specgap/internal/toon"
)

// Format names an output format.
type Format string

const (
	Plain Format = "plain" // file:line: message, one per line
	Table Format = "table"
	TOON  Format = "toon"
)

// Formats lists the accepted format names.
var Formats = []Format{Plain, Table, TOON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want plain, table or toon)", s)
}

// Write renders the warnings of r to w.
func Write(w io.Writer, format Format, r *model.Report) error {
	switch format {
	case Plain:
		for _, warn := range r.Warnings() {
			if _, err := fmt.Fprintf(w, "%s: %s\n", warn.Location(), warn.Message); err != nil {
				return err
			}
		}
		return nil
	case Table:
		return writeTable(w, r)
	case TOON:
		_, err := fmt.Fprintln(w, toon.Encode(r))
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeTable(w io.Writer, r *model.Report) error {
	warnings := r.Warnings()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Line", "Warning"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for _, warn := range warnings {
		line := ""
		if warn.Line > 0 {
			line = strconv.Itoa(warn.Line)
		}
		table.Append([]string{warn.File, line, warn.Message})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(r.Files)),
		"",
		fmt.Sprintf("%d warnings", len(warnings)),
	})

	table.Render()
	return nil
}

// WriteMethods lists the public methods of each file, one per line.
func WriteMethods(w io.Writer, files []model.FileReport) error {
	for _, fr := range files {
		for _, m := range fr.Methods {
			if _, err := fmt.Fprintf(w, "%s:%d: %s\n", fr.Path, m.Line, m); err != nil {
				return err
			}
		}
	}
	return nil
}
