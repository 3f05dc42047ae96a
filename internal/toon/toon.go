// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/phobologic/specgap/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a Report into TOON format.
func Encode(r *model.Report) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(r.Root)))
	if r.Base != "" {
		parts = append(parts, fmt.Sprintf("base: %s", encodeValue(r.Base)))
	}

	var fileRows [][]string
	for i := range r.Files {
		fr := &r.Files[i]
		fileRows = append(fileRows, []string{
			fr.Path,
			fr.SpecPath,
			fmt.Sprintf("%d", len(fr.Methods)),
			fmt.Sprintf("%d", len(fr.Warnings)),
		})
	}
	parts = append(parts, formatTabular("files", []string{"path", "spec", "methods", "warnings"}, fileRows))

	var methodRows [][]string
	for i := range r.Files {
		fr := &r.Files[i]
		for _, m := range fr.Methods {
			kind := "instance"
			if !m.Instance {
				kind = "class"
			}
			methodRows = append(methodRows, []string{
				fr.Path,
				m.String(),
				kind,
				fmt.Sprintf("%d", m.Line),
			})
		}
	}
	parts = append(parts, formatTabular("methods", []string{"file", "name", "kind", "line"}, methodRows))

	var warningRows [][]string
	for _, w := range r.Warnings() {
		warningRows = append(warningRows, []string{
			w.File,
			fmt.Sprintf("%d", w.Line),
			w.Message,
		})
	}
	parts = append(parts, formatTabular("warnings", []string{"file", "line", "message"}, warningRows))

	return strings.Join(parts, "\n")
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
