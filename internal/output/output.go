// Package output renders command results as aligned text, JSON or a styled
// markdown report.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
)

// MarkdownWidth is the word wrap applied to rendered markdown.
const MarkdownWidth = 100

// Formatter writes either human readable text or JSON.
type Formatter struct {
	Writer   io.Writer
	JSONMode bool
}

// New creates a Formatter.
func New(w io.Writer, jsonMode bool) *Formatter {
	return &Formatter{Writer: w, JSONMode: jsonMode}
}

// Table writes rows under headers. In JSON mode each row becomes an object
// keyed by header.
func (f *Formatter) Table(headers []string, rows [][]string) error {
	if f.JSONMode {
		objects := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			obj := make(map[string]string, len(headers))
			for i, h := range headers {
				if i < len(row) {
					obj[h] = row[i]
				} else {
					obj[h] = ""
				}
			}
			objects = append(objects, obj)
		}
		return f.Print(objects)
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
	rule := make([]string, len(headers))
	for i, h := range headers {
		rule[i] = strings.Repeat("-", len(h))
	}
	lines := append([][]string{headers, rule}, rows...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Print writes data as indented JSON, or with %v outside JSON mode.
func (f *Formatter) Print(data any) error {
	if !f.JSONMode {
		_, err := fmt.Fprintf(f.Writer, "%v\n", data)
		return err
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Markdown renders md for the terminal. The plain style is used so output
// stays readable when piped.
func (f *Formatter) Markdown(md string) error {
	out, err := RenderMarkdown(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(f.Writer, out)
	return err
}

// RenderMarkdown renders md with glamour.
func RenderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(MarkdownWidth),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
