package report

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/liggitt/tabwriter"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jscan"
	"github.com/reoring/jscan/i18n"
)

// Format selects a renderer.
type Format string

const (
	Table    Format = "table"
	Pretty   Format = "pretty"
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
	HTML     Format = "html"
)

// Formats lists every supported output format.
var Formats = []Format{Table, Pretty, JSON, YAML, Markdown, HTML}

// ParseFormat validates a format name; "" selects Table.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Table, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", errors.Errorf("unknown output format %q (want table, pretty, json, yaml, markdown or html)", s)
}

// WriteResults renders results in order.
func WriteResults(w io.Writer, f Format, results []Result) error {
	switch f {
	case JSON:
		return writeJSON(w, results)
	case YAML:
		return writeYAML(w, results)
	case Markdown:
		_, err := io.WriteString(w, resultsMarkdown(results))
		return err
	case HTML:
		return writeHTML(w, resultsMarkdown(results))
	case Pretty:
		for _, r := range results {
			if err := writePrettyResult(w, r); err != nil {
				return err
			}
		}
		return nil
	case Table, "":
		tw := newTabWriter(w)
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(tw)
			}
			writeTableResult(tw, r)
		}
		return tw.Flush()
	}
	return errors.Errorf("unknown output format %q", f)
}

// WriteGrid renders a data grid.
func WriteGrid(w io.Writer, f Format, g Grid) error {
	switch f {
	case JSON:
		return writeJSON(w, g)
	case YAML:
		return writeYAML(w, g)
	case Markdown:
		_, err := io.WriteString(w, gridMarkdown(g))
		return err
	case HTML:
		return writeHTML(w, gridMarkdown(g))
	case Pretty:
		s, err := pterm.DefaultTable.WithHasHeader().WithData(gridRows(g)).Srender()
		if err != nil {
			return errors.Wrap(err, "render grid")
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case Table, "":
		tw := newTabWriter(w)
		for _, row := range gridRows(g) {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	}
	return errors.Errorf("unknown output format %q", f)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 10, 1, 3, ' ', tabwriter.RememberWidths)
}

func issueHeader() []string {
	return []string{
		i18n.T(i18n.ColField, nil),
		i18n.T(i18n.ColExpected, nil),
		i18n.T(i18n.ColActual, nil),
		i18n.T(i18n.ColIssue, nil),
	}
}

func issueRow(is jscan.Issue) []string {
	return []string{is.Field, is.ExpectedType, is.ActualType, IssueLabel(is.IssueType)}
}

func heading(r Result) string {
	if r.Source == "" {
		return Title(r.Mode)
	}
	return Title(r.Mode) + " (" + r.Source + ")"
}

func summaryLine(iss jscan.Issues) string {
	var labels []string
	for _, c := range Summary(iss) {
		labels = append(labels, c.Label)
	}
	return strings.Join(labels, "  ")
}

func writeTableResult(tw *tabwriter.Writer, r Result) {
	fmt.Fprintln(tw, heading(r))
	if len(r.Issues) == 0 {
		fmt.Fprintf(tw, "%s %s\n", i18n.T(i18n.EmptyHeading, nil), EmptyMessage(r.Mode))
		return
	}
	fmt.Fprintln(tw, Description(r.Mode))
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(issueHeader(), "\t")))
	for _, is := range r.Issues {
		fmt.Fprintln(tw, strings.Join(cleanAll(issueRow(is)), "\t"))
	}
	fmt.Fprintln(tw, summaryLine(r.Issues))
}

func writePrettyResult(w io.Writer, r Result) error {
	fmt.Fprint(w, pterm.DefaultSection.Sprint(heading(r)))
	if len(r.Issues) == 0 {
		_, err := fmt.Fprintln(w, pterm.Success.Sprint(i18n.T(i18n.EmptyHeading, nil)+" "+EmptyMessage(r.Mode)))
		return err
	}
	fmt.Fprintln(w, Description(r.Mode))
	data := pterm.TableData{issueHeader()}
	for _, is := range r.Issues {
		data = append(data, cleanAll(issueRow(is)))
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render issues")
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", s, summaryLine(r.Issues))
	return err
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode json")
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}

// gridRows is the grid as text, header first.
func gridRows(g Grid) [][]string {
	header := append([]string{i18n.T(i18n.ColRow, nil)}, g.Columns...)
	out := [][]string{header}
	for _, r := range g.Rows {
		row := make([]string, 0, len(r.Cells)+1)
		row = append(row, r.Label)
		for _, c := range r.Cells {
			row = append(row, clean(CellText(c)))
		}
		out = append(out, row)
	}
	return out
}

// CellText is the display form of a grid cell: the value, "❌" when absent,
// prefixed with "⚠ " when its type does not match.
func CellText(c Cell) string {
	if !c.HasValue {
		return "❌"
	}
	var s string
	if str, ok := c.Value.(string); ok {
		s = str
	} else if b, err := jscan.MarshalData(c.Value); err == nil {
		s = string(b)
	} else {
		s = fmt.Sprint(c.Value)
	}
	if !c.Valid {
		return "⚠ " + s
	}
	return s
}

var cleaner = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func clean(s string) string { return cleaner.Replace(s) }

func cleanAll(ss []string) []string {
	for i := range ss {
		ss[i] = clean(ss[i])
	}
	return ss
}
