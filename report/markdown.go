package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/reoring/jscan/i18n"
)

// mdEscaper keeps user-supplied cell text literal: a backslash cannot escape
// the cell separator, and emphasis or code markers render as typed.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"\n", " ",
	"\r", " ",
)

func mdRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(mdEscaper.Replace(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func mdTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	mdRow(b, rows[0])
	sep := make([]string, len(rows[0]))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("|" + strings.Join(sep, "|") + "|\n")
	for _, r := range rows[1:] {
		mdRow(b, r)
	}
}

func resultsMarkdown(results []Result) string {
	b := &strings.Builder{}
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "## %s\n\n", heading(r))
		if len(r.Issues) == 0 {
			fmt.Fprintf(b, "**%s** %s\n", i18n.T(i18n.EmptyHeading, nil), EmptyMessage(r.Mode))
			continue
		}
		fmt.Fprintf(b, "%s\n\n", Description(r.Mode))
		rows := [][]string{issueHeader()}
		for _, is := range r.Issues {
			rows = append(rows, issueRow(is))
		}
		mdTable(b, rows)
		fmt.Fprintf(b, "\n%s\n", summaryLine(r.Issues))
	}
	return b.String()
}

func gridMarkdown(g Grid) string {
	b := &strings.Builder{}
	mdTable(b, gridRows(g))
	return b.String()
}

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

func writeHTML(w io.Writer, markdown string) error {
	return errors.Wrap(md.Convert([]byte(markdown), w), "render html")
}
