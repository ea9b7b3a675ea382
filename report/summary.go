package report

import (
	"fmt"

	"github.com/reoring/jscan"
	"github.com/reoring/jscan/i18n"
)

// Count is the number of issues of one type.
type Count struct {
	Type  jscan.IssueType `json:"type" yaml:"type"`
	Count int             `json:"count" yaml:"count"`
	Label string          `json:"label" yaml:"label"`
}

// Summary counts issues per type in order of first appearance. Each label is
// icon, count and translated type, pluralized in English when count > 1.
func Summary(iss jscan.Issues) []Count {
	var out []Count
	at := map[jscan.IssueType]int{}
	for _, is := range iss {
		i, ok := at[is.IssueType]
		if !ok {
			i = len(out)
			at[is.IssueType] = i
			out = append(out, Count{Type: is.IssueType})
		}
		out[i].Count++
	}
	for i := range out {
		out[i].Label = label(out[i].Type, out[i].Count)
	}
	return out
}

func label(t jscan.IssueType, n int) string {
	name := IssueLabel(t)
	if n > 1 && i18n.Language() == "en" {
		name += "s"
	}
	return fmt.Sprintf("%s %d %s", Icon(t), n, name)
}

// Icon returns the summary icon for an issue type.
func Icon(t jscan.IssueType) string {
	switch t {
	case jscan.MissingField:
		return "❌"
	case jscan.AdditionalField:
		return "➕"
	case jscan.TypeMismatch:
		return "🔄"
	case jscan.ParseError:
		return "💥"
	default:
		return "❓"
	}
}

// IssueLabel is the translated display name of an issue type.
func IssueLabel(t jscan.IssueType) string { return i18n.T(string(t), nil) }

// Title is the heading for a mode's results.
func Title(m jscan.Mode) string {
	switch m {
	case jscan.MissingOnly:
		return i18n.T(i18n.TitleMissing, nil)
	case jscan.AdditionalOnly:
		return i18n.T(i18n.TitleAdditional, nil)
	case jscan.TypesOnly:
		return i18n.T(i18n.TitleTypes, nil)
	}
	return i18n.T(i18n.TitleAll, nil)
}

// Description explains what a mode reports.
func Description(m jscan.Mode) string {
	switch m {
	case jscan.MissingOnly:
		return i18n.T(i18n.DescMissing, nil)
	case jscan.AdditionalOnly:
		return i18n.T(i18n.DescAdditional, nil)
	case jscan.TypesOnly:
		return i18n.T(i18n.DescTypes, nil)
	}
	return i18n.T(i18n.DescAll, nil)
}

// EmptyMessage is shown when a mode found no issues.
func EmptyMessage(m jscan.Mode) string {
	switch m {
	case jscan.MissingOnly:
		return i18n.T(i18n.EmptyMissing, nil)
	case jscan.AdditionalOnly:
		return i18n.T(i18n.EmptyAdditional, nil)
	case jscan.TypesOnly:
		return i18n.T(i18n.EmptyTypes, nil)
	}
	return i18n.T(i18n.EmptyAll, nil)
}
