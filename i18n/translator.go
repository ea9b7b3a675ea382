package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for report keys.
// data provides optional values substituted for "{name}" placeholders.
type Translator interface {
	Message(key string, data map[string]string) string
}

// Message keys. Issue type keys use the issue type's display name.
const (
	TitleMissing    = "title.missing"
	TitleAdditional = "title.additional"
	TitleTypes      = "title.types"
	TitleAll        = "title.all"

	DescMissing    = "desc.missing"
	DescAdditional = "desc.additional"
	DescTypes      = "desc.types"
	DescAll        = "desc.all"

	EmptyHeading    = "empty.heading"
	EmptyMissing    = "empty.missing"
	EmptyAdditional = "empty.additional"
	EmptyTypes      = "empty.types"
	EmptyAll        = "empty.all"

	ColField    = "col.field"
	ColExpected = "col.expected"
	ColActual   = "col.actual"
	ColIssue    = "col.issue"
	ColRow      = "col.row"

	SingleObject = "grid.single"
	TypeMissing  = "grid.missing"

	IssueMissingField    = "Missing Field"
	IssueAdditionalField = "Additional Field"
	IssueTypeMismatch    = "Type Mismatch"
	IssueParseError      = "Parse Error"
	IssueDepthExceeded   = "Depth Exceeded"
)

var catalog = map[string]map[string]string{
	"en": {
		TitleMissing:    "✅ Missing Fields Validation",
		TitleAdditional: "🚫 Additional Fields Validation",
		TitleTypes:      "🔎 Data Types Validation",
		TitleAll:        "📊 Validation Results",

		DescMissing:    "Fields that exist in the template but are missing from the JSON data",
		DescAdditional: "Fields that exist in the JSON data but are not defined in the template",
		DescTypes:      "Fields where the data type doesn't match the template specification",
		DescAll:        "Missing fields, additional fields and type mismatches",

		EmptyHeading:    "No Issues Found!",
		EmptyMissing:    "All template fields are present in the JSON data.",
		EmptyAdditional: "No additional fields found in the JSON data.",
		EmptyTypes:      "All data types match the template specification.",
		EmptyAll:        "The JSON data matches the template.",

		ColField:    "Field Name",
		ColExpected: "Expected Type",
		ColActual:   "Actual Type",
		ColIssue:    "Issue Type",
		ColRow:      "Row",

		SingleObject: "Single Object",
		TypeMissing:  "missing",

		IssueMissingField:    "Missing Field",
		IssueAdditionalField: "Additional Field",
		IssueTypeMismatch:    "Type Mismatch",
		IssueParseError:      "Parse Error",
		IssueDepthExceeded:   "Depth Exceeded",
	},
	"ja": {
		TitleMissing:    "✅ 不足フィールドの検証",
		TitleAdditional: "🚫 追加フィールドの検証",
		TitleTypes:      "🔎 データ型の検証",
		TitleAll:        "📊 検証結果",

		DescMissing:    "テンプレートにあり、JSON データにないフィールド",
		DescAdditional: "JSON データにあり、テンプレートで定義されていないフィールド",
		DescTypes:      "データ型がテンプレートの指定と一致しないフィールド",
		DescAll:        "不足フィールド、追加フィールド、型の不一致",

		EmptyHeading:    "問題は見つかりませんでした",
		EmptyMissing:    "テンプレートのフィールドはすべて JSON データに存在します。",
		EmptyAdditional: "JSON データに追加フィールドはありません。",
		EmptyTypes:      "すべてのデータ型がテンプレートの指定と一致します。",
		EmptyAll:        "JSON データはテンプレートと一致します。",

		ColField:    "フィールド名",
		ColExpected: "期待される型",
		ColActual:   "実際の型",
		ColIssue:    "問題の種類",
		ColRow:      "行",

		SingleObject: "単一オブジェクト",
		TypeMissing:  "なし",

		IssueMissingField:    "不足フィールド",
		IssueAdditionalField: "追加フィールド",
		IssueTypeMismatch:    "型の不一致",
		IssueParseError:      "解析エラー",
		IssueDepthExceeded:   "深さ超過",
	},
}

// Supported lists the catalog languages; the first is the fallback.
var Supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(Supported)

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(key string, data map[string]string) string {
	msg, ok := catalog[t.lang][key]
	if !ok {
		if msg, ok = catalog["en"][key]; !ok {
			return key
		}
	}
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
	currentLang                  = "en"
)

// SetLanguage switches the built-in Translator to the best catalog match for
// lang, which may be a BCP 47 tag ("ja-JP") or an Accept-Language style list.
// Unknown or empty input selects English. It returns the chosen language.
func SetLanguage(lang string) string {
	base := Match(lang)
	mu.Lock()
	currentTranslator = dictTranslator{lang: base}
	currentLang = base
	mu.Unlock()
	return base
}

// Match returns the catalog language ("en" or "ja") that best serves lang.
func Match(lang string) string {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return "en"
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "en"
	}
	b, _ := Supported[idx].Base()
	return b.String()
}

// Language returns the language of the built-in Translator last selected.
func Language() string {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		currentLang = "en"
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given key using the current Translator.
func T(key string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(key, data)
}
