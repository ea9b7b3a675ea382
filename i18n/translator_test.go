package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	defer SetLanguage("en")

	assert.Equal(t, "Missing Field", T(IssueMissingField, nil))
	assert.Equal(t, "✅ Missing Fields Validation", T(TitleMissing, nil))

	assert.Equal(t, "ja", SetLanguage("ja"))
	assert.Equal(t, "不足フィールド", T(IssueMissingField, nil))
	assert.Equal(t, "ja", Language())

	// keys without a translation fall back to the key itself
	assert.Equal(t, "no.such.key", T("no.such.key", nil))
}

func TestMatch(t *testing.T) {
	for in, want := range map[string]string{
		"":                      "en",
		"en-US":                 "en",
		"ja-JP":                 "ja",
		"fr-CH, ja;q=0.8":       "ja",
		"de":                    "en",
		"not a language tag ;;": "en",
	} {
		assert.Equal(t, want, Match(in), in)
	}
}

type upper struct{}

func (upper) Message(key string, _ map[string]string) string { return "<" + key + ">" }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	assert.Equal(t, "<x>", T("x", nil))
	SetTranslator(nil)
	assert.Equal(t, "Row", T(ColRow, nil))
}

func TestPlaceholders(t *testing.T) {
	catalog["en"]["test.greet"] = "hello {name}"
	defer delete(catalog["en"], "test.greet")
	assert.Equal(t, "hello ana", T("test.greet", map[string]string{"name": "ana"}))
}
