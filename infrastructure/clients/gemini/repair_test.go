package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepairedJSON_FencedWithTrailingComma(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"a\": 1,}\n```\nHope that helps!"
	got := ParseRepairedJSON(raw)
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, got)
}

func TestParseRepairedJSON_NoJSON(t *testing.T) {
	assert.Nil(t, ParseRepairedJSON("no json here"))
	assert.Nil(t, ParseRepairedJSON(""))
}

func TestParseRepairedJSON_Truncated(t *testing.T) {
	assert.Nil(t, ParseRepairedJSON(`{"a": 1, "b": `))
}

func TestParseRepairedJSON_LiteralNewlineInString(t *testing.T) {
	raw := "{\"feedback\": \"line one\nline two\"}"
	got := ParseRepairedJSON(raw)
	obj := AsObject(got)
	assert.NotNil(t, obj)
	assert.Equal(t, "line one\nline two", obj["feedback"])
}

func TestParseRepairedJSON_Comments(t *testing.T) {
	raw := `{
		// overall rating
		"score": 85, /* out of 100 */
		"url": "https://example.com/watch"
	}`
	got := ParseRepairedJSON(raw)
	obj := AsObject(got)
	assert.NotNil(t, obj)
	assert.Equal(t, float64(85), obj["score"])
	assert.Equal(t, "https://example.com/watch", obj["url"])
}

func TestParseRepairedJSON_EllipsisArtifact(t *testing.T) {
	raw := `{"titles": ["first", "second", ...]}`
	got := ParseRepairedJSON(raw)
	obj := AsObject(got)
	assert.NotNil(t, obj)
	assert.Equal(t, []interface{}{"first", "second"}, obj["titles"])
}

func TestParseRepairedJSON_ArrayRoot(t *testing.T) {
	got := ParseRepairedJSON("sure, the list:\n[1, 2, 3,]")
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3)}, got)
}

func TestParseRepairedJSON_EscapedQuoteInString(t *testing.T) {
	raw := `{"title": "the \"best\" video, }"}`
	got := ParseRepairedJSON(raw)
	obj := AsObject(got)
	assert.NotNil(t, obj)
	assert.Equal(t, `the "best" video, }`, obj["title"])
}
