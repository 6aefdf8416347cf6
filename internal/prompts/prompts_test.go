package prompts

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderKanji(t *testing.T) {
	prompt, err := RenderKanji("ねこ", "cat")
	if err != nil {
		t.Fatalf("RenderKanji() error = %v", err)
	}

	if !strings.Contains(prompt, `"ねこ"`) {
		t.Error("prompt should contain the kana reading")
	}
	if !strings.Contains(prompt, `"cat"`) {
		t.Error("prompt should contain the English meaning")
	}
	if !strings.Contains(prompt, "null") {
		t.Error("prompt should explain the null convention for kana-only words")
	}
}

func TestRenderRomaji(t *testing.T) {
	prompt, err := RenderRomaji("とうきょう")
	if err != nil {
		t.Fatalf("RenderRomaji() error = %v", err)
	}

	if !strings.Contains(prompt, `"とうきょう"`) {
		t.Error("prompt should contain the kana reading")
	}
	// Style guidelines survive rendering
	if !strings.Contains(prompt, "macrons") {
		t.Error("prompt should carry the long-vowel rule")
	}
	if !strings.Contains(prompt, "maccha") {
		t.Error("prompt should carry the sokuon rule")
	}
}

func TestSchemasAreValidJSON(t *testing.T) {
	for name, schema := range map[string]json.RawMessage{
		"kanji":  KanjiSchema,
		"romaji": RomajiSchema,
	} {
		t.Run(name, func(t *testing.T) {
			var wrapper struct {
				Name   string         `json:"name"`
				Schema map[string]any `json:"schema"`
			}
			if err := json.Unmarshal(schema, &wrapper); err != nil {
				t.Fatalf("schema is not valid JSON: %v", err)
			}
			if wrapper.Name == "" {
				t.Error("schema wrapper should carry a name")
			}
			if wrapper.Schema["additionalProperties"] != false {
				t.Error("schema should reject unknown keys")
			}
		})
	}
}
