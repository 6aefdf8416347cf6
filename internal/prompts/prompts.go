// Package prompts holds the instruction templates and response schemas
// for the generation pipelines.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// SystemPrompt is the shared system message for all generation calls.
const SystemPrompt = "You are a helpful assistant that provides accurate Japanese language information. " +
	"Always respond with valid JSON matching the requested format."

// KanjiSchema constrains kanji generation replies. The kanji key is
// nullable: some words (loanwords, onomatopoeia) are written only in kana.
var KanjiSchema = json.RawMessage(`{
	"name": "kanji_response",
	"schema": {
		"type": "object",
		"properties": {
			"kanji": {
				"type": ["string", "null"],
				"description": "The kanji spelling of the word, or null if the word is typically written only in kana"
			},
			"explanation": {
				"type": ["string", "null"],
				"description": "Brief explanation of why this kanji was chosen or why null was returned"
			}
		},
		"required": ["kanji"],
		"additionalProperties": false
	}
}`)

// RomajiSchema constrains romaji generation replies.
var RomajiSchema = json.RawMessage(`{
	"name": "romaji_response",
	"schema": {
		"type": "object",
		"properties": {
			"romaji": {
				"type": "string",
				"description": "The romanized version of the Japanese kana"
			}
		},
		"required": ["romaji"],
		"additionalProperties": false
	}
}`)

var kanjiTemplate = template.Must(template.New("kanji").Parse(
	`Given the Japanese word in kana "{{.Kana}}" with the English meaning "{{.English}}", provide the appropriate kanji spelling. If there is a standard kanji spelling for this word, provide it. If the word is typically written only in kana (like some foreign loanwords or onomatopoeia), return null for kanji. Consider common usage and standard dictionary forms.

Respond with a JSON object containing a "kanji" key and an optional "explanation" key. If there is no appropriate kanji, use null (not a string) for the kanji field.`))

var romajiTemplate = template.Must(template.New("romaji").Parse(
	`Convert the Japanese kana "{{.Kana}}" to romaji (romanized Japanese). You are to use the following style guidelines:
- Spell each kana character individually; do not use macrons for long vowels. For example, "おう" turns into "ou", but "おお" turns into "oo". "えい" turns into "ei", but "ええ" turns into "ee".
- The long dash (ー) in katakana should extend the preceding vowel sound (e.g., "コーヒー" becomes "koohii").
- The small "っ" (sokuon) should be represented by doubling the consonant that follows it. Do not convert "cch" to "tch"; for example, "まっちゃ" becomes "maccha", not "matcha".
- Always write the nasal ん as "n". Do not assimilate it to "m".
- Add spaces after words and around particles. If a word is a compound word, add proper spacing to break the word up roughly into morphemes, but be logical about it.
- Render the particle "は" as "wa", the particle "へ" as "e", and the particle "を" as "o" when they function as particles in a sentence. In other contexts, render them according to their standard pronunciations.

Respond with a JSON object containing a single "romaji" key.`))

// RenderKanji builds the kanji generation instruction for a note's kana
// reading and English meaning.
func RenderKanji(kana, english string) (string, error) {
	var sb strings.Builder
	err := kanjiTemplate.Execute(&sb, struct{ Kana, English string }{kana, english})
	if err != nil {
		return "", fmt.Errorf("failed to render kanji prompt: %w", err)
	}
	return sb.String(), nil
}

// RenderRomaji builds the romaji generation instruction for a note's kana
// reading.
func RenderRomaji(kana string) (string, error) {
	var sb strings.Builder
	err := romajiTemplate.Execute(&sb, struct{ Kana string }{kana})
	if err != nil {
		return "", fmt.Errorf("failed to render romaji prompt: %w", err)
	}
	return sb.String(), nil
}
