package config

// Config holds anki-tools configuration.
// Stored at: ~/.anki-tools/config.yaml
type Config struct {
	OpenAI OpenAICfg `mapstructure:"openai" yaml:"openai"`
	Anki   AnkiCfg   `mapstructure:"anki" yaml:"anki"`
	Fields FieldsCfg `mapstructure:"fields" yaml:"fields"`
}

// OpenAICfg configures the OpenAI inference client.
type OpenAICfg struct {
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"` // API key (supports ${ENV_VAR} syntax)
	Model          string  `mapstructure:"model" yaml:"model"`
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// AnkiCfg configures the AnkiConnect endpoint.
type AnkiCfg struct {
	URL            string `mapstructure:"url" yaml:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// FieldsCfg maps pipeline roles to note field names. The defaults match
// the note type the original deck uses, including its "Romanji" spelling.
type FieldsCfg struct {
	Kana    string `mapstructure:"kana" yaml:"kana"`
	English string `mapstructure:"english" yaml:"english"`
	Kanji   string `mapstructure:"kanji" yaml:"kanji"`
	Romaji  string `mapstructure:"romaji" yaml:"romaji"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OpenAI: OpenAICfg{
			APIKey:         "${OPENAI_API_KEY}",
			Model:          "gpt-4o-mini",
			Temperature:    0.1,
			TimeoutSeconds: 120,
		},
		Anki: AnkiCfg{
			URL:            "http://127.0.0.1:8765",
			TimeoutSeconds: 10,
		},
		Fields: FieldsCfg{
			Kana:    "Kana",
			English: "English",
			Kanji:   "Kanji",
			Romaji:  "Romanji",
		},
	}
}
