package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OpenAI.APIKey != "${OPENAI_API_KEY}" {
		t.Error("expected OpenAI API key placeholder")
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("expected default model gpt-4o-mini, got %s", cfg.OpenAI.Model)
	}
	if cfg.Anki.URL != "http://127.0.0.1:8765" {
		t.Errorf("unexpected default AnkiConnect URL: %s", cfg.Anki.URL)
	}
	if cfg.Fields.Romaji != "Romanji" {
		t.Errorf("expected Romanji field default, got %s", cfg.Fields.Romaji)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestConfig_ResolveAPIKey(t *testing.T) {
	t.Run("resolves env var reference", func(t *testing.T) {
		os.Setenv("TEST_OPENAI_KEY", "sk-test-123")
		defer os.Unsetenv("TEST_OPENAI_KEY")

		cfg := &Config{OpenAI: OpenAICfg{APIKey: "${TEST_OPENAI_KEY}"}}
		key, err := cfg.ResolveAPIKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "sk-test-123" {
			t.Errorf("expected sk-test-123, got %s", key)
		}
	})

	t.Run("returns literal value", func(t *testing.T) {
		cfg := &Config{OpenAI: OpenAICfg{APIKey: "direct-key"}}
		key, err := cfg.ResolveAPIKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "direct-key" {
			t.Errorf("expected direct-key, got %s", key)
		}
	})

	t.Run("errors when key resolves empty", func(t *testing.T) {
		cfg := &Config{OpenAI: OpenAICfg{APIKey: "${DEFINITELY_NOT_SET_12345}"}}
		if _, err := cfg.ResolveAPIKey(); err != ErrMissingAPIKey {
			t.Errorf("expected ErrMissingAPIKey, got %v", err)
		}
	})
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
openai:
  model: "gpt-4o"
anki:
  url: "http://localhost:9999"
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.OpenAI.Model != "gpt-4o" {
			t.Errorf("expected gpt-4o, got %s", cfg.OpenAI.Model)
		}
		if cfg.Anki.URL != "http://localhost:9999" {
			t.Errorf("expected overridden anki url, got %s", cfg.Anki.URL)
		}
		// Unset keys fall back to defaults
		if cfg.Fields.Kana != "Kana" {
			t.Errorf("expected default Kana field, got %s", cfg.Fields.Kana)
		}
	})
}

func TestManager_OnChange(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
openai:
  model: "gpt-4o-mini"
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	// Register multiple callbacks
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	// Note: actually triggering the callbacks requires WatchConfig plus a
	// file change event; registration is what's verified here.
	mgr.mu.RLock()
	if len(mgr.callbacks) != 2 {
		t.Errorf("expected 2 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "${OPENAI_API_KEY}") {
		t.Error("expected API key placeholder in written config")
	}
	if !strings.Contains(content, "gpt-4o-mini") {
		t.Error("expected default model in written config")
	}
}
