package anki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// connectHandler fakes an AnkiConnect endpoint with a fixed selection.
func connectHandler(t *testing.T, calls *[]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Action  string          `json:"action"`
			Version int             `json:"version"`
			Params  json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Version != 6 {
			t.Errorf("expected version 6, got %d", req.Version)
		}
		*calls = append(*calls, req.Action)

		w.Header().Set("Content-Type", "application/json")
		switch req.Action {
		case "version":
			json.NewEncoder(w).Encode(map[string]any{"result": 6, "error": nil})
		case "guiSelectedNotes":
			json.NewEncoder(w).Encode(map[string]any{"result": []int64{42, 7}, "error": nil})
		case "notesInfo":
			result := []map[string]any{
				{
					"noteId":    42,
					"modelName": "Japanese Vocab",
					"fields": map[string]any{
						"Kana":    map[string]any{"value": "ねこ", "order": 0},
						"English": map[string]any{"value": "cat", "order": 1},
						"Kanji":   map[string]any{"value": "", "order": 2},
					},
				},
				{
					"noteId":    7,
					"modelName": "Japanese Vocab",
					"fields": map[string]any{
						"Kana": map[string]any{"value": "いぬ", "order": 0},
					},
				},
			}
			json.NewEncoder(w).Encode(map[string]any{"result": result, "error": nil})
		case "updateNoteFields":
			json.NewEncoder(w).Encode(map[string]any{"result": nil, "error": nil})
		default:
			errMsg := "unsupported action: " + req.Action
			json.NewEncoder(w).Encode(map[string]any{"result": nil, "error": errMsg})
		}
	}
}

func TestClient_SelectedNotes(t *testing.T) {
	var calls []string
	server := httptest.NewServer(connectHandler(t, &calls))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})

	notes, err := client.SelectedNotes(context.Background())
	if err != nil {
		t.Fatalf("SelectedNotes() error = %v", err)
	}

	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	// Selection order preserved
	if notes[0].ID != 42 || notes[1].ID != 7 {
		t.Errorf("unexpected note order: %d, %d", notes[0].ID, notes[1].ID)
	}
	if notes[0].Field("Kana") != "ねこ" {
		t.Errorf("Kana = %q", notes[0].Field("Kana"))
	}
	if notes[0].Field("Kanji") != "" {
		t.Errorf("expected empty Kanji, got %q", notes[0].Field("Kanji"))
	}
	if notes[0].Model != "Japanese Vocab" {
		t.Errorf("Model = %q", notes[0].Model)
	}
	if !notes[0].HasField("Kanji") {
		t.Error("expected note 42 to define Kanji")
	}
	if notes[1].HasField("Kanji") {
		t.Error("note 7 should not define Kanji")
	}
}

func TestClient_SelectedNotes_EmptySelection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": []int64{}, "error": nil})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	notes, err := client.SelectedNotes(context.Background())
	if err != nil {
		t.Fatalf("SelectedNotes() error = %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected empty result, got %d notes", len(notes))
	}
}

func TestClient_SaveFields(t *testing.T) {
	var gotParams json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Action string          `json:"action"`
			Params json.RawMessage `json:"params"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotParams = req.Params
		json.NewEncoder(w).Encode(map[string]any{"result": nil, "error": nil})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	err := client.SaveFields(context.Background(), 42, map[string]string{"Kanji": "猫"})
	if err != nil {
		t.Fatalf("SaveFields() error = %v", err)
	}

	var params struct {
		Note struct {
			ID     int64             `json:"id"`
			Fields map[string]string `json:"fields"`
		} `json:"note"`
	}
	if err := json.Unmarshal(gotParams, &params); err != nil {
		t.Fatalf("failed to decode params: %v", err)
	}
	if params.Note.ID != 42 {
		t.Errorf("note id = %d, want 42", params.Note.ID)
	}
	if params.Note.Fields["Kanji"] != "猫" {
		t.Errorf("Kanji = %q, want 猫", params.Note.Fields["Kanji"])
	}
}

func TestClient_SaveFields_HostError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errMsg := "note was not found: 42"
		json.NewEncoder(w).Encode(map[string]any{"result": nil, "error": errMsg})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	err := client.SaveFields(context.Background(), 42, map[string]string{"Kanji": "猫"})
	if err == nil {
		t.Fatal("expected persistence error to propagate")
	}
}

func TestClient_Version(t *testing.T) {
	var calls []string
	server := httptest.NewServer(connectHandler(t, &calls))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	v, err := client.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if v != 6 {
		t.Errorf("version = %d, want 6", v)
	}
}

func TestNote_Field_Trims(t *testing.T) {
	n := Note{Fields: map[string]string{"Kana": "  ねこ \n"}}
	if n.Field("Kana") != "ねこ" {
		t.Errorf("Field should trim whitespace, got %q", n.Field("Kana"))
	}
	if n.Field("Missing") != "" {
		t.Error("missing field should read empty")
	}
}
