/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

package lang

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmbeddedRegistry(t *testing.T) {
	registry, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if registry.Len() < 100 {
		t.Errorf("Len() = %d, want at least 100 ISO-639-1 codes", registry.Len())
	}

	name, ok := registry.Lookup("en")
	if !ok {
		t.Fatal("Lookup(\"en\") not found")
	}
	if name != "English" {
		t.Errorf("Lookup(\"en\") = %q, want %q", name, "English")
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	registry, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		code string
		want string
		ok   bool
	}{
		{code: "EN", want: "English", ok: true},
		{code: "En", want: "English", ok: true},
		{code: "de", want: "German", ok: true},
		{code: " fr ", want: "French", ok: true},
		{code: "xx", want: "", ok: false},
		{code: "", want: "", ok: false},
		{code: "english", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			name, ok := registry.Lookup(tt.code)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.code, ok, tt.ok)
			}
			if name != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.code, name, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.json")
	content := `[{"code": "en", "name": "English"}, {"code": "ES", "name": "Spanish"}]`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write registry file: %v", err)
	}

	registry, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if registry.Len() != 2 {
		t.Errorf("Len() = %d, want 2", registry.Len())
	}

	// Codes are normalized to lower case at load time
	if !registry.Contains("es") {
		t.Error("Contains(\"es\") = false, want true")
	}

	codes := registry.Codes()
	if len(codes) != 2 || codes[0] != "en" || codes[1] != "es" {
		t.Errorf("Codes() = %v, want [en es]", codes)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty list", content: `[]`},
		{name: "missing code", content: `[{"name": "English"}]`},
		{name: "invalid json", content: `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "languages.json")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("failed to write registry file: %v", err)
			}

			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() expected error but got none")
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadFile() on missing file expected error but got none")
	}
}
