/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

// Package lang provides the ISO-639-1 language registry used to validate
// transcript language codes.
package lang

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed iso639_1.json
var registryFiles embed.FS

// Language is one entry of the ISO-639-1 reference dataset.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Registry is an immutable mapping from ISO-639-1 code to display name.
// It is loaded once at startup and never mutated afterwards.
type Registry struct {
	names map[string]string
}

// Load builds the registry from the embedded reference dataset.
func Load() (*Registry, error) {
	data, err := registryFiles.ReadFile("iso639_1.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded language registry: %w", err)
	}
	return parse(data)
}

// LoadFile builds the registry from an external reference file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read language registry %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Registry, error) {
	var languages []Language
	if err := json.Unmarshal(data, &languages); err != nil {
		return nil, fmt.Errorf("failed to parse language registry: %w", err)
	}
	if len(languages) == 0 {
		return nil, fmt.Errorf("language registry is empty")
	}

	names := make(map[string]string, len(languages))
	for _, language := range languages {
		code := strings.ToLower(strings.TrimSpace(language.Code))
		if code == "" {
			return nil, fmt.Errorf("language registry entry %q has no code", language.Name)
		}
		names[code] = language.Name
	}

	return &Registry{names: names}, nil
}

// Lookup resolves a language code case-insensitively. It returns the display
// name and whether the code is part of the registry.
func (r *Registry) Lookup(code string) (string, bool) {
	name, ok := r.names[strings.ToLower(strings.TrimSpace(code))]
	return name, ok
}

// Contains reports whether code is a valid ISO-639-1 code.
func (r *Registry) Contains(code string) bool {
	_, ok := r.Lookup(code)
	return ok
}

// Codes returns all registry codes in sorted order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.names))
	for code := range r.names {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of registered languages.
func (r *Registry) Len() int {
	return len(r.names)
}
