/*
 * This file is part of scribe-bot (https://github.com/scribelabs/scribe-bot).
 * Copyright (C) 2025 Scribe Labs
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program. If not, see <https://www.gnu.org/licenses/>.
 */

// Package api exposes a read-only HTTP surface over the transcript history.
// Admin commands stay conversational; this is observability only.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/scribelabs/scribe-bot/internal/events"
	"github.com/scribelabs/scribe-bot/internal/logging"
	"github.com/scribelabs/scribe-bot/internal/storage"
)

// TranscriptsHandler handles HTTP requests for transcript history
type TranscriptsHandler struct {
	store *storage.TranscriptStore
}

// NewTranscriptsHandler creates a new transcripts handler
func NewTranscriptsHandler(store *storage.TranscriptStore) *TranscriptsHandler {
	return &TranscriptsHandler{store: store}
}

// ListTranscriptsResponse represents the response for listing transcripts
type ListTranscriptsResponse struct {
	Transcripts []*events.Transcript `json:"transcripts"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
	TotalPages  int                  `json:"total_pages"`
}

// HandleTranscripts handles GET /api/transcripts
func (h *TranscriptsHandler) HandleTranscripts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()

	page := parseIntParam(query.Get("page"), 1)
	pageSize := parseIntParam(query.Get("page_size"), 20)
	if pageSize > 100 {
		pageSize = 100 // Limit maximum page size
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	options := storage.ListOptions{
		ChannelID: query.Get("channel_id"),
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}

	if successParam := query.Get("success"); successParam != "" {
		if success, err := strconv.ParseBool(successParam); err == nil {
			options.Success = &success
		}
	}

	transcripts, err := h.store.List(options)
	if err != nil {
		logging.LogError(err, "Failed to list transcripts")
		http.Error(w, "Failed to list transcripts", http.StatusInternalServerError)
		return
	}

	total, err := h.store.Count(options)
	if err != nil {
		logging.LogError(err, "Failed to count transcripts")
		http.Error(w, "Failed to count transcripts", http.StatusInternalServerError)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if transcripts == nil {
		transcripts = []*events.Transcript{}
	}

	writeJSON(w, ListTranscriptsResponse{
		Transcripts: transcripts,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	})
}

// HandleTranscriptByID handles GET /api/transcripts/{id}
func (h *TranscriptsHandler) HandleTranscriptByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transcripts/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Transcript ID is required", http.StatusBadRequest)
		return
	}

	transcript, err := h.store.GetByUUID(id)
	if err != nil {
		http.Error(w, "Transcript not found", http.StatusNotFound)
		return
	}

	writeJSON(w, transcript)
}

// parseIntParam parses an integer query parameter with a default
func parseIntParam(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return defaultValue
}

// writeJSON writes a JSON response with the right content type
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.LogError(err, "Failed to encode JSON response")
	}
}
