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

package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transcript records one voice-message transcription attempt, successful or
// not, with enough context to trace it back to the originating chat message.
type Transcript struct {
	// Core identification
	UUID      string    `json:"uuid" db:"uuid"`
	MessageID string    `json:"message_id" db:"message_id"`
	ChannelID string    `json:"channel_id" db:"channel_id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Processing results
	Language     string `json:"language" db:"language"`
	Text         string `json:"text" db:"text"`
	DurationMS   int64  `json:"duration_ms" db:"duration_ms"`
	Success      bool   `json:"success" db:"success"`
	ErrorMessage string `json:"error_message,omitempty" db:"error_message"`
}

// NewTranscript creates a transcript record with a generated UUID and the
// current timestamp.
func NewTranscript(messageID, channelID, authorID string) *Transcript {
	return &Transcript{
		UUID:      uuid.NewString(),
		MessageID: messageID,
		ChannelID: channelID,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
}

// SetResult marks the transcript as successful with the given text.
func (t *Transcript) SetResult(text string, duration time.Duration) {
	t.Text = text
	t.DurationMS = duration.Milliseconds()
	t.Success = true
	t.ErrorMessage = ""
}

// SetError marks the transcript as failed with the given error.
func (t *Transcript) SetError(err error, duration time.Duration) {
	t.Text = ""
	t.DurationMS = duration.Milliseconds()
	t.Success = false
	if err != nil {
		t.ErrorMessage = err.Error()
	}
}

// IsValid checks that the transcript has the fields required for storage.
func (t *Transcript) IsValid() error {
	if t.UUID == "" {
		return fmt.Errorf("transcript UUID is required")
	}
	if t.MessageID == "" {
		return fmt.Errorf("transcript message ID is required")
	}
	if t.ChannelID == "" {
		return fmt.Errorf("transcript channel ID is required")
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("transcript timestamp is required")
	}
	return nil
}
