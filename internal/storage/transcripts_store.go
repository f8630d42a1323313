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

package storage

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/scribelabs/scribe-bot/internal/events"
	"github.com/scribelabs/scribe-bot/internal/logging"
)

// TranscriptStore handles database operations for transcript records
type TranscriptStore struct {
	db *Database
}

// NewTranscriptStore creates a new transcript store
func NewTranscriptStore(db *Database) *TranscriptStore {
	return &TranscriptStore{db: db}
}

// Insert stores a new transcript record in the database
func (s *TranscriptStore) Insert(transcript *events.Transcript) error {
	if err := transcript.IsValid(); err != nil {
		return fmt.Errorf("invalid transcript: %w", err)
	}

	query := `
		INSERT INTO transcripts (
			uuid, message_id, channel_id, author_id, created_at,
			language, text, duration_ms, success, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.DB().Exec(query,
		transcript.UUID, transcript.MessageID, transcript.ChannelID,
		transcript.AuthorID, transcript.CreatedAt,
		transcript.Language, transcript.Text, transcript.DurationMS,
		transcript.Success, transcript.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transcript: %w", err)
	}

	logging.LogDatabaseOperation("insert", "transcripts",
		zap.String("uuid", transcript.UUID),
		zap.String("channel_id", transcript.ChannelID),
		zap.Bool("success", transcript.Success),
	)
	return nil
}

// GetByUUID retrieves a transcript by its UUID
func (s *TranscriptStore) GetByUUID(uuid string) (*events.Transcript, error) {
	query := `
		SELECT uuid, message_id, channel_id, author_id, created_at,
			   language, text, duration_ms, success, error_message
		FROM transcripts
		WHERE uuid = ?`

	row := s.db.DB().QueryRow(query, uuid)
	return s.scanTranscript(row)
}

// List retrieves transcripts with pagination and filtering, newest first
func (s *TranscriptStore) List(options ListOptions) ([]*events.Transcript, error) {
	query, args := s.buildListQuery(options)

	rows, err := s.db.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts: %w", err)
	}
	defer rows.Close()

	var transcripts []*events.Transcript
	for rows.Next() {
		transcript, err := s.scanTranscript(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}
		transcripts = append(transcripts, transcript)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transcripts: %w", err)
	}

	return transcripts, nil
}

// Count returns the total number of transcripts matching the filter
func (s *TranscriptStore) Count(options ListOptions) (int64, error) {
	options.Limit = 0
	options.Offset = 0
	query, args := s.buildListQuery(options)

	countQuery := "SELECT COUNT(*) FROM (" + query + ") as filtered"

	var count int64
	if err := s.db.DB().QueryRow(countQuery, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transcripts: %w", err)
	}

	return count, nil
}

// GetRecentByChannel retrieves recent transcripts for a specific channel
func (s *TranscriptStore) GetRecentByChannel(channelID string, limit int) ([]*events.Transcript, error) {
	return s.List(ListOptions{
		ChannelID: channelID,
		Limit:     limit,
	})
}

// ListOptions defines filtering and pagination options
type ListOptions struct {
	// Filtering
	ChannelID string
	Success   *bool // nil = all, true = success only, false = errors only

	// Pagination
	Limit  int
	Offset int
}

// buildListQuery constructs the SQL query based on ListOptions
func (s *TranscriptStore) buildListQuery(options ListOptions) (string, []interface{}) {
	query := `
		SELECT uuid, message_id, channel_id, author_id, created_at,
			   language, text, duration_ms, success, error_message
		FROM transcripts WHERE 1=1`

	var args []interface{}

	if options.ChannelID != "" {
		query += " AND channel_id = ?"
		args = append(args, options.ChannelID)
	}

	if options.Success != nil {
		query += " AND success = ?"
		args = append(args, *options.Success)
	}

	query += " ORDER BY created_at DESC"

	if options.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, options.Limit)

		if options.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, options.Offset)
		}
	}

	return query, args
}

// scanner abstracts sql.Row and sql.Rows for scanTranscript
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTranscript maps a database row onto a Transcript
func (s *TranscriptStore) scanTranscript(row scanner) (*events.Transcript, error) {
	var transcript events.Transcript

	err := row.Scan(
		&transcript.UUID, &transcript.MessageID, &transcript.ChannelID,
		&transcript.AuthorID, &transcript.CreatedAt,
		&transcript.Language, &transcript.Text, &transcript.DurationMS,
		&transcript.Success, &transcript.ErrorMessage,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transcript not found")
	}
	if err != nil {
		return nil, err
	}

	return &transcript, nil
}
