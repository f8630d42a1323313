/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

// Package transcribe wraps the remote OpenAI-compatible speech-to-text
// service behind a small interface.
package transcribe

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// RequiredModel is the transcription model an API key must have access to.
const RequiredModel = openai.Whisper1

// ErrModelUnavailable is returned by ValidateKey when the key is accepted by
// the service but does not grant access to the required transcription model.
var ErrModelUnavailable = fmt.Errorf("API key does not have access to the %s model", RequiredModel)

// Transcriber converts staged audio files to text using a remote service.
type Transcriber interface {
	// ValidateKey verifies the configured key against the remote service.
	// It returns nil only when the key is accepted and grants access to
	// RequiredModel.
	ValidateKey(ctx context.Context) error

	// Transcribe uploads the audio file at audioPath with the given
	// language hint and returns the plain transcript text.
	Transcribe(ctx context.Context, audioPath, languageCode string) (string, error)
}

// TranscriptionError carries the underlying service error message for a
// failed transcription or validation call.
type TranscriptionError struct {
	Message string
	Err     error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %s", e.Message)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// serviceMessage extracts the human-readable message from a remote service
// error, keeping the structured API message when one is present.
func serviceMessage(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
