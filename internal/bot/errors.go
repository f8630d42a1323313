/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

package bot

import (
	"errors"
	"fmt"
)

// Configuration errors surfaced by the start/set_lang/set_api_key guards.
var (
	// ErrConfigMissing means a required setting has never been set.
	ErrConfigMissing = errors.New("configuration value is not set")

	// ErrConfigInvalid means a setting is present but rejected by
	// validation (unknown language code, rejected API key).
	ErrConfigInvalid = errors.New("configuration value is invalid")
)

// AttachmentSaveError reports a local I/O failure while staging a voice
// attachment for upload.
type AttachmentSaveError struct {
	Err error
}

func (e *AttachmentSaveError) Error() string {
	return fmt.Sprintf("failed to save voice attachment: %v", e.Err)
}

func (e *AttachmentSaveError) Unwrap() error {
	return e.Err
}
