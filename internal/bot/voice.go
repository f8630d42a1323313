/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/scribelabs/scribe-bot/internal/chat"
	"github.com/scribelabs/scribe-bot/internal/events"
	"github.com/scribelabs/scribe-bot/internal/logging"
	"github.com/scribelabs/scribe-bot/internal/transcribe"
)

// defaultAudioExt is used when an attachment filename carries no extension.
// Voice messages arrive as Ogg containers.
const defaultAudioExt = ".ogg"

// HandleMessage reacts to a message-received event. Messages are ignored
// unless the session is listening, the author is not a bot, and the message
// is flagged as a voice message. Failures are reported to the channel and
// never alter the session state.
func (s *Session) HandleMessage(ctx context.Context, msg *chat.MessageEvent) {
	s.mu.Lock()
	listening := s.listening
	langCode := s.langCode
	transcriber := s.transcriber
	s.mu.Unlock()

	if !listening || msg.AuthorIsBot || !msg.VoiceMessage {
		return
	}
	if len(msg.Attachments) == 0 {
		return
	}
	if transcriber == nil {
		// Listening implies a validated key; a nil client here means the
		// session was mutated out from under us.
		logging.LogWarn("Voice message received without an active transcription client",
			zap.String("message_id", msg.ID),
		)
		return
	}

	logging.LogChatEvent(msg.ID, msg.ChannelID, "voice_message")

	attachment := msg.Attachments[0]
	transcript := events.NewTranscript(msg.ID, msg.ChannelID, msg.AuthorID)
	transcript.Language = langCode

	startTime := time.Now()
	text, err := s.transcribeAttachment(ctx, transcriber, &attachment, langCode)
	if err != nil {
		transcript.SetError(err, time.Since(startTime))
		s.record(transcript)
		logging.LogError(err, "Voice message processing failed",
			zap.String("message_id", msg.ID),
		)
		s.reply(msg.ChannelID, "", fmt.Sprintf("Error processing voice message:\n%v", err))
		return
	}

	transcript.SetResult(text, time.Since(startTime))
	s.record(transcript)
	s.reply(msg.ChannelID, msg.ID, text)
}

// transcribeAttachment stages the attachment in a temporary file, transcribes
// it, and removes the file on every exit path.
func (s *Session) transcribeAttachment(ctx context.Context, transcriber transcribe.Transcriber, attachment *chat.Attachment, langCode string) (string, error) {
	path, cleanup, err := stageAttachment(attachment)
	if err != nil {
		return "", err
	}
	defer cleanup()

	return transcriber.Transcribe(ctx, path, langCode)
}

// stageAttachment writes attachment bytes to a scoped temporary file and
// returns its path with a cleanup func.
func stageAttachment(attachment *chat.Attachment) (string, func(), error) {
	ext := filepath.Ext(attachment.Filename)
	if ext == "" {
		ext = defaultAudioExt
	}

	file, err := os.CreateTemp("", "scribe-voice-*"+ext)
	if err != nil {
		return "", nil, &AttachmentSaveError{Err: err}
	}
	path := file.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := file.Write(attachment.Data); err != nil {
		_ = file.Close()
		cleanup()
		return "", nil, &AttachmentSaveError{Err: err}
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", nil, &AttachmentSaveError{Err: err}
	}

	return path, cleanup, nil
}
