/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

// Package bot holds the session state machine behind the transcription bot:
// the listening flag, the active language code and API key, the admin
// command handlers, and the voice-message pipeline.
package bot

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/scribelabs/scribe-bot/internal/chat"
	"github.com/scribelabs/scribe-bot/internal/envfile"
	"github.com/scribelabs/scribe-bot/internal/events"
	"github.com/scribelabs/scribe-bot/internal/lang"
	"github.com/scribelabs/scribe-bot/internal/logging"
	"github.com/scribelabs/scribe-bot/internal/storage"
	"github.com/scribelabs/scribe-bot/internal/transcribe"
)

// Replier sends conversational replies back to the chat host.
type Replier interface {
	PublishReply(reply *chat.Reply) error
}

// TranscriberFactory builds a transcription client for an API key. set_api_key
// validates a candidate client before swapping it in.
type TranscriberFactory func(apiKey string) transcribe.Transcriber

// SessionConfig holds the collaborators a Session needs.
type SessionConfig struct {
	Env            *envfile.Store
	Languages      *lang.Registry
	Replier        Replier
	Transcripts    *storage.TranscriptStore // optional; nil disables history
	NewTranscriber TranscriberFactory
}

// Session is the per-process bot state. It is constructed at startup from the
// persisted config, mutated only by command handlers, and discarded at
// shutdown. The listening flag always starts false.
type Session struct {
	mu          sync.Mutex
	listening   bool
	langCode    string
	transcriber transcribe.Transcriber

	env            *envfile.Store
	languages      *lang.Registry
	replier        Replier
	transcripts    *storage.TranscriptStore
	newTranscriber TranscriberFactory
}

// NewSession builds a session from the persisted configuration.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Env == nil {
		return nil, fmt.Errorf("env store is required")
	}
	if cfg.Languages == nil {
		return nil, fmt.Errorf("language registry is required")
	}
	if cfg.Replier == nil {
		return nil, fmt.Errorf("replier is required")
	}
	if cfg.NewTranscriber == nil {
		return nil, fmt.Errorf("transcriber factory is required")
	}

	s := &Session{
		langCode:       cfg.Env.Get(envfile.KeyLanguageCode),
		env:            cfg.Env,
		languages:      cfg.Languages,
		replier:        cfg.Replier,
		transcripts:    cfg.Transcripts,
		newTranscriber: cfg.NewTranscriber,
	}

	if apiKey := cfg.Env.Get(envfile.KeyAPIKey); apiKey != "" {
		s.transcriber = cfg.NewTranscriber(apiKey)
	}

	return s, nil
}

// Listening reports whether the bot currently reacts to voice messages.
func (s *Session) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

// LanguageCode returns the active transcript language code.
func (s *Session) LanguageCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.langCode
}

// HasAPIKey reports whether a transcription client is configured.
func (s *Session) HasAPIKey() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcriber != nil
}

// reply sends text to a channel, optionally threaded under replyToID.
// Send failures are logged, never propagated; a lost reply must not poison
// the session state.
func (s *Session) reply(channelID, replyToID, text string) {
	err := s.replier.PublishReply(&chat.Reply{
		ChannelID: channelID,
		ReplyToID: replyToID,
		Text:      text,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		logging.LogError(err, "Failed to send reply",
			zap.String("channel_id", channelID),
		)
	}
}

// record stores a transcript when history is enabled.
func (s *Session) record(transcript *events.Transcript) {
	if s.transcripts == nil {
		return
	}
	if err := s.transcripts.Insert(transcript); err != nil {
		logging.LogError(err, "Failed to store transcript",
			zap.String("uuid", transcript.UUID),
		)
	}
}
