/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/scribelabs/scribe-bot/internal/chat"
	"github.com/scribelabs/scribe-bot/internal/envfile"
	"github.com/scribelabs/scribe-bot/internal/logging"
	"github.com/scribelabs/scribe-bot/internal/transcribe"
)

// Admin command names delivered by the chat host.
const (
	CommandStart     = "start"
	CommandStop      = "stop"
	CommandSetLang   = "set_lang"
	CommandSetAPIKey = "set_api_key"
)

// commandSpec pairs a handler with its expected argument count.
type commandSpec struct {
	argc  int
	usage string
	run   func(ctx context.Context, cmd *chat.CommandEvent) string
}

func (s *Session) commandHandlers() map[string]commandSpec {
	return map[string]commandSpec{
		CommandStart:     {argc: 0, usage: CommandStart, run: s.handleStart},
		CommandStop:      {argc: 0, usage: CommandStop, run: s.handleStop},
		CommandSetLang:   {argc: 1, usage: CommandSetLang + " <code>", run: s.handleSetLang},
		CommandSetAPIKey: {argc: 1, usage: CommandSetAPIKey + " <key>", run: s.handleSetAPIKey},
	}
}

// HandleCommand dispatches an admin command invocation and replies with
// conversational feedback. All failures are translated into reply text; none
// escape to the caller.
func (s *Session) HandleCommand(ctx context.Context, cmd *chat.CommandEvent) {
	handler, ok := s.commandHandlers()[cmd.Name]
	if !ok {
		s.reply(cmd.ChannelID, "", fmt.Sprintf("Unknown command `%s`.", cmd.Name))
		return
	}

	if len(cmd.Args) != handler.argc {
		s.reply(cmd.ChannelID, "", fmt.Sprintf("Usage: `%s`.", handler.usage))
		return
	}

	if logging.Logger != nil {
		logging.Logger.Info("Handling admin command",
			zap.String("command", cmd.Name),
			zap.String("issuer_id", cmd.IssuerID),
		)
	}

	s.reply(cmd.ChannelID, "", handler.run(ctx, cmd))
}

// handleStart validates the language code and API key live against the
// registry and the remote service, then starts listening.
func (s *Session) handleStart(ctx context.Context, cmd *chat.CommandEvent) string {
	if err := s.validateLanguage(); err != nil {
		return s.languageDiagnostic(err) +
			"\nPlease set a valid language code before calling `start` again."
	}

	if err := s.validateAPIKey(ctx); err != nil {
		return keyDiagnostic(err) +
			"\nPlease set a valid API key before calling `start` again."
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listening {
		return "I'm already listening to voice messages.\nStart command ignored."
	}

	s.listening = true
	return "Started listening to voice messages."
}

// handleStop stops listening; a stop while idle is a notice-only no-op.
func (s *Session) handleStop(ctx context.Context, cmd *chat.CommandEvent) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.listening {
		return "Wasn't listening to voice messages.\nStop command ignored."
	}

	s.listening = false
	return "Stopped listening to voice messages."
}

// handleSetLang persists a new transcript language after a case-insensitive
// registry lookup.
func (s *Session) handleSetLang(ctx context.Context, cmd *chat.CommandEvent) string {
	code := strings.ToLower(strings.TrimSpace(cmd.Args[0]))

	name, ok := s.languages.Lookup(code)
	if !ok {
		return "Invalid language code.\nPlease provide a valid ISO-639-1 language code."
	}

	if err := s.env.Set(envfile.KeyLanguageCode, code); err != nil {
		logging.LogError(err, "Failed to persist language code")
		return fmt.Sprintf("Failed to save the language code:\n%v", err)
	}

	s.mu.Lock()
	s.langCode = code
	s.mu.Unlock()

	return fmt.Sprintf("Language set to %s (%s).\nUse the `start` command to begin listening!", name, code)
}

// handleSetAPIKey validates a candidate key against the remote service before
// persisting it and swapping the active client.
func (s *Session) handleSetAPIKey(ctx context.Context, cmd *chat.CommandEvent) string {
	key := strings.TrimSpace(cmd.Args[0])
	if key == "" {
		return "API key not set due to errors.\nPlease try again."
	}

	candidate := s.newTranscriber(key)
	if err := candidate.ValidateKey(ctx); err != nil {
		return keyDiagnostic(err) + "\nAPI key not set due to errors.\nPlease try again."
	}

	if err := s.env.Set(envfile.KeyAPIKey, key); err != nil {
		logging.LogError(err, "Failed to persist API key")
		return fmt.Sprintf("Failed to save the API key:\n%v", err)
	}

	s.mu.Lock()
	s.transcriber = candidate
	s.mu.Unlock()

	return "API key set.\nUse the `start` command to begin listening!"
}

// validateLanguage checks the active language code against the registry.
func (s *Session) validateLanguage() error {
	s.mu.Lock()
	code := s.langCode
	s.mu.Unlock()

	if code == "" {
		return ErrConfigMissing
	}
	if !s.languages.Contains(code) {
		return fmt.Errorf("%w: language code %q", ErrConfigInvalid, code)
	}
	return nil
}

// validateAPIKey checks the active client against the remote service.
func (s *Session) validateAPIKey(ctx context.Context) error {
	s.mu.Lock()
	transcriber := s.transcriber
	s.mu.Unlock()

	if transcriber == nil {
		return ErrConfigMissing
	}
	return transcriber.ValidateKey(ctx)
}

func (s *Session) languageDiagnostic(err error) string {
	if errors.Is(err, ErrConfigMissing) {
		return "No language code is set."
	}
	s.mu.Lock()
	code := s.langCode
	s.mu.Unlock()
	return fmt.Sprintf("Invalid language code %q.", code)
}

func keyDiagnostic(err error) string {
	switch {
	case errors.Is(err, ErrConfigMissing):
		return "No API key is set."
	case errors.Is(err, transcribe.ErrModelUnavailable):
		return fmt.Sprintf("API key is valid, but does not have access to the %s model.\nModify the restrictions on this key, in order to use it.", transcribe.RequiredModel)
	default:
		return fmt.Sprintf("API key validation failed:\n%v", err)
	}
}
