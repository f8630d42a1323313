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

package logging

import (
	"errors"
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(core zapcore.Core) *zap.Logger {
	return zap.New(core)
}

func TestInitialize(t *testing.T) {
	// Save original environment
	originalLevel := os.Getenv("LOG_LEVEL")
	originalFormat := os.Getenv("LOG_FORMAT")
	defer func() {
		_ = os.Setenv("LOG_LEVEL", originalLevel)
		_ = os.Setenv("LOG_FORMAT", originalFormat)
	}()

	tests := []struct {
		name      string
		logLevel  string
		logFormat string
		wantErr   bool
	}{
		{
			name:      "Default values",
			logLevel:  "",
			logFormat: "",
			wantErr:   false,
		},
		{
			name:      "Info level console format",
			logLevel:  "info",
			logFormat: "console",
			wantErr:   false,
		},
		{
			name:      "Debug level JSON format",
			logLevel:  "debug",
			logFormat: "json",
			wantErr:   false,
		},
		{
			name:      "Invalid format defaults to console",
			logLevel:  "info",
			logFormat: "invalid",
			wantErr:   false,
		},
		{
			name:      "Invalid level defaults to info",
			logLevel:  "invalid",
			logFormat: "console",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.logLevel != "" {
				_ = os.Setenv("LOG_LEVEL", tt.logLevel)
			} else {
				_ = os.Unsetenv("LOG_LEVEL")
			}
			if tt.logFormat != "" {
				_ = os.Setenv("LOG_FORMAT", tt.logFormat)
			} else {
				_ = os.Unsetenv("LOG_FORMAT")
			}

			err := Initialize()

			if tt.wantErr {
				if err == nil {
					t.Error("Initialize() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Initialize() unexpected error: %v", err)
				return
			}

			if Logger == nil {
				t.Error("Logger should not be nil after initialization")
			}
			if Sugar == nil {
				t.Error("Sugar should not be nil after initialization")
			}

			Close()
		})
	}
}

func TestInitializeWithConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  LogConfig
		wantErr bool
	}{
		{
			name: "Console format info level",
			config: LogConfig{
				Level:  "info",
				Format: "console",
			},
			wantErr: false,
		},
		{
			name: "JSON format debug level",
			config: LogConfig{
				Level:  "debug",
				Format: "json",
			},
			wantErr: false,
		},
		{
			name: "Invalid format defaults to console",
			config: LogConfig{
				Level:  "info",
				Format: "invalid",
			},
			wantErr: false,
		},
		{
			name: "Case insensitive",
			config: LogConfig{
				Level:  "INFO",
				Format: "JSON",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeWithConfig(tt.config)

			if tt.wantErr {
				if err == nil {
					t.Error("InitializeWithConfig() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("InitializeWithConfig() unexpected error: %v", err)
				return
			}

			if Logger == nil {
				t.Error("Logger should not be nil after initialization")
			}
			if Sugar == nil {
				t.Error("Sugar should not be nil after initialization")
			}

			Close()
		})
	}
}

func TestLoggingHelpers(t *testing.T) {
	// Route the global logger through an observer so we can inspect output
	core, recorded := observer.New(zapcore.InfoLevel)
	Logger = newObservedLogger(core)
	Sugar = Logger.Sugar()
	defer Close()

	LogChatEvent("msg-1", "chan-1", "received")
	LogTranscription("transcribe")
	LogNATSEvent("scribe.chat.messages", "subscribe")
	LogDatabaseOperation("insert", "transcripts")
	LogError(errors.New("boom"), "something failed")
	LogWarn("heads up")

	entries := recorded.All()
	if len(entries) != 6 {
		t.Fatalf("expected 6 log entries, got %d", len(entries))
	}

	chatFields := entries[0].ContextMap()
	if chatFields["component"] != "chat" {
		t.Errorf("LogChatEvent component = %v, want %q", chatFields["component"], "chat")
	}
	if chatFields["message_id"] != "msg-1" {
		t.Errorf("LogChatEvent message_id = %v, want %q", chatFields["message_id"], "msg-1")
	}

	trFields := entries[1].ContextMap()
	if trFields["component"] != "transcription" {
		t.Errorf("LogTranscription component = %v, want %q", trFields["component"], "transcription")
	}

	natsFields := entries[2].ContextMap()
	if natsFields["subject"] != "scribe.chat.messages" {
		t.Errorf("LogNATSEvent subject = %v, want %q", natsFields["subject"], "scribe.chat.messages")
	}

	dbFields := entries[3].ContextMap()
	if dbFields["table"] != "transcripts" {
		t.Errorf("LogDatabaseOperation table = %v, want %q", dbFields["table"], "transcripts")
	}

	if entries[4].Level != zapcore.ErrorLevel {
		t.Errorf("LogError level = %v, want %v", entries[4].Level, zapcore.ErrorLevel)
	}
	if entries[5].Level != zapcore.WarnLevel {
		t.Errorf("LogWarn level = %v, want %v", entries[5].Level, zapcore.WarnLevel)
	}
}

func TestHelpersWithNilLogger(t *testing.T) {
	Logger = nil
	Sugar = nil

	// None of these should panic when the logger is uninitialized
	LogChatEvent("msg", "chan", "received")
	LogTranscription("transcribe")
	LogNATSEvent("subject", "publish")
	LogDatabaseOperation("insert", "transcripts")
	LogError(errors.New("boom"), "failed")
	LogWarn("warning")
}
