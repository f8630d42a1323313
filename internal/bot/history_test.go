/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

package bot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/scribelabs/scribe-bot/internal/envfile"
	"github.com/scribelabs/scribe-bot/internal/lang"
	"github.com/scribelabs/scribe-bot/internal/storage"
	"github.com/scribelabs/scribe-bot/internal/transcribe"
)

func newFixtureWithHistory(t *testing.T) (*testFixture, *storage.TranscriptStore) {
	t.Helper()

	db, err := storage.NewDatabase(storage.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "history.db"),
	})
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := storage.NewTranscriptStore(db)

	env, err := envfile.Open(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("envfile.Open() error = %v", err)
	}
	if err := env.Set(envfile.KeyAPIKey, "sk-test"); err != nil {
		t.Fatalf("env.Set() error = %v", err)
	}

	registry, err := lang.Load()
	if err != nil {
		t.Fatalf("lang.Load() error = %v", err)
	}

	replier := &fakeReplier{}
	transcriber := &fakeTranscriber{text: "hello world"}

	session, err := NewSession(SessionConfig{
		Env:         env,
		Languages:   registry,
		Replier:     replier,
		Transcripts: store,
		NewTranscriber: func(apiKey string) transcribe.Transcriber {
			return transcriber
		},
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	return &testFixture{
		session:     session,
		replier:     replier,
		transcriber: transcriber,
		env:         env,
	}, store
}

func TestHandleMessage_RecordsHistory(t *testing.T) {
	f, store := newFixtureWithHistory(t)
	f.session.mu.Lock()
	f.session.listening = true
	f.session.mu.Unlock()

	f.session.HandleMessage(context.Background(), voiceMessage([]byte("OggS payload")))

	transcripts, err := store.List(storage.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(transcripts) != 1 {
		t.Fatalf("stored %d transcripts, want 1", len(transcripts))
	}

	record := transcripts[0]
	if record.Text != "hello world" {
		t.Errorf("Text = %q, want %q", record.Text, "hello world")
	}
	if record.MessageID != "msg-1" {
		t.Errorf("MessageID = %q, want %q", record.MessageID, "msg-1")
	}
	if record.Language != "en" {
		t.Errorf("Language = %q, want %q", record.Language, "en")
	}
	if !record.Success {
		t.Error("Success = false, want true")
	}
}

func TestHandleMessage_RecordsFailedAttempt(t *testing.T) {
	f, store := newFixtureWithHistory(t)
	f.session.mu.Lock()
	f.session.listening = true
	f.session.mu.Unlock()
	f.transcriber.transcribeErr = &transcribe.TranscriptionError{Message: "quota exceeded"}

	f.session.HandleMessage(context.Background(), voiceMessage([]byte("OggS payload")))

	failed := false
	transcripts, err := store.List(storage.ListOptions{Success: &failed})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(transcripts) != 1 {
		t.Fatalf("stored %d failed transcripts, want 1", len(transcripts))
	}
	if transcripts[0].ErrorMessage == "" {
		t.Error("ErrorMessage should carry the failure reason")
	}
}
