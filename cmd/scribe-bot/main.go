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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scribelabs/scribe-bot/internal/bot"
	"github.com/scribelabs/scribe-bot/internal/chat"
	"github.com/scribelabs/scribe-bot/internal/config"
	"github.com/scribelabs/scribe-bot/internal/envfile"
	"github.com/scribelabs/scribe-bot/internal/lang"
	"github.com/scribelabs/scribe-bot/internal/logging"
	"github.com/scribelabs/scribe-bot/internal/server"
	"github.com/scribelabs/scribe-bot/internal/storage"
	"github.com/scribelabs/scribe-bot/internal/transcribe"
)

func main() {
	// Initialize structured logging
	if err := logging.Initialize(); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Language registry is loaded once and never mutated
	registry, err := loadRegistry(cfg)
	if err != nil {
		log.Fatalf("Failed to load language registry: %v", err)
	}

	// Durable bot settings (API key, language code)
	env, err := envfile.Open(cfg.Bot.EnvFile)
	if err != nil {
		log.Fatalf("Failed to open env file: %v", err)
	}

	// Transcript history
	database, err := storage.NewDatabase(storage.DatabaseConfig{Path: cfg.Storage.DBPath})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = database.Close() }()

	// Chat host boundary
	gateway := chat.NewGateway(chat.GatewayConfig{
		URL:           cfg.NATS.URL,
		MaxReconnect:  cfg.NATS.MaxReconnect,
		ReconnectWait: cfg.NATS.ReconnectWait,
	})
	if err := gateway.Connect(); err != nil {
		log.Fatalf("Failed to connect to chat host: %v", err)
	}
	defer gateway.Close()

	session, err := bot.NewSession(bot.SessionConfig{
		Env:         env,
		Languages:   registry,
		Replier:     gateway,
		Transcripts: storage.NewTranscriptStore(database),
		NewTranscriber: func(apiKey string) transcribe.Transcriber {
			return transcribe.NewOpenAIClientWithOptions(apiKey, transcribe.ClientOptions{
				BaseURL: cfg.STT.BaseURL,
				Timeout: cfg.STT.Timeout,
			})
		},
	})
	if err != nil {
		log.Fatalf("Failed to build bot session: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := gateway.SubscribeCommands(func(cmd *chat.CommandEvent) {
		session.HandleCommand(ctx, cmd)
	}); err != nil {
		log.Fatalf("Failed to subscribe to commands: %v", err)
	}
	if _, err := gateway.SubscribeMessages(func(msg *chat.MessageEvent) {
		session.HandleMessage(ctx, msg)
	}); err != nil {
		log.Fatalf("Failed to subscribe to messages: %v", err)
	}

	srv := server.New(cfg, session, gateway, database)

	logging.Sugar.Infow("🚀 scribe-bot starting",
		"http_addr", cfg.Server.Host,
		"http_port", cfg.Server.Port,
		"nats_url", cfg.NATS.URL,
		"db_path", cfg.Storage.DBPath,
		"languages", registry.Len(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Sugar.Infow("Received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logging.LogError(err, "HTTP server failed")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(err, "Failed to shut down HTTP server")
	}
}

// loadRegistry loads the embedded ISO-639-1 dataset, or an external file
// when one is configured.
func loadRegistry(cfg *config.Config) (*lang.Registry, error) {
	if cfg.Bot.LanguagesFile != "" {
		return lang.LoadFile(cfg.Bot.LanguagesFile)
	}
	return lang.Load()
}
