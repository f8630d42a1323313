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

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/scribelabs/scribe-bot/internal/api"
	"github.com/scribelabs/scribe-bot/internal/bot"
	"github.com/scribelabs/scribe-bot/internal/chat"
	"github.com/scribelabs/scribe-bot/internal/config"
	"github.com/scribelabs/scribe-bot/internal/logging"
	"github.com/scribelabs/scribe-bot/internal/storage"
)

// Server exposes the health and transcript-history HTTP surface.
type Server struct {
	cfg    *config.Config
	mux    *http.ServeMux
	server *http.Server

	session   *bot.Session
	gateway   *chat.Gateway
	database  *storage.Database
	startedAt time.Time
}

// New creates a server wired to the running bot components.
func New(cfg *config.Config, session *bot.Session, gateway *chat.Gateway, database *storage.Database) *Server {
	mux := http.NewServeMux()

	s := &Server{
		cfg:       cfg,
		mux:       mux,
		session:   session,
		gateway:   gateway,
		database:  database,
		startedAt: time.Now(),
	}

	s.server = &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.routes()

	return s
}

// routes sets up HTTP routing
func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	if s.database != nil {
		transcripts := api.NewTranscriptsHandler(storage.NewTranscriptStore(s.database))
		s.mux.HandleFunc("/api/transcripts", transcripts.HandleTranscripts)
		s.mux.HandleFunc("/api/transcripts/", transcripts.HandleTranscriptByID)
	}

	logging.Sugar.Infow("🌐 HTTP routes configured",
		"addr", s.server.Addr,
	)
}

// handleHealth provides system health information
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
	}

	if s.session != nil {
		health["listening"] = s.session.Listening()
		health["language"] = s.session.LanguageCode()
		health["api_key_configured"] = s.session.HasAPIKey()
	}

	if s.gateway != nil {
		health["nats_connected"] = s.gateway.IsConnected()
		if !s.gateway.IsConnected() {
			health["status"] = "degraded"
		}
	}

	if s.database != nil {
		if err := s.database.Ping(); err != nil {
			health["status"] = "degraded"
			health["database_error"] = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		logging.LogError(err, "Failed to encode health response")
	}
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	logging.Sugar.Infow("🌐 HTTP server starting", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.LogWarn("HTTP server shutting down", zap.String("addr", s.server.Addr))
	return s.server.Shutdown(ctx)
}
