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

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the scribe-bot service
type Config struct {
	Server  ServerConfig
	Bot     BotConfig
	STT     STTConfig
	Storage StorageConfig
	Logging LoggingConfig
	NATS    NATSConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BotConfig holds bot session configuration
type BotConfig struct {
	EnvFile       string // Path to the .env file holding the API key and language code
	LanguagesFile string // Optional path to an external ISO-639-1 registry; empty uses the embedded one
}

// STTConfig holds speech-to-text service configuration
type STTConfig struct {
	BaseURL string        // Optional override for the OpenAI-compatible API base URL
	Timeout time.Duration // Per-request timeout for remote calls
}

// StorageConfig holds transcript database configuration
type StorageConfig struct {
	DBPath string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// NATSConfig holds NATS messaging configuration
type NATSConfig struct {
	URL           string
	MaxReconnect  int
	ReconnectWait time.Duration
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host:         getEnvString("SCRIBE_HOST", "0.0.0.0"),
			Port:         getEnvInt("SCRIBE_PORT", 8080),
			ReadTimeout:  getEnvDuration("SCRIBE_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvDuration("SCRIBE_WRITE_TIMEOUT", 30*time.Second),
		},
		Bot: BotConfig{
			EnvFile:       getEnvString("SCRIBE_ENV_FILE", ".env"),
			LanguagesFile: getEnvString("SCRIBE_LANGUAGES_FILE", ""),
		},
		STT: STTConfig{
			BaseURL: getEnvString("STT_BASE_URL", ""),
			Timeout: getEnvDuration("STT_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			DBPath: getEnvString("DB_PATH", "./data/scribe-bot.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		NATS: NATSConfig{
			URL:           getEnvString("NATS_URL", "nats://localhost:4222"),
			MaxReconnect:  getEnvInt("NATS_MAX_RECONNECT", 10),
			ReconnectWait: getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		},
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validate checks if the configuration is valid
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Bot.EnvFile == "" {
		return fmt.Errorf("env file path must be provided")
	}

	if c.STT.Timeout <= 0 {
		return fmt.Errorf("STT timeout must be positive: %v", c.STT.Timeout)
	}

	if c.Storage.DBPath == "" {
		return fmt.Errorf("database path must be provided")
	}

	if c.NATS.URL == "" {
		return fmt.Errorf("NATS URL must be provided")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
