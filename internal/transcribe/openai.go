/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

package transcribe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/scribelabs/scribe-bot/internal/logging"
)

const defaultTimeout = 30 * time.Second

// OpenAIClient implements Transcriber against the OpenAI audio API.
type OpenAIClient struct {
	api *openai.Client
}

// ClientOptions configures an OpenAIClient.
type ClientOptions struct {
	// BaseURL overrides the API endpoint; empty uses the OpenAI default.
	// Any OpenAI-compatible service works here.
	BaseURL string

	// Timeout bounds each remote call. Zero uses a 30s default.
	Timeout time.Duration
}

// NewOpenAIClient creates a transcription client for the given API key.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return NewOpenAIClientWithOptions(apiKey, ClientOptions{})
}

// NewOpenAIClientWithOptions creates a transcription client with explicit
// endpoint and timeout configuration.
func NewOpenAIClientWithOptions(apiKey string, opts ClientOptions) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		api: openai.NewClientWithConfig(config),
	}
}

// ValidateKey lists the models visible to the key and requires RequiredModel
// among them.
func (c *OpenAIClient) ValidateKey(ctx context.Context) error {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return &TranscriptionError{
			Message: serviceMessage(err),
			Err:     fmt.Errorf("failed to list models: %w", err),
		}
	}

	for _, model := range list.Models {
		if model.ID == RequiredModel {
			logging.LogTranscription("validate_key",
				zap.Int("models", len(list.Models)),
			)
			return nil
		}
	}

	return ErrModelUnavailable
}

// Transcribe uploads the staged audio file and returns the transcript text.
func (c *OpenAIClient) Transcribe(ctx context.Context, audioPath, languageCode string) (string, error) {
	if audioPath == "" {
		return "", fmt.Errorf("audio path must not be empty")
	}

	startTime := time.Now()

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    RequiredModel,
		FilePath: audioPath,
		Language: languageCode,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", &TranscriptionError{
			Message: serviceMessage(err),
			Err:     err,
		}
	}

	logging.LogTranscription("transcribe",
		zap.String("language", languageCode),
		zap.Int64("processing_time_ms", time.Since(startTime).Milliseconds()),
		zap.Int("text_length", len(resp.Text)),
	)

	return resp.Text, nil
}
