// Package summary generates AI analyses of extracted PDF text.
//
// The model is reached through langchaingo's OpenAI client, which speaks the
// chat completions format. Any llms.Model can be plugged in instead, which is
// how the tests capture outbound prompts.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/metrics"
)

// ErrNotConfigured is returned when no API key was provided at startup.
var ErrNotConfigured = errors.New("OpenAI API key not configured; set OPENAI_API_KEY")

// Config configures the OpenAI-backed service.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // Optional
}

// Service handles AI analysis generation.
type Service struct {
	llm   llms.Model
	model string
	log   *zap.Logger
}

// New creates a summary service backed by OpenAI. Without an API key the
// service is still returned, but every call fails with ErrNotConfigured.
func New(cfg Config, log *zap.Logger) (*Service, error) {
	if cfg.APIKey == "" {
		return &Service{model: cfg.Model, log: log}, nil
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return NewWithModel(llm, cfg.Model, log), nil
}

// NewWithModel creates a service around an existing model.
func NewWithModel(llm llms.Model, model string, log *zap.Logger) *Service {
	return &Service{llm: llm, model: model, log: log}
}

// IsConfigured reports whether the service can reach a model.
func (s *Service) IsConfigured() bool {
	return s.llm != nil
}

// Model returns the configured model name.
func (s *Service) Model() string {
	return s.model
}

// Complete sends a system instruction and a user prompt to the model and
// returns the first completion's text verbatim. One blocking round trip,
// no retries.
func (s *Service) Complete(ctx context.Context, system, prompt string) (content string, err error) {
	if s.llm == nil {
		return "", ErrNotConfigured
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.UpstreamOpenAI, start, err) }()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := s.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("OpenAI request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	s.log.Debug("model call completed",
		zap.String("model", s.model),
		zap.Duration("took", time.Since(start)))

	return resp.Choices[0].Content, nil
}
