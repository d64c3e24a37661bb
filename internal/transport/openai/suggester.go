// Package openai provides a candidate suggestion source backed by an
// OpenAI-compatible chat completion API. Suggested candidates are untrusted
// input to the resolution engine like any other recommender output.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/triporama/placedex/internal/domain"
	"github.com/triporama/placedex/internal/domain/place"
	"github.com/triporama/placedex/internal/metrics"
)

const systemPrompt = `You are a travel place suggester. Given a city and a
place category, return real, currently operating places as a JSON object
{"places": [...]}. Each place has: name, latitude, longitude, city, country,
category, and optionally tags (object of string keys to string arrays; keys
among cuisine, ambience, price, feature, dietary, best_time). Return only
JSON, no prose.`

// Suggester produces place candidates via chat completions.
type Suggester struct {
	client        *openai.Client
	model         string
	maxCandidates int
	temperature   float32
	logger        *zap.Logger
}

// Config holds the suggestion provider settings.
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	MaxCandidates int
	Temperature   float32
	Logger        *zap.Logger
}

// NewSuggester creates an OpenAI-compatible suggestion provider.
func NewSuggester(cfg *Config) *Suggester {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	maxCandidates := cfg.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = 10
	}

	return &Suggester{
		client:        openai.NewClientWithConfig(clientCfg),
		model:         cfg.Model,
		maxCandidates: maxCandidates,
		temperature:   cfg.Temperature,
		logger:        cfg.Logger,
	}
}

type suggestedPlace struct {
	Name      string              `json:"name"`
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
	City      string              `json:"city"`
	Country   string              `json:"country"`
	Category  string              `json:"category"`
	Tags      map[string][]string `json:"tags,omitempty"`
}

type suggestResponse struct {
	Places []suggestedPlace `json:"places"`
}

// Suggest asks the provider for up to maxCandidates places in the given city
// and category. Malformed entries are dropped, not surfaced as errors.
func (s *Suggester) Suggest(ctx context.Context, city, country, category string) ([]place.Candidate, error) {
	prompt := fmt.Sprintf("Suggest up to %d %s places in %s, %s.",
		s.maxCandidates, category, city, country)

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	start := time.Now()

	resp, err := s.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.SuggestRequestsTotal.WithLabelValues(s.model, "error").Inc()
		return nil, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.SuggestRequestsTotal.WithLabelValues(s.model, "error").Inc()
		return nil, fmt.Errorf("empty completion response: %w", domain.ErrSuggestProviderError)
	}

	metrics.SuggestRequestsTotal.WithLabelValues(s.model, "success").Inc()
	metrics.SuggestRequestDuration.WithLabelValues(s.model).Observe(duration.Seconds())

	candidates, dropped := parseCandidates(resp.Choices[0].Message.Content, s.maxCandidates)
	if dropped > 0 && s.logger != nil {
		s.logger.Warn("dropped malformed suggested places",
			zap.Int("dropped", dropped),
			zap.String("city", city),
			zap.String("category", category))
	}
	return candidates, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (s *Suggester) HealthCheck(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseCandidates tolerates both {"places": [...]} and a bare top-level array.
func parseCandidates(content string, limit int) ([]place.Candidate, int) {
	content = strings.TrimSpace(content)

	var wrapped suggestResponse
	if err := json.Unmarshal([]byte(content), &wrapped); err != nil || wrapped.Places == nil {
		var bare []suggestedPlace
		if err := json.Unmarshal([]byte(content), &bare); err != nil {
			return nil, 0
		}
		wrapped.Places = bare
	}

	candidates := make([]place.Candidate, 0, len(wrapped.Places))
	dropped := 0
	for _, p := range wrapped.Places {
		if len(candidates) >= limit {
			break
		}
		cand := place.Candidate{
			Name:      p.Name,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			City:      p.City,
			Country:   p.Country,
			Category:  p.Category,
			Tags:      place.Tags(p.Tags).Clean(),
		}
		if !cand.Valid() {
			dropped++
			continue
		}
		candidates = append(candidates, cand)
	}
	return candidates, dropped
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrSuggestProviderError for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrSuggestProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("suggestion API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("suggestion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("suggestion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("suggestion request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
