package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/infrastructure/config"
)

const chatCompletionsPath = "/v1/chat/completions"

// DescriptionGenerator produces marketing copy for products through an
// OpenAI-compatible chat completion API.
type DescriptionGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDescriptionGenerator creates a generator from configuration. Returns nil
// when the feature is disabled so the product service can fall back cleanly.
func NewDescriptionGenerator(cfg *config.AIConfig, logger *zap.Logger) *DescriptionGenerator {
	if !cfg.Enabled {
		return nil
	}
	return &DescriptionGenerator{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "Você é um redator de uma gráfica brasileira. Escreva descrições " +
	"comerciais curtas de produtos gráficos em português, com no máximo dois parágrafos, " +
	"sem listas e sem emojis."

// GenerateDescription asks the model for a product description in Portuguese
func (g *DescriptionGenerator) GenerateDescription(ctx context.Context, productName, categoryName, keywords string) (string, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Produto: %s", productName)
	if categoryName != "" {
		fmt.Fprintf(&prompt, "\nCategoria: %s", categoryName)
	}
	if keywords != "" {
		fmt.Fprintf(&prompt, "\nPalavras-chave: %s", keywords)
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt.String()},
		},
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("ai: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("ai request failed", zap.Error(err))
		return "", shared.NewDomainError("AI_UNAVAILABLE", "Description service is unavailable")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("ai request rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return "", shared.NewDomainError("AI_UNAVAILABLE", "Description service is unavailable")
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("ai: failed to parse response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", shared.NewDomainError("AI_EMPTY_RESPONSE", "Description service returned no content")
	}

	description := strings.TrimSpace(completion.Choices[0].Message.Content)
	if description == "" {
		return "", shared.NewDomainError("AI_EMPTY_RESPONSE", "Description service returned no content")
	}
	return description, nil
}
