package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// GeminiProvider answers chat messages with Google's Gemini API.
type GeminiProvider struct {
	client    *genai.Client
	modelID   string
	knowledge *KnowledgeBase
	logger    *logging.Logger
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, modelID string, knowledge *KnowledgeBase, logger *logging.Logger) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("chatbot: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("chatbot: create gemini client: %w", err)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &GeminiProvider{client: client, modelID: modelID, knowledge: knowledge, logger: logger}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

// Reply asks Gemini once. Any failure is logged and returned as "".
func (p *GeminiProvider) Reply(ctx context.Context, message string) string {
	model := p.client.GenerativeModel(p.modelID)
	model.SetMaxOutputTokens(512)

	prompt := buildPrompt(p.knowledge.Snapshot(ctx), message)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		p.logger.Warn("gemini request failed", "error", err)
		return ""
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		p.logger.Warn("gemini returned no candidates")
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

// Close releases the underlying API client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
