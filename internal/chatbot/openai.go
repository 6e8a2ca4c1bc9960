package chatbot

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// OpenAIProvider answers chat messages with the OpenAI chat completions
// API.
type OpenAIProvider struct {
	client    *openai.Client
	modelID   string
	knowledge *KnowledgeBase
	logger    *logging.Logger
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(apiKey, modelID string, knowledge *KnowledgeBase, logger *logging.Logger) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("chatbot: openai api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = openai.GPT3Dot5Turbo
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenAIProvider{
		client:    openai.NewClient(apiKey),
		modelID:   modelID,
		knowledge: knowledge,
		logger:    logger,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

// Reply asks OpenAI once. Any failure is logged and returned as "".
func (p *OpenAIProvider) Reply(ctx context.Context, message string) string {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.modelID,
		MaxTokens: 512,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(p.knowledge.Snapshot(ctx))},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		p.logger.Warn("openai request failed", "error", err)
		return ""
	}
	if len(resp.Choices) == 0 {
		p.logger.Warn("openai returned no choices")
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
