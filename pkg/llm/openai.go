package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIClient) SuggestSummary(input SuggestInput) (*SuggestResult, error) {
	userPrompt := fmt.Sprintf("Title: %s\nBody: %s", input.Title, input.Content)

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(suggestSystemPrompt),
			openai.UserMessage(userPrompt),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return &SuggestResult{
		Summary:   strings.TrimSpace(parsed.Summary),
		ModelUsed: c.modelName,
	}, nil
}
