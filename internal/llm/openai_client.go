package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const systemPrompt = `You are a non-medical sleep coaching assistant.

You receive rolling weekly sleep statistics for a single user, optionally the
previous week's statistics, and a list of rule-based coaching messages already
shown to the user. Base your conclusions only on the provided data.

Your goals:
- Describe the user's week of sleep in clear, neutral language.
- Highlight patterns in duration, midpoint regularity and social jetlag.
- Compare this week to the previous week when it is provided.
- Expand on, but never contradict, the rule-based messages.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Focus only on behavior and routines (bedtime regularity, wind-down habits).
- If data is limited or mixed, say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the week, comparing to the previous week when available.",
  "observations": [
    "2-5 bullet points about patterns in duration, regularity, jetlag and midpoint variability."
  ],
  "guidance": [
    "2-4 concrete, non-medical suggestions tailored to these numbers."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's weekly sleep statistics.

- "current" is the most recent seven-night window.
- "previous", when present, is the window before it.
- "recommendations" are the rule-based messages already shown.

JSON:

%s

Based on this data, respond in the required JSON format.`

// NarrativeLLM is the interface for generating narrative coaching text.
type NarrativeLLM interface {
	// GenerateNarrative takes the insights context and returns structured narrative text.
	GenerateNarrative(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.NarrativeInsights, error)
}

// OpenAIClient implements NarrativeLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for narrative generation.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

// GenerateNarrative calls OpenAI to turn weekly statistics into coaching text.
func (c *OpenAIClient) GenerateNarrative(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.NarrativeInsights, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(insightsCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	var output domain.NarrativeInsights
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &output, nil
}
