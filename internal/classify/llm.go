package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/alphora/alphora/internal/rag"
)

// ErrEmptyCompletion is returned when the chat endpoint responds 2xx but
// contains no choices.
var ErrEmptyCompletion = errors.New("chat completion returned no choices")

// LLMConfig configures the model-backed classifier.
type LLMConfig struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"chat_model"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LLMClassifier sends the ticket to a chat-completion endpoint and parses
// the strict-JSON response. Transport failures are hard errors; malformed
// content collapses to an unknown classification instead.
type LLMClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewLLMClassifier(cfg LLMConfig) *LLMClassifier {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4-1106-preview"
	}
	return &LLMClassifier{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: cfg.RequestTimeout,
	}
}

func (c *LLMClassifier) Classify(ctx context.Context, title, body string) (rag.IntentClassification, error) {
	log.Printf("Classifying ticket via LLM: %q", title)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: intentClassificationSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildTicketClassificationPrompt(title, body),
			},
		},
		Temperature: 0.1,
		MaxTokens:   256,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return rag.IntentClassification{}, fmt.Errorf("chat completion request failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return rag.IntentClassification{}, ErrEmptyCompletion
	}

	return c.parseResponse(resp.Choices[0].Message.Content), nil
}

// classificationResponse is the JSON shape the model is instructed to
// return. Confidence is a pointer so a missing or non-numeric field is
// distinguishable from an explicit zero.
type classificationResponse struct {
	Intent     string   `json:"intent"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

func (c *LLMClassifier) parseResponse(content string) rag.IntentClassification {
	var parsed classificationResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		log.Printf("Failed to parse LLM response: %s", content)
		return unknownClassification("Failed to parse LLM response as JSON")
	}

	if parsed.Intent == "" || parsed.Confidence == nil {
		log.Printf("Invalid classification structure: %s", content)
		return unknownClassification("Invalid classification response structure")
	}

	intent := validateIntent(parsed.Intent)
	confidence := *parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	reasoning := parsed.Reasoning
	if reasoning == "" {
		reasoning = "No reasoning provided"
	}

	return rag.IntentClassification{
		Intent:        intent,
		Confidence:    confidence,
		IsAutomatable: AutomatableIntents[intent],
		Reasoning:     reasoning,
	}
}

func validateIntent(raw string) rag.Intent {
	normalized := strings.ReplaceAll(strings.ToLower(raw), "-", "_")
	for _, intent := range rag.AllIntents {
		if string(intent) == normalized {
			return intent
		}
	}
	log.Printf("Unknown intent from LLM: %s", raw)
	return rag.IntentUnknown
}

func unknownClassification(reason string) rag.IntentClassification {
	return rag.IntentClassification{
		Intent:        rag.IntentUnknown,
		Confidence:    0,
		IsAutomatable: false,
		Reasoning:     reason,
	}
}
