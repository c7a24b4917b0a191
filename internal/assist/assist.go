// Package assist is the boundary to the chat filter-extraction collaborator.
// The contract is narrow: given a conversation, the collaborator answers with
// either a search action carrying a filters object or a plain conversational
// reply. Nothing about the model's behavior beyond that JSON contract lives
// here.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yourorg/homesearch-api/internal/filter"
)

const (
	ActionSearch = "search"
	ActionReply  = "reply"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Extraction is the collaborator's answer. Filters is set for the search
// action, Content for the reply action.
type Extraction struct {
	Action  string                   `json:"action"`
	Content string                   `json:"content,omitempty"`
	Filters *filter.AssistantFilters `json:"filters,omitempty"`
}

type Extractor interface {
	Extract(ctx context.Context, messages []Message) (*Extraction, error)
}

const systemPrompt = `You are a real-estate search assistant. Decide whether the user's last message refines a property search or needs a conversational answer.

Respond with JSON only, one of:
  {"action":"search","filters":{"location":...,"price_min":...,"price_max":...,"rent_min":...,"rent_max":...,"beds_min":...,"beds_max":...,"baths_min":...,"baths_max":...,"property_type":...,"hoa_min":...,"hoa_max":...,"radius":...,"sqft_min":...,"sqft_max":...,"year_built_min":...,"year_built_max":...}}
  {"action":"reply","content":"..."}

Omit any filter field the user did not specify. Use rent_min/rent_max for rentals and price_min/price_max for purchases.`

// OpenAI calls a chat-completion model with a JSON-object response format.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: openai.NewClient(apiKey), model: model}
}

func (o *OpenAI) Extract(ctx context.Context, messages []Message) (*Extraction, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleSystem, Content: systemPrompt,
	})
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleUser
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: msgs,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("assist: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("assist: empty completion")
	}

	var ex Extraction
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &ex); err != nil {
		return nil, fmt.Errorf("assist: malformed extraction: %w", err)
	}
	switch ex.Action {
	case ActionSearch, ActionReply:
	default:
		return nil, fmt.Errorf("assist: unknown action %q", ex.Action)
	}
	if ex.Action == ActionSearch && ex.Filters == nil {
		// an all-undefined filters object is still a valid search
		ex.Filters = &filter.AssistantFilters{}
	}
	return &ex, nil
}
