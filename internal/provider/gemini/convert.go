package gemini

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/sandboxagent/internal/provider"
	"github.com/Cyclone1070/sandboxagent/internal/tool"
	"google.golang.org/genai"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

// toGeminiContents converts the transcript to Gemini contents.
// Consecutive tool messages are merged into a single user turn so that
// all responses to one batch of function calls travel together.
func toGeminiContents(messages []provider.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))

	for _, msg := range messages {
		if msg.Role == provider.RoleTool {
			part := toolResponsePart(msg)
			if n := len(contents); n > 0 && isToolResponseTurn(contents[n-1]) {
				contents[n-1].Parts = append(contents[n-1].Parts, part)
				continue
			}
			contents = append(contents, &genai.Content{Role: roleUser, Parts: []*genai.Part{part}})
			continue
		}

		if content := messageToGeminiContent(msg); content != nil {
			contents = append(contents, content)
		}
	}

	return contents
}

// messageToGeminiContent converts a user or assistant message.
func messageToGeminiContent(msg provider.Message) *genai.Content {
	role := roleUser
	if msg.Role == provider.RoleAssistant {
		role = roleModel
	}

	parts := make([]*genai.Part, 0, 1+len(msg.ToolCalls))
	if msg.Content != "" {
		parts = append(parts, genai.NewPartFromText(msg.Content))
	}
	for _, tc := range msg.ToolCalls {
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				ID:   tc.ID,
				Name: tc.Name,
				Args: tc.Args,
			},
		})
	}

	// Skip empty messages
	if len(parts) == 0 {
		return nil
	}

	return &genai.Content{Role: role, Parts: parts}
}

func toolResponsePart(msg provider.Message) *genai.Part {
	key := "result"
	if msg.IsError {
		key = "error"
	}
	return &genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			ID:       msg.ToolCallID,
			Name:     msg.Name,
			Response: map[string]any{key: msg.Content},
		},
	}
}

func isToolResponseTurn(c *genai.Content) bool {
	if c.Role != roleUser || len(c.Parts) == 0 {
		return false
	}
	for _, p := range c.Parts {
		if p.FunctionResponse == nil {
			return false
		}
	}
	return true
}

// defaultSafetySettings returns safety settings with BLOCK_NONE for all categories.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdOff},
	}
}

// toGeminiTools converts tool declarations to a single Gemini tool.
func toGeminiTools(decls []tool.Declaration) []*genai.Tool {
	if len(decls) == 0 {
		return nil
	}

	fds := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, d := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
		}
		if d.Parameters != nil {
			fd.Parameters = toGeminiSchema(d.Parameters)
		}
		fds = append(fds, fd)
	}

	return []*genai.Tool{{FunctionDeclarations: fds}}
}

// toGeminiSchema converts a parameter schema recursively.
func toGeminiSchema(s *tool.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	schema := &genai.Schema{
		Type:        toGeminiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Items:       toGeminiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			schema.Properties[name] = toGeminiSchema(prop)
		}
	}
	return schema
}

func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromGeminiResponse converts the first candidate to an assistant message.
func fromGeminiResponse(resp *genai.GenerateContentResponse) (*provider.Message, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, &provider.ProviderError{
				Code:       provider.ErrorCodeContentBlocked,
				Message:    fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason),
				Underlying: provider.ErrContentBlocked,
			}
		}
		return nil, &provider.ProviderError{
			Code:       provider.ErrorCodeInvalidRequest,
			Message:    "no candidates in response",
			Underlying: provider.ErrEmptyResponse,
		}
	}

	candidate := resp.Candidates[0]

	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, &provider.ProviderError{
			Code:       provider.ErrorCodeContentBlocked,
			Message:    "content blocked by safety filters",
			Underlying: provider.ErrContentBlocked,
		}
	}

	msg := buildMessage(candidate, resp.UsageMetadata)

	if candidate.FinishReason == genai.FinishReasonMaxTokens && len(msg.ToolCalls) == 0 && msg.Content == "" {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeContextLength,
			Message: "response truncated due to max tokens",
		}
	}

	return msg, nil
}

func buildMessage(candidate *genai.Candidate, usage *genai.GenerateContentResponseUsageMetadata) *provider.Message {
	msg := &provider.Message{Role: provider.RoleAssistant}

	if candidate.Content != nil {
		for i, part := range candidate.Content.Parts {
			switch {
			case part.FunctionCall != nil:
				id := part.FunctionCall.ID
				if id == "" {
					id = fmt.Sprintf("%s-%d", part.FunctionCall.Name, i)
				}
				msg.ToolCalls = append(msg.ToolCalls, provider.ToolCall{
					ID:   id,
					Name: part.FunctionCall.Name,
					Args: part.FunctionCall.Args,
				})
			case part.Text != "" && !part.Thought:
				msg.Content += part.Text
			}
		}
	}

	if usage != nil {
		msg.Usage = &provider.Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}

	return msg
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	apiErr, ok := asAPIError(err)
	if !ok {
		return &provider.ProviderError{
			Code:       provider.ErrorCodeNetwork,
			Message:    "network error",
			Underlying: err,
			Retryable:  true,
		}
	}

	switch apiErr.Code {
	case 401, 403:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeAuth,
			Message:    "authentication failed",
			Underlying: err,
		}
	case 429:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeRateLimit,
			Message:    "rate limit exceeded",
			Underlying: err,
			Retryable:  true,
		}
	case 400, 404:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeInvalidRequest,
			Message:    fmt.Sprintf("invalid request: %s", apiErr.Message),
			Underlying: err,
		}
	case 500, 502, 503, 504:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeUnavailable,
			Message:    "service unavailable",
			Underlying: err,
			Retryable:  true,
		}
	default:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeNetwork,
			Message:    fmt.Sprintf("API error: %s", apiErr.Message),
			Underlying: err,
			Retryable:  true,
		}
	}
}

// asAPIError accepts both value and pointer forms returned by the SDK.
func asAPIError(err error) (genai.APIError, bool) {
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	var val genai.APIError
	if errors.As(err, &val) {
		return val, true
	}
	return genai.APIError{}, false
}
