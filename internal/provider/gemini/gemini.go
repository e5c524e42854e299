package gemini

import (
	"context"

	"github.com/Cyclone1070/sandboxagent/internal/config"
	"github.com/Cyclone1070/sandboxagent/internal/provider"
	"github.com/Cyclone1070/sandboxagent/internal/tool"
	"google.golang.org/genai"
)

// Provider sends conversation transcripts to a Gemini model.
type Provider struct {
	client       GeminiClient
	model        string
	systemPrompt string
	temperature  *float32
}

// New creates a Provider for the configured model.
func New(client GeminiClient, cfg config.ProviderConfig) *Provider {
	return &Provider{
		client:       client,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		temperature:  cfg.Temperature,
	}
}

// Model returns the model name requests are sent to.
func (p *Provider) Model() string {
	return p.model
}

// Generate sends the full transcript and the tool declarations and returns
// the model's reply as an assistant message.
func (p *Provider) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	contents := toGeminiContents(messages)
	cfg := p.generateConfig(tools)

	resp, err := p.client.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, mapGeminiError(err)
	}

	return fromGeminiResponse(resp)
}

// ListModels returns the models available to the configured credentials.
func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	models, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return models, nil
}

func (p *Provider) generateConfig(tools []tool.Declaration) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
		Temperature:    p.temperature,
		Tools:          toGeminiTools(tools),
	}
	if p.systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(p.systemPrompt)},
		}
	}
	return cfg
}
