package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	model.SetTemperature(0.7)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// NextTurn asks the curator model for the next reply and the updated profile.
func (p *GeminiProvider) NextTurn(ctx context.Context, in TurnInput) (*TurnResult, error) {
	var result TurnResult
	if err := p.generateJSON(ctx, buildTurnPrompt(in), &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Reply) == "" {
		return nil, fmt.Errorf("gemini returned an empty reply")
	}
	return &result, nil
}

// SuggestDestinations asks the model for hidden destinations matching the brief.
func (p *GeminiProvider) SuggestDestinations(ctx context.Context, brief DestinationBrief) ([]DestinationIdea, error) {
	var payload struct {
		Destinations []DestinationIdea `json:"destinations"`
	}
	if err := p.generateJSON(ctx, buildDestinationPrompt(brief), &payload); err != nil {
		return nil, err
	}
	return payload.Destinations, nil
}

func (p *GeminiProvider) generateJSON(ctx context.Context, prompt string, out any) error {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	cleanJSON := extractJSONObject(cleanJSONString(responseText.String()))

	if err := json.Unmarshal([]byte(cleanJSON), out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return nil
}
