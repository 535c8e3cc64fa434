package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Gemini is the only implementation today; the interface keeps callers testable.
type LLMProvider interface {
	// NextTurn runs one curator turn over the conversation so far and returns the structured reply.
	NextTurn(ctx context.Context, in TurnInput) (*TurnResult, error)

	// SuggestDestinations proposes hidden destinations for a travel brief.
	// Used when the recommendation backend cannot be reached.
	SuggestDestinations(ctx context.Context, brief DestinationBrief) ([]DestinationIdea, error)
}
