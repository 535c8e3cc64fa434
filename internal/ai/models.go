package ai

import "tripkit/internal/modules/dialogue"

// HistoryMessage is one transcript line passed to the model.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnInput is everything the model sees for one curator turn.
type TurnInput struct {
	Message     string
	History     []HistoryMessage
	CurrentStep dialogue.Step
	Collected   dialogue.Profile
	Rejected    dialogue.Rejected
}

// TurnResult captures the structured output from the model.
type TurnResult struct {
	// Reply is the message shown to the user.
	Reply string `json:"reply"`

	// CurrentStep and NextStep use the curator's step names ("city", "camera" are accepted too).
	CurrentStep string `json:"currentStep"`
	NextStep    string `json:"nextStep"`

	IsComplete bool `json:"isComplete"`

	// CollectedData may contain nulls for fields not yet known; they decode to "".
	CollectedData dialogue.Profile  `json:"collectedData"`
	RejectedItems dialogue.Rejected `json:"rejectedItems"`
}

// DestinationBrief describes what the traveller is looking for.
type DestinationBrief struct {
	Concept           string
	Mood              string
	Aesthetic         string
	Duration          string
	Interests         []string
	TravelScene       string
	TravelDestination string
	Count             int
}

// DestinationIdea is one model-proposed destination.
type DestinationIdea struct {
	Name             string   `json:"name"`
	City             string   `json:"city"`
	Country          string   `json:"country"`
	Description      string   `json:"description"`
	MatchReason      string   `json:"matchReason"`
	LocalVibe        string   `json:"localVibe,omitempty"`
	WhyHidden        string   `json:"whyHidden,omitempty"`
	BestTimeToVisit  string   `json:"bestTimeToVisit"`
	PhotographyScore int      `json:"photographyScore"`
	SafetyRating     int      `json:"safetyRating"`
	Tags             []string `json:"tags,omitempty"`
	PhotographyTips  []string `json:"photographyTips,omitempty"`
}
