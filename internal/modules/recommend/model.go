// README: Hidden-destination recommendations: agent proxy, SSE frames, place enrichment and fallbacks.
package recommend

// Preferences are the traveller's stated tastes; sessions store them too.
type Preferences struct {
	Mood      string   `json:"mood,omitempty"`
	Aesthetic string   `json:"aesthetic,omitempty"`
	Duration  string   `json:"duration,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

type ImageGenerationContext struct {
	Destination      string `json:"destination"`
	AdditionalPrompt string `json:"additionalPrompt"`
	FilmStock        string `json:"filmStock"`
	OutfitStyle      string `json:"outfitStyle"`
}

type Request struct {
	Preferences            Preferences             `json:"preferences"`
	Concept                string                  `json:"concept,omitempty"`
	TravelScene            string                  `json:"travelScene,omitempty"`
	TravelDestination      string                  `json:"travelDestination,omitempty"`
	ImageGenerationContext *ImageGenerationContext `json:"imageGenerationContext,omitempty"`
}

type Activity struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Duration         string `json:"duration,omitempty"`
	BestTime         string `json:"bestTime,omitempty"`
	LocalTip         string `json:"localTip,omitempty"`
	PhotoOpportunity string `json:"photoOpportunity,omitempty"`
}

type Destination struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	City                   string     `json:"city"`
	Country                string     `json:"country"`
	Description            string     `json:"description"`
	MatchReason            string     `json:"matchReason"`
	LocalVibe              string     `json:"localVibe,omitempty"`
	WhyHidden              string     `json:"whyHidden,omitempty"`
	BestTimeToVisit        string     `json:"bestTimeToVisit"`
	PhotographyScore       int        `json:"photographyScore"`
	TransportAccessibility string     `json:"transportAccessibility,omitempty"`
	SafetyRating           int        `json:"safetyRating"`
	EstimatedBudget        string     `json:"estimatedBudget,omitempty"`
	Tags                   []string   `json:"tags,omitempty"`
	PhotographyTips        []string   `json:"photographyTips,omitempty"`
	StoryPrompt            string     `json:"storyPrompt,omitempty"`
	Activities             []Activity `json:"activities,omitempty"`

	// Filled from Google Places when available.
	Address          string  `json:"address,omitempty"`
	Rating           float32 `json:"rating,omitempty"`
	PlaceID          string  `json:"placeId,omitempty"`
	UserRatingsTotal int     `json:"userRatingsTotal,omitempty"`
}

type UserProfile struct {
	Mood        string `json:"mood,omitempty"`
	Aesthetic   string `json:"aesthetic,omitempty"`
	Concept     string `json:"concept,omitempty"`
	TravelScene string `json:"travelScene,omitempty"`
}

type Response struct {
	Status       string        `json:"status"`
	Destinations []Destination `json:"destinations"`
	UserProfile  *UserProfile  `json:"userProfile,omitempty"`
	IsFallback   bool          `json:"isFallback,omitempty"`
}

const (
	FrameDestination = "destination"
	FrameComplete    = "complete"
	FrameError       = "error"
)

// Frame is one SSE payload of the recommendation stream.
type Frame struct {
	Type        string       `json:"type"`
	Destination *Destination `json:"destination,omitempty"`
	Error       string       `json:"error,omitempty"`
}

func profileOf(req Request) *UserProfile {
	return &UserProfile{
		Mood:        req.Preferences.Mood,
		Aesthetic:   req.Preferences.Aesthetic,
		Concept:     req.Concept,
		TravelScene: req.TravelScene,
	}
}
