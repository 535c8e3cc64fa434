// README: Image generation request/response shapes and errors.
package imagegen

import "errors"

var ErrInvalidInput = errors.New("destination and concept are required")

// ChatContext carries what the conversation collected.
type ChatContext struct {
	City           string `json:"city,omitempty"`
	SpotName       string `json:"spotName,omitempty"`
	MainAction     string `json:"mainAction,omitempty"`
	OutfitStyle    string `json:"outfitStyle,omitempty"`
	PosePreference string `json:"posePreference,omitempty"`
	FilmType       string `json:"filmType,omitempty"`
	CameraModel    string `json:"cameraModel,omitempty"`
}

type GenerateRequest struct {
	Destination          string       `json:"destination"`
	Concept              string       `json:"concept"`
	FilmStock            string       `json:"filmStock"`
	FilmType             string       `json:"filmType"`
	FilmStyleDescription string       `json:"filmStyleDescription"`
	OutfitStyle          string       `json:"outfitStyle"`
	AdditionalPrompt     string       `json:"additionalPrompt"`
	ChatContext          *ChatContext `json:"chatContext"`
}

type GenerateResponse struct {
	Status            string         `json:"status"`
	ImageURL          string         `json:"imageUrl,omitempty"`
	OptimizedPrompt   string         `json:"optimizedPrompt,omitempty"`
	ExtractedKeywords []string       `json:"extractedKeywords"`
	PoseUsed          string         `json:"poseUsed,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	Error             string         `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// GenerationError wraps an upstream failure with the message shown to the user.
type GenerationError struct {
	Err     error
	Message string
}

func (e *GenerationError) Error() string {
	return "image generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
