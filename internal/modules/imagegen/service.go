package imagegen

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripkit/internal/modules/dialogue"
)

// Backend is the remote image generator; Client satisfies it.
type Backend interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type Service struct {
	backend Backend
	log     *zap.Logger
	now     func() time.Time
}

func NewService(backend Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, log: logger, now: time.Now}
}

// Generate validates the request, forwards it and stamps metadata on success.
// Upstream failures come back as *GenerationError carrying the user message.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	req.Destination = strings.TrimSpace(req.Destination)
	req.Concept = strings.TrimSpace(req.Concept)
	if req.Destination == "" || req.Concept == "" {
		return nil, ErrInvalidInput
	}

	s.log.Info("image generation requested",
		zap.String("destination", req.Destination),
		zap.String("concept", req.Concept),
		zap.String("film_stock", req.FilmStock),
	)

	resp, err := s.backend.Generate(ctx, req)
	if err != nil {
		msg := UserMessage(err)
		s.log.Error("image generation failed", zap.Error(err), zap.String("user_message", msg))
		return nil, &GenerationError{Err: err, Message: msg}
	}

	meta := map[string]any{
		"concept":     req.Concept,
		"filmStock":   req.FilmStock,
		"filmType":    req.FilmType,
		"destination": req.Destination,
		"generatedAt": s.now().UTC().Format(time.RFC3339),
	}
	for k, v := range resp.Metadata {
		meta[k] = v
	}

	keywords := resp.ExtractedKeywords
	if keywords == nil {
		keywords = []string{}
	}

	return &GenerateResponse{
		Status:            StatusSuccess,
		ImageURL:          resp.ImageURL,
		OptimizedPrompt:   resp.OptimizedPrompt,
		ExtractedKeywords: keywords,
		PoseUsed:          resp.PoseUsed,
		Metadata:          meta,
	}, nil
}

// RequestFromProfile builds a generation request from a collected travel profile.
func RequestFromProfile(p dialogue.Profile, additional string) GenerateRequest {
	conceptID := p.ConceptID
	if conceptID == "" {
		conceptID = dialogue.DefaultConcept
	}
	concept, _ := dialogue.LookupConcept(conceptID)

	var where []string
	for _, v := range []string{p.SpotName, p.City} {
		if v = strings.TrimSpace(v); v != "" {
			where = append(where, v)
		}
	}

	outfit := p.OutfitStyle
	if outfit == "" {
		outfit = concept.OutfitStyle
	}

	return GenerateRequest{
		Destination:          strings.Join(where, ", "),
		Concept:              string(conceptID),
		FilmStock:            p.FilmType,
		FilmType:             concept.FilmBrand,
		FilmStyleDescription: dialogue.FilmRendering(concept.FilmBrand),
		OutfitStyle:          outfit,
		AdditionalPrompt:     strings.TrimSpace(additional),
		ChatContext: &ChatContext{
			City:           p.City,
			SpotName:       p.SpotName,
			MainAction:     p.MainAction,
			OutfitStyle:    p.OutfitStyle,
			PosePreference: p.PosePreference,
			FilmType:       p.FilmType,
			CameraModel:    p.CameraModel,
		},
	}
}
