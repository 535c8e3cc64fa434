package recommend

import (
	"context"

	"go.uber.org/zap"

	"tripkit/internal/apperr"
	"tripkit/internal/maps"
)

const (
	MsgUnreachable  = "추천 서비스에 연결할 수 없습니다. 잠시 후 다시 시도해 주세요."
	MsgGenericError = "여행지 추천 중 오류가 발생했습니다."
)

var streamErrors = apperr.NewRules(MsgGenericError,
	apperr.Rule{Match: apperr.ContainsAny(apperr.UnreachableMarkers...), Message: MsgUnreachable},
)

// Backend is the recommendation agent; Client satisfies it.
type Backend interface {
	Recommend(ctx context.Context, req Request) (*Response, error)
	Stream(ctx context.Context, req Request, fn func(Frame) error) error
}

// PlaceLookup is satisfied by maps.PlacesService.
type PlaceLookup interface {
	FindPlace(ctx context.Context, name, city string) (*maps.Place, error)
}

// Fallback produces destinations without the agent; LLMFallback satisfies it.
type Fallback interface {
	Suggest(ctx context.Context, req Request) ([]Destination, error)
}

type Service struct {
	backend  Backend
	places   PlaceLookup
	fallback Fallback
	log      *zap.Logger
}

// NewService wires the agent backend. places and fallback may be nil.
func NewService(backend Backend, places PlaceLookup, fallback Fallback, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, places: places, fallback: fallback, log: logger}
}

// Recommend returns agent recommendations, or fallback ones flagged isFallback.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	s.log.Info("recommendations requested",
		zap.String("mood", req.Preferences.Mood),
		zap.String("concept", req.Concept),
		zap.Bool("has_image_context", req.ImageGenerationContext != nil),
	)

	resp, err := s.backend.Recommend(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn("recommendation backend failed, using fallback", zap.Error(err))
		dests := s.fallbackDestinations(ctx, req)
		s.enrich(ctx, dests)
		return &Response{
			Status:       "success",
			Destinations: dests,
			UserProfile:  profileOf(req),
			IsFallback:   true,
		}, nil
	}

	if resp.Status == "" {
		resp.Status = "success"
	}
	if resp.UserProfile == nil {
		resp.UserProfile = profileOf(req)
	}
	s.enrich(ctx, resp.Destinations)
	return resp, nil
}

// Stream relays agent frames to emit, enriching destinations on the way.
// A backend failure is reported to the client as a single error frame.
func (s *Service) Stream(ctx context.Context, req Request, emit func(Frame) error) error {
	var emitErr error
	err := s.backend.Stream(ctx, req, func(f Frame) error {
		if f.Type == FrameDestination && f.Destination != nil {
			s.enrichOne(ctx, f.Destination)
		}
		emitErr = emit(f)
		return emitErr
	})
	if err == nil {
		return nil
	}
	if emitErr != nil {
		return emitErr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.log.Error("recommendation stream failed", zap.Error(err))
	return emit(Frame{Type: FrameError, Error: streamErrors.Classify(err)})
}

func (s *Service) fallbackDestinations(ctx context.Context, req Request) []Destination {
	if s.fallback != nil {
		dests, err := s.fallback.Suggest(ctx, req)
		if err == nil && len(dests) > 0 {
			return dests
		}
		s.log.Warn("llm fallback failed, serving static destinations", zap.Error(err))
	}
	return StaticDestinations()
}

func (s *Service) enrich(ctx context.Context, dests []Destination) {
	for i := range dests {
		s.enrichOne(ctx, &dests[i])
	}
}

func (s *Service) enrichOne(ctx context.Context, d *Destination) {
	if s.places == nil || d.PlaceID != "" {
		return
	}
	p, err := s.places.FindPlace(ctx, d.Name, d.City)
	if err != nil {
		s.log.Debug("place lookup failed", zap.String("name", d.Name), zap.Error(err))
		return
	}
	if p == nil {
		return
	}
	d.Address = p.Address
	d.Rating = p.Rating
	d.PlaceID = p.PlaceID
	d.UserRatingsTotal = p.UserRatingsTotal
}
