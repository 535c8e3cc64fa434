// README: Google Places lookups used to attach real addresses and ratings to recommended destinations.
package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client   *maps.Client
	language string
}

// NewPlacesService creates a new PlacesService with the given API Key.
// Extra client options (e.g. maps.WithBaseURL) are passed through.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, language: "ko"}, nil
}

// FindPlace returns the best text-search match for name in city, or nil when nothing matches.
func (s *PlacesService) FindPlace(ctx context.Context, name, city string) (*Place, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return nil, nil
	}
	if city = strings.TrimSpace(city); city != "" && !containsIgnoreCase(query, city) {
		query = query + " " + city
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: s.language,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	for _, result := range resp.Results {
		if result.PlaceID == "" {
			continue
		}
		return &Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		}, nil
	}
	return nil, nil
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
