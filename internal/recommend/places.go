package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"

	"github.com/tripkit/tripkit/internal/models"
)

// PlacesClient wraps the Google Places text search used to attach real-world
// detail (address, rating) to recommended destinations.
type PlacesClient struct {
	client *maps.Client
}

// NewPlacesClient creates a places client with the given API key.
func NewPlacesClient(apiKey string) (*PlacesClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesClient{client: client}, nil
}

// Lookup searches for the best match of a destination query. A query with no
// results returns nil without error so enrichment can be skipped quietly.
func (p *PlacesClient) Lookup(ctx context.Context, query string) (*models.PlaceDetails, error) {
	resp, err := p.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places text search failed: %w", err)
	}
	if len(resp.Results) == 0 {
		slog.Debug("PlacesClient.Lookup: no results", "query", query)
		return nil, nil
	}

	top := resp.Results[0]
	return &models.PlaceDetails{
		Name:             top.Name,
		Address:          top.FormattedAddress,
		Rating:           top.Rating,
		PlaceID:          top.PlaceID,
		UserRatingsTotal: top.UserRatingsTotal,
	}, nil
}
