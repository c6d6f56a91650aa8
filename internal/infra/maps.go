package infra

import (
	"fmt"

	"googlemaps.github.io/maps"
)

// NewMapsClient returns nil without error when no API key is configured;
// callers treat a nil client as "geocoding disabled".
func NewMapsClient(apiKey string) (*maps.Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}
