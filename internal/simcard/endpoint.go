package simcard

import (
	"errors"
	"fmt"
)

// Phonebook endpoints exposed by the platform. Older platform levels only
// know the legacy sim endpoint; both address the same ADN records.
const (
	ICCEndpoint    = "content://icc/adn"
	LegacyEndpoint = "content://sim/adn"
)

// iccPlatformLevel is the first platform level that exposes ICCEndpoint.
const iccPlatformLevel = 4

// ErrUnknownEndpoint is returned when a record store call names an endpoint the card does not serve.
var ErrUnknownEndpoint = errors.New("unknown phonebook endpoint")

// ResolveEndpoint returns the phonebook endpoint for a platform level.
func ResolveEndpoint(platformLevel int) string {
	if platformLevel >= iccPlatformLevel {
		return ICCEndpoint
	}
	return LegacyEndpoint
}

func checkEndpoint(endpoint string) error {
	switch endpoint {
	case ICCEndpoint, LegacyEndpoint:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint)
	}
}
