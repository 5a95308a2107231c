package purpose

import (
	"sort"
	"strings"
)

// Validation outcome for a business purpose string.
type Validation struct {
	Message     string
	Suggestions []string
	Valid       bool
}

var vaguePurposes = map[string]bool{
	"meeting":  true,
	"trip":     true,
	"travel":   true,
	"business": true,
}

var personalKeywords = []string{"vacation", "personal", "family", "leisure", "fun"}

// ValidatePurpose checks whether a business purpose would survive expense
// review: long enough, specific enough, and free of personal-activity
// wording.
func ValidatePurpose(purpose string) Validation {
	trimmed := strings.TrimSpace(purpose)
	if len(trimmed) < 5 {
		return Validation{
			Valid:   false,
			Message: "business purpose must be at least 5 characters long",
		}
	}

	if vaguePurposes[strings.ToLower(trimmed)] {
		return Validation{
			Valid:   false,
			Message: "business purpose is too vague, be more specific",
			Suggestions: []string{
				"Client meeting with [client name]",
				"Professional development training",
				"Trade show attendance for business development",
			},
		}
	}

	lower := strings.ToLower(trimmed)
	for _, kw := range personalKeywords {
		if strings.Contains(lower, kw) {
			return Validation{
				Valid:   false,
				Message: "business purpose cannot contain personal activity indicators",
			}
		}
	}

	return Validation{Valid: true, Message: "business purpose looks good"}
}

// locationSuggestions maps city fragments to likely business purposes.
var locationSuggestions = map[string][]string{
	"SEATTLE":       {"Microsoft partnership meeting", "Amazon vendor meeting", "Tech conference"},
	"SAN FRANCISCO": {"Silicon Valley client meetings", "Tech startup meetings", "VC meetings"},
	"NEW YORK":      {"Financial client meetings", "Corporate headquarters visit", "Media meetings"},
	"CHICAGO":       {"Manufacturing client visit", "Logistics meeting", "Central office visit"},
	"LOS ANGELES":   {"Entertainment industry meeting", "West Coast client visit", "Media production"},
	"ATLANTA":       {"Southeast region meeting", "Logistics hub visit"},
	"DALLAS":        {"Energy sector meeting", "Southwest region meeting"},
	"BOSTON":        {"Healthcare client meeting", "Biotech conference", "University partnership"},
	"AUSTIN":        {"Tech startup meeting", "SXSW conference"},
	"DENVER":        {"Mountain region meeting", "Outdoor industry conference"},
}

// SuggestByLocation returns plausible business purposes for a location.
// Cities are checked in sorted order so the output is stable.
func SuggestByLocation(location string) []string {
	if location == "" {
		return nil
	}

	cities := make([]string, 0, len(locationSuggestions))
	for city := range locationSuggestions {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	upper := strings.ToUpper(location)
	var suggestions []string
	for _, city := range cities {
		if strings.Contains(upper, city) {
			suggestions = append(suggestions, locationSuggestions[city]...)
		}
	}
	return suggestions
}
