package purpose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePurpose(t *testing.T) {
	tests := []struct {
		name      string
		purpose   string
		wantValid bool
	}{
		{name: "good specific purpose", purpose: "Client meeting with Acme Corp", wantValid: true},
		{name: "too short", purpose: "mtg", wantValid: false},
		{name: "whitespace only", purpose: "    ", wantValid: false},
		{name: "vague single word", purpose: "meeting", wantValid: false},
		{name: "vague with case folding", purpose: "Travel", wantValid: false},
		{name: "personal keyword", purpose: "Family vacation in Hawaii", wantValid: false},
		{name: "personal keyword embedded", purpose: "Some leisure time between meetings", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePurpose(tt.purpose)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestValidatePurpose_VagueSuggestions(t *testing.T) {
	got := ValidatePurpose("meeting")
	assert.False(t, got.Valid)
	assert.NotEmpty(t, got.Suggestions)
}

func TestSuggestByLocation(t *testing.T) {
	assert.NotEmpty(t, SuggestByLocation("SEATTLE WA"))
	assert.NotEmpty(t, SuggestByLocation("downtown seattle"))
	assert.Empty(t, SuggestByLocation("NOWHERESVILLE"))
	assert.Empty(t, SuggestByLocation(""))
}

func TestSuggestByLocation_StableOrder(t *testing.T) {
	// A location mentioning two known cities always lists them in the same
	// order, with each city's suggestions kept together
	first := SuggestByLocation("AUSTIN TX VIA BOSTON MA")
	assert.Equal(t, []string{
		"Tech startup meeting", "SXSW conference",
		"Healthcare client meeting", "Biotech conference", "University partnership",
	}, first)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, SuggestByLocation("AUSTIN TX VIA BOSTON MA"))
	}
}
