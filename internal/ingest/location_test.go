package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "city and state at end",
			description: "HILTON GARDEN INN SEATTLE WA",
			want:        "GARDEN INN SEATTLE WA",
		},
		{
			name:        "single word city",
			description: "STARBUCKS #2201 CHICAGO IL",
			want:        "CHICAGO IL",
		},
		{
			name:        "two word city",
			description: "TAXI 123 NEW YORK NY",
			want:        "NEW YORK NY",
		},
		{
			name:        "no state abbreviation",
			description: "AMAZON.COM ORDER 1234",
			want:        "",
		},
		{
			name:        "state only",
			description: "TOLL 88 TX",
			want:        "TX",
		},
		{
			name:        "number blocks city scan",
			description: "UNITED 0162 SAN FRANCISCO CA",
			want:        "SAN FRANCISCO CA",
		},
		{
			name:        "empty description",
			description: "",
			want:        "",
		},
		{
			name:        "lowercase input is folded",
			description: "cafe 22 austin tx",
			want:        "AUSTIN TX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLocation(tt.description))
		})
	}
}
