package purpose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptally/triptally/internal/common"
	"github.com/triptally/triptally/internal/model"
)

func member(description string, category model.Category, amount, confidence float64) model.CategorizedTransaction {
	return model.CategorizedTransaction{
		Transaction: model.Transaction{
			Description: description,
			Amount:      amount,
		},
		Category:   category,
		Confidence: confidence,
	}
}

func testTrip(location string, members ...model.CategorizedTransaction) *model.Trip {
	return &model.Trip{
		StartDate:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
		PrimaryLocation: location,
		Transactions:    members,
	}
}

func TestSynthesize_EmptyTripIsError(t *testing.T) {
	s := New(DefaultConfig())

	_, err := s.Synthesize(nil)
	assert.ErrorIs(t, err, common.ErrEmptyTrip)

	_, err = s.Synthesize(&model.Trip{})
	assert.ErrorIs(t, err, common.ErrEmptyTrip)
}

func TestSynthesize_ConferenceNarrative(t *testing.T) {
	s := New(DefaultConfig())

	trip := testTrip("AUSTIN TX",
		member("TECH SUMMIT REGISTRATION", model.CategoryConference, 1200, 0.9),
		member("UNITED AIRLINES", model.CategoryAirfare, 455, 0.95),
		member("HILTON AUSTIN", model.CategoryHotel, 890, 0.95),
	)

	result, err := s.Synthesize(trip)
	require.NoError(t, err)

	assert.Contains(t, result.BusinessPurpose, "Conference attendance in Austin TX")
	assert.Contains(t, result.BusinessPurpose, "03/10/2024 - 03/13/2024")
	assert.True(t, result.Ready)
	assert.InDelta(t, (0.9+0.95+0.95)/3, result.Confidence, 0.0001)
}

func TestSynthesize_ConferenceOutranksClientMeal(t *testing.T) {
	s := New(DefaultConfig())

	trip := testTrip("CHICAGO IL",
		member("DEVOPS CONVENTION", model.CategoryConference, 900, 0.9),
		member("SULLIVAN'S STEAKHOUSE", model.CategoryMeals, 210, 0.9),
	)

	result, err := s.Synthesize(trip)
	require.NoError(t, err)
	assert.Contains(t, result.BusinessPurpose, "Conference attendance")
}

func TestSynthesize_ClientMealNarrative(t *testing.T) {
	s := New(DefaultConfig())

	trip := testTrip("CHICAGO IL",
		member("SULLIVAN'S STEAKHOUSE", model.CategoryMeals, 240, 0.9),
		member("UBER TRIP", model.CategoryTransport, 32, 0.92),
	)

	result, err := s.Synthesize(trip)
	require.NoError(t, err)
	assert.Contains(t, result.BusinessPurpose, "Client meeting and engagement in Chicago IL")
}

func TestSynthesize_SmallMealIsNotClientSignal(t *testing.T) {
	s := New(DefaultConfig())

	trip := testTrip("CHICAGO IL",
		member("STEAKHOUSE EXPRESS", model.CategoryMeals, 22, 0.9),
		member("UBER TRIP", model.CategoryTransport, 32, 0.92),
	)

	result, err := s.Synthesize(trip)
	require.NoError(t, err)
	assert.NotContains(t, result.BusinessPurpose, "Client meeting")
}

func TestSynthesize_TravelNarrative(t *testing.T) {
	s := New(DefaultConfig())

	trip := testTrip("SEATTLE WA",
		member("ALASKA AIR", model.CategoryAirfare, 380, 0.95),
		member("HYATT SEATTLE", model.CategoryHotel, 720, 0.95),
	)

	result, err := s.Synthesize(trip)
	require.NoError(t, err)
	assert.Contains(t, result.BusinessPurpose, "Business travel to Seattle WA")
	assert.True(t, result.Ready)
}

func TestSynthesize_FallbackNarratives(t *testing.T) {
	s := New(DefaultConfig())

	tests := []struct {
		name     string
		location string
		endDay   int
		want     string
	}{
		{name: "multi-day with city", location: "DENVER CO", endDay: 13, want: "Multi-day business meeting in Denver"},
		{name: "short with city", location: "DENVER CO", endDay: 10, want: "Business meeting in Denver"},
		{name: "multi-day without city", location: "", endDay: 13, want: "Multi-day business trip"},
		{name: "short without city", location: "", endDay: 10, want: "Business meeting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := testTrip(tt.location, member("PARKING GARAGE", model.CategoryTransport, 40, 0.65))
			trip.EndDate = time.Date(2024, 3, tt.endDay, 0, 0, 0, 0, time.UTC)

			result, err := s.Synthesize(trip)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.BusinessPurpose)
		})
	}
}

func TestSynthesize_UnknownPenaltyAndReadiness(t *testing.T) {
	s := New(DefaultConfig())

	trip := testTrip("BOSTON MA",
		member("DELTA AIR", model.CategoryAirfare, 410, 0.95),
		member("MARRIOTT BOSTON", model.CategoryHotel, 650, 0.95),
		member("MYSTERY VENDOR", model.CategoryUnknown, 55, 0),
	)

	result, err := s.Synthesize(trip)
	require.NoError(t, err)

	mean := (0.95 + 0.95 + 0.0) / 3
	assert.InDelta(t, mean*0.8, result.Confidence, 0.0001)
	assert.False(t, result.Ready, "an unknown member always blocks readiness")
}

func TestSynthesize_ThresholdBoundary(t *testing.T) {
	s := New(DefaultConfig())

	// Confidence exactly at the threshold is not ready; it must exceed it.
	atThreshold := testTrip("", member("X", model.CategoryMeals, 10, 0.75))
	result, err := s.Synthesize(atThreshold)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, result.Confidence, 0.0001)
	assert.False(t, result.Ready)

	above := testTrip("", member("X", model.CategoryMeals, 10, 0.76))
	result, err = s.Synthesize(above)
	require.NoError(t, err)
	assert.True(t, result.Ready)
}

func TestSynthesize_ConfidenceBounds(t *testing.T) {
	s := New(DefaultConfig())

	trip := testTrip("",
		member("A", model.CategoryMeals, 10, 1.0),
		member("B", model.CategoryHotel, 10, 1.0),
	)

	result, err := s.Synthesize(trip)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
}

func TestSynthesize_CustomConfig(t *testing.T) {
	s := New(Config{UnknownPenalty: 0.5, ReadyThreshold: 0.4, ClientMealAmount: 500})

	trip := testTrip("CHICAGO IL",
		member("SULLIVAN'S STEAKHOUSE", model.CategoryMeals, 240, 0.9),
	)

	result, err := s.Synthesize(trip)
	require.NoError(t, err)

	// A $240 meal is below the raised client-meal bar
	assert.NotContains(t, result.BusinessPurpose, "Client meeting")
	assert.True(t, result.Ready)
}
