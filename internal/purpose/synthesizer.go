// Package purpose derives business-purpose narratives and readiness
// verdicts for segmented trips.
package purpose

import (
	"fmt"
	"strings"

	"github.com/triptally/triptally/internal/common"
	"github.com/triptally/triptally/internal/model"
)

// Config holds the tunable constants for purpose synthesis. The penalty
// factor and readiness threshold are deliberately configurable rather than
// hard-coded.
type Config struct {
	// UnknownPenalty multiplies the aggregate confidence when any member
	// transaction is uncategorized.
	UnknownPenalty float64
	// ReadyThreshold is the minimum aggregate confidence for auto-submission.
	ReadyThreshold float64
	// ClientMealAmount is the meal size treated as a client engagement signal.
	ClientMealAmount float64
}

// DefaultConfig returns the standard synthesis constants.
func DefaultConfig() Config {
	return Config{
		UnknownPenalty:   0.8,
		ReadyThreshold:   0.75,
		ClientMealAmount: 75,
	}
}

func (c Config) normalized() Config {
	if c.UnknownPenalty <= 0 || c.UnknownPenalty > 1 {
		c.UnknownPenalty = 0.8
	}
	if c.ReadyThreshold <= 0 || c.ReadyThreshold > 1 {
		c.ReadyThreshold = 0.75
	}
	if c.ClientMealAmount <= 0 {
		c.ClientMealAmount = 75
	}
	return c
}

// Synthesizer produces a narrative, aggregate confidence, and readiness
// verdict for one trip at a time. It never crosses trip boundaries.
type Synthesizer struct {
	cfg Config
}

// New creates a synthesizer with the given configuration.
func New(cfg Config) *Synthesizer {
	return &Synthesizer{cfg: cfg.normalized()}
}

// Result is the synthesized report enrichment for a trip.
type Result struct {
	BusinessPurpose string
	Confidence      float64
	Ready           bool
}

// Synthesize derives the business purpose for a trip. An empty trip violates
// the Trip invariant and signals a caller bug, not a low-confidence result.
func (s *Synthesizer) Synthesize(trip *model.Trip) (Result, error) {
	if trip == nil || len(trip.Transactions) == 0 {
		return Result{}, fmt.Errorf("%w: cannot synthesize purpose", common.ErrEmptyTrip)
	}

	confidence := s.aggregateConfidence(trip)
	ready := confidence > s.cfg.ReadyThreshold && !trip.HasUnknown()

	return Result{
		BusinessPurpose: s.narrative(trip),
		Confidence:      confidence,
		Ready:           ready,
	}, nil
}

// aggregateConfidence is the transaction-count-weighted mean of member
// confidences, penalized when any member is uncategorized.
func (s *Synthesizer) aggregateConfidence(trip *model.Trip) float64 {
	var sum float64
	for _, txn := range trip.Transactions {
		sum += txn.Confidence
	}
	confidence := sum / float64(len(trip.Transactions))

	if trip.HasUnknown() {
		confidence *= s.cfg.UnknownPenalty
	}
	return confidence
}

// narrative picks the dominant trip pattern: conference markers first, then
// client engagement signals, then generic business travel, then a duration
// and location based fallback.
func (s *Synthesizer) narrative(trip *model.Trip) string {
	location := titleCase(trip.PrimaryLocation)
	span := fmt.Sprintf("%s - %s",
		trip.StartDate.Format("01/02/2006"),
		trip.EndDate.Format("01/02/2006"))

	switch {
	case trip.HasCategory(model.CategoryConference):
		if location != "" {
			return fmt.Sprintf("Conference attendance in %s for professional development (%s)", location, span)
		}
		return fmt.Sprintf("Conference attendance for professional development (%s)", span)

	case s.hasClientMeal(trip):
		if location != "" {
			return fmt.Sprintf("Client meeting and engagement in %s (%s)", location, span)
		}
		return fmt.Sprintf("Client meeting and engagement (%s)", span)

	case trip.HasCategory(model.CategoryAirfare) && trip.HasCategory(model.CategoryHotel):
		if location != "" {
			return fmt.Sprintf("Business travel to %s (%s)", location, span)
		}
		return fmt.Sprintf("Business travel (%s)", span)
	}

	city := location
	if idx := strings.Index(city, ","); idx > 0 {
		city = strings.TrimSpace(city[:idx])
	}
	// "CITY ST" locations read better without the state in the fallback
	if words := strings.Fields(city); len(words) > 1 && len(words[len(words)-1]) == 2 {
		city = strings.Join(words[:len(words)-1], " ")
	}

	switch {
	case city != "" && trip.DurationDays() > 2:
		return fmt.Sprintf("Multi-day business meeting in %s", city)
	case city != "":
		return fmt.Sprintf("Business meeting in %s", city)
	case trip.DurationDays() > 2:
		return "Multi-day business trip"
	default:
		return "Business meeting"
	}
}

// clientKeywords are vendor-name fragments that suggest a client meal.
var clientKeywords = []string{"CLIENT", "DINNER", "STEAKHOUSE", "CHOPHOUSE", "PRIVATE DINING"}

func (s *Synthesizer) hasClientMeal(trip *model.Trip) bool {
	for _, txn := range trip.Transactions {
		if txn.Category != model.CategoryMeals || txn.Amount < s.cfg.ClientMealAmount {
			continue
		}
		desc := strings.ToUpper(txn.Description)
		for _, kw := range clientKeywords {
			if strings.Contains(desc, kw) {
				return true
			}
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		if len(word) == 2 && i == len(words)-1 {
			// Trailing state abbreviations stay uppercase
			words[i] = strings.ToUpper(word)
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
