package rules

import "github.com/triptally/triptally/internal/model"

func floatPtr(f float64) *float64 { return &f }

// DefaultRules returns the built-in vendor pattern table. Exact vendor
// matches sit at the top priorities with confidence at or above 0.9; broad
// keyword fallbacks sit lower with confidence between 0.5 and 0.9.
func DefaultRules() []model.PatternRule {
	return []model.PatternRule{
		// Exact vendor matches - highest priority
		{Name: "United Airlines", Pattern: "UNITED AIRLINES", Category: model.CategoryAirfare, Priority: 100, Confidence: 0.95},
		{Name: "Delta Air Lines", Pattern: "DELTA AIR", Category: model.CategoryAirfare, Priority: 100, Confidence: 0.95},
		{Name: "American Airlines", Pattern: "AMERICAN AIRLINES", Category: model.CategoryAirfare, Priority: 100, Confidence: 0.95},
		{Name: "Southwest Airlines", Pattern: "SOUTHWEST AIR", Category: model.CategoryAirfare, Priority: 100, Confidence: 0.95},
		{Name: "Alaska Airlines", Pattern: "ALASKA AIR", Category: model.CategoryAirfare, Priority: 100, Confidence: 0.95},
		{Name: "JetBlue", Pattern: "JETBLUE", Category: model.CategoryAirfare, Priority: 100, Confidence: 0.95},

		// Marriott room charges vs. small incidentals: the amount hint breaks
		// the tie between these two same-priority rules
		{Name: "Marriott", Pattern: "MARRIOTT", Category: model.CategoryHotel, Priority: 100, Confidence: 0.95, AmountMin: floatPtr(75)},
		{Name: "Marriott incidental", Pattern: "MARRIOTT", Category: model.CategoryMeals, Priority: 100, Confidence: 0.9, AmountMax: floatPtr(75)},
		{Name: "Hilton", Pattern: "HILTON", Category: model.CategoryHotel, Priority: 100, Confidence: 0.95},
		{Name: "Hyatt", Pattern: "HYATT", Category: model.CategoryHotel, Priority: 100, Confidence: 0.95},
		{Name: "Holiday Inn", Pattern: "HOLIDAY INN", Category: model.CategoryHotel, Priority: 100, Confidence: 0.95},
		{Name: "Hampton Inn", Pattern: "HAMPTON INN", Category: model.CategoryHotel, Priority: 100, Confidence: 0.92},

		{Name: "Uber", Pattern: `\bUBER\b`, Category: model.CategoryTransport, Priority: 95, Confidence: 0.92, IsRegex: true},
		{Name: "Lyft", Pattern: `\bLYFT\b`, Category: model.CategoryTransport, Priority: 95, Confidence: 0.92, IsRegex: true},
		{Name: "Hertz", Pattern: "HERTZ", Category: model.CategoryTransport, Priority: 95, Confidence: 0.92},
		{Name: "Avis", Pattern: `\bAVIS\b`, Category: model.CategoryTransport, Priority: 95, Confidence: 0.92, IsRegex: true},
		{Name: "Enterprise Rent-A-Car", Pattern: "ENTERPRISE RENT", Category: model.CategoryTransport, Priority: 95, Confidence: 0.92},

		{Name: "Starbucks", Pattern: "STARBUCKS", Category: model.CategoryMeals, Priority: 95, Confidence: 0.92},
		{Name: "McDonald's", Pattern: "MCDONALD", Category: model.CategoryMeals, Priority: 95, Confidence: 0.92},
		{Name: "Chipotle", Pattern: "CHIPOTLE", Category: model.CategoryMeals, Priority: 95, Confidence: 0.92},

		// Conference markers
		{
			Name:       "Conference registration",
			Pattern:    `\b(CONFERENCE|CONF REG|REGISTRATION|SUMMIT|CONVENTION|EXPO|TRADE SHOW)\b`,
			Category:   model.CategoryConference,
			Priority:   90,
			Confidence: 0.9,
			IsRegex:    true,
		},

		// Broad keyword fallbacks
		{
			Name:       "Lodging keyword",
			Pattern:    `\b(HOTEL|MOTEL|INN|RESORT|LODGING|SUITES)\b`,
			Category:   model.CategoryHotel,
			Priority:   60,
			Confidence: 0.75,
			IsRegex:    true,
		},
		{
			Name:       "Airline keyword",
			Pattern:    `\b(AIRLINES?|AIRWAYS|AIR TRAVEL)\b`,
			Category:   model.CategoryAirfare,
			Priority:   60,
			Confidence: 0.7,
			IsRegex:    true,
		},
		{
			Name:       "Restaurant keyword",
			Pattern:    `\b(RESTAURANT|CAFE|COFFEE|PIZZA|DINER|GRILL|BISTRO|BAR|SUSHI|STEAKHOUSE)\b`,
			Category:   model.CategoryMeals,
			Priority:   50,
			Confidence: 0.65,
			IsRegex:    true,
		},
		{
			Name:       "Ground transport keyword",
			Pattern:    `\b(TAXI|PARKING|GAS|FUEL|RENTAL CAR|TRANSIT|METRO|TOLL|SHUTTLE|TRAIN)\b`,
			Category:   model.CategoryTransport,
			Priority:   50,
			Confidence: 0.65,
			IsRegex:    true,
		},
		{
			Name:       "Entertainment keyword",
			Pattern:    `\b(CINEMA|THEATER|THEATRE|GOLF|MUSEUM|TICKETMASTER|STADIUM)\b`,
			Category:   model.CategoryEntertainment,
			Priority:   45,
			Confidence: 0.6,
			IsRegex:    true,
		},
		{
			Name:       "Personal keyword",
			Pattern:    `\b(GIFT SHOP|SPA|SALON|PHARMACY|BARBER)\b`,
			Category:   model.CategoryPersonal,
			Priority:   40,
			Confidence: 0.55,
			IsRegex:    true,
		},
	}
}
