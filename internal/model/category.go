package model

// Category is one of the closed set of spend classifications.
type Category string

// Spend categories.
const (
	CategoryAirfare       Category = "AIRFARE"
	CategoryHotel         Category = "HOTEL"
	CategoryMeals         Category = "MEALS"
	CategoryTransport     Category = "TRANSPORT"
	CategoryConference    Category = "CONFERENCE"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryPersonal      Category = "PERSONAL"
	// CategoryUnknown is the fallback for transactions no rule matched.
	// It always carries confidence 0.
	CategoryUnknown Category = "UNKNOWN"
)

// AllCategories returns every valid category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryAirfare,
		CategoryHotel,
		CategoryMeals,
		CategoryTransport,
		CategoryConference,
		CategoryEntertainment,
		CategoryPersonal,
		CategoryUnknown,
	}
}

// IsValid reports whether c is a member of the closed category set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAirfare, CategoryHotel, CategoryMeals, CategoryTransport,
		CategoryConference, CategoryEntertainment, CategoryPersonal, CategoryUnknown:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
