package ingest

import "strings"

// US state and territory abbreviations accepted by the location heuristic.
var stateAbbrevs = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true, "PR": true,
}

// ExtractLocation pulls a "CITY ST" place name out of a transaction
// description. Card networks append the merchant city and state, so the last
// state abbreviation in the text anchors the guess; preceding alphabetic
// words become the city. Returns empty when no state abbreviation appears.
func ExtractLocation(description string) string {
	words := strings.Fields(strings.ToUpper(description))

	stateIdx := -1
	for i := len(words) - 1; i >= 0; i-- {
		if stateAbbrevs[words[i]] {
			stateIdx = i
			break
		}
	}
	if stateIdx < 0 {
		return ""
	}

	// Collect up to three alphabetic words preceding the state as the city
	var city []string
	for i := stateIdx - 1; i >= 0 && len(city) < 3; i-- {
		if !isAlphaWord(words[i]) {
			break
		}
		city = append([]string{words[i]}, city...)
	}

	if len(city) == 0 {
		return words[stateIdx]
	}
	return strings.Join(append(city, words[stateIdx]), " ")
}

func isAlphaWord(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && r != '.' && r != '\'' {
			return false
		}
	}
	return len(s) > 0
}
