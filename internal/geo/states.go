package geo

import "strings"

// cityStates maps known city substrings to two-letter state codes. This is a
// fixed lookup standing in for a geocoding service, not an exhaustive index.
var cityStates = map[string]string{
	"frisco":        "TX",
	"plano":         "TX",
	"mckinney":      "TX",
	"dallas":        "TX",
	"fort worth":    "TX",
	"austin":        "TX",
	"houston":       "TX",
	"san antonio":   "TX",
	"jersey city":   "NJ",
	"newark":        "NJ",
	"hoboken":       "NJ",
	"edison":        "NJ",
	"los angeles":   "CA",
	"san francisco": "CA",
	"san diego":     "CA",
	"sacramento":    "CA",
}

// StateForCity derives a two-letter state code from a free-form city string by
// substring matching against the known city table. Cities outside the table
// report false.
func StateForCity(city string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(city))
	if normalized == "" {
		return "", false
	}

	for name, state := range cityStates {
		if strings.Contains(normalized, name) {
			return state, true
		}
	}
	return "", false
}
