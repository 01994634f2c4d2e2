// Package scoring computes realtor-to-lead match scores for distribution.
//
// A score is the unweighted sum of four independently capped sub-scores:
// location (0-40), language (0-30), verification (0/20) and availability
// (1-10). Weighting lives inside each sub-score's own ceiling and is never
// applied again when summing.
package scoring

import (
	"strings"

	"github.com/google/uuid"

	"leadmarket_backend/internal/distribution/repository"
	"leadmarket_backend/internal/geo"
)

const (
	cityMatchScore     = 40
	stateFallbackScore = 10

	exactLanguageScore   = 30
	splitLanguageScore   = 20
	englishFallbackScore = 10

	verifiedScore = 20
)

// DistributionScore is the ephemeral scoring result for one realtor.
// It is returned to callers and never persisted.
type DistributionScore struct {
	RealtorID         uuid.UUID `json:"realtorId"`
	RealtorName       string    `json:"realtorName"`
	LocationScore     int       `json:"locationScore"`
	LanguageScore     int       `json:"languageScore"`
	VerificationScore int       `json:"verificationScore"`
	AvailabilityScore int       `json:"availabilityScore"`
	TotalScore        int       `json:"totalScore"`
	Reason            string    `json:"reason"`
}

// Score computes the full DistributionScore for one (lead, realtor) pair.
// It is a pure computation: no I/O, no mutation of its inputs.
func Score(lead repository.Lead, realtor repository.Realtor) DistributionScore {
	score := DistributionScore{
		RealtorID:   realtor.ID,
		RealtorName: realtor.Name,
	}

	score.LocationScore = locationScore(lead, realtor)
	score.LanguageScore = languageScore(lead, realtor)
	score.VerificationScore = verificationScore(realtor)
	score.AvailabilityScore = availabilityScore(realtor.AssignedLeads)
	score.TotalScore = score.LocationScore + score.LanguageScore +
		score.VerificationScore + score.AvailabilityScore
	score.Reason = buildReason(score)

	return score
}

// locationScore awards up to 40 points for geographic affinity.
//
// A direct city match wins outright. Otherwise, when the lead carries stored
// coordinates and a valid ZIP, an approximate distance to the realtor's
// territory is mapped onto tiers. Failing both, a state derived from the
// lead's city string earns a 10-point fallback when the realtor serves it.
func locationScore(lead repository.Lead, realtor repository.Realtor) int {
	city := strings.ToLower(strings.TrimSpace(lead.City))

	if city != "" {
		for _, served := range realtor.Cities {
			if city == served || strings.Contains(city, served) || strings.Contains(served, city) {
				return cityMatchScore
			}
		}
	}

	if lead.Latitude != nil && lead.Longitude != nil && geo.IsValidZip(lead.ZipCode) {
		miles := territoryDistance(city, realtor)
		switch {
		case miles <= 25:
			return 35
		case miles <= 50:
			return 25
		case miles <= 100:
			return 15
		}
		// farther than 100 miles falls through to the state fallback
	}

	if state, ok := geo.StateForCity(city); ok && containsString(realtor.States, state) {
		return stateFallbackScore
	}

	return 0
}

// territoryDistance approximates how far the lead sits from the realtor's
// service territory. Served cities carry no coordinates of their own, so a
// looser city match counts as 0 miles, a shared derived state as 50, and
// everything else as 200. The tiers stay meaningful without per-city
// geocoding; do not replace this with a real geocoder.
func territoryDistance(city string, realtor repository.Realtor) float64 {
	folded := foldCity(city)
	for _, served := range realtor.Cities {
		if folded != "" && folded == foldCity(served) {
			return 0
		}
	}

	if state, ok := geo.StateForCity(city); ok && containsString(realtor.States, state) {
		return 50
	}

	return 200
}

// languageScore awards up to 30 points for language compatibility.
//
// Branch order is part of the contract: a realtor language equal to or
// contained in the preference scores 30 before the shared-English fallback
// (10) is consulted, and the English fallback is consulted before the
// 20-point multi-language split. Two English speakers therefore cap at 10
// even when a split-overlap would have scored 20.
func languageScore(lead repository.Lead, realtor repository.Realtor) int {
	preference := ""
	if lead.LanguagePreference != nil {
		preference = strings.ToLower(strings.TrimSpace(*lead.LanguagePreference))
	}

	if preference == "" {
		if len(realtor.Languages) > 1 {
			return 10
		}
		return 5
	}

	for _, lang := range realtor.Languages {
		if lang == preference || strings.Contains(preference, lang) {
			return exactLanguageScore
		}
	}

	if strings.Contains(preference, "english") {
		for _, lang := range realtor.Languages {
			if strings.Contains(lang, "english") {
				return englishFallbackScore
			}
		}
	}

	for _, candidate := range splitLanguages(preference) {
		for _, lang := range realtor.Languages {
			if strings.Contains(lang, candidate) || strings.Contains(candidate, lang) {
				return splitLanguageScore
			}
		}
	}

	return 0
}

// verificationScore is binary. The orchestrator already filters the pool to
// verified realtors, but the sub-score is computed independently so the
// calculator stays reusable on arbitrary pools.
func verificationScore(realtor repository.Realtor) int {
	if realtor.IsVerified {
		return verifiedScore
	}
	return 0
}

// availabilityScore rewards a light workload, floor of 1.
func availabilityScore(assignedLeads int) int {
	switch {
	case assignedLeads <= 5:
		return 10
	case assignedLeads <= 10:
		return 7
	case assignedLeads <= 20:
		return 5
	case assignedLeads <= 30:
		return 3
	default:
		return 1
	}
}

// buildReason assembles the display-only explanation string. It never feeds
// back into ranking.
func buildReason(score DistributionScore) string {
	fragments := make([]string, 0, 4)

	switch {
	case score.LocationScore > 30:
		fragments = append(fragments, "Excellent location match")
	case score.LocationScore >= 15:
		fragments = append(fragments, "Serves the lead's area")
	case score.LocationScore > 0:
		fragments = append(fragments, "Covers the lead's state")
	}

	switch score.LanguageScore {
	case exactLanguageScore:
		fragments = append(fragments, "Perfect language match")
	case splitLanguageScore:
		fragments = append(fragments, "Speaks one of the lead's languages")
	case englishFallbackScore:
		fragments = append(fragments, "Shared language coverage")
	}

	if score.VerificationScore > 0 {
		fragments = append(fragments, "Verified realtor")
	}

	switch {
	case score.AvailabilityScore == 10:
		fragments = append(fragments, "Highly available")
	case score.AvailabilityScore >= 7:
		fragments = append(fragments, "Good availability")
	}

	return strings.Join(fragments, ", ")
}

// splitLanguages breaks a compound preference ("Spanish, Portuguese",
// "Hindi/Urdu") into trimmed candidates.
func splitLanguages(preference string) []string {
	parts := strings.FieldsFunc(preference, func(r rune) bool {
		return r == ',' || r == '/' || r == '&'
	})

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// foldCity strips everything but letters and digits so spacing and
// punctuation differences don't block the looser distance-zero match.
func foldCity(city string) string {
	var b strings.Builder
	for _, r := range city {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
