package scoring

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"leadmarket_backend/internal/distribution/repository"
)

func testLead(city, zip, language string) repository.Lead {
	lead := repository.Lead{ID: uuid.New(), City: city, ZipCode: zip}
	if language != "" {
		lead.LanguagePreference = &language
	}
	return lead
}

func withCoordinates(lead repository.Lead, lat, lng float64) repository.Lead {
	lead.Latitude = &lat
	lead.Longitude = &lng
	return lead
}

func testRealtor(cities, states, languages string, verified bool, assigned int) repository.Realtor {
	return repository.Realtor{
		ID:            uuid.New(),
		Name:          "Test Realtor",
		IsVerified:    verified,
		Cities:        repository.SplitList(cities, strings.ToLower),
		States:        repository.SplitList(states, strings.ToUpper),
		Languages:     repository.SplitList(languages, strings.ToLower),
		AssignedLeads: assigned,
	}
}

func TestScoreCityAndLanguageMatch(t *testing.T) {
	lead := testLead("Frisco", "75034", "Spanish")
	realtor := testRealtor("Frisco,Plano", "", "English,Spanish", true, 0)

	score := Score(lead, realtor)

	if score.LocationScore != 40 {
		t.Fatalf("location score = %d, want 40", score.LocationScore)
	}
	if score.LanguageScore != 30 {
		t.Fatalf("language score = %d, want 30", score.LanguageScore)
	}
	if score.VerificationScore != 20 {
		t.Fatalf("verification score = %d, want 20", score.VerificationScore)
	}
	if score.AvailabilityScore != 10 {
		t.Fatalf("availability score = %d, want 10", score.AvailabilityScore)
	}
	if score.TotalScore != 100 {
		t.Fatalf("total score = %d, want 100", score.TotalScore)
	}
}

func TestScoreStateFallback(t *testing.T) {
	// No stored coordinates, so the distance tiers are skipped entirely and
	// the shared TX derivation (Frisco and Austin) earns the 10-point
	// fallback. Lead wants Spanish, realtor only English: zero overlap.
	lead := testLead("Frisco", "75034", "Spanish")
	realtor := testRealtor("Austin", "TX", "English", true, 8)

	score := Score(lead, realtor)

	if score.LocationScore != 10 {
		t.Fatalf("location score = %d, want 10 (state fallback)", score.LocationScore)
	}
	if score.LanguageScore != 0 {
		t.Fatalf("language score = %d, want 0", score.LanguageScore)
	}
	if score.AvailabilityScore != 7 {
		t.Fatalf("availability score = %d, want 7 for 8 assigned leads", score.AvailabilityScore)
	}
	if score.TotalScore != 37 {
		t.Fatalf("total score = %d, want 37", score.TotalScore)
	}
}

func TestLocationDistanceTiers(t *testing.T) {
	realtor := testRealtor("Austin", "TX", "English", true, 0)

	// Shared derived state maps to the 50-mile heuristic, the 25-point tier.
	sharedState := withCoordinates(testLead("Frisco", "75034", ""), 33.1507, -96.8236)
	if score := Score(sharedState, realtor); score.LocationScore != 25 {
		t.Fatalf("location score = %d, want 25 for shared-state territory", score.LocationScore)
	}

	// Punctuation blocks the substring match but not the folded comparison,
	// so the heuristic sees 0 miles: the 35-point tier.
	loose := withCoordinates(testLead("Aus-tin", "78701", ""), 30.2672, -97.7431)
	if score := Score(loose, realtor); score.LocationScore != 35 {
		t.Fatalf("location score = %d, want 35 for loose city match", score.LocationScore)
	}

	// No city or state affinity puts the lead 200 miles out, past every
	// tier, and the state fallback misses too.
	far := withCoordinates(testLead("Jersey City", "07302", ""), 40.7178, -74.0431)
	if score := Score(far, realtor); score.LocationScore != 0 {
		t.Fatalf("location score = %d, want 0 for out-of-territory lead", score.LocationScore)
	}
}

func TestLocationTierGateNeedsValidZip(t *testing.T) {
	realtor := testRealtor("Austin", "TX", "English", true, 0)

	// Coordinates without a 5-digit ZIP skip the tier path; state fallback
	// still applies.
	lead := withCoordinates(testLead("Frisco", "750", ""), 33.1507, -96.8236)
	if score := Score(lead, realtor); score.LocationScore != 10 {
		t.Fatalf("location score = %d, want 10 when ZIP is invalid", score.LocationScore)
	}
}

func TestLocationSubstringCityMatch(t *testing.T) {
	lead := testLead("Downtown Frisco", "75034", "")
	realtor := testRealtor("Frisco", "", "English", true, 0)

	if score := Score(lead, realtor); score.LocationScore != 40 {
		t.Fatalf("location score = %d, want 40 for substring city match", score.LocationScore)
	}
}

func TestLanguageExactMatchPrecedence(t *testing.T) {
	// "english" sits inside the compound preference AND a split-overlap
	// exists, but the 30-point substring match must win before either
	// fallback is consulted.
	lead := testLead("Frisco", "75034", "Spanish, English")
	realtor := testRealtor("Frisco", "", "English", true, 0)

	if score := Score(lead, realtor); score.LanguageScore != 30 {
		t.Fatalf("language score = %d, want 30 (substring match wins)", score.LanguageScore)
	}
}

func TestLanguageEnglishFallbackMasksSplitOverlap(t *testing.T) {
	// "american english" is not a substring of the preference, so no direct
	// match. Both sides mention english, so the 10-point fallback fires
	// before the 20-point split check could have scored the overlap.
	lead := testLead("Frisco", "75034", "English & Spanish")
	realtor := testRealtor("Frisco", "", "American English,French", true, 0)

	if score := Score(lead, realtor); score.LanguageScore != 10 {
		t.Fatalf("language score = %d, want 10 (english fallback precedes split overlap)", score.LanguageScore)
	}
}

func TestLanguageSplitOverlap(t *testing.T) {
	// "urdu (native)" is not a substring of the raw preference, so neither
	// the 30-point match nor the english fallback applies; the split check
	// finds "urdu" inside it.
	lead := testLead("Frisco", "75034", "Hindi/Urdu")
	realtor := testRealtor("Frisco", "", "Urdu (native)", true, 0)

	if score := Score(lead, realtor); score.LanguageScore != 20 {
		t.Fatalf("language score = %d, want 20 (split overlap)", score.LanguageScore)
	}
}

func TestLanguageNoPreference(t *testing.T) {
	lead := testLead("Frisco", "75034", "")

	multi := Score(lead, testRealtor("Frisco", "", "English,Spanish", true, 0))
	if multi.LanguageScore != 10 {
		t.Fatalf("language score = %d, want 10 for multilingual realtor", multi.LanguageScore)
	}

	single := Score(lead, testRealtor("Frisco", "", "English", true, 0))
	if single.LanguageScore != 5 {
		t.Fatalf("language score = %d, want 5 for single-language realtor", single.LanguageScore)
	}
}

func TestLanguageNoOverlap(t *testing.T) {
	lead := testLead("Frisco", "75034", "Mandarin")
	realtor := testRealtor("Frisco", "", "Spanish,French", true, 0)

	if score := Score(lead, realtor); score.LanguageScore != 0 {
		t.Fatalf("language score = %d, want 0", score.LanguageScore)
	}
}

func TestVerificationScore(t *testing.T) {
	lead := testLead("Frisco", "75034", "")

	verified := Score(lead, testRealtor("Frisco", "", "English", true, 0))
	if verified.VerificationScore != 20 {
		t.Fatalf("verification score = %d, want 20", verified.VerificationScore)
	}

	unverified := Score(lead, testRealtor("Frisco", "", "English", false, 0))
	if unverified.VerificationScore != 0 {
		t.Fatalf("verification score = %d, want 0", unverified.VerificationScore)
	}
}

func TestAvailabilityTiers(t *testing.T) {
	cases := []struct {
		assigned int
		want     int
	}{
		{0, 10}, {5, 10}, {6, 7}, {10, 7}, {11, 5}, {20, 5}, {21, 3}, {30, 3}, {31, 1}, {200, 1},
	}

	for _, tc := range cases {
		if got := availabilityScore(tc.assigned); got != tc.want {
			t.Fatalf("availabilityScore(%d) = %d, want %d", tc.assigned, got, tc.want)
		}
	}
}

func TestTotalIsSumOfSubScores(t *testing.T) {
	lead := testLead("Jersey City", "07302", "Spanish, Portuguese")
	realtor := testRealtor("Hoboken,Newark", "NJ", "Portuguese", true, 12)

	score := Score(lead, realtor)
	sum := score.LocationScore + score.LanguageScore + score.VerificationScore + score.AvailabilityScore
	if score.TotalScore != sum {
		t.Fatalf("total %d != sum of sub-scores %d", score.TotalScore, sum)
	}
}

func TestReasonFragments(t *testing.T) {
	lead := testLead("Frisco", "75034", "Spanish")
	realtor := testRealtor("Frisco", "", "Spanish", true, 2)

	score := Score(lead, realtor)
	want := "Excellent location match, Perfect language match, Verified realtor, Highly available"
	if score.Reason != want {
		t.Fatalf("reason = %q, want %q", score.Reason, want)
	}

	empty := Score(testLead("Springfield", "99999", "Mandarin"), testRealtor("Newark", "NJ", "French", false, 100))
	if empty.Reason != "" {
		t.Fatalf("reason = %q, want empty for all-miss score", empty.Reason)
	}
}
