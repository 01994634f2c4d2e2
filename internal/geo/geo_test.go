package geo

import (
	"math"
	"testing"
)

func TestIsValidZip(t *testing.T) {
	valid := []string{"75034", "07302", "00000"}
	for _, zip := range valid {
		if !IsValidZip(zip) {
			t.Fatalf("expected %q to be valid", zip)
		}
	}

	invalid := []string{"", "1234", "123456", "75O34", "75 34", "7503a"}
	for _, zip := range invalid {
		if IsValidZip(zip) {
			t.Fatalf("expected %q to be invalid", zip)
		}
	}
}

func TestStaticResolver_KnownZip(t *testing.T) {
	resolver := NewStaticResolver()

	coords, ok := resolver.Resolve("75034")
	if !ok {
		t.Fatal("expected 75034 to resolve")
	}
	if coords.Lat != 33.1507 || coords.Lng != -96.8236 {
		t.Fatalf("unexpected coordinates for 75034: %+v", coords)
	}
}

func TestStaticResolver_UnknownOrInvalidZip(t *testing.T) {
	resolver := NewStaticResolver()

	if _, ok := resolver.Resolve("99999"); ok {
		t.Fatal("expected unknown five-digit zip to miss")
	}
	if _, ok := resolver.Resolve("not-a-zip"); ok {
		t.Fatal("expected malformed zip to miss")
	}
}

func TestDistance_Symmetric(t *testing.T) {
	frisco := zipTable["75034"]
	austin := zipTable["78701"]

	ab := Distance(frisco.Lat, frisco.Lng, austin.Lat, austin.Lng)
	ba := Distance(austin.Lat, austin.Lng, frisco.Lat, frisco.Lng)

	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}
	// Frisco to Austin is roughly 180 miles as the crow flies.
	if ab < 150 || ab > 220 {
		t.Fatalf("implausible Frisco-Austin distance: %f", ab)
	}
}

func TestDistance_IdenticalCoordinatesIsZero(t *testing.T) {
	d := Distance(33.1507, -96.8236, 33.1507, -96.8236)
	if d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestDistance_NaNYieldsInfinity(t *testing.T) {
	nan := math.NaN()
	cases := [][4]float64{
		{nan, 0, 0, 0},
		{0, nan, 0, 0},
		{0, 0, nan, 0},
		{0, 0, 0, nan},
	}
	for _, args := range cases {
		if d := Distance(args[0], args[1], args[2], args[3]); !math.IsInf(d, 1) {
			t.Fatalf("expected +Inf for NaN input, got %f", d)
		}
	}
}

func TestDistanceBetween_NilYieldsInfinity(t *testing.T) {
	coords := &Coordinates{Lat: 33.1507, Lng: -96.8236}

	if d := DistanceBetween(nil, coords); !math.IsInf(d, 1) {
		t.Fatalf("expected +Inf for nil origin, got %f", d)
	}
	if d := DistanceBetween(coords, nil); !math.IsInf(d, 1) {
		t.Fatalf("expected +Inf for nil target, got %f", d)
	}
}

func TestStateForCity(t *testing.T) {
	if state, ok := StateForCity("Frisco"); !ok || state != "TX" {
		t.Fatalf("expected Frisco -> TX, got %q ok=%v", state, ok)
	}
	if state, ok := StateForCity("  Jersey City  "); !ok || state != "NJ" {
		t.Fatalf("expected Jersey City -> NJ, got %q ok=%v", state, ok)
	}
	// Substring match against longer location strings.
	if state, ok := StateForCity("Downtown Austin Metro"); !ok || state != "TX" {
		t.Fatalf("expected substring match for Austin, got %q ok=%v", state, ok)
	}
	if _, ok := StateForCity("Springfield"); ok {
		t.Fatal("expected unknown city to miss")
	}
	if _, ok := StateForCity(""); ok {
		t.Fatal("expected empty city to miss")
	}
}
