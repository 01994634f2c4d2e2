package geo

// CoordinateResolver resolves a ZIP code to coordinates. The default
// implementation is a small fixed table; a real geocoding provider can be
// substituted without touching scoring logic.
type CoordinateResolver interface {
	Resolve(zip string) (Coordinates, bool)
}

// StaticResolver resolves ZIPs from a fixed in-memory table.
type StaticResolver struct {
	table map[string]Coordinates
}

// zipTable holds coordinates for a handful of illustrative markets.
var zipTable = map[string]Coordinates{
	// Texas
	"75034": {Lat: 33.1507, Lng: -96.8236}, // Frisco
	"75035": {Lat: 33.1560, Lng: -96.7697}, // Frisco (east)
	"75024": {Lat: 33.0752, Lng: -96.8050}, // Plano
	"75069": {Lat: 33.1972, Lng: -96.6398}, // McKinney
	"75201": {Lat: 32.7876, Lng: -96.7994}, // Dallas
	"76102": {Lat: 32.7555, Lng: -97.3308}, // Fort Worth
	"78701": {Lat: 30.2711, Lng: -97.7437}, // Austin
	"77002": {Lat: 29.7589, Lng: -95.3677}, // Houston
	"78205": {Lat: 29.4241, Lng: -98.4936}, // San Antonio
	// New Jersey
	"07302": {Lat: 40.7178, Lng: -74.0431}, // Jersey City
	"07102": {Lat: 40.7357, Lng: -74.1724}, // Newark
	"07030": {Lat: 40.7440, Lng: -74.0324}, // Hoboken
	// California
	"90012": {Lat: 34.0614, Lng: -118.2385}, // Los Angeles
	"94102": {Lat: 37.7793, Lng: -122.4193}, // San Francisco
	"92101": {Lat: 32.7157, Lng: -117.1611}, // San Diego
	"95814": {Lat: 38.5816, Lng: -121.4944}, // Sacramento
}

// NewStaticResolver returns a resolver backed by the built-in ZIP table.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{table: zipTable}
}

// Resolve looks up coordinates for a ZIP. Unknown or malformed ZIPs report
// false; this method never fails.
func (r *StaticResolver) Resolve(zip string) (Coordinates, bool) {
	if !IsValidZip(zip) {
		return Coordinates{}, false
	}
	coords, ok := r.table[zip]
	return coords, ok
}

// Compile-time check that StaticResolver implements CoordinateResolver.
var _ CoordinateResolver = (*StaticResolver)(nil)
