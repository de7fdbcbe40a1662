package metar

// DistanceUnit identifies the unit a visibility value was reported in.
type DistanceUnit int

const (
	UnitStatuteMiles DistanceUnit = iota
	UnitMeters
)

// String returns a human-readable unit name
func (u DistanceUnit) String() string {
	switch u {
	case UnitStatuteMiles:
		return "SM"
	case UnitMeters:
		return "m"
	default:
		return "unknown"
	}
}

// Visibility is a reported horizontal visibility
type Visibility struct {
	Value float64
	Unit  DistanceUnit
}

// Coverage is the cloud amount of a sky condition group
type Coverage int

const (
	CoverageFew Coverage = iota
	CoverageScattered
	CoverageBroken
	CoverageOvercast
)

// String returns the METAR abbreviation for the coverage
func (c Coverage) String() string {
	switch c {
	case CoverageFew:
		return "FEW"
	case CoverageScattered:
		return "SCT"
	case CoverageBroken:
		return "BKN"
	case CoverageOvercast:
		return "OVC"
	default:
		return "unknown"
	}
}

// CloudLayer is one sky condition group. Altitude is in hundreds of feet
// AGL and is nil when the group carried no height (e.g. "BKN///").
type CloudLayer struct {
	Coverage Coverage
	Altitude *int
}

// Report holds the subset of a METAR that flight-rules classification
// consumes: the reporting station, an optional visibility, and the sky
// condition groups in report order. Visibility is nil when the report
// carried none.
type Report struct {
	Station     string
	Visibility  *Visibility
	CloudLayers []CloudLayer
	Raw         string
}
