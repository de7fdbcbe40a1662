// Package rules classifies METAR observations into flight-rules categories
// and maps each category to the single-byte color code the microcontroller
// understands.
package rules

import (
	"errors"
	"fmt"

	"metarmap/internal/metar"
)

// FlightRules is a flight-rules category. The numeric values encode the
// total order from worst to best conditions; combining sub-classifications
// is a plain min over that order.
type FlightRules int

const (
	LowIFR FlightRules = iota
	IFR
	MarginalVFR
	VFR
)

// String returns the conventional abbreviation for the category
func (r FlightRules) String() string {
	switch r {
	case LowIFR:
		return "LIFR"
	case IFR:
		return "IFR"
	case MarginalVFR:
		return "MVFR"
	case VFR:
		return "VFR"
	default:
		return "unknown"
	}
}

// Color codes sent over the serial link, one ASCII byte per category.
const (
	ColorPurple byte = 'p'
	ColorRed    byte = 'r'
	ColorBlue   byte = 'b'
	ColorGreen  byte = 'g'
)

// Color returns the indicator color byte for the category.
func (r FlightRules) Color() byte {
	switch r {
	case LowIFR:
		return ColorPurple
	case IFR:
		return ColorRed
	case MarginalVFR:
		return ColorBlue
	default:
		return ColorGreen
	}
}

// ErrVisibilityMissing is returned when the observation carried no
// visibility group; the report cannot be classified without one.
var ErrVisibilityMissing = errors.New("missing visibility")

// UnsupportedUnitError is returned for visibilities reported in anything
// other than statute miles.
type UnsupportedUnitError struct {
	Unit metar.DistanceUnit
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported visibility distance unit %q", e.Unit.String())
}

// FromVisibility classifies a visibility group. Only statute miles are in
// scope; 3.0 sm is the MVFR floor and 5.0 sm its inclusive ceiling.
func FromVisibility(v *metar.Visibility) (FlightRules, error) {
	if v == nil {
		return VFR, ErrVisibilityMissing
	}
	if v.Unit != metar.UnitStatuteMiles {
		return VFR, &UnsupportedUnitError{Unit: v.Unit}
	}

	switch {
	case v.Value < 1.0:
		return LowIFR, nil
	case v.Value < 3.0:
		return IFR, nil
	case v.Value <= 5.0:
		return MarginalVFR, nil
	default:
		return VFR, nil
	}
}

// FromCloudLayers classifies the ceiling: the lowest broken or overcast
// layer with a known altitude. Few and scattered layers never form a
// ceiling, and neither do layers whose height was not reported.
func FromCloudLayers(layers []metar.CloudLayer) FlightRules {
	ceiling := -1
	for _, layer := range layers {
		if layer.Coverage != metar.CoverageBroken && layer.Coverage != metar.CoverageOvercast {
			continue
		}
		if layer.Altitude == nil {
			continue
		}
		if ceiling < 0 || *layer.Altitude < ceiling {
			ceiling = *layer.Altitude
		}
	}

	if ceiling < 0 {
		return VFR
	}

	switch {
	case ceiling < 5:
		return LowIFR
	case ceiling < 10:
		return IFR
	case ceiling <= 30:
		return MarginalVFR
	default:
		return VFR
	}
}

// Classify combines the visibility and ceiling sub-classifications; the
// worse of the two wins.
func Classify(report *metar.Report) (FlightRules, error) {
	visibility, err := FromVisibility(report.Visibility)
	if err != nil {
		return VFR, err
	}

	ceiling := FromCloudLayers(report.CloudLayers)

	if visibility < ceiling {
		return visibility, nil
	}
	return ceiling, nil
}
