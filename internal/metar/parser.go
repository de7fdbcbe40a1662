// Package metar parses the subset of a METAR report that flight-rules
// classification needs: visibility and sky condition groups. Everything
// else (wind, temperature, altimeter, remarks) is skipped.
package metar

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyReport is returned when the input contains no tokens.
var ErrEmptyReport = errors.New("empty METAR report")

var coverages = map[string]Coverage{
	"FEW": CoverageFew,
	"SCT": CoverageScattered,
	"BKN": CoverageBroken,
	"OVC": CoverageOvercast,
}

// Parse parses a single METAR line. The parser is permissive: tokens it
// does not understand are skipped, and only the first visibility group and
// the sky condition groups before the remarks section are extracted.
func Parse(text string) (*Report, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, ErrEmptyReport
	}

	report := &Report{Raw: strings.TrimSpace(text)}

	tokens := fields
	if isStation(tokens[0]) {
		report.Station = tokens[0]
		tokens = tokens[1:]
	}

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		// Everything after RMK is remarks
		if token == "RMK" {
			break
		}

		if report.Visibility == nil {
			// Mixed-number statute mile visibility ("2 1/2SM") spans
			// two tokens: a whole part followed by the fraction group.
			if whole, err := strconv.Atoi(token); err == nil && i+1 < len(tokens) {
				if frac, ok := parseMilesToken(tokens[i+1]); ok {
					report.Visibility = &Visibility{
						Value: float64(whole) + frac,
						Unit:  UnitStatuteMiles,
					}
					i++
					continue
				}
			}

			if miles, ok := parseMilesToken(token); ok {
				report.Visibility = &Visibility{Value: miles, Unit: UnitStatuteMiles}
				continue
			}

			if meters, ok := parseMetersToken(token); ok && len(report.CloudLayers) == 0 {
				report.Visibility = &Visibility{Value: meters, Unit: UnitMeters}
				continue
			}

			// CAVOK implies visibility of 10 km or more and no cloud
			// below 5000 ft; reported in the metric domain.
			if token == "CAVOK" {
				report.Visibility = &Visibility{Value: 9999, Unit: UnitMeters}
				continue
			}
		}

		if layer, ok := parseSkyToken(token); ok {
			report.CloudLayers = append(report.CloudLayers, layer)
			continue
		}
	}

	return report, nil
}

// isStation reports whether the token looks like a 4-character ICAO
// identifier (letters and digits, starting with a letter).
func isStation(token string) bool {
	if len(token) != 4 {
		return false
	}
	if token[0] < 'A' || token[0] > 'Z' {
		return false
	}
	for i := 1; i < len(token); i++ {
		c := token[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// parseMilesToken parses a statute mile visibility group such as "10SM",
// "1/2SM" or "M1/4SM" (the M prefix means "less than"; the value is kept).
func parseMilesToken(token string) (float64, bool) {
	if !strings.HasSuffix(token, "SM") {
		return 0, false
	}
	value := strings.TrimSuffix(token, "SM")
	value = strings.TrimPrefix(value, "M")
	if value == "" {
		return 0, false
	}

	if num, den, ok := strings.Cut(value, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	miles, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return miles, true
}

// parseMetersToken parses the international 4-digit metre visibility group.
func parseMetersToken(token string) (float64, bool) {
	// "0800NDV" style suffix means no directional variation
	token = strings.TrimSuffix(token, "NDV")
	if len(token) != 4 {
		return 0, false
	}
	meters, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return float64(meters), true
}

// parseSkyToken parses a sky condition group: a coverage abbreviation
// followed by a 3-digit height in hundreds of feet, or "///" when the
// height could not be measured.
func parseSkyToken(token string) (CloudLayer, bool) {
	if len(token) < 6 {
		return CloudLayer{}, false
	}
	coverage, ok := coverages[token[:3]]
	if !ok {
		return CloudLayer{}, false
	}

	height := token[3:]
	// Convective suffixes (CB, TCU) ride along after the height
	for _, suffix := range []string{"CB", "TCU"} {
		height = strings.TrimSuffix(height, suffix)
	}

	if strings.HasPrefix(height, "///") {
		return CloudLayer{Coverage: coverage}, true
	}

	if len(height) != 3 {
		return CloudLayer{}, false
	}
	hundreds, err := strconv.Atoi(height)
	if err != nil {
		return CloudLayer{}, false
	}
	return CloudLayer{Coverage: coverage, Altitude: &hundreds}, true
}
