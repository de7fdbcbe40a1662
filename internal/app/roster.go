package app

import (
	"fmt"
	"sort"
)

// Roster maps ICAO station identifiers to the LED index the
// microcontroller uses for that airport. It is built at startup and never
// mutated afterwards. Index zero is reserved by the wire framing.
type Roster map[string]uint16

// RosterEntry is one station/LED pair in display order.
type RosterEntry struct {
	Station string
	Index   uint16
}

// DefaultRoster returns the stations wired into the frame, one LED each.
func DefaultRoster() Roster {
	return Roster{
		"KOAK": 1,
		"KSFO": 2,
		"KHAF": 3,
		"KSQL": 4,
		"KSJC": 5,
	}
}

// Entries returns the roster sorted by LED index. Iteration order only
// matters for logging; the protocol itself is order-independent.
func (r Roster) Entries() []RosterEntry {
	entries := make([]RosterEntry, 0, len(r))
	for station, index := range r {
		entries = append(entries, RosterEntry{Station: station, Index: index})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Index < entries[j].Index
	})
	return entries
}

// Validate rejects rosters using the reserved index zero or assigning two
// stations to the same LED.
func (r Roster) Validate() error {
	seen := make(map[uint16]string, len(r))
	for station, index := range r {
		if index == 0 {
			return fmt.Errorf("station %s uses reserved LED index 0", station)
		}
		if other, ok := seen[index]; ok {
			if other > station {
				station, other = other, station
			}
			return fmt.Errorf("stations %s and %s share LED index %d", station, other, index)
		}
		seen[index] = station
	}
	return nil
}
