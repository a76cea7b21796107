package analysis

import "math"

// Band is one fixed frequency range of the analysis spectrum.
type Band struct {
	Name   string  `json:"name"`
	LowHz  float64 `json:"low_hz"`
	HighHz float64 `json:"high_hz"`
}

// NumBands is the number of entries in the fixed band table.
const NumBands = 14

// bandTable is the fixed 14-band split from DC to AIR. Edges are
// monotonically increasing and the table covers [0, +Inf); AIR's upper
// bound is capped at the Nyquist frequency of the active sample rate by
// the band mapper. The table is never modified after init.
var bandTable = [NumBands]Band{
	{Name: "DC", LowHz: 0, HighHz: 20},
	{Name: "SUB1", LowHz: 20, HighHz: 40},
	{Name: "SUB2", LowHz: 40, HighHz: 60},
	{Name: "BASS", LowHz: 60, HighHz: 120},
	{Name: "UBAS", LowHz: 120, HighHz: 250},
	{Name: "LMID", LowHz: 250, HighHz: 500},
	{Name: "MID", LowHz: 500, HighHz: 1000},
	{Name: "UMID", LowHz: 1000, HighHz: 2000},
	{Name: "HMID", LowHz: 2000, HighHz: 4000},
	{Name: "PRES", LowHz: 4000, HighHz: 6000},
	{Name: "BRIL", LowHz: 6000, HighHz: 10000},
	{Name: "HIGH", LowHz: 10000, HighHz: 14000},
	{Name: "UHIG", LowHz: 14000, HighHz: 18000},
	{Name: "AIR", LowHz: 18000, HighHz: math.Inf(1)},
}

// Bands returns the fixed band table in ascending frequency order.
// The returned slice aliases the shared table; callers must not modify it.
func Bands() []Band {
	return bandTable[:]
}

// BandIndex returns the position of the named band in the table, or -1
// if no band has that name.
func BandIndex(name string) int {
	for i, b := range bandTable {
		if b.Name == name {
			return i
		}
	}
	return -1
}
