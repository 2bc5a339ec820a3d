// audio_lut.go - band-limited square wave lookup table
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

/*
A PC speaker's tone is a hard on/off square edge, which aliases badly once
sampled at 44.1kHz -- an instantaneous step's harmonics fold back into the
audible band as buzz. squareTable holds one precomputed cycle of a
band-limited square wave, built from its first squareHarmonics odd
harmonics, so the speaker model can look up an edge-softened sample
instead of switching hard between +-amplitude every period.
*/

package main

import "math"

const (
	squareLUTSize   = 2048
	squareHarmonics = 24 // odd harmonics summed before truncating the series
)

var squareTable [squareLUTSize]float32

func init() {
	for i := 0; i < squareLUTSize; i++ {
		phase := float64(i) / float64(squareLUTSize) * 2 * math.Pi
		var v float64
		for k := 1; k <= squareHarmonics*2; k += 2 {
			v += math.Sin(float64(k)*phase) / float64(k)
		}
		squareTable[i] = float32(v * 4 / math.Pi)
	}
}

// squareLUT returns the band-limited square wave value for phase in
// [0, 1), linearly interpolating between adjacent table entries.
func squareLUT(phase float64) float32 {
	indexF := phase * squareLUTSize
	index := int(indexF) % squareLUTSize
	next := (index + 1) % squareLUTSize
	frac := float32(indexF - math.Floor(indexF))
	return squareTable[index] + frac*(squareTable[next]-squareTable[index])
}
