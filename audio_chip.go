// audio_chip.go - PIT channel 2 + speaker gate square wave generator
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

/*
audio_chip.go turns the PC speaker model (pic_pit.go's pit8253 channel 2
and pcSpeaker gate) into the stream of samples the oto backend pulls one
at a time. A real PC speaker is an on/off transducer driven straight off
the PIT's square wave, not a synthesizer -- so this chip's only job is to
convert "divisor N, gate on or off" into samples at the host sample rate,
using squareLUT (audio_lut.go) to avoid the harsh aliasing a naively
clocked square edge produces at audible frequencies.
*/

package main

import "sync"

const (
	clockFreq8253       = 1193182 // PIT input clock, Hz
	speakerMinFreq       = 20.0    // below this, DOS code is using the PIT for timing, not tone
	speakerAmplitude     = 3000.0 / 32768.0
)

// SoundChip is the single speaker voice: no channels, no envelopes, no
// effects bus, just the divisor-to-tone conversion a real PC does in
// hardware. The name and ReadSampleFromRing/Start/Stop surface match what
// audio_backend_oto.go's OtoPlayer already expects.
type SoundChip struct {
	mu         sync.Mutex
	pit        *pit8253
	spk        *pcSpeaker
	sampleRate int
	phase      float64 // preserved across calls so batches don't click at the boundary
	enabled    bool
}

func NewSoundChip(pit *pit8253, spk *pcSpeaker, sampleRate int) *SoundChip {
	return &SoundChip{pit: pit, spk: spk, sampleRate: sampleRate}
}

// ReadSampleFromRing produces one sample of the speaker's current tone.
// Phase advances every call regardless of gate state, so the waveform
// doesn't restart from 0 and pop the instant the gate reopens.
func (chip *SoundChip) ReadSampleFromRing() float32 {
	chip.mu.Lock()
	defer chip.mu.Unlock()

	if !chip.enabled || chip.pit == nil || chip.spk == nil {
		return 0
	}

	freq := float64(clockFreq8253) / float64(chip.pit.Channel2Divisor())
	if freq < speakerMinFreq {
		return 0
	}

	chip.phase += freq / float64(chip.sampleRate)
	if chip.phase >= 1 {
		chip.phase -= float64(int(chip.phase))
	}
	if !chip.spk.Enabled() {
		return 0
	}
	return squareLUT(chip.phase) * speakerAmplitude
}

func (chip *SoundChip) Start() {
	chip.mu.Lock()
	defer chip.mu.Unlock()
	chip.enabled = true
}

func (chip *SoundChip) Stop() {
	chip.mu.Lock()
	defer chip.mu.Unlock()
	chip.enabled = false
}
