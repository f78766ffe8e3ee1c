package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Audio plays short tones for game events. The zero value is silent.
type Audio struct {
	audioInit bool
}

func (a *Audio) Init() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		a.audioInit = true
	}
	return err
}

// Tone plays a sine tone without blocking
func (a *Audio) Tone(freq float64, d time.Duration) {
	if !a.audioInit {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (a *Audio) Close() {
	if a.audioInit {
		speaker.Close()
		a.audioInit = false
	}
}
