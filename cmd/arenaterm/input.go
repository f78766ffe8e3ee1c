package main

import (
	"github.com/gdamore/tcell/v2"

	"arena-server/game"
)

const (
	// terminals report key repeats but never key releases, so a press
	// keeps the intent alive for a few ticks
	holdTicks = 10
	turnDelta = 100.0 // look units per turn key press
)

// keyState turns key presses into held game input
type keyState struct {
	forward int
	back    int
	left    int
	right   int
	jump    int
	look    float64
	fire    bool
}

func (k *keyState) press(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		k.forward = holdTicks
	case tcell.KeyDown:
		k.back = holdTicks
	case tcell.KeyLeft:
		k.look -= turnDelta
	case tcell.KeyRight:
		k.look += turnDelta
	case tcell.KeyRune:
		k.pressRune(ev.Rune())
	}
}

func (k *keyState) pressRune(r rune) {
	switch r {
	case 'w':
		k.forward = holdTicks
	case 's':
		k.back = holdTicks
	case 'a':
		k.left = holdTicks
	case 'd':
		k.right = holdTicks
	case 'e':
		k.jump = holdTicks
	case ' ':
		k.fire = true
	case ',':
		k.look -= turnDelta
	case '.':
		k.look += turnDelta
	}
}

// next returns the input for one tick and ages the held keys
func (k *keyState) next() game.Input {
	in := game.Input{
		Forward: k.forward > 0,
		Back:    k.back > 0,
		Left:    k.left > 0,
		Right:   k.right > 0,
		Jump:    k.jump > 0,
		LookX:   k.look,
		Fire:    k.fire,
	}
	for _, n := range []*int{&k.forward, &k.back, &k.left, &k.right, &k.jump} {
		if *n > 0 {
			*n--
		}
	}
	k.look = 0
	k.fire = false
	return in
}
