// Command arenaterm plays the arena in a terminal, seen from above.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"arena-server/game"
)

type Term struct {
	screen tcell.Screen
	width  int
	height int

	cfg   game.Config
	name  string
	world *game.World
	scene *proxyScene
	keys  keyState
	audio *Audio
}

func NewTerm(cfg game.Config, name string, audio *Audio) (*Term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	t := &Term{
		screen: screen,
		cfg:    cfg,
		name:   name,
		audio:  audio,
	}
	t.width, t.height = screen.Size()
	if err := t.newMatch(); err != nil {
		screen.Fini()
		return nil, err
	}
	return t, nil
}

// newMatch replaces the world with a fresh one
func (t *Term) newMatch() error {
	t.scene = newProxyScene()
	t.world = game.NewWorld(t.cfg, t.scene)
	t.keys = keyState{}
	return t.world.Start(t.name)
}

func (t *Term) run() {
	ticker := time.NewTicker(game.TickDuration)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- t.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			if !t.world.GameOver() {
				t.world.Step(t.keys.next())
				t.playEvents(t.world.DrainEvents())
			}
			t.draw()
		}
	}
}

// handleEvent returns false when the player quits
func (t *Term) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				if t.world.GameOver() {
					if err := t.newMatch(); err != nil {
						log.Printf("restart: %v", err)
						return false
					}
					return true
				}
			}
		}
		t.keys.press(ev)
	case *tcell.EventResize:
		t.width, t.height = t.screen.Size()
		t.screen.Sync()
	}
	return true
}

func (t *Term) playEvents(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventShot:
			t.audio.Tone(880, 30*time.Millisecond)
		case game.EventEnemyKilled:
			t.audio.Tone(660, 80*time.Millisecond)
		case game.EventPlayerHit:
			t.audio.Tone(220, 120*time.Millisecond)
		case game.EventExplosion:
			t.audio.Tone(110, 250*time.Millisecond)
		}
	}
}

func (t *Term) cleanup() {
	t.audio.Close()
	t.screen.Fini()
}

func main() {
	seed := flag.Int64("seed", 0, "Match seed (0 = random)")
	enemies := flag.Int("enemies", 5, "Enemies per match")
	name := flag.String("name", "", "Player name")
	mute := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	cfg := game.DefaultConfig()
	cfg.EnemyCount = *enemies
	if *seed != 0 {
		cfg.Seed = *seed
	}

	audio := &Audio{}
	if !*mute {
		if err := audio.Init(); err != nil {
			// Non-fatal, the game runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	t, err := NewTerm(cfg, *name, audio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arenaterm: %v\n", err)
		os.Exit(1)
	}
	t.run()
	t.cleanup()
}
