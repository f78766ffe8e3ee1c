package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"arena-server/game"
)

const (
	hudRows   = 2
	healthBar = 20
)

var (
	styleDefault   = tcell.StyleDefault
	styleWall      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEnemy     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBullet    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBomb      = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleParticle  = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleHealthOK  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHealthLow = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleOutcome   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// viewport maps grid cells to screen cells, centered on the player
type viewport struct {
	center     game.Cell
	width, top int
	height     int
}

func (v viewport) toScreen(c game.Cell) (int, int, bool) {
	x := c.X - v.center.X + v.width/2
	y := c.Z - v.center.Z + v.height/2 + v.top
	if x < 0 || x >= v.width || y < v.top || y >= v.top+v.height {
		return 0, 0, false
	}
	return x, y, true
}

func (t *Term) draw() {
	t.screen.Clear()

	grid := t.world.Grid()
	vp := viewport{
		center: grid.WorldToCell(t.world.Player.Pos),
		width:  t.width,
		top:    hudRows,
		height: t.height - hudRows,
	}

	for _, c := range grid.BlockedCells() {
		if x, y, ok := vp.toScreen(c); ok {
			t.screen.SetContent(x, y, '#', nil, styleWall)
		}
	}

	for _, p := range t.scene.proxies {
		r, style := proxyGlyph(p.kind)
		if r == 0 {
			continue
		}
		if x, y, ok := vp.toScreen(grid.WorldToCell(p.pos)); ok {
			t.screen.SetContent(x, y, r, nil, style)
		}
	}

	if x, y, ok := vp.toScreen(vp.center); ok {
		t.screen.SetContent(x, y, '@', nil, stylePlayer)
		dx, dy := facingOffset(t.world.Player.Facing())
		if fx, fy, ok := vp.toScreen(game.Cell{X: vp.center.X + dx, Z: vp.center.Z + dy}); ok {
			t.screen.SetContent(fx, fy, facingRune(dx, dy), nil, stylePlayer)
		}
	}

	t.drawHUD()

	if t.world.GameOver() {
		msg := t.world.Outcome() + "  (r: restart, q: quit)"
		t.drawText((t.width-len(msg))/2, t.height/2, msg, styleOutcome)
	}

	t.screen.Show()
}

func (t *Term) drawHUD() {
	hp, maxHP := t.world.Health(), t.world.MaxHealth()
	filled := 0
	if maxHP > 0 {
		filled = hp * healthBar / maxHP
	}
	style := styleHealthOK
	if hp*4 <= maxHP {
		style = styleHealthLow
	}

	x := t.drawText(0, 0, "HP [", styleDefault)
	for i := 0; i < healthBar; i++ {
		r := '-'
		if i < filled {
			r = '='
		}
		t.screen.SetContent(x+i, 0, r, nil, style)
	}
	x += healthBar
	stats := t.world.Stats()
	t.drawText(x, 0, fmt.Sprintf("] %d/%d  enemies %d  kills %d  shots %d",
		hp, maxHP, len(t.world.Enemies), stats.Kills, stats.ShotsFired), styleDefault)
	t.drawText(0, 1, "wasd move  left/right or ,. turn  space fire  e jump  q quit", styleWall)
}

// drawText writes s at (x, y) and returns the column after it
func (t *Term) drawText(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func proxyGlyph(kind game.ProxyKind) (rune, tcell.Style) {
	switch kind {
	case game.ProxyEnemy:
		return 'E', styleEnemy
	case game.ProxyBullet:
		return '.', styleBullet
	case game.ProxyBomb:
		return 'o', styleBomb
	case game.ProxyParticle:
		return '*', styleParticle
	}
	// obstacles are drawn from the grid
	return 0, styleDefault
}

// facingOffset snaps a view direction to the nearest grid neighbor
func facingOffset(dir game.Vec3) (int, int) {
	if math.Abs(dir.X) > math.Abs(dir.Z) {
		if dir.X > 0 {
			return 1, 0
		}
		return -1, 0
	}
	if dir.Z > 0 {
		return 0, 1
	}
	return 0, -1
}

func facingRune(dx, dy int) rune {
	switch {
	case dx > 0:
		return '>'
	case dx < 0:
		return '<'
	case dy > 0:
		return 'v'
	}
	return '^'
}
