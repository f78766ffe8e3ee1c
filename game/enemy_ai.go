package game

import (
	bt "github.com/joeycumines/go-behaviortree"
)

// newBrain builds the per-enemy behavior tree. Navigation (seek, then
// follow) and the two attack rolls are ticked every update independently
// of each other.
func (w *World) newBrain(e *Enemy) bt.Node {
	return bt.New(
		everyChild,
		bt.New(
			bt.Sequence,
			bt.New(w.seekPath(e)),
			bt.New(w.followPath(e)),
		),
		bt.New(w.rollAttack(e, false)),
		bt.New(w.rollAttack(e, true)),
	)
}

// everyChild ticks all children in order and keeps running
func everyChild(children []bt.Node) (bt.Status, error) {
	for _, child := range children {
		if _, err := child.Tick(); err != nil {
			return bt.Failure, err
		}
	}
	return bt.Running, nil
}

func (w *World) seekPath(e *Enemy) bt.Tick {
	return func([]bt.Node) (bt.Status, error) {
		if e.NeedsPath(w.now, w.cfg.RepathInterval) {
			start := w.grid.WorldToCell(e.Pos)
			goal := w.grid.WorldToCell(w.Player.Pos)
			e.SetPath(w.grid, w.grid.FindPath(start, goal), w.now)
		}
		if !e.HasWaypoint() {
			// no route: stall until the next recompute
			e.State = EnemySeekingPath
			return bt.Failure, nil
		}
		return bt.Success, nil
	}
}

func (w *World) followPath(e *Enemy) bt.Tick {
	return func([]bt.Node) (bt.Status, error) {
		e.State = EnemyFollowingPath
		e.Advance(w.prober)
		return bt.Running, nil
	}
}

// rollAttack fires straight at the player with the configured chance,
// regardless of line of sight
func (w *World) rollAttack(e *Enemy, bomb bool) bt.Tick {
	chance := w.cfg.FireChance
	if bomb {
		chance = w.cfg.BombChance
	}
	return func([]bt.Node) (bt.Status, error) {
		if w.rng.Float64() >= chance {
			return bt.Failure, nil
		}
		w.spawnProjectile(NewEnemyShot(w.nextID("shot"), e.Pos, w.Player.Pos, bomb))
		return bt.Success, nil
	}
}
