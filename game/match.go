package game

import "fmt"

// MatchStatus is the lifecycle of a match. Won and Lost are final.
type MatchStatus int

const (
	StatusNotStarted MatchStatus = 0
	StatusRunning    MatchStatus = 1
	StatusWon        MatchStatus = 2
	StatusLost       MatchStatus = 3
)

func (s MatchStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not-started"
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Terminal reports whether the match has ended
func (s MatchStatus) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// DefaultPlayerName is used when the supplied display name is blank
const DefaultPlayerName = "Soldier"

// LossMessage is the outcome text when the player's health runs out
const LossMessage = "You got bombed! Game Over."

// WinMessage is the outcome text when the roster is cleared
func WinMessage(name string) string {
	return name + " beat the level! All enemies defeated."
}

// Stats tallies a match for the results table
type Stats struct {
	Ticks       uint64
	Kills       int
	ShotsFired  int
	DamageTaken int
}
