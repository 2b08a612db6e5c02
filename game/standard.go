package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// StandardRules is the planetwars combat resolution: the largest army wins
// and keeps its ships minus the sum of every other army, never below zero.
type StandardRules struct {
	Tie TieBreak
}

func NewStandardRules() *StandardRules {
	return &StandardRules{Tie: TieFirstListed}
}

func (sr *StandardRules) Resolve(armies []Army, neutral *Player) Army {
	if len(armies) == 0 {
		panic("cannot resolve combat without armies")
	}
	total := 0
	for _, a := range armies {
		if a.Ships < 0 {
			panic(fmt.Sprintf("army of %v has negative ships %d", a.Player, a.Ships))
		}
		total += a.Ships
	}
	if len(armies) == 1 {
		return armies[0]
	}

	ranked := SortArmies(armies)
	winner := ranked[0]
	if ranked[1].Ships == winner.Ships && sr.Tie == TieNeutral && winner.Ships > 0 {
		return Army{Player: neutral, Ships: 0}
	}
	return Army{Player: winner.Player, Ships: max(0, winner.Ships-(total-winner.Ships))}
}

// SortArmies returns the armies by descending size; equal armies keep their
// listing order.
func SortArmies(armies []Army) []Army {
	ranked := slices.Clone(armies)
	slices.SortStableFunc(ranked, func(a, b Army) int {
		return b.Ships - a.Ships
	})
	return ranked
}
