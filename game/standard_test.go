package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardRulesResolve(t *testing.T) {
	neutral := &Player{Number: 0, Type: Neutral}
	allied := &Player{Number: 1, Type: Allied}
	hostile := &Player{Number: 2, Type: Hostile}
	rules := NewStandardRules()

	t.Run("lone garrison holds", func(t *testing.T) {
		got := rules.Resolve([]Army{{Player: allied, Ships: 7}}, neutral)
		require.Equal(t, Army{Player: allied, Ships: 7}, got)
	})

	t.Run("largest army keeps its surplus", func(t *testing.T) {
		got := rules.Resolve([]Army{{Player: neutral, Ships: 5}, {Player: allied, Ships: 10}}, neutral)
		require.Equal(t, Army{Player: allied, Ships: 5}, got)
	})

	t.Run("largest army pays for every other army", func(t *testing.T) {
		armies := []Army{{Player: neutral, Ships: 3}, {Player: allied, Ships: 10}, {Player: hostile, Ships: 4}}
		got := rules.Resolve(armies, neutral)
		require.Equal(t, Army{Player: allied, Ships: 3}, got)
	})

	t.Run("outnumbered winner keeps nothing", func(t *testing.T) {
		armies := []Army{{Player: neutral, Ships: 5}, {Player: allied, Ships: 6}, {Player: hostile, Ships: 4}}
		got := rules.Resolve(armies, neutral)
		require.Equal(t, Army{Player: allied, Ships: 0}, got)
	})

	t.Run("invalid input panics", func(t *testing.T) {
		require.Panics(t, func() { rules.Resolve(nil, neutral) })
		require.Panics(t, func() { rules.Resolve([]Army{{Player: allied, Ships: -1}, {Player: hostile, Ships: 1}}, neutral) })
	})
}

func TestStandardRulesTieBreak(t *testing.T) {
	neutral := &Player{Number: 0, Type: Neutral}
	allied := &Player{Number: 1, Type: Allied}
	hostile := &Player{Number: 2, Type: Hostile}
	armies := []Army{{Player: allied, Ships: 6}, {Player: hostile, Ships: 6}}

	t.Run("first listed", func(t *testing.T) {
		rules := &StandardRules{Tie: TieFirstListed}
		got := rules.Resolve(armies, neutral)
		require.Same(t, allied, got.Player, "The garrison is listed first and should hold")
		require.Equal(t, 0, got.Ships)

		swapped := []Army{armies[1], armies[0]}
		require.Same(t, hostile, rules.Resolve(swapped, neutral).Player)
	})

	t.Run("neutral", func(t *testing.T) {
		rules := &StandardRules{Tie: TieNeutral}
		got := rules.Resolve(armies, neutral)
		require.Equal(t, Army{Player: neutral, Ships: 0}, got)

		empty := []Army{{Player: allied, Ships: 0}, {Player: hostile, Ships: 0}}
		require.Same(t, allied, rules.Resolve(empty, neutral).Player, "Two empty armies are not a fight")
	})

	t.Run("no tie between the two largest", func(t *testing.T) {
		three := []Army{{Player: neutral, Ships: 2}, {Player: allied, Ships: 2}, {Player: hostile, Ships: 9}}
		rules := &StandardRules{Tie: TieNeutral}
		require.Equal(t, Army{Player: hostile, Ships: 5}, rules.Resolve(three, neutral))
	})
}

func TestSortArmies(t *testing.T) {
	a := &Player{Number: 1}
	b := &Player{Number: 2}
	c := &Player{Number: 3}
	armies := []Army{{Player: a, Ships: 1}, {Player: b, Ships: 5}, {Player: c, Ships: 1}}

	sorted := SortArmies(armies)

	require.Equal(t, []Army{{Player: b, Ships: 5}, {Player: a, Ships: 1}, {Player: c, Ships: 1}}, sorted)
	require.Same(t, a, armies[0].Player, "Input should not be reordered")
}
