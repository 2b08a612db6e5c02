package agent

import "fmt"

// Tactic names the rule that produced a move.
type Tactic int

const (
	Flee Tactic = iota
	Claim
	Reposition
	Reinforce
	Conquer
	Dump
	Defer // A conquest postponed for better timing; never sent
)

func (t Tactic) String() string {
	switch t {
	case Flee:
		return "flee"
	case Claim:
		return "claim"
	case Reposition:
		return "reposition"
	case Reinforce:
		return "reinforce"
	case Conquer:
		return "conquer"
	case Dump:
		return "dump"
	case Defer:
		return "defer"
	default:
		return fmt.Sprintf("tactic(%d)", int(t))
	}
}
