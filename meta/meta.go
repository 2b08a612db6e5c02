// meta/meta.go
package meta

// MinMovePart is the minimum part of the available ships sent by each move
// outside the early game.
const MinMovePart = 1.0 / 2

// DumpMovePart is the part of the garrison dumped on a target.
const DumpMovePart = 1.0

// DumpDistMult bounds how far, in multiples of the shortest link, a hostile
// dump target may be.
const DumpDistMult = 3

// TurnLimit is how many turns a game lasts; reaching it is a draw.
const TurnLimit = 500

// ShipWeight is the cost of one ship relative to one turn when scoring moves.
const ShipWeight = 2.0

// PressureDecay is applied to global pressure for every link it crosses.
const PressureDecay = 1.0 / 2

// EarlyNeutralShare is the share of neutral planets above which the game is early.
const EarlyNeutralShare = 0.5

// LateTurn is the turn from which the game is late.
const LateTurn = TurnLimit / 2

// GrowthScoreWeight is the weight of the growth score in the standing; the
// ship score takes the rest.
const GrowthScoreWeight = 0.5

// Standing thresholds between -1 and 1 for the win status.
const (
	WinningHardStanding = 0.5
	WinningStanding     = 0.15
	LosingStanding      = -0.15
	LosingHardStanding  = -0.5
)
