package model

import "github.com/google/uuid"

// Result is a game's result from one owner's perspective.
type Result int

const (
	Loss Result = iota - 1
	Draw
	Win
)

func (r Result) String() string {
	switch r {
	case Win:
		return "W"
	case Loss:
		return "L"
	default:
		return "T"
	}
}

// GameLogEntry is a matchup rewritten with resolved owner identities.
type GameLogEntry struct {
	ID        uuid.UUID
	Season    int
	Week      int
	HomeOwner OwnerID
	AwayOwner OwnerID
	HomeTeam  string
	AwayTeam  string
	HomeScore float64
	AwayScore float64
	Outcome   Outcome
	Playoff   bool
}

// Involves reports whether owner played in the game.
func (e GameLogEntry) Involves(owner OwnerID) bool {
	return e.HomeOwner == owner || e.AwayOwner == owner
}

// Between reports whether the game was played by exactly a and b.
func (e GameLogEntry) Between(a, b OwnerID) bool {
	return (e.HomeOwner == a && e.AwayOwner == b) || (e.HomeOwner == b && e.AwayOwner == a)
}

// Side returns owner's points scored, points allowed and result.
// ok is false when owner did not play.
func (e GameLogEntry) Side(owner OwnerID) (pointsFor, pointsAgainst float64, result Result, ok bool) {
	switch owner {
	case e.HomeOwner:
		return e.HomeScore, e.AwayScore, e.resultFor(HomeWin), true
	case e.AwayOwner:
		return e.AwayScore, e.HomeScore, e.resultFor(AwayWin), true
	default:
		return 0, 0, Draw, false
	}
}

func (e GameLogEntry) resultFor(winning Outcome) Result {
	switch e.Outcome {
	case Tie:
		return Draw
	case winning:
		return Win
	default:
		return Loss
	}
}

// Opponent returns the other owner in the game.
func (e GameLogEntry) Opponent(owner OwnerID) OwnerID {
	if owner == e.HomeOwner {
		return e.AwayOwner
	}
	return e.HomeOwner
}

// OwnerSeason is a season record re-keyed to the owner who fielded the team.
type OwnerSeason struct {
	OwnerID OwnerID
	SeasonRecord
}

// HeadToHeadRecord aggregates every game between OwnerA and OwnerB.
type HeadToHeadRecord struct {
	OwnerA  OwnerID
	OwnerB  OwnerID
	WinsA   int
	WinsB   int
	Ties    int
	PointsA float64
	PointsB float64
	Games   int
}

// NewHeadToHead returns an empty record for the ordered pair (a, b).
func NewHeadToHead(a, b OwnerID) HeadToHeadRecord {
	return HeadToHeadRecord{OwnerA: a, OwnerB: b}
}

// Add accumulates e when it was played between OwnerA and OwnerB and
// reports whether it did.
func (h *HeadToHeadRecord) Add(e GameLogEntry) bool {
	if h.OwnerA == h.OwnerB || !e.Between(h.OwnerA, h.OwnerB) {
		return false
	}
	pointsA, pointsB, result, _ := e.Side(h.OwnerA)
	switch result {
	case Win:
		h.WinsA++
	case Loss:
		h.WinsB++
	default:
		h.Ties++
	}
	h.PointsA += pointsA
	h.PointsB += pointsB
	h.Games++
	return true
}

// Swap returns the same record seen from OwnerB's side.
func (h HeadToHeadRecord) Swap() HeadToHeadRecord {
	return HeadToHeadRecord{
		OwnerA:  h.OwnerB,
		OwnerB:  h.OwnerA,
		WinsA:   h.WinsB,
		WinsB:   h.WinsA,
		Ties:    h.Ties,
		PointsA: h.PointsB,
		PointsB: h.PointsA,
		Games:   h.Games,
	}
}
