package model

// SeasonRecord is one team's aggregate result for one season.
type SeasonRecord struct {
	Season        int
	TeamName      string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	// FinalRank and PlayoffSeed are zero when unknown.
	FinalRank   int
	PlayoffSeed int
}

// Games returns the number of decided and tied games in the record.
func (r SeasonRecord) Games() int {
	return r.Wins + r.Losses + r.Ties
}

// Champion reports whether the team finished first.
func (r SeasonRecord) Champion() bool {
	return r.FinalRank == 1
}

// Outcome is the result of a matchup from the home side's perspective.
type Outcome int

const (
	HomeWin Outcome = iota + 1
	AwayWin
	Tie
)

func (o Outcome) String() string {
	switch o {
	case HomeWin:
		return "home_win"
	case AwayWin:
		return "away_win"
	case Tie:
		return "tie"
	default:
		return "unknown"
	}
}

// OutcomeOf derives the outcome from the two scores; equal scores are a tie.
func OutcomeOf(homeScore, awayScore float64) Outcome {
	switch {
	case homeScore > awayScore:
		return HomeWin
	case awayScore > homeScore:
		return AwayWin
	default:
		return Tie
	}
}

// Matchup is a single scheduled game between two team names.
type Matchup struct {
	Season    int
	Week      int
	HomeTeam  string
	AwayTeam  string
	HomeScore float64
	AwayScore float64
	Playoff   bool
}

// Outcome returns the result computed from the scores.
func (m Matchup) Outcome() Outcome {
	return OutcomeOf(m.HomeScore, m.AwayScore)
}

// Key returns the matchup's unique key.
func (m Matchup) Key() MatchupKey {
	return MatchupKey{Season: m.Season, Week: m.Week, Home: m.HomeTeam, Away: m.AwayTeam}
}

// Involves reports whether teamName played in the matchup.
func (m Matchup) Involves(teamName string) bool {
	return m.HomeTeam == teamName || m.AwayTeam == teamName
}

// MatchupKey identifies a matchup: (season, week, home, away).
type MatchupKey struct {
	Season int
	Week   int
	Home   string
	Away   string
}

// Less orders keys by season, week, home team and away team.
func (k MatchupKey) Less(o MatchupKey) bool {
	if k.Season != o.Season {
		return k.Season < o.Season
	}
	if k.Week != o.Week {
		return k.Week < o.Week
	}
	if k.Home != o.Home {
		return k.Home < o.Home
	}
	return k.Away < o.Away
}
