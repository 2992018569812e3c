// Package types contains the result rows handed to storage and the HTTP API.
package types

import "github.com/billyessing/nfl-fantasy/internal/domain/model"

// StandingsRow is one owner's all-time record.
type StandingsRow struct {
	Rank          int           `json:"rank"`
	OwnerID       model.OwnerID `json:"owner_id"`
	DisplayName   string        `json:"display_name"`
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	Ties          int           `json:"ties"`
	Games         int           `json:"games"`
	WinPct        float64       `json:"win_pct"`
	PointsFor     float64       `json:"points_for"`
	PointsAgainst float64       `json:"points_against"`
	JoinSeason    int           `json:"join_season"`
}

// HeadToHeadRow is one ordered cell of the head-to-head matrix.
type HeadToHeadRow struct {
	OwnerA  model.OwnerID `json:"owner_a"`
	OwnerB  model.OwnerID `json:"owner_b"`
	WinsA   int           `json:"wins_a"`
	WinsB   int           `json:"wins_b"`
	Ties    int           `json:"ties"`
	PointsA float64       `json:"points_a"`
	PointsB float64       `json:"points_b"`
	Games   int           `json:"games"`
}

// NewHeadToHeadRow converts a head-to-head record.
func NewHeadToHeadRow(h model.HeadToHeadRecord) HeadToHeadRow {
	return HeadToHeadRow{
		OwnerA:  h.OwnerA,
		OwnerB:  h.OwnerB,
		WinsA:   h.WinsA,
		WinsB:   h.WinsB,
		Ties:    h.Ties,
		PointsA: h.PointsA,
		PointsB: h.PointsB,
		Games:   h.Games,
	}
}

// TrendPoint is one season of an owner's points trend.
type TrendPoint struct {
	Season        int     `json:"season"`
	TeamName      string  `json:"team_name"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// RivalryRow describes how competitive a pairing has been.
type RivalryRow struct {
	OwnerA          model.OwnerID `json:"owner_a"`
	OwnerB          model.OwnerID `json:"owner_b"`
	Games           int           `json:"games"`
	WinsA           int           `json:"wins_a"`
	WinsB           int           `json:"wins_b"`
	Ties            int           `json:"ties"`
	Score           float64       `json:"rivalry_score"`
	AvgDifferential float64       `json:"avg_point_differential"`
	// Leader is empty when the series is level.
	Leader model.OwnerID `json:"series_leader,omitempty"`
}

// PointsLeaderRow ranks owners by points scored.
type PointsLeaderRow struct {
	Rank          int           `json:"rank"`
	OwnerID       model.OwnerID `json:"owner_id"`
	DisplayName   string        `json:"display_name"`
	Games         int           `json:"games"`
	TotalPoints   float64       `json:"total_points"`
	AveragePoints float64       `json:"average_points"`
	HighestGame   float64       `json:"highest_game"`
}

// ChampionshipRow names a season's champion.
type ChampionshipRow struct {
	Season      int           `json:"season"`
	OwnerID     model.OwnerID `json:"owner_id"`
	DisplayName string        `json:"display_name"`
	TeamName    string        `json:"team_name"`
}

// PlayoffRow summarizes an owner's playoff games.
type PlayoffRow struct {
	OwnerID       model.OwnerID `json:"owner_id"`
	DisplayName   string        `json:"display_name"`
	Appearances   int           `json:"appearances"`
	Games         int           `json:"games"`
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	Ties          int           `json:"ties"`
	WinPct        float64       `json:"win_pct"`
	AveragePoints float64       `json:"average_points"`
	Championships int           `json:"championships"`
}

// StreakRow holds an owner's longest and current streaks.
type StreakRow struct {
	OwnerID     model.OwnerID `json:"owner_id"`
	LongestWin  int           `json:"longest_win_streak"`
	LongestLoss int           `json:"longest_loss_streak"`
	// Current is "W", "L" or "T"; CurrentLength counts consecutive games of that result.
	Current       string `json:"current"`
	CurrentLength int    `json:"current_length"`
}

// ParityRow measures how evenly matched a season was.
type ParityRow struct {
	Season      int     `json:"season"`
	Teams       int     `json:"teams"`
	StdDev      float64 `json:"win_pct_std_dev"`
	Range       float64 `json:"win_pct_range"`
	Gini        float64 `json:"gini"`
	ParityIndex float64 `json:"parity_index"`
}

// BadBeatRow is a loss despite a score well above the season average.
type BadBeatRow struct {
	Season        int           `json:"season"`
	Week          int           `json:"week"`
	OwnerID       model.OwnerID `json:"owner_id"`
	TeamName      string        `json:"team_name"`
	Score         float64       `json:"score"`
	Opponent      model.OwnerID `json:"opponent"`
	OpponentScore float64       `json:"opponent_score"`
	Margin        float64       `json:"margin"`
	SeasonAverage float64       `json:"season_average"`
	AboveAverage  float64       `json:"above_average"`
	Playoff       bool          `json:"playoff"`
}

// KryptoniteRow is a one-sided series seen from the dominating owner.
type KryptoniteRow struct {
	Dominator model.OwnerID `json:"dominator"`
	Victim    model.OwnerID `json:"victim"`
	Wins      int           `json:"wins"`
	Losses    int           `json:"losses"`
	Ties      int           `json:"ties"`
	Games     int           `json:"games"`
	WinPct    float64       `json:"win_pct"`
	// Level is "kryptonite" at 90% or more, else "heavy_favorite".
	Level string `json:"level"`
}

// SummaryRow is the league at a glance.
type SummaryRow struct {
	Owners             int           `json:"owners"`
	Seasons            int           `json:"seasons"`
	FirstSeason        int           `json:"first_season"`
	LastSeason         int           `json:"last_season"`
	Games              int           `json:"games"`
	HighestScore       float64       `json:"highest_score"`
	LowestScore        float64       `json:"lowest_score"`
	AverageScore       float64       `json:"average_score"`
	ChampionshipLeader model.OwnerID `json:"championship_leader,omitempty"`
	LeaderTitles       int           `json:"leader_titles"`
}

// OwnerRow is the public view of an owner.
type OwnerRow struct {
	OwnerID     model.OwnerID `json:"owner_id"`
	DisplayName string        `json:"display_name"`
	JoinSeason  int           `json:"join_season"`
	LeaveSeason int           `json:"leave_season,omitempty"`
	Teams       []TeamRow     `json:"teams"`
}

// TeamRow is one season's team name.
type TeamRow struct {
	Season   int    `json:"season"`
	TeamName string `json:"team_name"`
}

// NewOwnerRow converts a registry owner.
func NewOwnerRow(o model.Owner) OwnerRow {
	teams := make([]TeamRow, len(o.Teams))
	for i, t := range o.Teams {
		teams[i] = TeamRow{Season: t.Season, TeamName: t.TeamName}
	}
	return OwnerRow{
		OwnerID:     o.ID,
		DisplayName: o.DisplayName,
		JoinSeason:  o.JoinSeason,
		LeaveSeason: o.LeaveSeason,
		Teams:       teams,
	}
}

// OwnerTrendRow is one point of the points trend table.
type OwnerTrendRow struct {
	OwnerID model.OwnerID `json:"owner_id"`
	TrendPoint
}

// Scope narrows a query to an era and optionally to regular-season games.
// Zero bounds are open.
type Scope struct {
	From          int
	To            int
	RegularSeason bool
}

// IsZero reports whether the scope covers the whole history.
func (s Scope) IsZero() bool {
	return s == Scope{}
}

// Tables bundles every result table written by the exporters.
type Tables struct {
	Owners        []OwnerRow
	GameLog       []model.GameLogEntry
	Standings     []StandingsRow
	HeadToHead    []HeadToHeadRow
	Rivalries     []RivalryRow
	Trends        []OwnerTrendRow
	PointsLeaders []PointsLeaderRow
	Championships []ChampionshipRow
	Playoffs      []PlayoffRow
	Parity        []ParityRow
	BadBeats      []BadBeatRow
	Kryptonite    []KryptoniteRow
	Summary       SummaryRow
}
