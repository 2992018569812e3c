// Package model contains domain models passed between layers.
package model

// OwnerID is the stable identity of a league participant across seasons.
type OwnerID string

// TeamSeason is one team name an owner used in one season.
type TeamSeason struct {
	Season   int
	TeamName string
}

// Owner is a league participant independent of any season's team name.
type Owner struct {
	ID          OwnerID
	DisplayName string
	// Teams is ordered by season ascending, one entry per season played.
	Teams      []TeamSeason
	JoinSeason int
	// LeaveSeason is the last season played by an owner who is no longer in
	// the league, zero while the owner is active.
	LeaveSeason int
}

// Active reports whether the owner fielded a team in season.
func (o Owner) Active(season int) bool {
	_, ok := o.TeamIn(season)
	return ok
}

// TeamIn returns the team name the owner used in season.
func (o Owner) TeamIn(season int) (string, bool) {
	for _, ts := range o.Teams {
		if ts.Season == season {
			return ts.TeamName, true
		}
	}
	return "", false
}

// MappingRow is one curated (season, team name) -> owner assignment.
type MappingRow struct {
	Season      int
	TeamName    string
	OwnerID     OwnerID
	DisplayName string
}
