package repository

// Audit checks that every season record's wins+losses+ties equals the
// number of regular-season matchups the team played. Seasons without any
// matchups are skipped. Records are checked in season, team order and the
// first mismatch is returned.
func Audit(seasons *SeasonStore, matchups *MatchupStore) error {
	played := make(map[recordKey]int)
	scheduled := make(map[int]bool)
	for _, m := range matchups.All() {
		if m.Playoff {
			continue
		}
		scheduled[m.Season] = true
		played[recordKey{season: m.Season, team: m.HomeTeam}]++
		played[recordKey{season: m.Season, team: m.AwayTeam}]++
	}

	for _, r := range seasons.All() {
		if !scheduled[r.Season] {
			continue
		}
		if got := played[recordKey{season: r.Season, team: r.TeamName}]; got != r.Games() {
			return &RecordMismatchError{Season: r.Season, TeamName: r.TeamName, Expected: r.Games(), Actual: got}
		}
	}
	return nil
}
