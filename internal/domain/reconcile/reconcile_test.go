package reconcile_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/billyessing/nfl-fantasy/internal/adapters/repository"
	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/internal/domain/reconcile"
	"github.com/billyessing/nfl-fantasy/internal/domain/registry"
	. "github.com/smartystreets/goconvey/convey"
)

func mustRegistry(rows ...model.MappingRow) *registry.Registry {
	r, err := registry.FromMapping(rows)
	if err != nil {
		panic(err)
	}
	return r
}

func leagueRegistry() *registry.Registry {
	return mustRegistry(
		model.MappingRow{Season: 2019, TeamName: "AlphaPack", OwnerID: "alice", DisplayName: "Alice"},
		model.MappingRow{Season: 2020, TeamName: "AlphaForce", OwnerID: "alice", DisplayName: "Alice"},
		model.MappingRow{Season: 2019, TeamName: "BetaCrew", OwnerID: "bob", DisplayName: "Bob"},
		model.MappingRow{Season: 2020, TeamName: "BetaCrew", OwnerID: "bob", DisplayName: "Bob"},
		model.MappingRow{Season: 2021, TeamName: "BetaCrew", OwnerID: "bob", DisplayName: "Bob"},
	)
}

func leagueMatchups() *repository.MatchupStore {
	s := repository.NewMatchupStore()
	for _, m := range []model.Matchup{
		{Season: 2020, Week: 2, HomeTeam: "BetaCrew", AwayTeam: "AlphaForce", HomeScore: 100, AwayScore: 120},
		{Season: 2019, Week: 5, HomeTeam: "AlphaPack", AwayTeam: "BetaCrew", HomeScore: 95, AwayScore: 80},
		{Season: 2019, Week: 1, HomeTeam: "AlphaPack", AwayTeam: "BetaCrew", HomeScore: 110, AwayScore: 90},
		{Season: 2020, Week: 15, HomeTeam: "AlphaForce", AwayTeam: "BetaCrew", HomeScore: 88, AwayScore: 88, Playoff: true},
	} {
		if err := s.Insert(m); err != nil {
			panic(err)
		}
	}
	return s
}

// sliceSource lists matchups in the order given.
type sliceSource []model.Matchup

func (s sliceSource) All() []model.Matchup { return s }

func TestBuildGameLog(t *testing.T) {
	Convey("Given matchups across a rename", t, func() {
		reg := leagueRegistry()
		store := leagueMatchups()

		Convey("When building the game log", func() {
			entries, err := reconcile.BuildGameLog(store, reg)

			Convey("Then every matchup should yield one owner-tagged entry in season, week order", func() {
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, store.Len())
				So(entries[0].Season, ShouldEqual, 2019)
				So(entries[0].Week, ShouldEqual, 1)
				So(entries[1].Week, ShouldEqual, 5)
				So(entries[2].Season, ShouldEqual, 2020)
				So(entries[3].Week, ShouldEqual, 15)
				for _, e := range entries {
					So(e.Involves("alice"), ShouldBeTrue)
					So(e.Involves("bob"), ShouldBeTrue)
				}
			})

			Convey("Then team names, scores and flags should be preserved", func() {
				e := entries[2]
				So(e.HomeOwner, ShouldEqual, model.OwnerID("bob"))
				So(e.AwayOwner, ShouldEqual, model.OwnerID("alice"))
				So(e.AwayTeam, ShouldEqual, "AlphaForce")
				So(e.AwayScore, ShouldEqual, 120)
				So(e.Outcome, ShouldEqual, model.AwayWin)
				So(entries[3].Outcome, ShouldEqual, model.Tie)
				So(entries[3].Playoff, ShouldBeTrue)
			})

			Convey("Then entry IDs should derive from the matchup key", func() {
				key := model.MatchupKey{Season: 2019, Week: 1, Home: "AlphaPack", Away: "BetaCrew"}
				So(entries[0].ID, ShouldEqual, reconcile.EntryID(key))
				So(entries[0].ID, ShouldNotEqual, entries[1].ID)
			})
		})

		Convey("When building twice from differently ordered input", func() {
			first, err1 := reconcile.BuildGameLog(store, reg)
			all := store.All()
			reversed := make(sliceSource, 0, len(all))
			for i := len(all) - 1; i >= 0; i-- {
				reversed = append(reversed, all[i])
			}
			second, err2 := reconcile.BuildGameLog(reversed, reg)

			Convey("Then the output should be byte-identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(render(first), ShouldResemble, render(second))
			})
		})
	})
}

func TestBuildGameLogFailures(t *testing.T) {
	Convey("Given a 2021 matchup against an unmapped team", t, func() {
		reg := leagueRegistry()
		store := repository.NewMatchupStore()
		So(store.Insert(model.Matchup{Season: 2021, Week: 3, HomeTeam: "BetaCrew", AwayTeam: "Gamma99", HomeScore: 101, AwayScore: 99}), ShouldBeNil)

		Convey("When building the game log", func() {
			entries, err := reconcile.BuildGameLog(store, reg)

			Convey("Then it should fail identifying the season, week and team", func() {
				So(entries, ShouldBeNil)
				So(errors.Is(err, reconcile.ErrUnresolvedMatchup), ShouldBeTrue)
				So(errors.Is(err, registry.ErrUnmappedTeam), ShouldBeTrue)

				var unresolved *reconcile.UnresolvedMatchupError
				So(errors.As(err, &unresolved), ShouldBeTrue)
				So(unresolved.Season, ShouldEqual, 2021)
				So(unresolved.Week, ShouldEqual, 3)
				So(unresolved.TeamName, ShouldEqual, "Gamma99")
				So(err.Error(), ShouldContainSubstring, "Gamma99")
			})
		})
	})

	Convey("Given two team names mapped to one owner in the same season", t, func() {
		resolver := resolverFunc(func(int, string) (model.OwnerID, error) { return "alice", nil })
		src := sliceSource{{Season: 2020, Week: 1, HomeTeam: "AlphaForce", AwayTeam: "AlphaForce B", HomeScore: 1, AwayScore: 2}}

		Convey("When building the game log", func() {
			_, err := reconcile.BuildGameLog(src, resolver)

			Convey("Then it should fail with a self-match cause", func() {
				So(errors.Is(err, reconcile.ErrUnresolvedMatchup), ShouldBeTrue)
				So(errors.Is(err, reconcile.ErrSelfMatch), ShouldBeTrue)
			})
		})
	})
}

func TestResolveSeasons(t *testing.T) {
	Convey("Given season records across a rename", t, func() {
		reg := leagueRegistry()
		seasons := repository.NewSeasonStore()
		So(seasons.InsertAll([]model.SeasonRecord{
			{Season: 2019, TeamName: "AlphaPack", Wins: 9, Losses: 4, PointsFor: 1500.5, PointsAgainst: 1400},
			{Season: 2020, TeamName: "AlphaForce", Wins: 10, Losses: 3, PointsFor: 1600, PointsAgainst: 1380.25},
		}), ShouldBeNil)

		Convey("When resolving them", func() {
			out, err := reconcile.ResolveSeasons(seasons, reg)

			Convey("Then both should belong to the same owner", func() {
				So(err, ShouldBeNil)
				So(len(out), ShouldEqual, 2)
				So(out[0].OwnerID, ShouldEqual, model.OwnerID("alice"))
				So(out[1].OwnerID, ShouldEqual, model.OwnerID("alice"))
				So(out[1].TeamName, ShouldEqual, "AlphaForce")
			})
		})

		Convey("When a record is unmapped", func() {
			So(seasons.Insert(model.SeasonRecord{Season: 2021, TeamName: "Gamma99"}), ShouldBeNil)
			_, err := reconcile.ResolveSeasons(seasons, reg)

			Convey("Then it should fail with UnmappedTeamError", func() {
				var unmapped *registry.UnmappedTeamError
				So(errors.As(err, &unmapped), ShouldBeTrue)
				So(unmapped.TeamName, ShouldEqual, "Gamma99")
			})
		})
	})
}

type resolverFunc func(int, string) (model.OwnerID, error)

func (f resolverFunc) Resolve(season int, team string) (model.OwnerID, error) { return f(season, team) }

func render(entries []model.GameLogEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%s|%d|%d|%s|%s|%g|%g|%s|%t\n",
			e.ID, e.Season, e.Week, e.HomeOwner, e.AwayOwner, e.HomeScore, e.AwayScore, e.Outcome, e.Playoff)
	}
	return buf.Bytes()
}
