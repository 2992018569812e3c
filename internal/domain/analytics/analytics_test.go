package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/billyessing/nfl-fantasy/internal/domain/analytics"
	"github.com/billyessing/nfl-fantasy/internal/domain/model"
	"github.com/billyessing/nfl-fantasy/internal/domain/types"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func game(season, week int, home, away model.OwnerID, hs, as float64) model.GameLogEntry {
	return model.GameLogEntry{
		Season: season, Week: week,
		HomeOwner: home, AwayOwner: away,
		HomeTeam: string(home) + "-team", AwayTeam: string(away) + "-team",
		HomeScore: hs, AwayScore: as,
		Outcome: model.OutcomeOf(hs, as),
	}
}

func playoff(g model.GameLogEntry) model.GameLogEntry {
	g.Playoff = true
	return g
}

func owner(id model.OwnerID, join int) model.Owner {
	return model.Owner{ID: id, DisplayName: string(id), JoinSeason: join}
}

// aliceBobEngine: Alice (AlphaPack 2017-2019, AlphaForce 2020) beat Bob three times.
func aliceBobEngine() *analytics.Engine {
	games := []model.GameLogEntry{
		game(2020, 2, "bob", "alice", 100, 120),
		game(2018, 4, "alice", "bob", 110, 90),
		game(2019, 7, "bob", "alice", 80, 95),
	}
	seasons := []model.OwnerSeason{
		{OwnerID: "alice", SeasonRecord: model.SeasonRecord{Season: 2020, TeamName: "AlphaForce", PointsFor: 1600, PointsAgainst: 1400, FinalRank: 1}},
		{OwnerID: "alice", SeasonRecord: model.SeasonRecord{Season: 2018, TeamName: "AlphaPack", PointsFor: 1500, PointsAgainst: 1450}},
		{OwnerID: "bob", SeasonRecord: model.SeasonRecord{Season: 2018, TeamName: "BetaCrew", PointsFor: 1300, PointsAgainst: 1500, FinalRank: 1}},
		{OwnerID: "alice", SeasonRecord: model.SeasonRecord{Season: 2019, TeamName: "AlphaPack", PointsFor: 1550, PointsAgainst: 1350, FinalRank: 1}},
	}
	owners := []model.Owner{owner("alice", 2017), owner("bob", 2017), owner("carol", 2021)}
	return analytics.New(logger.Nop(), games, seasons, owners, analytics.WithWorkers(2))
}

func TestHeadToHead(t *testing.T) {
	Convey("Given Alice beat Bob 110-90, 95-80 and 120-100", t, func() {
		e := aliceBobEngine()

		Convey("When computing head_to_head(Alice, Bob)", func() {
			h, err := e.HeadToHead("alice", "bob")

			Convey("Then every game should be counted exactly once", func() {
				So(err, ShouldBeNil)
				So(h.WinsA, ShouldEqual, 3)
				So(h.WinsB, ShouldEqual, 0)
				So(h.Ties, ShouldEqual, 0)
				So(h.Games, ShouldEqual, 3)
				So(h.PointsA, ShouldEqual, 325)
				So(h.PointsB, ShouldEqual, 270)
			})

			Convey("Then the rivalry score should be 0", func() {
				score, err := e.RivalryScore("alice", "bob")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 0.0)
			})
		})

		Convey("When asking from Bob's side", func() {
			ab, _ := e.HeadToHead("alice", "bob")
			ba, err := e.HeadToHead("bob", "alice")

			Convey("Then the record should be the role-swapped mirror", func() {
				So(err, ShouldBeNil)
				So(ba, ShouldResemble, ab.Swap())
				So(ba.WinsA+ba.WinsB+ba.Ties, ShouldEqual, ba.Games)
				r1, _ := e.RivalryScore("alice", "bob")
				r2, _ := e.RivalryScore("bob", "alice")
				So(r1, ShouldEqual, r2)
			})
		})

		Convey("When the owners never met", func() {
			_, err := e.HeadToHead("alice", "carol")
			_, rivalryErr := e.RivalryScore("carol", "alice")

			Convey("Then it should fail with NoHistoryError", func() {
				So(errors.Is(err, analytics.ErrNoHistory), ShouldBeTrue)
				var nh *analytics.NoHistoryError
				So(errors.As(err, &nh), ShouldBeTrue)
				So(nh.OwnerB, ShouldEqual, model.OwnerID("carol"))
				So(errors.Is(rivalryErr, analytics.ErrNoHistory), ShouldBeTrue)
			})
		})

		Convey("When both owners are the same", func() {
			_, err := e.HeadToHead("alice", "alice")

			Convey("Then there is no history", func() {
				So(errors.Is(err, analytics.ErrNoHistory), ShouldBeTrue)
			})
		})
	})
}

func TestRivalryScore(t *testing.T) {
	Convey("Given an even series", t, func() {
		games := []model.GameLogEntry{
			game(2020, 1, "a", "b", 100, 90),
			game(2020, 8, "b", "a", 100, 90),
			game(2021, 3, "a", "b", 77, 77),
		}
		e := analytics.New(logger.Nop(), games, nil, []model.Owner{owner("a", 2020), owner("b", 2020)})

		Convey("Then the score should be 1", func() {
			score, err := e.RivalryScore("a", "b")
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 1.0)
		})

		Convey("Then the rivalries table should list the pair without a leader", func() {
			rows := e.Rivalries(3)
			So(len(rows), ShouldEqual, 1)
			So(rows[0].Score, ShouldEqual, 1.0)
			So(rows[0].Leader, ShouldEqual, model.OwnerID(""))
			So(rows[0].AvgDifferential, ShouldEqual, 0)
			So(e.Rivalries(4), ShouldBeEmpty)
		})

		Convey("Then a single rivalry should be seen from the first owner", func() {
			row, err := e.Rivalry("b", "a")
			So(err, ShouldBeNil)
			So(row.OwnerA, ShouldEqual, model.OwnerID("b"))
			So(row.Games, ShouldEqual, 3)

			_, err = e.Rivalry("a", "a")
			So(errors.Is(err, analytics.ErrNoHistory), ShouldBeTrue)
		})
	})
}

func TestOverallStandings(t *testing.T) {
	Convey("Given owners level on win percentage", t, func() {
		games := []model.GameLogEntry{
			game(2018, 1, "p", "q", 100, 90),
			game(2018, 2, "q", "p", 100, 90),
			game(2018, 1, "r", "s", 120, 80),
			game(2018, 2, "s", "r", 120, 110),
			game(2018, 3, "t", "u", 95, 95),
			game(2018, 3, "v", "w", 130, 60),
		}
		owners := []model.Owner{
			owner("p", 2018), owner("q", 2017), owner("r", 2017), owner("s", 2017),
			owner("t", 2017), owner("u", 2017), owner("v", 2018), owner("w", 2018),
			owner("idle", 2016),
		}
		e := analytics.New(logger.Nop(), games, nil, owners)

		Convey("When computing overall standings", func() {
			rows := e.OverallStandings()
			ids := make([]model.OwnerID, len(rows))
			for i, r := range rows {
				ids[i] = r.OwnerID
			}

			Convey("Then ties should break on points-for, join season, then owner id", func() {
				So(ids, ShouldResemble, []model.OwnerID{"v", "r", "s", "q", "p", "t", "u", "w"})
			})

			Convey("Then ties should count half a win", func() {
				tied := rows[5]
				So(tied.Ties, ShouldEqual, 1)
				So(tied.WinPct, ShouldEqual, 0.5)
				So(rows[0].WinPct, ShouldEqual, 1.0)
				So(rows[7].WinPct, ShouldEqual, 0.0)
			})

			Convey("Then ranks should be consecutive and win_pct non-increasing", func() {
				for i, r := range rows {
					So(r.Rank, ShouldEqual, i+1)
					So(r.Games, ShouldEqual, r.Wins+r.Losses+r.Ties)
					if i > 0 {
						So(r.WinPct, ShouldBeLessThanOrEqualTo, rows[i-1].WinPct)
					}
				}
			})

			Convey("Then owners without games should be left out", func() {
				So(ids, ShouldNotContain, model.OwnerID("idle"))
			})
		})

		Convey("When computing them twice", func() {
			So(e.OverallStandings(), ShouldResemble, e.OverallStandings())
		})
	})
}

func TestPointsTrend(t *testing.T) {
	Convey("Given season records filed under two team names", t, func() {
		e := aliceBobEngine()

		Convey("When iterating Alice's trend", func() {
			var first, second []types.TrendPoint
			trend := e.PointsTrend("alice")
			for p := range trend {
				first = append(first, p)
			}
			for p := range trend {
				second = append(second, p)
			}

			Convey("Then it should be season ordered across renames", func() {
				So(len(first), ShouldEqual, 3)
				So(first[0].Season, ShouldEqual, 2018)
				So(first[2].Season, ShouldEqual, 2020)
				So(first[2].TeamName, ShouldEqual, "AlphaForce")
				So(first[2].PointsFor, ShouldEqual, 1600)
			})

			Convey("Then re-iterating should yield the same sequence", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When stopping early", func() {
			n := 0
			for range e.PointsTrend("alice") {
				n++
				break
			}
			So(n, ShouldEqual, 1)
		})
	})
}

func TestHeadToHeadMatrix(t *testing.T) {
	Convey("Given a three-owner league", t, func() {
		games := []model.GameLogEntry{
			game(2019, 1, "a", "b", 100, 90),
			game(2019, 2, "b", "c", 100, 90),
			game(2019, 3, "c", "a", 100, 90),
			game(2019, 4, "a", "b", 80, 85),
		}
		e := analytics.New(logger.Nop(), games, nil, []model.Owner{owner("a", 2019), owner("b", 2019), owner("c", 2019)}, analytics.WithWorkers(2))

		Convey("When computing the matrix", func() {
			m, err := e.HeadToHeadMatrix(context.Background())

			Convey("Then both orientations of every pair should be present in order", func() {
				So(err, ShouldBeNil)
				So(len(m), ShouldEqual, 6)
				So(m[0].OwnerA, ShouldEqual, model.OwnerID("a"))
				So(m[0].OwnerB, ShouldEqual, model.OwnerID("b"))
				So(m[0].Games, ShouldEqual, 2)
				So(m[0].WinsA, ShouldEqual, 1)
				So(m[2].OwnerA, ShouldEqual, model.OwnerID("b"))
				So(m[2].OwnerB, ShouldEqual, model.OwnerID("a"))
			})

			Convey("Then every cell should match HeadToHead", func() {
				for _, cell := range m {
					h, err := e.HeadToHead(cell.OwnerA, cell.OwnerB)
					So(err, ShouldBeNil)
					So(cell, ShouldResemble, h)
				}
			})
		})

		Convey("When the context is already canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			m, err := e.HeadToHeadMatrix(ctx)

			Convey("Then it should stop with the context error", func() {
				So(m, ShouldBeNil)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestSeasonAnalytics(t *testing.T) {
	Convey("Given the Alice and Bob history", t, func() {
		e := aliceBobEngine()

		Convey("Then championships should list rank-1 finishes by season", func() {
			c := e.Championships()
			So(len(c), ShouldEqual, 3)
			So(c[0].Season, ShouldEqual, 2018)
			So(c[0].OwnerID, ShouldEqual, model.OwnerID("bob"))
			So(c[2].TeamName, ShouldEqual, "AlphaForce")
		})

		Convey("Then the summary should count the league", func() {
			s := e.Summary()
			So(s.Owners, ShouldEqual, 3)
			So(s.Games, ShouldEqual, 3)
			So(s.Seasons, ShouldEqual, 3)
			So(s.FirstSeason, ShouldEqual, 2018)
			So(s.LastSeason, ShouldEqual, 2020)
			So(s.HighestScore, ShouldEqual, 120)
			So(s.LowestScore, ShouldEqual, 80)
			So(s.AverageScore, ShouldAlmostEqual, 595.0/6)
			So(s.ChampionshipLeader, ShouldEqual, model.OwnerID("alice"))
			So(s.LeaderTitles, ShouldEqual, 2)
		})

		Convey("Then points leaders should rank by total points", func() {
			rows := e.PointsLeaders(0)
			So(len(rows), ShouldEqual, 2)
			So(rows[0].OwnerID, ShouldEqual, model.OwnerID("alice"))
			So(rows[0].TotalPoints, ShouldEqual, 325)
			So(rows[0].HighestGame, ShouldEqual, 120)
			So(rows[1].AveragePoints, ShouldEqual, 90)

			only2019 := e.PointsLeaders(2019)
			So(only2019[0].Games, ShouldEqual, 1)
			So(only2019[0].TotalPoints, ShouldEqual, 95)
		})

		Convey("Then an era should only see its seasons", func() {
			h, err := e.Era(2020, 2020).HeadToHead("alice", "bob")
			So(err, ShouldBeNil)
			So(h.Games, ShouldEqual, 1)
			So(h.PointsA, ShouldEqual, 120)

			_, err = e.Era(2021, 2025).HeadToHead("alice", "bob")
			So(errors.Is(err, analytics.ErrNoHistory), ShouldBeTrue)
		})
	})
}

func TestPlayoffsAndStreaks(t *testing.T) {
	Convey("Given regular-season and playoff games", t, func() {
		games := []model.GameLogEntry{
			game(2019, 1, "a", "b", 100, 90),
			game(2019, 2, "a", "c", 100, 90),
			game(2019, 3, "b", "a", 100, 90),
			game(2019, 4, "a", "c", 88, 88),
			playoff(game(2019, 14, "a", "b", 120, 110)),
			playoff(game(2019, 15, "a", "c", 101, 99)),
			playoff(game(2020, 14, "b", "a", 130, 90)),
		}
		seasons := []model.OwnerSeason{
			{OwnerID: "a", SeasonRecord: model.SeasonRecord{Season: 2019, TeamName: "A", FinalRank: 1}},
			{OwnerID: "b", SeasonRecord: model.SeasonRecord{Season: 2020, TeamName: "B", FinalRank: 1}},
		}
		e := analytics.New(logger.Nop(), games, seasons, []model.Owner{owner("a", 2019), owner("b", 2019), owner("c", 2019)})

		Convey("When summarizing playoffs", func() {
			rows := e.PlayoffPerformance()

			Convey("Then only playoff games should count", func() {
				So(len(rows), ShouldEqual, 3)
				a := rows[0]
				So(a.OwnerID, ShouldEqual, model.OwnerID("a"))
				So(a.Games, ShouldEqual, 3)
				So(a.Wins, ShouldEqual, 2)
				So(a.Losses, ShouldEqual, 1)
				So(a.Appearances, ShouldEqual, 2)
				So(a.Championships, ShouldEqual, 1)
				So(a.AveragePoints, ShouldAlmostEqual, (120.0+101+90)/3)
			})
		})

		Convey("When computing a's streaks", func() {
			s := e.Streaks("a")

			Convey("Then ties should end a run", func() {
				// W W L T W W L
				So(s.LongestWin, ShouldEqual, 2)
				So(s.LongestLoss, ShouldEqual, 1)
				So(s.Current, ShouldEqual, "L")
				So(s.CurrentLength, ShouldEqual, 1)
			})
		})

		Convey("When an owner has no games", func() {
			s := e.Streaks("zed")
			So(s.CurrentLength, ShouldEqual, 0)
			So(s.Current, ShouldBeEmpty)
		})

		Convey("When restricting to the regular season", func() {
			reg := e.RegularSeason()
			h, err := reg.HeadToHead("a", "b")

			Convey("Then playoff games should be excluded", func() {
				So(err, ShouldBeNil)
				So(h.Games, ShouldEqual, 2)
				So(reg.PlayoffPerformance()[0].Games, ShouldEqual, 0)
			})
		})
	})
}

func TestParity(t *testing.T) {
	Convey("Given one lopsided season and one balanced season", t, func() {
		games := []model.GameLogEntry{
			game(2018, 1, "a", "b", 100, 90),
			game(2018, 2, "b", "a", 80, 90),
			game(2019, 1, "a", "b", 100, 90),
			game(2019, 2, "b", "a", 100, 90),
			playoff(game(2019, 14, "a", "b", 100, 90)),
		}
		e := analytics.New(logger.Nop(), games, nil, []model.Owner{owner("a", 2018), owner("b", 2018)})

		Convey("When measuring parity", func() {
			rows := e.Parity()

			Convey("Then the lopsided season should score zero parity", func() {
				So(len(rows), ShouldEqual, 2)
				So(rows[0].Season, ShouldEqual, 2018)
				So(rows[0].Teams, ShouldEqual, 2)
				So(rows[0].StdDev, ShouldAlmostEqual, 0.5)
				So(rows[0].Range, ShouldEqual, 1.0)
				So(rows[0].Gini, ShouldAlmostEqual, 0.5)
				So(rows[0].ParityIndex, ShouldAlmostEqual, 0.0)
			})

			Convey("Then the balanced season should ignore the playoff game", func() {
				So(rows[1].StdDev, ShouldEqual, 0.0)
				So(rows[1].Gini, ShouldEqual, 0.0)
				So(rows[1].ParityIndex, ShouldEqual, 1.0)
			})
		})
	})
}

func TestBadBeats(t *testing.T) {
	Convey("Given a 2020 season averaging 111.25 points and a tight 2021", t, func() {
		games := []model.GameLogEntry{
			game(2020, 1, "a", "b", 150, 160),
			game(2020, 2, "a", "b", 100, 90),
			game(2020, 3, "b", "a", 70, 80),
			game(2020, 4, "a", "b", 120, 120),
			game(2021, 1, "b", "a", 145, 150),
		}
		e := analytics.New(logger.Nop(), games, nil, []model.Owner{owner("a", 2020), owner("b", 2020)})

		Convey("When looking 20 points above average", func() {
			rows := e.BadBeats(analytics.BadBeatMargin)

			Convey("Then only the 150-point loss should qualify", func() {
				So(rows, ShouldHaveLength, 1)
				So(rows[0].OwnerID, ShouldEqual, model.OwnerID("a"))
				So(rows[0].Opponent, ShouldEqual, model.OwnerID("b"))
				So(rows[0].TeamName, ShouldEqual, "a-team")
				So(rows[0].Week, ShouldEqual, 1)
				So(rows[0].Margin, ShouldEqual, 10.0)
				So(rows[0].SeasonAverage, ShouldAlmostEqual, 111.25)
				So(rows[0].AboveAverage, ShouldAlmostEqual, 38.75)
			})
		})

		Convey("When the bar is raised past the best losing score", func() {
			So(e.BadBeats(40), ShouldBeEmpty)
		})
	})
}

func TestKryptonite(t *testing.T) {
	Convey("Given a dominating a and a short b-c series", t, func() {
		games := []model.GameLogEntry{
			game(2020, 1, "a", "b", 100, 90),
			game(2020, 2, "b", "a", 80, 90),
			game(2020, 3, "a", "b", 100, 90),
			game(2020, 4, "b", "a", 70, 90),
			game(2020, 5, "a", "b", 100, 100),
		}
		for week := 6; week <= 10; week++ {
			games = append(games, game(2020, week, "c", "a", 90, 100))
		}
		for week := 11; week <= 14; week++ {
			games = append(games, game(2020, week, "b", "c", 100, 90))
		}
		e := analytics.New(logger.Nop(), games, nil,
			[]model.Owner{owner("a", 2020), owner("b", 2020), owner("c", 2020)})

		Convey("When requiring five games at 80%", func() {
			rows := e.Kryptonite(analytics.KryptoniteMinGames, analytics.KryptoniteMinWinPct)

			Convey("Then a sweep should outrank a series with a tie", func() {
				So(rows, ShouldHaveLength, 2)
				So(rows[0].Dominator, ShouldEqual, model.OwnerID("a"))
				So(rows[0].Victim, ShouldEqual, model.OwnerID("c"))
				So(rows[0].WinPct, ShouldEqual, 1.0)
				So(rows[0].Level, ShouldEqual, "kryptonite")

				So(rows[1].Victim, ShouldEqual, model.OwnerID("b"))
				So(rows[1].Wins, ShouldEqual, 4)
				So(rows[1].Ties, ShouldEqual, 1)
				So(rows[1].Losses, ShouldEqual, 0)
				So(rows[1].Level, ShouldEqual, "heavy_favorite")
			})
		})

		Convey("When four games are enough", func() {
			rows := e.Kryptonite(4, analytics.KryptoniteMinWinPct)

			Convey("Then longer sweeps should come first", func() {
				So(rows, ShouldHaveLength, 3)
				So(rows[0].Victim, ShouldEqual, model.OwnerID("c"))
				So(rows[1].Dominator, ShouldEqual, model.OwnerID("b"))
				So(rows[1].Games, ShouldEqual, 4)
			})
		})
	})
}
