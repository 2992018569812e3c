package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/billyessing/nfl-fantasy/internal/domain/types"
	"github.com/billyessing/nfl-fantasy/pkg/logger"
	"github.com/billyessing/nfl-fantasy/pkg/metrics"
)

// Output file names.
const (
	OwnersFile        = "owners.csv"
	GameLogFile       = "game_log.csv"
	StandingsFile     = "overall_standings.csv"
	HeadToHeadFile    = "head_to_head.csv"
	RivalriesFile     = "rivalries.csv"
	TrendsFile        = "points_trend.csv"
	LeadersFile       = "points_leaders.csv"
	ChampionshipsFile = "championships.csv"
	PlayoffsFile      = "playoffs.csv"
	ParityFile        = "parity.csv"
	BadBeatsFile      = "bad_beats.csv"
	KryptoniteFile    = "kryptonite.csv"
	SummaryFile       = "summary.csv"
)

// Writer exports result tables into a directory.
type Writer struct {
	dir    string
	logger logger.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the writer's logger.
func WithLogger(l logger.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWriter creates a writer for dir. The directory is created on first write.
func NewWriter(dir string, opts ...WriterOption) *Writer {
	w := &Writer{dir: dir, logger: logger.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type file struct {
	name   string
	header []string
	rows   [][]string
}

// WriteTables writes every table. Each file is replaced atomically.
func (w *Writer) WriteTables(ctx context.Context, t types.Tables) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		metrics.RecordExport("csv", "error")
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, f := range tableFiles(t) {
		if err := ctx.Err(); err != nil {
			metrics.RecordExport("csv", "error")
			return err
		}
		if err := w.write(f); err != nil {
			metrics.RecordExport("csv", "error")
			w.logger.Error(ctx, "csv export failed", logger.String("file", f.name), logger.Error(err))
			return fmt.Errorf("write %s: %w", f.name, err)
		}
		w.logger.Debug(ctx, "csv table written", logger.String("file", f.name), logger.Int("rows", len(f.rows)))
	}
	metrics.RecordExport("csv", "ok")
	w.logger.Info(ctx, "csv tables written", logger.String("dir", w.dir))
	return nil
}

func (w *Writer) write(f file) (err error) {
	tmp, err := os.CreateTemp(w.dir, "."+f.name+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	cw := csv.NewWriter(tmp)
	if err = cw.Write(f.header); err != nil {
		return err
	}
	if err = cw.WriteAll(f.rows); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(w.dir, f.name))
}

func itoa(n int) string { return strconv.Itoa(n) }

// points keeps the shortest exact representation.
func points(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func fixed(f float64, prec int) string { return strconv.FormatFloat(f, 'f', prec, 64) }

func optional(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func tableFiles(t types.Tables) []file { //nolint:funlen // one block per table
	var files []file

	owners := file{name: OwnersFile, header: []string{"owner_id", "display_name", "join_season", "leave_season", "season", "team_name"}}
	for _, o := range t.Owners {
		for _, team := range o.Teams {
			owners.rows = append(owners.rows, []string{
				string(o.OwnerID), o.DisplayName, itoa(o.JoinSeason), optional(o.LeaveSeason), itoa(team.Season), team.TeamName,
			})
		}
	}
	files = append(files, owners)

	games := file{name: GameLogFile, header: []string{
		"id", "season", "week", "home_owner", "away_owner", "home_team", "away_team", "home_score", "away_score", "outcome", "playoff",
	}}
	for _, g := range t.GameLog {
		games.rows = append(games.rows, []string{
			g.ID.String(), itoa(g.Season), itoa(g.Week), string(g.HomeOwner), string(g.AwayOwner), g.HomeTeam, g.AwayTeam,
			points(g.HomeScore), points(g.AwayScore), g.Outcome.String(), strconv.FormatBool(g.Playoff),
		})
	}
	files = append(files, games)

	standings := file{name: StandingsFile, header: []string{
		"rank", "owner_id", "display_name", "wins", "losses", "ties", "games", "win_pct", "points_for", "points_against", "join_season",
	}}
	for _, s := range t.Standings {
		standings.rows = append(standings.rows, []string{
			itoa(s.Rank), string(s.OwnerID), s.DisplayName, itoa(s.Wins), itoa(s.Losses), itoa(s.Ties), itoa(s.Games),
			fixed(s.WinPct, 4), points(s.PointsFor), points(s.PointsAgainst), itoa(s.JoinSeason),
		})
	}
	files = append(files, standings)

	h2h := file{name: HeadToHeadFile, header: []string{"owner_a", "owner_b", "games", "wins_a", "wins_b", "ties", "points_a", "points_b"}}
	for _, h := range t.HeadToHead {
		h2h.rows = append(h2h.rows, []string{
			string(h.OwnerA), string(h.OwnerB), itoa(h.Games), itoa(h.WinsA), itoa(h.WinsB), itoa(h.Ties), points(h.PointsA), points(h.PointsB),
		})
	}
	files = append(files, h2h)

	rivalries := file{name: RivalriesFile, header: []string{
		"owner_a", "owner_b", "games", "wins_a", "wins_b", "ties", "rivalry_score", "avg_point_differential", "series_leader",
	}}
	for _, r := range t.Rivalries {
		rivalries.rows = append(rivalries.rows, []string{
			string(r.OwnerA), string(r.OwnerB), itoa(r.Games), itoa(r.WinsA), itoa(r.WinsB), itoa(r.Ties),
			fixed(r.Score, 3), fixed(r.AvgDifferential, 1), string(r.Leader),
		})
	}
	files = append(files, rivalries)

	trends := file{name: TrendsFile, header: []string{"owner_id", "season", "team_name", "points_for", "points_against"}}
	for _, p := range t.Trends {
		trends.rows = append(trends.rows, []string{
			string(p.OwnerID), itoa(p.Season), p.TeamName, points(p.PointsFor), points(p.PointsAgainst),
		})
	}
	files = append(files, trends)

	leaders := file{name: LeadersFile, header: []string{
		"rank", "owner_id", "display_name", "games", "total_points", "average_points", "highest_game",
	}}
	for _, l := range t.PointsLeaders {
		leaders.rows = append(leaders.rows, []string{
			itoa(l.Rank), string(l.OwnerID), l.DisplayName, itoa(l.Games), points(l.TotalPoints), fixed(l.AveragePoints, 1), points(l.HighestGame),
		})
	}
	files = append(files, leaders)

	champs := file{name: ChampionshipsFile, header: []string{"season", "owner_id", "display_name", "team_name"}}
	for _, c := range t.Championships {
		champs.rows = append(champs.rows, []string{itoa(c.Season), string(c.OwnerID), c.DisplayName, c.TeamName})
	}
	files = append(files, champs)

	playoffs := file{name: PlayoffsFile, header: []string{
		"owner_id", "display_name", "appearances", "games", "wins", "losses", "ties", "win_pct", "average_points", "championships",
	}}
	for _, p := range t.Playoffs {
		playoffs.rows = append(playoffs.rows, []string{
			string(p.OwnerID), p.DisplayName, itoa(p.Appearances), itoa(p.Games), itoa(p.Wins), itoa(p.Losses), itoa(p.Ties),
			fixed(p.WinPct, 4), fixed(p.AveragePoints, 1), itoa(p.Championships),
		})
	}
	files = append(files, playoffs)

	parity := file{name: ParityFile, header: []string{"season", "teams", "win_pct_std_dev", "win_pct_range", "gini", "parity_index"}}
	for _, p := range t.Parity {
		parity.rows = append(parity.rows, []string{
			itoa(p.Season), itoa(p.Teams), fixed(p.StdDev, 4), fixed(p.Range, 4), fixed(p.Gini, 4), fixed(p.ParityIndex, 4),
		})
	}
	files = append(files, parity)

	beats := file{name: BadBeatsFile, header: []string{
		"season", "week", "owner_id", "team_name", "score", "opponent", "opponent_score",
		"margin", "season_average", "above_average", "playoff",
	}}
	for _, b := range t.BadBeats {
		beats.rows = append(beats.rows, []string{
			itoa(b.Season), itoa(b.Week), string(b.OwnerID), b.TeamName, points(b.Score), string(b.Opponent), points(b.OpponentScore),
			fixed(b.Margin, 2), fixed(b.SeasonAverage, 2), fixed(b.AboveAverage, 2), strconv.FormatBool(b.Playoff),
		})
	}
	files = append(files, beats)

	krypto := file{name: KryptoniteFile, header: []string{
		"dominator", "victim", "wins", "losses", "ties", "games", "win_pct", "level",
	}}
	for _, k := range t.Kryptonite {
		krypto.rows = append(krypto.rows, []string{
			string(k.Dominator), string(k.Victim), itoa(k.Wins), itoa(k.Losses), itoa(k.Ties), itoa(k.Games),
			fixed(k.WinPct, 4), k.Level,
		})
	}
	files = append(files, krypto)

	s := t.Summary
	files = append(files, file{
		name: SummaryFile,
		header: []string{
			"owners", "seasons", "first_season", "last_season", "games",
			"highest_score", "lowest_score", "average_score", "championship_leader", "leader_titles",
		},
		rows: [][]string{{
			itoa(s.Owners), itoa(s.Seasons), itoa(s.FirstSeason), itoa(s.LastSeason), itoa(s.Games),
			points(s.HighestScore), points(s.LowestScore), fixed(s.AverageScore, 1), string(s.ChampionshipLeader), itoa(s.LeaderTitles),
		}},
	})
	return files
}
