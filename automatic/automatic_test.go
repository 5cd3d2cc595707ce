package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/crapette/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func shortGames(t *testing.T, args ...string) *config.Config {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Load(append([]string{"--autoplay-max-turns=6"}, args...)))
	return cfg
}

func TestPlayGame(t *testing.T) {
	for _, mono := range []string{"--brain-mono=true", "--brain-mono=false"} {
		t.Run(mono, func(t *testing.T) {
			runner, err := NewGameRunner(nil, shortGames(t, mono))
			require.NoError(t, err)
			res, err := runner.PlayGame(context.Background(), "autoplay-seed")
			require.NoError(t, err)
			assert.NotEmpty(t, res.UID)
			assert.Equal(t, "autoplay-seed", res.Seed)
			assert.LessOrEqual(t, res.Turns, 6)
			assert.Positive(t, res.Steps)
			assert.Positive(t, res.Nodes)
			if res.Winner == NoWinner {
				assert.Equal(t, 6, res.Turns)
			}
		})
	}
}

func TestSameSeedSameGame(t *testing.T) {
	is := is.New(t)
	runner, err := NewGameRunner(nil, shortGames(t))
	is.NoErr(err)
	a, err := runner.PlayGame(context.Background(), "twice")
	is.NoErr(err)
	b, err := runner.PlayGame(context.Background(), "twice")
	is.NoErr(err)
	is.Equal(a.Steps, b.Steps)
	is.Equal(a.Nodes, b.Nodes)
	is.Equal(a.Winner, b.Winner)
}

func TestStartCompVCompGames(t *testing.T) {
	is := is.New(t)
	out := filepath.Join(t.TempDir(), "games.csv")
	seeds := []string{"one", "two", "three"}
	results, err := StartCompVCompGames(context.Background(), shortGames(t), seeds, 2, out)
	is.NoErr(err)
	is.Equal(len(results), 3)
	for i, r := range results {
		is.Equal(r.Seed, seeds[i])
	}

	fromFile, err := AnalyzeLogFile(out)
	is.NoErr(err)
	summary := Summarize(results)
	is.Equal(fromFile.Games, 3)
	is.Equal(fromFile.Turns, summary.Turns)
	is.Equal(fromFile.Nodes, summary.Nodes)
	is.Equal(fromFile.Player0Wins+fromFile.Player1Wins+fromFile.Abandoned, 3)

	is.NoErr(summary.AddMetrics(prometheus.DefaultGatherer))
	is.True(summary.Metrics["crapette_autoplay_games_total"] >= 3)
	var buf bytes.Buffer
	is.NoErr(summary.WriteYAML(&buf))
	is.True(strings.Contains(buf.String(), "games: 3\n"))
	is.True(strings.Contains(buf.String(), "crapette_autoplay_games_total:"))
}

func TestStopEarly(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := StartCompVCompGames(ctx, shortGames(t), GenerateSeeds(5), 1, "")
	is.True(err != nil)
	is.Equal(len(results), 0)
}

func TestAlreadyPlaying(t *testing.T) {
	is := is.New(t)
	isPlaying.Store(true)
	defer isPlaying.Store(false)
	_, err := StartCompVCompGames(context.Background(), shortGames(t), []string{"x"}, 1, "")
	is.Equal(err, ErrAlreadyPlaying)
}

func TestThreads(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAutoplayThreads, 3)
	is.Equal(Threads(cfg), 3)

	cfg = config.DefaultConfig()
	n := Threads(cfg)
	is.True(n >= 1)
	is.True(n <= runtime.NumCPU())
}

func TestSummarize(t *testing.T) {
	var results []GameResult
	for i, turns := range []int{2, 4, 4, 4, 5, 5, 7, 9} {
		results = append(results, GameResult{
			First:    i % 2,
			Winner:   []int{0, 1, NoWinner, 0}[i%4],
			Turns:    turns,
			Nodes:    uint64(100 * turns),
			Duration: time.Second,
		})
	}
	s := Summarize(results)
	assert.Equal(t, 8, s.Games)
	assert.Equal(t, 4, s.Player0Wins)
	assert.Equal(t, 2, s.Player1Wins)
	assert.Equal(t, 2, s.Abandoned)
	// Games 0, 1, 4 and 5 went to the player who started.
	assert.Equal(t, 4, s.FirstPlayerWins)
	assert.InDelta(t, 5.0, s.Turns.Mean, 1e-9)
	assert.InDelta(t, 2.138, s.Turns.Stdev, 1e-3)
	assert.Equal(t, 2.0, s.Turns.Min)
	assert.Equal(t, 9.0, s.Turns.Max)
	assert.InDelta(t, 1.0, s.Seconds.Mean, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, s.Report(&buf))
	assert.Contains(t, buf.String(), "Games played: 8\n")
	assert.Contains(t, buf.String(), "Positions searched per game:")
}

func TestReportGroupsThousands(t *testing.T) {
	results := make([]GameResult, 1200)
	var buf bytes.Buffer
	require.NoError(t, Summarize(results).Report(&buf))
	assert.Contains(t, buf.String(), "Games played: 1,200\n")
	assert.Contains(t, buf.String(), "Player 0 wins: 1,200 (100.000%)")
}

func TestSeeds(t *testing.T) {
	is := is.New(t)
	seeds := GenerateSeeds(4)
	is.Equal(len(seeds), 4)
	is.True(seeds[0] != seeds[1])

	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)

	is.True(SaveSeeds([]string{"bad\nseed"}, path) != nil)
}
