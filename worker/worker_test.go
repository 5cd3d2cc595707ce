package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/brain"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/game"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/pile"
	"github.com/domino14/crapette/testhelpers"
)

var (
	_ game.Searcher = (*BrainWorker)(nil)
	_ game.Searcher = (*brain.Force)(nil)
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func backgroundConfig() brain.Config {
	cfg := brain.DefaultConfig()
	cfg.Mono = false
	return cfg
}

var kdToFoundation = move.NewRelocate(card.MustFromString("Kd"), pile.TableauID(0), pile.FoundationID(0))

func TestNewBrainWorkerValidates(t *testing.T) {
	is := is.New(t)
	cfg := backgroundConfig()
	cfg.PrintProgress = true
	_, err := NewBrainWorker(cfg)
	is.True(errors.Is(err, brain.ErrInvalidConfig))
}

func TestStartAndWait(t *testing.T) {
	is := is.New(t)
	w, err := NewBrainWorker(backgroundConfig())
	is.NoErr(err)
	defer w.Close()

	b := testhelpers.Sample(t, board.FoundationToFill)
	gen := w.Start(context.Background(), b, card.Player0)
	is.Equal(gen, uint64(1))
	// The worker searches its own copy.
	b.Tableau(0).Clear()

	r, err := w.Wait(context.Background())
	is.NoErr(err)
	is.Equal(len(r.Moves), 1)
	is.True(r.Moves[0].Equal(kdToFoundation))
	is.Equal(r.Nodes, uint64(2))

	_, err = w.Wait(context.Background())
	is.True(errors.Is(err, ErrNoSearch))
}

func TestRestartSupersedes(t *testing.T) {
	is := is.New(t)
	w, err := NewBrainWorker(backgroundConfig())
	is.NoErr(err)
	w.SetHeartbeat(time.Millisecond)
	before := testutil.ToFloat64(supersededTotal)

	w.Start(context.Background(), testhelpers.Sample(t, board.MassiveMoves), card.Player0)
	old := w.current
	gen := w.Start(context.Background(), testhelpers.Sample(t, board.FoundationToFill), card.Player0)
	is.Equal(gen, uint64(2))
	is.Equal(testutil.ToFloat64(supersededTotal), before+1)

	_, err = w.wait(context.Background(), old)
	is.True(errors.Is(err, ErrSuperseded))

	r, err := w.Wait(context.Background())
	is.NoErr(err)
	is.True(r.Moves[0].Equal(kdToFoundation))
}

func TestKill(t *testing.T) {
	is := is.New(t)
	w, err := NewBrainWorker(backgroundConfig())
	is.NoErr(err)
	w.Start(context.Background(), testhelpers.Sample(t, board.MassiveMoves), card.Player0)
	w.Kill()
	_, err = w.Wait(context.Background())
	is.True(errors.Is(err, ErrNoSearch))
	w.Kill()
}

func TestPlaysAGameTurn(t *testing.T) {
	is := is.New(t)
	w, err := NewBrainWorker(backgroundConfig())
	is.NoErr(err)
	defer w.Close()

	g := game.NewFromBoard(testhelpers.Sample(t, board.TrivialMove), card.Player0)
	is.NoErr(g.PlayTurn(context.Background(), w))
	winner, over := g.Winner()
	is.True(over)
	is.Equal(winner, card.Player0)
}

func TestNewSearcher(t *testing.T) {
	is := is.New(t)
	s, done, err := NewSearcher(brain.DefaultConfig())
	is.NoErr(err)
	_, ok := s.(*brain.Force)
	is.True(ok)
	done()

	s, done, err = NewSearcher(backgroundConfig())
	is.NoErr(err)
	_, ok = s.(*BrainWorker)
	is.True(ok)
	done()

	cfg := backgroundConfig()
	cfg.PrintProgress = true
	_, _, err = NewSearcher(cfg)
	is.True(errors.Is(err, brain.ErrInvalidConfig))
}
