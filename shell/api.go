package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/crapette/automatic"
	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/brain"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/config"
	"github.com/domino14/crapette/game"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/worker"
)

func (sc *ShellController) startGame(g *game.Game) *Response {
	g.SetTraceDir(sc.cfg.GetString(config.ConfigTraceDir))
	sc.game = g
	return msg(g.ToDisplayText(sc.colored))
}

func playerOption(cmd *shellcmd) (card.Player, error) {
	p, ok := cmd.options["player"]
	if !ok {
		return card.Player0, nil
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 0 || n >= card.NumPlayers {
		return 0, fmt.Errorf("bad player %q", p)
	}
	return card.Player(n), nil
}

func countArg(cmd *shellcmd, def int) (int, error) {
	if len(cmd.args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad count %q", cmd.args[0])
	}
	return n, nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	seed := sc.cfg.GetString(config.ConfigSeed)
	if len(cmd.args) > 0 {
		seed = cmd.args[0]
	}
	return sc.startGame(game.NewGame(seed)), nil
}

func (sc *ShellController) layout(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("layout takes one sample name; see help layout")
	}
	player, err := playerOption(cmd)
	if err != nil {
		return nil, err
	}
	b := board.New()
	if err := b.SetToLayout(board.LayoutName(cmd.args[0])); err != nil {
		return nil, err
	}
	return sc.startGame(game.NewFromBoard(b, player)), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 || len(cmd.args) > 2 {
		return nil, errors.New("load takes a file and an optional layout name")
	}
	layouts, err := board.LoadLayouts(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("%s has no layouts", cmd.args[0])
	}
	nl := layouts[0]
	if len(cmd.args) == 2 {
		found := false
		for _, l := range layouts {
			if l.Name == cmd.args[1] {
				nl, found = l, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no layout %q in %s", cmd.args[1], cmd.args[0])
		}
	}
	b, err := nl.Board()
	if err != nil {
		return nil, err
	}
	log.Debug().Str("name", nl.Name).Msg("loaded-layout")
	return sc.startGame(game.NewFromBoard(b, nl.Player)), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText(sc.colored)), nil
}

func (sc *ShellController) searcher() (game.Searcher, func(), error) {
	bcfg, err := brain.NewConfig(sc.cfg)
	if err != nil {
		return nil, nil, err
	}
	s, done, err := worker.NewSearcher(bcfg)
	if err != nil {
		return nil, nil, err
	}
	if f, ok := s.(*brain.Force); ok && bcfg.PrintProgress {
		f.SetProgressStream(sc.out)
	}
	return s, done, nil
}

// solve shows what the brain would play without playing it.
func (sc *ShellController) solve(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	s, done, err := sc.searcher()
	if err != nil {
		return nil, err
	}
	defer done()
	player := sc.game.PlayerOnTurn()
	moves, nodes, err := s.SearchContext(ctx, sc.game.Board(), player)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Player %d:\n%s%d positions searched", player, move.ListString(moves), nodes)), nil
}

// play lets the brain play whole turns.
func (sc *ShellController) play(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	turns, err := countArg(cmd, 1)
	if err != nil {
		return nil, err
	}
	s, done, err := sc.searcher()
	if err != nil {
		return nil, err
	}
	defer done()

	from := len(sc.game.History())
	for i := 0; i < turns && sc.game.Playing(); i++ {
		if err := sc.game.PlayTurn(ctx, s); err != nil {
			return nil, err
		}
	}
	var sb strings.Builder
	for _, e := range sc.game.History()[from:] {
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	sb.WriteString(sc.game.ToDisplayText(sc.colored))
	return msg(sb.String()), nil
}

// move plays one move given by its short description for the player on
// turn.
func (sc *ShellController) move(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	m, err := move.FromString(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText(sc.colored)), nil
}

// legalMoves lists every move the player on turn may make, in the form
// move takes.
func (sc *ShellController) legalMoves(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	player := sc.game.PlayerOnTurn()
	moves := sc.game.Board().LegalMoves(player)
	if len(moves) == 0 {
		return msg(fmt.Sprintf("Player %d has no legal move.", player)), nil
	}
	return msg(strings.Join(lo.Map(moves, func(m move.Move, _ int) string {
		return m.ShortDescription()
	}), "\n")), nil
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.HistoryString()), nil
}

// set changes a setting for the rest of the session. A value the brain
// cannot run with is refused.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.cfg.ToDisplayText()), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	prev := sc.cfg.Get(key)
	sc.cfg.Set(key, value)
	if _, err := brain.NewConfig(sc.cfg); err != nil {
		sc.cfg.Set(key, prev)
		return nil, err
	}
	return msg(fmt.Sprintf("set %s to %v", key, sc.cfg.Get(key))), nil
}

// autoplay plays brain-vs-brain games and reports on them.
func (sc *ShellController) autoplay(ctx context.Context, cmd *shellcmd) (*Response, error) {
	var seeds []string
	if path := sc.cfg.GetString(config.ConfigAutoplaySeedFile); path != "" {
		var err error
		if seeds, err = automatic.LoadSeeds(path); err != nil {
			return nil, err
		}
	} else {
		n, err := countArg(cmd, sc.cfg.GetInt(config.ConfigAutoplayGames))
		if err != nil {
			return nil, err
		}
		seeds = automatic.GenerateSeeds(n)
	}
	threads := automatic.Threads(sc.cfg)
	if t, ok := cmd.options["threads"]; ok {
		n, err := strconv.Atoi(t)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad thread count %q", t)
		}
		threads = n
	}
	output := sc.cfg.GetString(config.ConfigAutoplayOutput)
	if o, ok := cmd.options["file"]; ok {
		output = o
	}

	results, err := automatic.StartCompVCompGames(ctx, sc.cfg, seeds, threads, output)
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	var sb strings.Builder
	if err := automatic.Summarize(results).Report(&sb); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}
