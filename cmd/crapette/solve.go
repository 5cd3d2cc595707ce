package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domino14/crapette/board"
	"github.com/domino14/crapette/brain"
	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/config"
	"github.com/domino14/crapette/game"
	"github.com/domino14/crapette/move"
	"github.com/domino14/crapette/worker"
)

var (
	solvePlayer int
	solveTrace  string

	solveCmd = &cobra.Command{
		Use:   "solve [sample-layout | layouts.yaml [name]]",
		Short: "Show the moves the brain makes in a position",
		Long: `Solve sets up a position and prints the moves the brain would play
in it. With no argument it deals a game from --seed.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runSolve,
	}
)

func init() {
	solveCmd.Flags().IntVar(&solvePlayer, "player", 0, "player on turn in a sample layout")
	solveCmd.Flags().StringVar(&solveTrace, "trace", "", "write the search trace to this file")
}

func setUpGame(args []string) (*game.Game, error) {
	switch {
	case len(args) == 0:
		return game.NewGame(cfg.GetString(config.ConfigSeed)), nil

	case strings.HasSuffix(args[0], ".yaml") || strings.HasSuffix(args[0], ".yml"):
		layouts, err := board.LoadLayouts(args[0])
		if err != nil {
			return nil, err
		}
		for _, nl := range layouts {
			if len(args) == 2 && nl.Name != args[1] {
				continue
			}
			b, err := nl.Board()
			if err != nil {
				return nil, err
			}
			return game.NewFromBoard(b, nl.Player), nil
		}
		return nil, fmt.Errorf("no such layout in %s", filepath.Base(args[0]))
	}

	if solvePlayer < 0 || solvePlayer >= card.NumPlayers {
		return nil, fmt.Errorf("bad player %d", solvePlayer)
	}
	b := board.New()
	if err := b.SetToLayout(board.LayoutName(args[0])); err != nil {
		return nil, err
	}
	return game.NewFromBoard(b, card.Player(solvePlayer)), nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	g, err := setUpGame(args)
	if err != nil {
		return err
	}
	bcfg, err := brain.NewConfig(cfg)
	if err != nil {
		return err
	}
	s, done, err := worker.NewSearcher(bcfg)
	if err != nil {
		return err
	}
	defer done()
	if f, ok := s.(*brain.Force); ok && bcfg.PrintProgress {
		f.SetProgressStream(os.Stdout)
	}
	if solveTrace != "" {
		trace, err := os.Create(solveTrace)
		if err != nil {
			return err
		}
		defer trace.Close()
		s.SetLogStream(trace)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, g.ToDisplayText(useColor(os.Stdout)))
	moves, nodes, err := s.SearchContext(cmd.Context(), g.Board(), g.PlayerOnTurn())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nPlayer %d:\n%s%d positions searched\n", g.PlayerOnTurn(), move.ListString(moves), nodes)
	return nil
}
