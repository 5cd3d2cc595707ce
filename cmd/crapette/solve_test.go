package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crapette/card"
	"github.com/domino14/crapette/config"
)

func TestSetUpGame(t *testing.T) {
	is := is.New(t)

	cfg.Set(config.ConfigSeed, "abc")
	g, err := setUpGame(nil)
	is.NoErr(err)
	is.Equal(g.Seed(), "abc")

	solvePlayer = 1
	g, err = setUpGame([]string{"trivial_move"})
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), card.Player1)
	solvePlayer = 0

	_, err = setUpGame([]string{"no_such_layout"})
	is.True(err != nil)

	path := filepath.Join(t.TempDir(), "l.yaml")
	is.NoErr(os.WriteFile(path, []byte("layouts:\n  - name: one\n    player: 1\n    piles: \"T0: Kd\"\n"), 0644))
	g, err = setUpGame([]string{path, "one"})
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), card.Player1)
	_, err = setUpGame([]string{path, "two"})
	is.True(err != nil)
}

func TestSolveCommand(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"solve", "foundation_to_fill", "--color", "never", "--log-level", "disabled"})
	is.NoErr(rootCmd.Execute())
	is.True(strings.Contains(out.String(), "to Foundation0"))
	is.True(strings.Contains(out.String(), "2 positions searched"))
}
