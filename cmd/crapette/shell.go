package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/domino14/crapette/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive crapette shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := shell.NewShellController(cfg, useColor(os.Stdout))
		if err != nil {
			return err
		}
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)
		sc.Loop(sig)
		return nil
	},
}
