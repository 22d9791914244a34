package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geoequal/internal/tui"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [a] [b]",
		Short: "Compare two geometries side by side in the terminal",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runView,
	}
}

func runView(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Debug("starting viewer", zap.Strings("paths", args))
	m := tui.NewWithPaths(args...)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Error("viewer exited", zap.Error(err))
		return err
	}
	return nil
}
