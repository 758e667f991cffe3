package main

import (
	"fmt"
	"io"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/neuroscanhq/neuroscan/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(_, _ io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal browser for prediction history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd)
		},
	}
}

func runTUI(cmd *cobra.Command) error {
	m := tui.New(tui.Config{
		History: openHistory(),
		Server:  resolveServer(cmd),
	})
	p := bubbletea.NewProgram(m, bubbletea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
