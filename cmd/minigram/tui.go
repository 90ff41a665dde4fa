// ABOUTME: Cobra command that launches the interactive feed.
// ABOUTME: Runs the bubbletea feed screen in the alternate screen buffer.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/minigram/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Browse the feed interactively",
	Long:        "Full-screen feed with paging, search, and post create, edit, and delete.",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{fullScreen: "true"},
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	store, err := newProfileStore()
	if err != nil {
		return err
	}
	profile, err := store.Load()
	if err != nil {
		return err
	}

	view := tui.NewFeedView()
	ctrl := newController(view)
	model := tui.NewFeedModel(ctrl, view, profile)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
