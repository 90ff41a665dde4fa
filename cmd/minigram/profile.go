// ABOUTME: CLI commands for the local profile.
// ABOUTME: Provides show and an interactive edit wizard.
package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/render"
	"github.com/2389-research/minigram/internal/tui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	Long:  "Show the profile page or edit the locally saved profile.",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile page",
	Long:  "Print the profile header and the grid of posts matching its author filter.",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileEditCmd = &cobra.Command{
	Use:         "edit",
	Short:       "Edit the profile",
	Long:        "Interactive wizard to change the name, bio, avatar, and author filter.",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{fullScreen: "true"},
	RunE:        runProfileEdit,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileEditCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	store, err := newProfileStore()
	if err != nil {
		return err
	}
	profile, err := store.Load()
	if err != nil {
		return err
	}

	ctrl := newController(nil)
	if err := ctrl.Load(cmd.Context()); err != nil {
		return err
	}

	posts := feed.FilterByAuthor(ctrl.Posts(), profile.FilterAuthor)
	fmt.Fprint(cmd.OutOrStdout(), render.ProfileCard(profile, posts, time.Now()))
	return nil
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	store, err := newProfileStore()
	if err != nil {
		return err
	}
	profile, err := store.Load()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewProfileModel(profile))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.ProfileModel)
	if !final.ShouldSave() {
		fmt.Println("Profile edit cancelled.")
		return nil
	}

	if err := store.Save(final.Result()); err != nil {
		return err
	}
	fmt.Printf("Profile saved to %s\n", store.Path())
	return nil
}
