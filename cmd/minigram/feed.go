// ABOUTME: CLI command that prints one page of the feed.
// ABOUTME: Supports author/caption search and page selection.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/minigram/internal/render"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Print a page of the feed",
	Long:  "Fetch posts and print one page, newest first, optionally filtered by author or caption.",
	Args:  cobra.NoArgs,
	RunE:  runFeed,
}

// Flags
var (
	feedSearch string
	feedPage   int
)

func init() {
	rootCmd.AddCommand(feedCmd)

	feedCmd.Flags().StringVarP(&feedSearch, "search", "s", "", "Only show posts whose author or caption contains this text")
	feedCmd.Flags().IntVarP(&feedPage, "page", "p", 1, "Page to show")
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctrl := newController(nil)
	if err := ctrl.Load(cmd.Context()); err != nil {
		return err
	}

	if feedSearch != "" {
		if !ctrl.SearchEnabled() {
			return fmt.Errorf("search is disabled in config")
		}
		ctrl.Search(feedSearch)
	}

	if feedPage != 1 {
		if err := ctrl.GoToPage(feedPage); err != nil {
			return fmt.Errorf("failed to show page %d of %d: %w", feedPage, ctrl.Page().TotalPages, err)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), render.FeedPage(ctrl.Page(), time.Now()))
	return nil
}
