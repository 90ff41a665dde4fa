// ABOUTME: CLI commands for single-post operations.
// ABOUTME: Provides show, create, edit, and delete subcommands.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
	"github.com/2389-research/minigram/internal/render"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage posts",
	Long:  "Show, create, edit, and delete feed posts.",
}

var postShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a post",
	Long:  "Fetch a single post from the API and print it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostShow,
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	Long:  "Publish a new post. Author, caption, and image URL are required.",
	Args:  cobra.NoArgs,
	RunE:  runPostCreate,
}

var postEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a post",
	Long:  "Change a post's author, caption, or image. Unset flags keep the current value.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostEdit,
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostDelete,
}

// Flags
var (
	postAuthor   string
	postCaption  string
	postImageURL string
)

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.AddCommand(postShowCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postEditCmd)
	postCmd.AddCommand(postDeleteCmd)

	for _, c := range []*cobra.Command{postCreateCmd, postEditCmd} {
		c.Flags().StringVar(&postAuthor, "author", "", "Author display name")
		c.Flags().StringVar(&postCaption, "caption", "", "Post caption")
		c.Flags().StringVar(&postImageURL, "image", "", "Image URL (http or https)")
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}

// formatError spells out validation problems one per line.
func formatError(err error) error {
	var ve *feed.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("invalid post:\n  - %s", strings.Join(ve.Messages, "\n  - "))
	}
	return err
}

func runPostShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	p, err := newRemoteClient().GetPost(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get post %d: %w", id, err)
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Card(p, time.Now()))
	return nil
}

func runPostCreate(cmd *cobra.Command, args []string) error {
	ctrl := newController(nil)
	if err := ctrl.Load(cmd.Context()); err != nil {
		return err
	}

	p, err := ctrl.Create(cmd.Context(), models.NewPostInput(postAuthor, postCaption, postImageURL))
	if err != nil {
		return formatError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Post created (ID: %d)\n", p.ID)
	fmt.Fprint(cmd.OutOrStdout(), render.Card(p, time.Now()))
	return nil
}

func runPostEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctrl := newController(nil)
	if err := ctrl.Load(cmd.Context()); err != nil {
		return err
	}

	current, ok := ctrl.Post(id)
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	in := models.InputFromPost(current)
	if cmd.Flags().Changed("author") {
		in.Author = postAuthor
	}
	if cmd.Flags().Changed("caption") {
		in.Caption = postCaption
	}
	if cmd.Flags().Changed("image") {
		in.ImageURL = postImageURL
	}

	p, err := ctrl.Update(cmd.Context(), id, in)
	if err != nil {
		return formatError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Post updated (ID: %d)\n", p.ID)
	fmt.Fprint(cmd.OutOrStdout(), render.Card(p, time.Now()))
	return nil
}

func runPostDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctrl := newController(nil)
	if err := ctrl.Load(cmd.Context()); err != nil {
		return err
	}
	if _, ok := ctrl.Post(id); !ok {
		return fmt.Errorf("post %d not found", id)
	}
	if err := ctrl.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Post %d deleted\n", id)
	return nil
}
