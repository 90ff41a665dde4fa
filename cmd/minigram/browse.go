// ABOUTME: Line-mode feed browser for terminals without full-screen support.
// ABOUTME: Reads one command per line and prints view changes through a text sink.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
	"github.com/2389-research/minigram/internal/render"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the feed line by line",
	Long: `Read commands from stdin and print each change to the feed as text.

Commands:
  next | prev | page <n>            move between pages
  search [text]                     filter by author or caption (blank clears)
  create <author> | <caption> | <image url>
  edit <id> <author> | <caption> | <image url>
  delete <id>
  reload | help | quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sink := render.NewTextSink(cmd.OutOrStdout(), time.Now)
		return browse(cmd.Context(), newController(sink), os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

const browseHelp = "commands: next, prev, page <n>, search [text], create a | c | url, edit <id> a | c | url, delete <id>, reload, quit"

// browse runs the command loop until quit or end of input.
func browse(ctx context.Context, ctrl *feed.Controller, in io.Reader, out io.Writer) error {
	if err := ctrl.Load(ctx); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	}
	printPager(out, ctrl)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		if verb == "quit" || verb == "q" {
			return nil
		}
		if err := browseStep(ctx, ctrl, verb, rest, out); err != nil {
			fmt.Fprintf(out, "error: %v\n", formatError(err))
		}
	}
}

func browseStep(ctx context.Context, ctrl *feed.Controller, verb, rest string, out io.Writer) error {
	switch verb {
	case "help", "?":
		fmt.Fprintln(out, browseHelp)
	case "next", "n":
		if !ctrl.NextPage() {
			fmt.Fprintln(out, "already on the last page")
			return nil
		}
		printPager(out, ctrl)
	case "prev", "p":
		if !ctrl.PrevPage() {
			fmt.Fprintln(out, "already on the first page")
			return nil
		}
		printPager(out, ctrl)
	case "page":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("page needs a number")
		}
		if _, err := ctrl.Dispatch(ctx, feed.PageRequested{Page: n}); err != nil {
			return err
		}
		printPager(out, ctrl)
	case "search", "/":
		if _, err := ctrl.Dispatch(ctx, feed.SearchRequested{Query: rest}); err != nil {
			return err
		}
		printPager(out, ctrl)
	case "reload", "r":
		if err := ctrl.Load(ctx); err != nil {
			return err
		}
		printPager(out, ctrl)
	case "create":
		in, err := parsePostFields(rest)
		if err != nil {
			return err
		}
		_, err = ctrl.Dispatch(ctx, feed.CreateRequested{Input: in})
		return err
	case "edit":
		idText, fields, _ := strings.Cut(rest, " ")
		id, err := parseID(idText)
		if err != nil {
			return err
		}
		in, err := parsePostFields(fields)
		if err != nil {
			return err
		}
		_, err = ctrl.Dispatch(ctx, feed.UpdateRequested{ID: id, Input: in})
		return err
	case "delete":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if _, ok := ctrl.Post(id); !ok {
			return fmt.Errorf("post %d not found", id)
		}
		_, err = ctrl.Dispatch(ctx, feed.DeleteRequested{ID: id})
		return err
	default:
		return fmt.Errorf("unknown command %q (try help)", verb)
	}
	return nil
}

// parsePostFields splits "author | caption | image url".
func parsePostFields(s string) (models.PostInput, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return models.PostInput{}, fmt.Errorf("expected: author | caption | image url")
	}
	return models.NewPostInput(parts[0], parts[1], parts[2]), nil
}

func printPager(out io.Writer, ctrl *feed.Controller) {
	page := ctrl.Page()
	if page.TotalPages == 0 {
		return
	}
	fmt.Fprintf(out, "\nPage %d of %d: %s\n", page.Page, page.TotalPages, render.PageLabels(page.Labels, page.Page))
}
