// ABOUTME: Plain-text rendering of feed pages, post cards, the pager, and the profile.
// ABOUTME: Used by the one-shot CLI commands and the MCP server.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
)

// captionWidth is the longest caption shown on a feed card.
const captionWidth = 80

// gridCaptionWidth is the longest caption shown in the profile grid.
const gridCaptionWidth = 40

// FormatRelative describes t relative to now, switching to a date after a week.
func FormatRelative(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour") + " ago"
	case diff < 7*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day") + " ago"
	}
	return t.Format("January 2, 2006")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Truncate shortens s to at most n runes, ending with "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// Card renders one post as a short block of text.
func Card(p models.Post, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s (%s)\n", p.ID, p.Author, FormatRelative(p.Timestamp(), now))
	fmt.Fprintf(&b, "    %s\n", Truncate(p.Caption, captionWidth))
	fmt.Fprintf(&b, "    image: %s\n", p.ImageURL)
	return b.String()
}

// PageLabels renders the pager with the current page in brackets.
func PageLabels(labels []feed.PageLabel, current int) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if !l.Ellipsis && l.Page == current {
			parts = append(parts, fmt.Sprintf("[%d]", l.Page))
			continue
		}
		parts = append(parts, l.String())
	}
	return strings.Join(parts, " ")
}

// FeedPage renders a full page view: header, cards, and pager.
func FeedPage(view feed.PageView, now time.Time) string {
	var b strings.Builder

	header := fmt.Sprintf("Feed: %s", plural(view.Total, "post"))
	if view.Query != "" {
		header += fmt.Sprintf(" matching %q", view.Query)
	}
	b.WriteString(header + "\n\n")

	if len(view.Posts) == 0 {
		b.WriteString(emptyMessage(view.Query) + "\n")
		return b.String()
	}

	for i, p := range view.Posts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Card(p, now))
	}
	fmt.Fprintf(&b, "\nPage %d of %d: %s\n", view.Page, view.TotalPages, PageLabels(view.Labels, view.Page))
	return b.String()
}

func emptyMessage(query string) string {
	if query != "" {
		return fmt.Sprintf("No posts match %q.", query)
	}
	return "No posts to show."
}

// ProfileCard renders the profile header and its post grid.
func ProfileCard(profile models.Profile, posts []models.Post, now time.Time) string {
	profile = profile.WithDefaults()
	var b strings.Builder
	b.WriteString(profile.Name + "\n")
	b.WriteString(profile.Bio + "\n")
	fmt.Fprintf(&b, "avatar: %s\n", profile.AvatarURL)
	if profile.FilterAuthor != "" {
		fmt.Fprintf(&b, "showing posts by: %s\n", profile.FilterAuthor)
	}
	fmt.Fprintf(&b, "\n%s\n", plural(len(posts), "post"))
	for _, p := range posts {
		fmt.Fprintf(&b, "  [%d] %s (%s)\n", p.ID, Truncate(p.Caption, gridCaptionWidth), FormatRelative(p.Timestamp(), now))
	}
	return b.String()
}
