// ABOUTME: Tests for relative times, truncation, and golden text output.
// ABOUTME: Run with -update to rewrite the files under testdata/golden.
package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const longCaption = "Walking along the beach at dawn, the tide pulling back over the sand and leaving tiny shells everywhere"

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func samplePosts() []models.Post {
	return []models.Post{
		{ID: 42, Author: "Alice", Caption: "Sunset at the beach", ImageURL: "https://picsum.photos/600/600?random=42", CreatedAt: now.Add(-30 * time.Second)},
		{ID: 41, Author: "Bob", Caption: longCaption, ImageURL: "https://picsum.photos/600/600?random=41", CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: now.Add(-5 * time.Minute)},
		{ID: 7, Author: "Carol", Caption: "Beach volleyball", ImageURL: "https://picsum.photos/600/600?random=7", CreatedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)},
	}
}

func TestFormatRelative(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "just now"},
		{59 * time.Second, "just now"},
		{-time.Minute, "just now"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{time.Hour, "1 hour ago"},
		{23 * time.Hour, "23 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{6 * 24 * time.Hour, "6 days ago"},
		{7 * 24 * time.Hour, "February 23, 2024"},
	}
	for _, tt := range tests {
		got := FormatRelative(now.Add(-tt.ago), now)
		if got != tt.want {
			t.Errorf("FormatRelative(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"héllo wörld", 8, "héllo..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestPageLabels(t *testing.T) {
	got := PageLabels(feed.PageLabels(1, 10), 1)
	if got != "[1] 2 … 10" {
		t.Errorf("PageLabels = %q", got)
	}
}

func TestFeedPage_Golden(t *testing.T) {
	view := feed.PageView{
		Posts:      samplePosts(),
		Page:       5,
		TotalPages: 10,
		Labels:     feed.PageLabels(5, 10),
		Query:      "beach",
		Total:      95,
	}
	newGoldie(t).Assert(t, "feed_page", []byte(FeedPage(view, now)))
}

func TestFeedPage_EmptySearchGolden(t *testing.T) {
	view := feed.PageView{Page: 1, Query: "zzz"}
	newGoldie(t).Assert(t, "feed_empty_search", []byte(FeedPage(view, now)))
}

func TestProfileCard_Golden(t *testing.T) {
	profile := models.Profile{Name: "Ann", FilterAuthor: "ann"}
	newGoldie(t).Assert(t, "profile_card", []byte(ProfileCard(profile, samplePosts()[:2], now)))
}

func TestTextSink_Golden(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTextSink(&buf, func() time.Time { return now })
	posts := samplePosts()

	sink.RenderLoading()
	sink.Render(posts[:2])
	sink.PatchItem(42, feed.PatchFields{Author: "Alice B", Caption: "Sunrise instead", Timestamp: now.Add(-3 * time.Hour)})
	sink.RemoveItem(41)
	sink.PrependItem(posts[2])
	sink.RenderEmpty()

	newGoldie(t).Assert(t, "text_sink_session", buf.Bytes())
}
