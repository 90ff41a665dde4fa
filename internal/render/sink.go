// ABOUTME: Text implementation of the feed sink that writes to an io.Writer.
// ABOUTME: Each sink call becomes one block of output, suited to logs and pipes.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
)

// TextSink writes feed updates as plain text.
type TextSink struct {
	w   io.Writer
	now func() time.Time
}

var _ feed.Sink = (*TextSink)(nil)

// NewTextSink creates a sink writing to w. A nil clock uses time.Now.
func NewTextSink(w io.Writer, now func() time.Time) *TextSink {
	if now == nil {
		now = time.Now
	}
	return &TextSink{w: w, now: now}
}

func (s *TextSink) Render(posts []models.Post) {
	now := s.now()
	cards := make([]string, len(posts))
	for i, p := range posts {
		cards[i] = Card(p, now)
	}
	fmt.Fprint(s.w, strings.Join(cards, "\n"))
}

func (s *TextSink) RenderLoading() {
	fmt.Fprintln(s.w, "Loading posts...")
}

func (s *TextSink) RenderEmpty() {
	fmt.Fprintln(s.w, emptyMessage(""))
}

func (s *TextSink) PatchItem(id int, fields feed.PatchFields) {
	fmt.Fprintf(s.w, "updated [%d] %s (%s)\n    %s\n", id, fields.Author,
		FormatRelative(fields.Timestamp, s.now()), Truncate(fields.Caption, captionWidth))
}

func (s *TextSink) RemoveItem(id int) {
	fmt.Fprintf(s.w, "removed [%d]\n", id)
}

func (s *TextSink) PrependItem(post models.Post) {
	fmt.Fprint(s.w, "new "+Card(post, s.now()))
}
