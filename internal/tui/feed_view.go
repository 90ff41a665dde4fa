// ABOUTME: Screen model for the feed that the reconciler drives as a sink.
// ABOUTME: Holds what the TUI should draw: loading, empty, or a page of posts.
package tui

import (
	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
)

// ViewMode is what the feed area shows.
type ViewMode int

const (
	ViewLoading ViewMode = iota
	ViewEmpty
	ViewPosts
)

// FeedView implements feed.Sink. The FeedModel shares it by pointer so
// updates made by the controller are visible to every model copy.
type FeedView struct {
	mode  ViewMode
	posts []models.Post
}

var _ feed.Sink = (*FeedView)(nil)

// NewFeedView creates a view in the loading state.
func NewFeedView() *FeedView {
	return &FeedView{mode: ViewLoading}
}

// Mode returns what the feed area shows.
func (v *FeedView) Mode() ViewMode { return v.mode }

// Posts returns the rendered posts, top to bottom.
func (v *FeedView) Posts() []models.Post { return v.posts }

func (v *FeedView) Render(posts []models.Post) {
	v.mode = ViewPosts
	v.posts = append([]models.Post(nil), posts...)
}

func (v *FeedView) RenderLoading() {
	v.mode = ViewLoading
	v.posts = nil
}

func (v *FeedView) RenderEmpty() {
	v.mode = ViewEmpty
	v.posts = nil
}

func (v *FeedView) PatchItem(id int, fields feed.PatchFields) {
	for i := range v.posts {
		if v.posts[i].ID == id {
			v.posts[i].Author = fields.Author
			v.posts[i].Caption = fields.Caption
			v.posts[i].ImageURL = fields.ImageURL
			v.posts[i].UpdatedAt = fields.Timestamp
			return
		}
	}
}

func (v *FeedView) RemoveItem(id int) {
	out := make([]models.Post, 0, len(v.posts))
	for _, p := range v.posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	v.posts = out
}

func (v *FeedView) PrependItem(post models.Post) {
	v.mode = ViewPosts
	v.posts = append([]models.Post{post}, v.posts...)
}
