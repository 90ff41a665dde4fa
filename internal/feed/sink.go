// ABOUTME: Presentation sink contract driven by the reconciler.
// ABOUTME: Renders whole pages or patches, removes, and prepends single posts.
package feed

import (
	"time"

	"github.com/2389-research/minigram/internal/models"
)

// PatchFields are the visible fields refreshed by an in-place patch.
type PatchFields struct {
	Author    string
	Caption   string
	ImageURL  string
	Timestamp time.Time
}

// PatchFieldsFor extracts the visible fields of a post.
func PatchFieldsFor(p models.Post) PatchFields {
	return PatchFields{
		Author:    p.Author,
		Caption:   p.Caption,
		ImageURL:  p.ImageURL,
		Timestamp: p.Timestamp(),
	}
}

// Sink is the presentation layer the reconciler drives.
type Sink interface {
	// Render replaces the view with the given posts.
	Render(posts []models.Post)
	// RenderLoading shows the loading placeholder.
	RenderLoading()
	// RenderEmpty shows the empty-feed placeholder.
	RenderEmpty()
	// PatchItem refreshes one rendered post in place.
	PatchItem(id int, fields PatchFields)
	// RemoveItem drops one rendered post.
	RemoveItem(id int)
	// PrependItem adds one post at the top of the view.
	PrependItem(post models.Post)
}

// DiscardSink ignores every instruction. Useful for callers that only read Page().
type DiscardSink struct{}

func (DiscardSink) Render([]models.Post) {}
func (DiscardSink) RenderLoading() {}
func (DiscardSink) RenderEmpty() {}
func (DiscardSink) PatchItem(int, PatchFields) {}
func (DiscardSink) RemoveItem(int) {}
func (DiscardSink) PrependItem(models.Post) {}
