// ABOUTME: Commands the presentation layer sends to the controller.
// ABOUTME: Views emit intents instead of capturing posts in callbacks.
package feed

import "github.com/2389-research/minigram/internal/models"

// Intent is a user command routed through Controller.Dispatch.
type Intent interface {
	intent()
}

// EditRequested asks for the current copy of a post to open in an editor.
type EditRequested struct {
	Post models.Post
}

// DeleteRequested asks to delete a post.
type DeleteRequested struct {
	ID int
}

// CreateRequested submits a new post.
type CreateRequested struct {
	Input models.PostInput
}

// UpdateRequested submits an edited post.
type UpdateRequested struct {
	ID    int
	Input models.PostInput
}

// SearchRequested changes the search query.
type SearchRequested struct {
	Query string
}

// PageRequested moves to a page.
type PageRequested struct {
	Page int
}

func (EditRequested) intent()   {}
func (DeleteRequested) intent() {}
func (CreateRequested) intent() {}
func (UpdateRequested) intent() {}
func (SearchRequested) intent() {}
func (PageRequested) intent()   {}
