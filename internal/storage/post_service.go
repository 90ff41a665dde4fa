// ABOUTME: Interface definition for the remote post service.
// ABOUTME: Defines the CRUD contract the feed controller depends on.
package storage

import (
	"context"

	"github.com/2389-research/minigram/internal/models"
)

// DefaultLocalIDThreshold is the id above which posts are treated as local-only.
// The demo API allocates ids 1..100 and never stores created posts.
const DefaultLocalIDThreshold = 100

// PostService defines the operations of the remote post collection.
type PostService interface {
	// ListPosts returns every post the service exposes.
	ListPosts(ctx context.Context) ([]models.Post, error)

	// GetPost returns a single post or a 404 ServiceError.
	GetPost(ctx context.Context, id int) (models.Post, error)

	// CreatePost stores a new post; the returned ID is assigned by the server.
	CreatePost(ctx context.Context, in models.PostInput) (models.Post, error)

	// UpdatePost applies a partial update. Local-only ids skip the network.
	UpdatePost(ctx context.Context, id int, in models.PostInput) (models.Post, error)

	// DeletePost removes a post.
	DeletePost(ctx context.Context, id int) error
}
