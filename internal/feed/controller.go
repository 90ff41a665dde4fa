// ABOUTME: Orchestrates the remote post service and the reconciler for one feed.
// ABOUTME: Splits each mutation into a network phase and a state phase for UI event loops.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/2389-research/minigram/internal/models"
	"github.com/2389-research/minigram/internal/storage"
)

// Controller runs feed operations against a PostService and keeps a Sink in step.
// Request methods validate and call the service without touching state; Apply
// methods mutate state and the view. A failed request therefore changes nothing.
type Controller struct {
	service       storage.PostService
	rec           *Reconciler
	log           zerolog.Logger
	now           func() time.Time
	pageSize      int
	searchEnabled bool
	threshold     int
	loaded        bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithPageSize sets the number of posts per page.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		c.pageSize = n
	}
}

// WithSearch turns the search feature on or off.
func WithSearch(enabled bool) Option {
	return func(c *Controller) {
		c.searchEnabled = enabled
	}
}

// WithClock overrides the clock used for local timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLocalIDThreshold sets the id above which posts are local-only.
func WithLocalIDThreshold(threshold int) Option {
	return func(c *Controller) {
		c.threshold = threshold
	}
}

// NewController creates a controller. A nil sink discards view updates.
func NewController(service storage.PostService, sink Sink, opts ...Option) *Controller {
	c := &Controller{
		service:       service,
		log:           zerolog.Nop(),
		now:           time.Now,
		pageSize:      DefaultPageSize,
		searchEnabled: true,
		threshold:     storage.DefaultLocalIDThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rec = NewReconciler(sink, c.pageSize, c.log)
	return c
}

// SearchEnabled reports whether search is turned on.
func (c *Controller) SearchEnabled() bool { return c.searchEnabled }

// Loaded reports whether at least one load has succeeded.
func (c *Controller) Loaded() bool { return c.loaded }

// BeginLoad shows the loading placeholder.
func (c *Controller) BeginLoad() {
	c.rec.BeginLoad()
}

// RequestLoad fetches every post from the service.
func (c *Controller) RequestLoad(ctx context.Context) ([]models.Post, error) {
	posts, err := c.service.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	return posts, nil
}

// ApplyLoad replaces all posts and renders page 1.
func (c *Controller) ApplyLoad(posts []models.Post) {
	c.rec.OnLoad(posts)
	c.loaded = true
	c.log.Debug().Int("count", len(posts)).Msg("posts loaded")
}

// FailLoad restores the view after a failed load. Before the first successful
// load the empty placeholder is shown; afterwards the previous page returns.
func (c *Controller) FailLoad() {
	if !c.loaded {
		c.rec.rendered = nil
		c.rec.sink.RenderEmpty()
		return
	}
	c.rec.renderPage()
}

// Load fetches and renders all posts.
func (c *Controller) Load(ctx context.Context) error {
	c.BeginLoad()
	posts, err := c.RequestLoad(ctx)
	if err != nil {
		c.FailLoad()
		return err
	}
	c.ApplyLoad(posts)
	return nil
}

// RequestCreate validates input and creates the post remotely.
func (c *Controller) RequestCreate(ctx context.Context, in models.PostInput) (models.Post, error) {
	in = models.NewPostInput(in.Author, in.Caption, in.ImageURL)
	if err := ValidateInput(in); err != nil {
		return models.Post{}, err
	}
	p, err := c.service.CreatePost(ctx, in)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return p, nil
}

// ApplyCreate inserts a created post and shows page 1. When the server id is
// already held, the post gets the next local-only id instead.
func (c *Controller) ApplyCreate(p models.Post) (models.Post, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = c.now()
	}
	if _, held := c.rec.State().Find(p.ID); held {
		localID := max(c.rec.State().MaxID(), c.threshold) + 1
		c.log.Info().Int("server_id", p.ID).Int("local_id", localID).Msg("server id already held, assigning local id")
		p.ID = localID
	}
	if err := c.rec.OnCreate(p); err != nil {
		return models.Post{}, fmt.Errorf("failed to insert post %d: %w", p.ID, err)
	}
	c.log.Debug().Int("post_id", p.ID).Msg("post created")
	return p, nil
}

// Create validates, creates remotely, and inserts the post.
func (c *Controller) Create(ctx context.Context, in models.PostInput) (models.Post, error) {
	p, err := c.RequestCreate(ctx, in)
	if err != nil {
		return models.Post{}, err
	}
	return c.ApplyCreate(p)
}

// RequestUpdate validates input and updates the post remotely.
func (c *Controller) RequestUpdate(ctx context.Context, id int, in models.PostInput) (models.Post, error) {
	in = models.NewPostInput(in.Author, in.Caption, in.ImageURL)
	if err := ValidateInput(in); err != nil {
		return models.Post{}, err
	}
	p, err := c.service.UpdatePost(ctx, id, in)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return p, nil
}

// ApplyUpdate replaces a post in place, keeping its id and original creation time.
func (c *Controller) ApplyUpdate(id int, p models.Post) models.Post {
	if p.ID != id {
		c.log.Warn().Int("post_id", id).Int("returned_id", p.ID).Msg("service returned a different id for update, keeping the held id")
		p.ID = id
	}
	if held, ok := c.rec.State().Find(id); ok {
		p.CreatedAt = held.CreatedAt
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = c.now()
	}
	c.rec.OnUpdate(id, p)
	c.log.Debug().Int("post_id", id).Msg("post updated")
	return p
}

// Update validates, updates remotely, and replaces the post. Posts that are
// not held are rejected before any network call.
func (c *Controller) Update(ctx context.Context, id int, in models.PostInput) (models.Post, error) {
	if _, ok := c.Post(id); !ok {
		return models.Post{}, fmt.Errorf("failed to update post %d: %w", id, ErrPostNotFound)
	}
	p, err := c.RequestUpdate(ctx, id, in)
	if err != nil {
		return models.Post{}, err
	}
	return c.ApplyUpdate(id, p), nil
}

// RequestDelete deletes the post remotely.
func (c *Controller) RequestDelete(ctx context.Context, id int) error {
	if err := c.service.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return nil
}

// ApplyDelete removes a post and keeps the current page, clamped.
func (c *Controller) ApplyDelete(id int) {
	c.rec.OnDelete(id)
	c.log.Debug().Int("post_id", id).Msg("post deleted")
}

// Delete deletes remotely and removes the post.
func (c *Controller) Delete(ctx context.Context, id int) error {
	if err := c.RequestDelete(ctx, id); err != nil {
		return err
	}
	c.ApplyDelete(id)
	return nil
}

// Search filters the feed and shows page 1. Does nothing when search is off.
func (c *Controller) Search(q string) {
	if !c.searchEnabled {
		return
	}
	c.rec.OnSearch(q)
}

// GoToPage moves to page n.
func (c *Controller) GoToPage(n int) error {
	return c.rec.OnPage(n)
}

// NextPage moves forward one page. Returns false on the last page.
func (c *Controller) NextPage() bool {
	return c.rec.OnPage(c.rec.Pager().Page()+1) == nil
}

// PrevPage moves back one page. Returns false on the first page.
func (c *Controller) PrevPage() bool {
	return c.rec.OnPage(c.rec.Pager().Page()-1) == nil
}

// PageView is a snapshot of what the feed currently shows.
type PageView struct {
	Posts      []models.Post
	Page       int
	TotalPages int
	Labels     []PageLabel
	Query      string
	Total      int
}

// Page returns the current page view.
func (c *Controller) Page() PageView {
	pager := c.rec.Pager()
	return PageView{
		Posts:      append([]models.Post(nil), c.rec.CurrentSlice()...),
		Page:       pager.Page(),
		TotalPages: pager.TotalPages(),
		Labels:     pager.Labels(),
		Query:      c.rec.State().Query(),
		Total:      len(c.rec.State().Filtered()),
	}
}

// Posts returns a copy of every held post, newest first.
func (c *Controller) Posts() []models.Post {
	return append([]models.Post(nil), c.rec.State().All()...)
}

// Post returns the held copy of a post.
func (c *Controller) Post(id int) (models.Post, bool) {
	return c.rec.State().Find(id)
}

// Dispatch runs an intent. Edit, create, and update intents return the
// resulting post; the others return the zero post.
func (c *Controller) Dispatch(ctx context.Context, in Intent) (models.Post, error) {
	switch it := in.(type) {
	case EditRequested:
		p, ok := c.Post(it.Post.ID)
		if !ok {
			return models.Post{}, fmt.Errorf("failed to edit post %d: %w", it.Post.ID, ErrPostNotFound)
		}
		return p, nil
	case DeleteRequested:
		return models.Post{}, c.Delete(ctx, it.ID)
	case CreateRequested:
		return c.Create(ctx, it.Input)
	case UpdateRequested:
		return c.Update(ctx, it.ID, it.Input)
	case SearchRequested:
		if !c.searchEnabled {
			return models.Post{}, ErrSearchDisabled
		}
		c.Search(it.Query)
		return models.Post{}, nil
	case PageRequested:
		return models.Post{}, c.GoToPage(it.Page)
	}
	return models.Post{}, fmt.Errorf("unknown intent %T", in)
}
