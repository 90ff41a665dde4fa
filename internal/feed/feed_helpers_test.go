// ABOUTME: Shared fixtures for feed tests: post builders, a recording sink, and a fake service.
// ABOUTME: The fake service records calls so tests can assert no network work happened.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/2389-research/minigram/internal/models"
	"github.com/2389-research/minigram/internal/storage"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func post(id int, author, caption string) models.Post {
	return models.Post{
		ID:        id,
		Author:    author,
		Caption:   caption,
		ImageURL:  fmt.Sprintf("https://img.example/%d.jpg", id),
		CreatedAt: fixedNow,
	}
}

// numbered returns n posts with ids 1..n.
func numbered(n int) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = post(i+1, fmt.Sprintf("User %d", i+1), fmt.Sprintf("caption %d", i+1))
	}
	return posts
}

func postIDs(posts []models.Post) []int {
	out := make([]int, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

// recordingSink keeps a log of calls and a model of what is on screen.
type recordingSink struct {
	calls  []string
	shown  []int
	empty  bool
	patchd map[int]PatchFields
}

func newRecordingSink() *recordingSink {
	return &recordingSink{patchd: map[int]PatchFields{}}
}

func (s *recordingSink) Render(posts []models.Post) {
	s.calls = append(s.calls, "render")
	s.shown = postIDs(posts)
	s.empty = false
}

func (s *recordingSink) RenderLoading() {
	s.calls = append(s.calls, "loading")
	s.shown = nil
}

func (s *recordingSink) RenderEmpty() {
	s.calls = append(s.calls, "empty")
	s.shown = nil
	s.empty = true
}

func (s *recordingSink) PatchItem(id int, fields PatchFields) {
	s.calls = append(s.calls, fmt.Sprintf("patch %d", id))
	s.patchd[id] = fields
}

func (s *recordingSink) RemoveItem(id int) {
	s.calls = append(s.calls, fmt.Sprintf("remove %d", id))
	out := s.shown[:0:0]
	for _, v := range s.shown {
		if v != id {
			out = append(out, v)
		}
	}
	s.shown = out
}

func (s *recordingSink) PrependItem(p models.Post) {
	s.calls = append(s.calls, fmt.Sprintf("prepend %d", p.ID))
	s.shown = append([]int{p.ID}, s.shown...)
	s.empty = false
}

func (s *recordingSink) last() string {
	if len(s.calls) == 0 {
		return ""
	}
	return s.calls[len(s.calls)-1]
}

// fakeService is an in-memory PostService.
type fakeService struct {
	posts     []models.Post
	createID  int
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	idShift   int
	calls     []string
}

var _ storage.PostService = (*fakeService)(nil)

func (f *fakeService) ListPosts(ctx context.Context) ([]models.Post, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Post(nil), f.posts...), nil
}

func (f *fakeService) GetPost(ctx context.Context, id int) (models.Post, error) {
	f.calls = append(f.calls, fmt.Sprintf("get %d", id))
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, &storage.ServiceError{Op: "get", StatusCode: 404}
}

func (f *fakeService) CreatePost(ctx context.Context, in models.PostInput) (models.Post, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return models.Post{}, f.createErr
	}
	id := f.createID
	if id == 0 {
		id = 101
	}
	return models.Post{ID: id, Author: in.Author, Caption: in.Caption, ImageURL: in.ImageURL, CreatedAt: fixedNow}, nil
}

func (f *fakeService) UpdatePost(ctx context.Context, id int, in models.PostInput) (models.Post, error) {
	f.calls = append(f.calls, fmt.Sprintf("update %d", id))
	if f.updateErr != nil {
		return models.Post{}, f.updateErr
	}
	return models.Post{ID: id + f.idShift, Author: in.Author, Caption: in.Caption, ImageURL: in.ImageURL, UpdatedAt: fixedNow.Add(time.Hour)}, nil
}

func (f *fakeService) DeletePost(ctx context.Context, id int) error {
	f.calls = append(f.calls, fmt.Sprintf("delete %d", id))
	return f.deleteErr
}
