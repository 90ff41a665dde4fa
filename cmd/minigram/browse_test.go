// ABOUTME: Tests for the line-mode feed browser.
// ABOUTME: Feeds scripted commands through an in-memory post service.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
	"github.com/2389-research/minigram/internal/render"
)

var browseNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type stubService struct {
	posts   []models.Post
	listErr error
}

func (s *stubService) ListPosts(context.Context) ([]models.Post, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Post(nil), s.posts...), nil
}

func (s *stubService) GetPost(context.Context, int) (models.Post, error) {
	return models.Post{}, errors.New("not used")
}

func (s *stubService) CreatePost(_ context.Context, in models.PostInput) (models.Post, error) {
	return models.Post{ID: 101, Author: in.Author, Caption: in.Caption, ImageURL: in.ImageURL, CreatedAt: browseNow}, nil
}

func (s *stubService) UpdatePost(_ context.Context, id int, in models.PostInput) (models.Post, error) {
	return models.Post{ID: id, Author: in.Author, Caption: in.Caption, ImageURL: in.ImageURL, UpdatedAt: browseNow}, nil
}

func (s *stubService) DeletePost(context.Context, int) error { return nil }

func stubPosts(n int) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{
			ID:        i + 1,
			Author:    fmt.Sprintf("User %d", i+1),
			Caption:   fmt.Sprintf("caption %d", i+1),
			ImageURL:  "https://x.example/img.jpg",
			CreatedAt: browseNow.Add(-time.Hour),
		}
	}
	return posts
}

func runScript(t *testing.T, svc *stubService, script string, opts ...feed.Option) string {
	t.Helper()
	var out bytes.Buffer
	sink := render.NewTextSink(&out, func() time.Time { return browseNow })
	opts = append(opts, feed.WithClock(func() time.Time { return browseNow }))
	ctrl := feed.NewController(svc, sink, opts...)

	if err := browse(context.Background(), ctrl, strings.NewReader(script), &out); err != nil {
		t.Fatalf("browse error: %v", err)
	}
	return out.String()
}

func TestBrowseLoadsFirstPage(t *testing.T) {
	out := runScript(t, &stubService{posts: stubPosts(25)}, "quit\n")

	if !strings.Contains(out, "Loading posts...") {
		t.Error("expected loading line")
	}
	if !strings.Contains(out, "[10] User 10") || strings.Contains(out, "[11] User 11") {
		t.Errorf("expected exactly page 1, got:\n%s", out)
	}
	if !strings.Contains(out, "Page 1 of 3: [1] 2 3") {
		t.Errorf("expected pager line, got:\n%s", out)
	}
}

func TestBrowsePaging(t *testing.T) {
	out := runScript(t, &stubService{posts: stubPosts(25)}, "next\npage 3\nnext\nprev\n")

	if !strings.Contains(out, "[21] User 21") {
		t.Errorf("expected page 3 cards, got:\n%s", out)
	}
	if !strings.Contains(out, "already on the last page") {
		t.Error("expected last-page notice")
	}
	if !strings.Contains(out, "Page 2 of 3") {
		t.Error("expected to end on page 2")
	}
}

func TestBrowseSearch(t *testing.T) {
	out := runScript(t, &stubService{posts: stubPosts(25)}, "search user 2\nsearch nobody\n")

	if !strings.Contains(out, "Page 1 of 1: [1]") {
		t.Errorf("expected single page of matches, got:\n%s", out)
	}
	if !strings.Contains(out, "No posts to show.") {
		t.Errorf("expected empty placeholder for no matches, got:\n%s", out)
	}
}

func TestBrowseSearchDisabled(t *testing.T) {
	out := runScript(t, &stubService{posts: stubPosts(3)}, "search user\n", feed.WithSearch(false))
	if !strings.Contains(out, "error: search is disabled") {
		t.Errorf("expected disabled error, got:\n%s", out)
	}
}

func TestBrowseCreateEditDelete(t *testing.T) {
	script := strings.Join([]string{
		"create Ann | sunset at the pier | https://x.example/s.jpg",
		"edit 2 Bea | new caption | https://x.example/b.jpg",
		"delete 3",
		"",
	}, "\n")
	out := runScript(t, &stubService{posts: stubPosts(3)}, script)

	for _, want := range []string{
		"new [101] Ann (just now)",
		"updated [2] Bea (just now)",
		"removed [3]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestBrowseValidationAndErrors(t *testing.T) {
	script := "create A | hi | nope\ndelete 99\nedit x a|b|c\nfrobnicate\n"
	out := runScript(t, &stubService{posts: stubPosts(3)}, script)

	for _, want := range []string{
		"author must be at least 2 characters",
		"post 99 not found",
		`invalid post id "x"`,
		`unknown command "frobnicate"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestBrowseLoadFailure(t *testing.T) {
	out := runScript(t, &stubService{listErr: errors.New("offline")}, "")
	if !strings.Contains(out, "error: failed to load posts: offline") {
		t.Errorf("expected load error, got:\n%s", out)
	}
	if !strings.Contains(out, "No posts to show.") {
		t.Error("expected empty placeholder after failed first load")
	}
}

func TestParsePostFields(t *testing.T) {
	in, err := parsePostFields(" Ann |  hello there | https://x/y ")
	if err != nil {
		t.Fatalf("parsePostFields error: %v", err)
	}
	want := models.PostInput{Author: "Ann", Caption: "hello there", ImageURL: "https://x/y"}
	if in != want {
		t.Errorf("got %+v, want %+v", in, want)
	}

	if _, err := parsePostFields("only two | parts"); err == nil {
		t.Error("expected error for missing field")
	}
}
