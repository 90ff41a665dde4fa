// ABOUTME: Tests for the list state: loading, filtering, and single-post mutations.
// ABOUTME: Checks refilter determinism and the one-post-per-id invariant.
package feed

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/minigram/internal/models"
)

func loadedState(posts ...models.Post) *ListState {
	s := NewListState(zerolog.Nop())
	s.Load(posts)
	s.Refilter()
	return s
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "sunset", NormalizeQuery("  SunSet "))
	assert.Equal(t, "", NormalizeQuery("   "))
	// Decomposed "é" compares equal to the composed form.
	assert.Equal(t, "caf\u00e9", NormalizeQuery("Cafe\u0301"))
}

func TestListState_LoadCopiesInput(t *testing.T) {
	in := numbered(3)
	s := loadedState(in...)
	in[0].Author = "mutated"

	got, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, "User 1", got.Author)
}

func TestListState_EmptyQueryKeepsOrder(t *testing.T) {
	s := loadedState(numbered(5)...)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, postIDs(s.Filtered()))
}

func TestListState_RefilterMatchesAuthorOrCaption(t *testing.T) {
	s := loadedState(
		post(1, "Alice", "beach day"),
		post(2, "Bob", "Sunset at the BEACH"),
		post(3, "Beachcomber", "shells"),
		post(4, "Dana", "mountains"),
	)

	s.SetSearchQuery("  Beach ")
	assert.Equal(t, "beach", s.Query())
	assert.Equal(t, []int{1, 2, 3, 4}, postIDs(s.Filtered()), "SetSearchQuery does not refilter")

	s.Refilter()
	assert.Equal(t, []int{1, 2, 3}, postIDs(s.Filtered()))
}

func TestListState_RefilterIdempotent(t *testing.T) {
	queries := []string{"", "user 1", "caption", "zzz", "1"}
	for _, q := range queries {
		s := loadedState(numbered(15)...)
		s.SetSearchQuery(q)
		s.Refilter()
		first := postIDs(s.Filtered())
		s.Refilter()
		assert.Equal(t, first, postIDs(s.Filtered()), "query %q", q)

		// Order follows the full list.
		pos := map[int]int{}
		for i, p := range s.All() {
			pos[p.ID] = i
		}
		for i := 1; i < len(first); i++ {
			assert.Less(t, pos[first[i-1]], pos[first[i]])
		}
	}
}

func TestListState_InsertNewPrepends(t *testing.T) {
	s := loadedState(numbered(3)...)
	require.NoError(t, s.InsertNew(post(42, "New", "fresh post")))
	s.Refilter()
	assert.Equal(t, 42, s.Filtered()[0].ID)
	assert.Len(t, s.All(), 4)
}

func TestListState_InsertNewRejectsDuplicate(t *testing.T) {
	s := loadedState(numbered(3)...)
	assert.ErrorIs(t, s.InsertNew(post(2, "Dup", "duplicate")), ErrDuplicateID)
	assert.Len(t, s.All(), 3)
}

func TestListState_ReplaceKeepsPosition(t *testing.T) {
	s := loadedState(numbered(3)...)
	ok := s.Replace(2, post(2, "Edited", "new caption"))
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, postIDs(s.All()))
	assert.Equal(t, "Edited", s.All()[1].Author)
}

func TestListState_ReplaceMissingIsNoop(t *testing.T) {
	s := loadedState(numbered(3)...)
	before := append([]models.Post(nil), s.All()...)
	assert.False(t, s.Replace(99, post(99, "Ghost", "nothing")))
	assert.Equal(t, before, s.All())
}

func TestListState_ReplaceDoesNotAliasFiltered(t *testing.T) {
	s := loadedState(numbered(3)...)
	view := s.Filtered()
	s.Replace(1, post(1, "Edited", "changed"))
	assert.Equal(t, "User 1", view[0].Author, "earlier views stay stable until Refilter")
}

func TestListState_Remove(t *testing.T) {
	s := loadedState(numbered(3)...)
	assert.True(t, s.Remove(2))
	assert.Equal(t, []int{1, 3}, postIDs(s.All()))
}

func TestListState_RemoveMissingIsNoop(t *testing.T) {
	s := loadedState(numbered(3)...)
	before := append([]models.Post(nil), s.All()...)
	assert.False(t, s.Remove(99))
	assert.Equal(t, before, s.All())
}

func TestListState_MaxID(t *testing.T) {
	s := NewListState(zerolog.Nop())
	assert.Equal(t, 0, s.MaxID())
	s.Load([]models.Post{post(7, "a", "b"), post(150, "c", "d"), post(3, "e", "f")})
	assert.Equal(t, 150, s.MaxID())
}

func TestFilterByAuthor(t *testing.T) {
	posts := []models.Post{post(1, "Alice", "x"), post(2, "bob", "alice's cat"), post(3, "ALICE B", "y")}

	assert.Equal(t, []int{1, 3}, postIDs(FilterByAuthor(posts, " alice ")))
	assert.Equal(t, []int{1, 2, 3}, postIDs(FilterByAuthor(posts, "")))
	assert.Empty(t, FilterByAuthor(posts, "carol"))
}
