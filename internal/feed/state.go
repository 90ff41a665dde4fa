// ABOUTME: Authoritative in-memory list of posts plus the current search query.
// ABOUTME: Derives the filtered view deterministically from the posts and query.
package feed

import (
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/2389-research/minigram/internal/models"
)

// ListState owns the loaded posts, newest first, and the filtered view derived from them.
type ListState struct {
	all      []models.Post
	query    string
	filtered []models.Post
	log      zerolog.Logger
}

// NewListState creates an empty list state.
func NewListState(log zerolog.Logger) *ListState {
	return &ListState{log: log}
}

// NormalizeQuery trims, NFC-normalizes, and lower-cases a search string.
func NormalizeQuery(q string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(q)))
}

// Load replaces all posts. The filtered view is not recomputed until Refilter.
func (s *ListState) Load(posts []models.Post) {
	s.all = append([]models.Post(nil), posts...)
}

// SetSearchQuery stores the normalized query. Call Refilter afterwards.
func (s *ListState) SetSearchQuery(q string) {
	s.query = NormalizeQuery(q)
}

// Refilter recomputes the filtered view from all posts and the query.
func (s *ListState) Refilter() {
	if s.query == "" {
		s.filtered = s.all
		return
	}
	filtered := make([]models.Post, 0, len(s.all))
	for _, p := range s.all {
		if Matches(p, s.query) {
			filtered = append(filtered, p)
		}
	}
	s.filtered = filtered
}

// Matches reports whether the post's author or caption contains the normalized query.
func Matches(p models.Post, normalizedQuery string) bool {
	if normalizedQuery == "" {
		return true
	}
	return strings.Contains(NormalizeQuery(p.Author), normalizedQuery) ||
		strings.Contains(NormalizeQuery(p.Caption), normalizedQuery)
}

// InsertNew prepends a post. Ids must stay unique.
func (s *ListState) InsertNew(p models.Post) error {
	if s.indexOf(p.ID) >= 0 {
		return ErrDuplicateID
	}
	all := make([]models.Post, 0, len(s.all)+1)
	all = append(all, p)
	s.all = append(all, s.all...)
	return nil
}

// Replace overwrites the post with the given id in place. Returns false when absent.
func (s *ListState) Replace(id int, p models.Post) bool {
	i := s.indexOf(id)
	if i < 0 {
		s.log.Warn().Int("post_id", id).Msg("replace target not in list state")
		return false
	}
	all := append([]models.Post(nil), s.all...)
	all[i] = p
	s.all = all
	return true
}

// Remove deletes the post with the given id. Returns false when absent.
func (s *ListState) Remove(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	all := make([]models.Post, 0, len(s.all)-1)
	all = append(all, s.all[:i]...)
	s.all = append(all, s.all[i+1:]...)
	return true
}

// Find returns the post with the given id.
func (s *ListState) Find(id int) (models.Post, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, false
	}
	return s.all[i], true
}

// MaxID returns the largest id held, or 0 when empty.
func (s *ListState) MaxID() int {
	maxID := 0
	for _, p := range s.all {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID
}

// All returns every held post, newest first.
func (s *ListState) All() []models.Post {
	return s.all
}

// Filtered returns the view computed by the last Refilter.
func (s *ListState) Filtered() []models.Post {
	return s.filtered
}

// Query returns the normalized search query.
func (s *ListState) Query() string {
	return s.query
}

func (s *ListState) indexOf(id int) int {
	for i, p := range s.all {
		if p.ID == id {
			return i
		}
	}
	return -1
}
