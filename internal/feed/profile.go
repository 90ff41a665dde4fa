// ABOUTME: Profile grid helpers.
// ABOUTME: Narrows the feed to one author for the profile view.
package feed

import (
	"strings"

	"github.com/2389-research/minigram/internal/models"
)

// FilterByAuthor returns posts whose author contains the given name, case-insensitively.
// A blank name keeps every post.
func FilterByAuthor(posts []models.Post, author string) []models.Post {
	needle := NormalizeQuery(author)
	if needle == "" {
		return append([]models.Post(nil), posts...)
	}
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(NormalizeQuery(p.Author), needle) {
			out = append(out, p)
		}
	}
	return out
}
