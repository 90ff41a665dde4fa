// ABOUTME: Page math for the filtered feed: page counts, slices, and pager labels.
// ABOUTME: Pager holds the current page and rejects out-of-range moves.
package feed

import (
	"strconv"

	"github.com/2389-research/minigram/internal/models"
)

// DefaultPageSize is the number of posts shown per page.
const DefaultPageSize = 10

// maxPlainLabels is the largest page count shown without ellipses.
const maxPlainLabels = 7

// Ellipsis is the marker shown for skipped page ranges.
const Ellipsis = "…"

// PageCount returns ceil(n/size). Zero items means zero pages.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Slice returns the posts on the given 1-based page, clipped to bounds.
// Pages outside [1, PageCount] yield an empty slice.
func Slice(posts []models.Post, page, size int) []models.Post {
	if page < 1 || page > PageCount(len(posts), size) {
		return nil
	}
	start := (page - 1) * size
	end := start + size
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}

// PageLabel is one marker in the pager: a page number or an ellipsis.
type PageLabel struct {
	Page     int
	Ellipsis bool
}

func (l PageLabel) String() string {
	if l.Ellipsis {
		return Ellipsis
	}
	return strconv.Itoa(l.Page)
}

// PageLabels returns the pager markers for the current page.
func PageLabels(current, total int) []PageLabel {
	if total <= 0 {
		return nil
	}
	labels := make([]PageLabel, 0, maxPlainLabels)
	if total <= maxPlainLabels {
		for p := 1; p <= total; p++ {
			labels = append(labels, PageLabel{Page: p})
		}
		return labels
	}

	add := func(l PageLabel) {
		if l.Ellipsis && len(labels) > 0 && labels[len(labels)-1].Ellipsis {
			return
		}
		labels = append(labels, l)
	}

	add(PageLabel{Page: 1})
	if current > 3 {
		add(PageLabel{Ellipsis: true})
	}
	for p := max(2, current-1); p <= min(total-1, current+1); p++ {
		add(PageLabel{Page: p})
	}
	if current < total-2 {
		add(PageLabel{Ellipsis: true})
	}
	add(PageLabel{Page: total})
	return labels
}

// Pager tracks the current page over a filtered list of known length.
type Pager struct {
	page  int
	size  int
	total int
}

// NewPager creates a pager on page 1. Non-positive sizes fall back to DefaultPageSize.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{page: 1, size: size}
}

// Page returns the current 1-based page.
func (p *Pager) Page() int { return p.page }

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// TotalPages returns the page count for the last SetTotal.
func (p *Pager) TotalPages() int { return p.total }

// SetTotal records the filtered length and clamps the current page into range.
func (p *Pager) SetTotal(n int) {
	p.total = PageCount(n, p.size)
	p.clamp()
}

// SetPage moves to page n. Out-of-range pages are rejected and leave the page unchanged.
func (p *Pager) SetPage(n int) error {
	if n < 1 || n > p.total {
		return ErrPageOutOfRange
	}
	p.page = n
	return nil
}

// Reset moves back to page 1.
func (p *Pager) Reset() {
	p.page = 1
}

// Next moves forward one page. Returns false on the last page.
func (p *Pager) Next() bool {
	return p.SetPage(p.page+1) == nil
}

// Prev moves back one page. Returns false on the first page.
func (p *Pager) Prev() bool {
	return p.SetPage(p.page-1) == nil
}

// Labels returns the pager markers for the current state.
func (p *Pager) Labels() []PageLabel {
	return PageLabels(p.page, p.total)
}

func (p *Pager) clamp() {
	if p.page > p.total {
		p.page = p.total
	}
	if p.page < 1 {
		p.page = 1
	}
}
