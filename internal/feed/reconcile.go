// ABOUTME: Applies single-post mutations to the list state and keeps the sink in step.
// ABOUTME: Chooses a one-item patch when it provably yields the current page, else re-renders.
package feed

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/2389-research/minigram/internal/models"
)

// Reconciler owns the list state and pager and drives a Sink.
// After every call the sink shows Slice(filtered, page, size), or the empty
// placeholder when nothing matches.
type Reconciler struct {
	state    *ListState
	pager    *Pager
	sink     Sink
	log      zerolog.Logger
	rendered []int // ids in the sink, top to bottom
}

// NewReconciler creates a reconciler over an empty list state.
func NewReconciler(sink Sink, pageSize int, log zerolog.Logger) *Reconciler {
	if sink == nil {
		sink = DiscardSink{}
	}
	return &Reconciler{
		state: NewListState(log),
		pager: NewPager(pageSize),
		sink:  sink,
		log:   log,
	}
}

// State exposes the list state for reads.
func (r *Reconciler) State() *ListState { return r.state }

// Pager exposes the pager for reads.
func (r *Reconciler) Pager() *Pager { return r.pager }

// Rendered returns the ids currently shown by the sink.
func (r *Reconciler) Rendered() []int {
	return append([]int(nil), r.rendered...)
}

// CurrentSlice returns the posts on the current page.
func (r *Reconciler) CurrentSlice() []models.Post {
	return Slice(r.state.Filtered(), r.pager.Page(), r.pager.Size())
}

// BeginLoad shows the loading placeholder.
func (r *Reconciler) BeginLoad() {
	r.rendered = nil
	r.sink.RenderLoading()
}

// OnLoad replaces all posts and renders page 1.
func (r *Reconciler) OnLoad(posts []models.Post) {
	r.state.Load(posts)
	r.refresh()
	r.pager.Reset()
	r.renderPage()
}

// OnSearch applies a new query and renders page 1 of the result.
func (r *Reconciler) OnSearch(q string) {
	r.state.SetSearchQuery(q)
	r.refresh()
	r.pager.Reset()
	r.renderPage()
}

// OnPage moves to page n. Out-of-range pages are rejected without touching the view.
func (r *Reconciler) OnPage(n int) error {
	if err := r.pager.SetPage(n); err != nil {
		return err
	}
	r.renderPage()
	return nil
}

// OnCreate prepends a post and shows page 1.
func (r *Reconciler) OnCreate(p models.Post) error {
	wasFirstPage := r.pager.Page() == 1
	if err := r.state.InsertNew(p); err != nil {
		return err
	}
	r.refresh()
	r.pager.Reset()

	next := r.CurrentSlice()
	if wasFirstPage && len(r.rendered) > 0 && sameIDs(next, append([]int{p.ID}, r.rendered...)) {
		r.sink.PrependItem(p)
		r.rendered = ids(next)
		return nil
	}
	r.renderPage()
	return nil
}

// OnUpdate replaces a post in place and keeps the current page, clamped.
func (r *Reconciler) OnUpdate(id int, p models.Post) {
	if !r.state.Replace(id, p) {
		return
	}
	r.refresh()

	next := r.CurrentSlice()
	if containsID(next, p.ID) && sameIDs(next, r.rendered) {
		if err := r.patch(p.ID, PatchFieldsFor(p)); err != nil {
			r.logViewMiss(err)
		}
		return
	}
	r.renderPage()
}

// OnDelete removes a post and keeps the current page, clamped.
func (r *Reconciler) OnDelete(id int) {
	if !r.state.Remove(id) {
		r.log.Debug().Int("post_id", id).Msg("delete target not in list state")
		return
	}
	r.refresh()

	next := r.CurrentSlice()
	shown := hasID(r.rendered, id)
	if !shown && sameIDs(next, r.rendered) {
		r.logViewMiss(&NotFoundInView{ID: id})
		return
	}
	if shown && len(next) > 0 && sameIDs(next, without(r.rendered, id)) {
		r.sink.RemoveItem(id)
		r.rendered = ids(next)
		return
	}
	r.renderPage()
}

// refresh recomputes the filtered view and the page count.
func (r *Reconciler) refresh() {
	r.state.Refilter()
	r.pager.SetTotal(len(r.state.Filtered()))
}

// renderPage fully re-renders the current page.
func (r *Reconciler) renderPage() {
	page := r.CurrentSlice()
	if len(page) == 0 {
		r.rendered = nil
		r.sink.RenderEmpty()
		return
	}
	r.rendered = ids(page)
	r.sink.Render(page)
}

// patch refreshes one rendered post, reporting NotFoundInView when it is not shown.
func (r *Reconciler) patch(id int, fields PatchFields) error {
	for _, rid := range r.rendered {
		if rid == id {
			r.sink.PatchItem(id, fields)
			return nil
		}
	}
	return &NotFoundInView{ID: id}
}

func (r *Reconciler) logViewMiss(err error) {
	var miss *NotFoundInView
	if errors.As(err, &miss) {
		r.log.Debug().Int("post_id", miss.ID).Msg("reconcile target not in view")
	}
}

func ids(posts []models.Post) []int {
	out := make([]int, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func sameIDs(posts []models.Post, want []int) bool {
	if len(posts) != len(want) {
		return false
	}
	for i, p := range posts {
		if p.ID != want[i] {
			return false
		}
	}
	return true
}

func containsID(posts []models.Post, id int) bool {
	for _, p := range posts {
		if p.ID == id {
			return true
		}
	}
	return false
}

func hasID(list []int, id int) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func without(list []int, id int) []int {
	out := make([]int, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
