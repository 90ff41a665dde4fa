// ABOUTME: Interactive feed screen: paginated cards, search, create, edit, and delete.
// ABOUTME: Network calls run as tea.Cmds; their results are applied to the controller in Update.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
	"github.com/2389-research/minigram/internal/render"
)

// postsLoadedMsg carries the result of a load.
type postsLoadedMsg struct {
	posts []models.Post
	err   error
}

// postSavedMsg carries the result of a create or update.
type postSavedMsg struct {
	snap FormSnapshot
	post models.Post
	err  error
}

// postDeletedMsg carries the result of a delete.
type postDeletedMsg struct {
	id  int
	err error
}

// FeedModel is the bubbletea model for the feed screen.
type FeedModel struct {
	ctrl        *feed.Controller
	view        *FeedView
	profile     models.Profile
	form        PostForm
	toaster     Toaster
	spinner     spinner.Model
	search      textinput.Model
	searching   bool
	showProfile bool
	selected    int
	confirmID   int
	busy        bool
	quitting    bool
	now         func() time.Time
}

// NewFeedModel creates the feed screen over a controller whose sink is view.
// The model starts busy because Init issues the first load.
func NewFeedModel(ctrl *feed.Controller, view *FeedView, profile models.Profile) FeedModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	search := textinput.New()
	search.Placeholder = "search author or caption"
	search.Prompt = "/ "
	search.Width = 40

	return FeedModel{
		ctrl:    ctrl,
		view:    view,
		profile: profile.WithDefaults(),
		form:    NewPostForm(),
		toaster: NewToaster(DefaultToastDuration),
		spinner: s,
		search:  search,
		busy:    true,
		now:     time.Now,
	}
}

// Init implements tea.Model.
func (m FeedModel) Init() tea.Cmd {
	m.ctrl.BeginLoad()
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m FeedModel) loadCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		posts, err := ctrl.RequestLoad(context.Background())
		return postsLoadedMsg{posts: posts, err: err}
	}
}

// Update implements tea.Model.
func (m FeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.toaster.Update(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch {
		case m.form.IsOpen():
			return m.updateForm(msg)
		case m.confirmID != 0:
			return m.updateConfirm(msg)
		case m.searching:
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)

	case postsLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.ctrl.FailLoad()
			return m, m.toaster.Push(ToastError, msg.err.Error())
		}
		m.ctrl.ApplyLoad(msg.posts)
		m.selected = 0
		return m, nil

	case postSavedMsg:
		return m.applySaved(msg)

	case postDeletedMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.toaster.Push(ToastError, msg.err.Error())
		}
		m.ctrl.ApplyDelete(msg.id)
		m.clampSelection()
		return m, m.toaster.Push(ToastSuccess, "Post deleted")

	case spinner.TickMsg:
		if m.view.Mode() == ViewLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m FeedModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft:
		return m.changePage(m.ctrl.PrevPage)
	case tea.KeyRight:
		return m.changePage(m.ctrl.NextPage)
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case tea.KeyDown:
		if m.selected < len(m.view.Posts())-1 {
			m.selected++
		}
		return m, nil
	case tea.KeyEsc:
		m.showProfile = false
		return m, nil
	case tea.KeyRunes:
	default:
		return m, nil
	}

	switch msg.Runes[0] {
	case 'q':
		m.quitting = true
		return m, tea.Quit
	case 'h':
		return m.changePage(m.ctrl.PrevPage)
	case 'l':
		return m.changePage(m.ctrl.NextPage)
	case 'k':
		if m.selected > 0 {
			m.selected--
		}
	case 'j':
		if m.selected < len(m.view.Posts())-1 {
			m.selected++
		}
	case 'p':
		m.showProfile = !m.showProfile
	case 'r':
		if m.busy {
			return m, m.toaster.Push(ToastWarning, "Still working on the last request")
		}
		m.busy = true
		m.ctrl.BeginLoad()
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	case '/':
		if !m.ctrl.SearchEnabled() {
			return m, nil
		}
		m.searching = true
		return m, m.search.Focus()
	case 'n':
		if m.busy {
			return m, m.toaster.Push(ToastWarning, "Still working on the last request")
		}
		return m, m.form.OpenCreate()
	case 'e':
		p, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		current, err := m.ctrl.Dispatch(context.Background(), feed.EditRequested{Post: p})
		if err != nil {
			return m, m.toaster.Push(ToastError, err.Error())
		}
		return m, m.form.OpenEdit(current)
	case 'd':
		if p, ok := m.selectedPost(); ok {
			m.confirmID = p.ID
		}
	}
	return m, nil
}

func (m FeedModel) changePage(move func() bool) (tea.Model, tea.Cmd) {
	if move() {
		m.selected = 0
	}
	return m, nil
}

func (m FeedModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.Search(m.search.Value())
	m.selected = 0
	return m, cmd
}

func (m FeedModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	if msg.Type == tea.KeyRunes && (msg.Runes[0] == 'y' || msg.Runes[0] == 'Y') {
		m.confirmID = 0
		if m.busy {
			return m, m.toaster.Push(ToastWarning, "Still working on the last request")
		}
		m.busy = true
		ctrl := m.ctrl
		return m, func() tea.Msg {
			return postDeletedMsg{id: id, err: ctrl.RequestDelete(context.Background(), id)}
		}
	}
	m.confirmID = 0
	return m, nil
}

func (m FeedModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.form.Update(msg)
	switch action {
	case FormCancel:
		m.form.FinishClose()
		return m, nil
	case FormSubmit:
		if m.busy {
			return m, m.toaster.Push(ToastWarning, "Still working on the last request")
		}
		if err := feed.ValidateInput(m.form.Input()); err != nil {
			var ve *feed.ValidationError
			if errors.As(err, &ve) {
				m.form.SetErrors(ve.Messages)
				return m, m.toaster.Push(ToastError, ve.Messages[0])
			}
			return m, m.toaster.Push(ToastError, err.Error())
		}
		m.busy = true
		snap := m.form.BeginClose()
		return m, m.saveCmd(snap)
	}
	return m, cmd
}

func (m FeedModel) saveCmd(snap FormSnapshot) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		var (
			p   models.Post
			err error
		)
		if snap.Mode == FormEdit {
			p, err = ctrl.RequestUpdate(context.Background(), snap.PostID, snap.Input)
		} else {
			p, err = ctrl.RequestCreate(context.Background(), snap.Input)
		}
		return postSavedMsg{snap: snap, post: p, err: err}
	}
}

func (m FeedModel) applySaved(msg postSavedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.form.AbortClose()
		var ve *feed.ValidationError
		if errors.As(msg.err, &ve) {
			m.form.SetErrors(ve.Messages)
			return m, m.toaster.Push(ToastError, ve.Messages[0])
		}
		return m, m.toaster.Push(ToastError, msg.err.Error())
	}

	if msg.snap.Mode == FormEdit {
		m.ctrl.ApplyUpdate(msg.snap.PostID, msg.post)
		m.form.FinishClose()
		m.clampSelection()
		return m, m.toaster.Push(ToastSuccess, "Post updated")
	}

	if _, err := m.ctrl.ApplyCreate(msg.post); err != nil {
		m.form.AbortClose()
		return m, m.toaster.Push(ToastError, err.Error())
	}
	m.form.FinishClose()
	m.selected = 0
	return m, m.toaster.Push(ToastSuccess, "Post created")
}

func (m FeedModel) selectedPost() (models.Post, bool) {
	posts := m.view.Posts()
	if m.selected < 0 || m.selected >= len(posts) {
		return models.Post{}, false
	}
	return posts[m.selected], true
}

func (m *FeedModel) clampSelection() {
	if n := len(m.view.Posts()); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// View implements tea.Model.
func (m FeedModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   MINIGRAM"))
	b.WriteString(titleStyle.Render(" - Feed"))
	b.WriteString("\n\n")

	if m.ctrl.SearchEnabled() && (m.searching || m.search.Value() != "") {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.form.IsOpen():
		b.WriteString(m.form.View())
		b.WriteString("\n")
	case m.showProfile:
		b.WriteString(m.profileView())
		b.WriteString("\n")
	default:
		b.WriteString(m.feedBody())
	}

	if m.confirmID != 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(fmt.Sprintf("Delete post %d? [y/n]", m.confirmID)))
		b.WriteString("\n")
	}

	if toasts := m.toaster.View(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m FeedModel) feedBody() string {
	var b strings.Builder
	switch m.view.Mode() {
	case ViewLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading posts...\n")
		return b.String()
	case ViewEmpty:
		if q := m.ctrl.Page().Query; q != "" {
			b.WriteString(dimStyle.Render(fmt.Sprintf("No posts match %q.", q)))
		} else {
			b.WriteString(dimStyle.Render("No posts to show."))
		}
		b.WriteString("\n")
		return b.String()
	}

	now := m.now()
	for i, p := range m.view.Posts() {
		b.WriteString(m.card(p, i == m.selected, now))
		b.WriteString("\n")
	}

	page := m.ctrl.Page()
	b.WriteString(m.pagerLine(page))
	b.WriteString("\n")
	return b.String()
}

func (m FeedModel) card(p models.Post, selected bool, now time.Time) string {
	body := fmt.Sprintf("%s  %s\n%s\n%s",
		authorStyle.Render(p.Author),
		dimStyle.Render(render.FormatRelative(p.Timestamp(), now)),
		render.Truncate(p.Caption, 200),
		dimStyle.Render(p.ImageURL),
	)
	if selected {
		return selectedCardStyle.Render(body)
	}
	return cardStyle.Render(body)
}

func (m FeedModel) pagerLine(page feed.PageView) string {
	parts := make([]string, 0, len(page.Labels))
	for _, l := range page.Labels {
		if !l.Ellipsis && l.Page == page.Page {
			parts = append(parts, currentPageStyle.Render(fmt.Sprintf("[%d]", l.Page)))
			continue
		}
		parts = append(parts, dimStyle.Render(l.String()))
	}
	return fmt.Sprintf("%s  %s", strings.Join(parts, " "), dimStyle.Render(fmt.Sprintf("(%d posts)", page.Total)))
}

func (m FeedModel) profileView() string {
	posts := feed.FilterByAuthor(m.ctrl.Posts(), m.profile.FilterAuthor)
	return modalStyle.Render(render.ProfileCard(m.profile, posts, m.now()))
}

func (m FeedModel) helpLine() string {
	if m.form.IsOpen() {
		return ""
	}
	parts := []string{"←/→ page", "↑/↓ select", "n new", "e edit", "d delete"}
	if m.ctrl.SearchEnabled() {
		parts = append(parts, "/ search")
	}
	parts = append(parts, "p profile", "r reload", "q quit")
	return strings.Join(parts, " • ")
}
