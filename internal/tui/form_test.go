// ABOUTME: Unit tests for the post create/edit modal.
// ABOUTME: Covers field focus, submit and cancel actions, and the two-phase close.
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/minigram/internal/models"
)

func typeInto(f *PostForm, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestPostForm_ClosedByDefault(t *testing.T) {
	f := NewPostForm()
	if f.IsOpen() {
		t.Error("expected new form to be closed")
	}
	if f.View() != "" {
		t.Error("expected closed form to render nothing")
	}
	if action, _ := f.Update(tea.KeyMsg{Type: tea.KeyEnter}); action != FormNone {
		t.Error("expected closed form to ignore keys")
	}
}

func TestPostForm_CreateFlow(t *testing.T) {
	f := NewPostForm()
	f.OpenCreate()
	if !f.IsOpen() || f.Mode() != FormCreate {
		t.Fatal("expected open create form")
	}

	typeInto(&f, "Ann")
	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeInto(&f, "hello there")
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(&f, "https://x.example/a.jpg")

	action, _ := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if action != FormSubmit {
		t.Fatalf("expected submit on enter in last field, got %d", action)
	}

	want := models.PostInput{Author: "Ann", Caption: "hello there", ImageURL: "https://x.example/a.jpg"}
	if got := f.Input(); got != want {
		t.Errorf("Input() = %+v, want %+v", got, want)
	}
}

func TestPostForm_EditPrefills(t *testing.T) {
	f := NewPostForm()
	f.OpenEdit(models.Post{ID: 7, Author: "Bob", Caption: "old caption", ImageURL: "https://x/y"})

	if f.Mode() != FormEdit || f.PostID() != 7 {
		t.Errorf("expected edit mode for post 7, got mode=%d id=%d", f.Mode(), f.PostID())
	}
	if f.Input().Caption != "old caption" {
		t.Errorf("expected prefilled caption, got %q", f.Input().Caption)
	}
	if !strings.Contains(f.View(), "Edit post") {
		t.Error("expected edit title in view")
	}
}

func TestPostForm_CancelAndCtrlS(t *testing.T) {
	f := NewPostForm()
	f.OpenCreate()

	if action, _ := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); action != FormSubmit {
		t.Error("expected ctrl+s to submit")
	}
	if action, _ := f.Update(tea.KeyMsg{Type: tea.KeyEsc}); action != FormCancel {
		t.Error("expected esc to cancel")
	}
}

func TestPostForm_TwoPhaseClose(t *testing.T) {
	f := NewPostForm()
	f.OpenEdit(models.Post{ID: 3, Author: "Cat", Caption: "meow meow", ImageURL: "https://x/c"})
	f.SetErrors([]string{"old error"})

	snap := f.BeginClose()
	if snap.Mode != FormEdit || snap.PostID != 3 || snap.Input.Author != "Cat" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if !f.IsOpen() || !f.Closing() {
		t.Error("expected form to stay open while closing")
	}
	if f.Input().Caption != "meow meow" {
		t.Error("expected values readable between BeginClose and FinishClose")
	}
	if len(f.Errors()) != 0 {
		t.Error("expected errors cleared on submit")
	}
	if action, _ := f.Update(tea.KeyMsg{Type: tea.KeyEsc}); action != FormNone {
		t.Error("expected keys ignored while a save is pending")
	}
	if !strings.Contains(f.View(), "Saving...") {
		t.Error("expected saving indicator while closing")
	}

	f.FinishClose()
	if f.IsOpen() || f.Closing() {
		t.Error("expected form closed after FinishClose")
	}
	if f.Input() != (models.PostInput{}) || f.PostID() != 0 {
		t.Error("expected values cleared after FinishClose")
	}
}

func TestPostForm_AbortClose(t *testing.T) {
	f := NewPostForm()
	f.OpenCreate()
	f.BeginClose()
	f.AbortClose()

	if !f.IsOpen() || f.Closing() {
		t.Error("expected form open and editable after AbortClose")
	}
}

func TestPostForm_ViewShowsErrors(t *testing.T) {
	f := NewPostForm()
	f.OpenCreate()
	f.SetErrors([]string{"image URL is required"})
	if !strings.Contains(f.View(), "image URL is required") {
		t.Error("expected validation message in view")
	}
}
