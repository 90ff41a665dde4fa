// ABOUTME: Create and edit modal for posts with author, caption, and image URL inputs.
// ABOUTME: Closing is two-phase so the submitted values stay readable until the save lands.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/minigram/internal/models"
)

// FormMode says whether the form creates a post or edits one.
type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
)

const (
	fieldAuthor = iota
	fieldCaption
	fieldImage
	fieldCount
)

// FormSnapshot is what the form held when it began closing.
type FormSnapshot struct {
	Mode   FormMode
	PostID int
	Input  models.PostInput
}

// FormAction is the outcome of a key press in the form.
type FormAction int

const (
	FormNone FormAction = iota
	FormSubmit
	FormCancel
)

// PostForm is the post editor modal.
type PostForm struct {
	open    bool
	closing bool
	mode    FormMode
	postID  int
	inputs  [fieldCount]textinput.Model
	focus   int
	errs    []string
}

// NewPostForm creates a closed form.
func NewPostForm() PostForm {
	var inputs [fieldCount]textinput.Model
	placeholders := [fieldCount]string{"your name", "what's happening?", "https://..."}
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Width = 50
		inputs[i] = in
	}
	inputs[fieldCaption].CharLimit = 500
	return PostForm{inputs: inputs}
}

// OpenCreate opens an empty form.
func (f *PostForm) OpenCreate() tea.Cmd {
	f.reset()
	f.open = true
	f.mode = FormCreate
	return f.focusField(fieldAuthor)
}

// OpenEdit opens the form filled with a post's current values.
func (f *PostForm) OpenEdit(p models.Post) tea.Cmd {
	f.reset()
	f.open = true
	f.mode = FormEdit
	f.postID = p.ID
	f.inputs[fieldAuthor].SetValue(p.Author)
	f.inputs[fieldCaption].SetValue(p.Caption)
	f.inputs[fieldImage].SetValue(p.ImageURL)
	return f.focusField(fieldAuthor)
}

// IsOpen reports whether the form is shown.
func (f PostForm) IsOpen() bool { return f.open }

// Closing reports whether a submit is waiting on its save.
func (f PostForm) Closing() bool { return f.closing }

// Mode returns the form mode.
func (f PostForm) Mode() FormMode { return f.mode }

// PostID returns the id of the post being edited.
func (f PostForm) PostID() int { return f.postID }

// Input returns the current field values, trimmed.
func (f PostForm) Input() models.PostInput {
	return models.NewPostInput(
		f.inputs[fieldAuthor].Value(),
		f.inputs[fieldCaption].Value(),
		f.inputs[fieldImage].Value(),
	)
}

// Errors returns the validation messages shown under the fields.
func (f PostForm) Errors() []string { return f.errs }

// SetErrors shows validation messages.
func (f *PostForm) SetErrors(msgs []string) {
	f.errs = msgs
}

// BeginClose marks the form as closing and returns its values. The values
// stay readable until FinishClose.
func (f *PostForm) BeginClose() FormSnapshot {
	f.closing = true
	f.errs = nil
	return FormSnapshot{Mode: f.mode, PostID: f.postID, Input: f.Input()}
}

// AbortClose keeps the form open after a failed save.
func (f *PostForm) AbortClose() {
	f.closing = false
}

// FinishClose hides the form and clears its values.
func (f *PostForm) FinishClose() {
	f.reset()
}

// Update handles a key press. Input is ignored while a save is pending.
func (f *PostForm) Update(msg tea.KeyMsg) (FormAction, tea.Cmd) {
	if !f.open || f.closing {
		return FormNone, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		return FormCancel, nil
	case tea.KeyCtrlS:
		return FormSubmit, nil
	case tea.KeyTab, tea.KeyDown:
		return FormNone, f.focusField((f.focus + 1) % fieldCount)
	case tea.KeyShiftTab, tea.KeyUp:
		return FormNone, f.focusField((f.focus + fieldCount - 1) % fieldCount)
	case tea.KeyEnter:
		if f.focus == fieldCount-1 {
			return FormSubmit, nil
		}
		return FormNone, f.focusField(f.focus + 1)
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return FormNone, cmd
}

// View renders the modal.
func (f PostForm) View() string {
	if !f.open {
		return ""
	}
	var b strings.Builder
	title := "New post"
	if f.mode == FormEdit {
		title = "Edit post"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Author", "Caption", "Image URL"}
	for i, in := range f.inputs {
		b.WriteString(stepStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	for _, e := range f.errs {
		b.WriteString(errorStyle.Render("• " + e))
		b.WriteString("\n")
	}

	if f.closing {
		b.WriteString(promptStyle.Render("Saving..."))
	} else {
		b.WriteString(promptStyle.Render("tab next field • enter on last field or ctrl+s save • esc cancel"))
	}
	return modalStyle.Render(b.String())
}

func (f *PostForm) focusField(i int) tea.Cmd {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *PostForm) reset() {
	f.open = false
	f.closing = false
	f.mode = FormCreate
	f.postID = 0
	f.focus = fieldAuthor
	f.errs = nil
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
}
