// ABOUTME: Transient notifications for the feed TUI.
// ABOUTME: Each toast has a uuid and expires on a tea.Tick unless dismissed first.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// DefaultToastDuration is how long a toast stays up.
const DefaultToastDuration = 3 * time.Second

// ToastKind selects a toast's color and icon.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
	ToastWarning
	ToastInfo
)

// Toast is one notification.
type Toast struct {
	ID      string
	Kind    ToastKind
	Message string
}

// toastExpiredMsg removes a toast when its timer fires.
type toastExpiredMsg struct {
	id string
}

// Toaster holds the visible toasts, oldest first.
type Toaster struct {
	toasts   []Toast
	duration time.Duration
}

// NewToaster creates a toaster. Non-positive durations use DefaultToastDuration.
func NewToaster(d time.Duration) Toaster {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return Toaster{duration: d}
}

// Push shows a toast and returns the command that expires it.
func (t *Toaster) Push(kind ToastKind, message string) tea.Cmd {
	id := uuid.NewString()
	t.toasts = append(t.toasts, Toast{ID: id, Kind: kind, Message: message})
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Dismiss removes a toast by id. Returns false when it is already gone.
func (t *Toaster) Dismiss(id string) bool {
	for i, toast := range t.toasts {
		if toast.ID == id {
			out := make([]Toast, 0, len(t.toasts)-1)
			out = append(out, t.toasts[:i]...)
			t.toasts = append(out, t.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Update handles expiry messages. Returns true when msg belonged to the toaster.
func (t *Toaster) Update(msg tea.Msg) bool {
	if m, ok := msg.(toastExpiredMsg); ok {
		t.Dismiss(m.id)
		return true
	}
	return false
}

// Toasts returns the visible toasts.
func (t Toaster) Toasts() []Toast {
	return t.toasts
}

// View renders the visible toasts, one per line.
func (t Toaster) View() string {
	if len(t.toasts) == 0 {
		return ""
	}
	lines := make([]string, len(t.toasts))
	for i, toast := range t.toasts {
		switch toast.Kind {
		case ToastSuccess:
			lines[i] = successStyle.Render("✓ " + toast.Message)
		case ToastError:
			lines[i] = errorStyle.Render("✗ " + toast.Message)
		case ToastWarning:
			lines[i] = warningStyle.Render("! " + toast.Message)
		default:
			lines[i] = infoStyle.Render("i " + toast.Message)
		}
	}
	return strings.Join(lines, "\n")
}
