// ABOUTME: Unit tests for the toast notifier.
// ABOUTME: Covers push, expiry messages, dismissal, and rendering per kind.
package tui

import (
	"strings"
	"testing"
	"time"
)

func TestToaster_PushAssignsUniqueIDs(t *testing.T) {
	tr := NewToaster(0)
	if tr.duration != DefaultToastDuration {
		t.Errorf("expected default duration, got %v", tr.duration)
	}

	if cmd := tr.Push(ToastSuccess, "one"); cmd == nil {
		t.Fatal("expected expiry cmd from Push")
	}
	tr.Push(ToastError, "two")

	toasts := tr.Toasts()
	if len(toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(toasts))
	}
	if toasts[0].ID == "" || toasts[0].ID == toasts[1].ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", toasts[0].ID, toasts[1].ID)
	}
}

func TestToaster_ExpiryRemovesToast(t *testing.T) {
	tr := NewToaster(10 * time.Millisecond)
	cmd := tr.Push(ToastInfo, "hello")
	tr.Push(ToastInfo, "stays")

	msg := cmd()
	if _, ok := msg.(toastExpiredMsg); !ok {
		t.Fatalf("expected toastExpiredMsg, got %T", msg)
	}
	if !tr.Update(msg) {
		t.Error("expected toaster to handle its own expiry message")
	}
	toasts := tr.Toasts()
	if len(toasts) != 1 || toasts[0].Message != "stays" {
		t.Errorf("expected only the second toast left, got %+v", toasts)
	}
}

func TestToaster_Dismiss(t *testing.T) {
	tr := NewToaster(time.Second)
	tr.Push(ToastWarning, "careful")
	id := tr.Toasts()[0].ID

	if !tr.Dismiss(id) {
		t.Error("expected Dismiss to find the toast")
	}
	if tr.Dismiss(id) {
		t.Error("expected second Dismiss to report missing")
	}
	if tr.View() != "" {
		t.Error("expected empty view with no toasts")
	}
}

func TestToaster_UpdateIgnoresOtherMessages(t *testing.T) {
	tr := NewToaster(time.Second)
	if tr.Update("not a toast") {
		t.Error("expected unrelated message to be ignored")
	}
}

func TestToaster_ViewShowsEveryKind(t *testing.T) {
	tr := NewToaster(time.Second)
	tr.Push(ToastSuccess, "saved")
	tr.Push(ToastError, "broken")
	tr.Push(ToastWarning, "careful")
	tr.Push(ToastInfo, "fyi")

	view := tr.View()
	for _, want := range []string{"✓ saved", "✗ broken", "! careful", "i fyi"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}
