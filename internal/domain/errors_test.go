package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := Errorf(KindGroupNotFound, "Group Not Found", "group %q not found", "work")
	wrapped := fmt.Errorf("update link: %w", err)

	if !errors.Is(wrapped, ErrGroupNotFound) {
		t.Error("expected wrapped error to match ErrGroupNotFound")
	}
	if errors.Is(wrapped, ErrLinkNotFound) {
		t.Error("did not expect wrapped error to match ErrLinkNotFound")
	}
	if KindOf(wrapped) != KindGroupNotFound {
		t.Errorf("KindOf() = %v, want %v", KindOf(wrapped), KindGroupNotFound)
	}
	if TitleOf(wrapped) != "Group Not Found" {
		t.Errorf("TitleOf() = %q", TitleOf(wrapped))
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(KindConfigUnreadable, "Configuration Error", "Failed to read configuration file", cause)

	if !errors.Is(err, cause) {
		t.Error("expected error chain to contain cause")
	}
	if got := err.Error(); got != "Failed to read configuration file: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindOfPlainError(t *testing.T) {
	if KindOf(errors.New("boom")) != KindUnknown {
		t.Error("plain errors should have KindUnknown")
	}
	if TitleOf(errors.New("boom")) != "Error" {
		t.Error("plain errors should have default title")
	}
}
