package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "edge references unknown node %q", "ghost")

	if !strings.Contains(err.Error(), "INVALID_GRAPH") {
		t.Errorf("missing code in %q", err.Error())
	}
	if !strings.Contains(err.Error(), `"ghost"`) {
		t.Errorf("missing formatted arg in %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "save layout %s", "abc")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("cause missing from %q", err.Error())
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeNotFound, "layout not found")

	if !Is(err, ErrCodeNotFound) {
		t.Error("Is failed for matching code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is matched wrong code")
	}
	if got := GetCode(err); got != ErrCodeNotFound {
		t.Errorf("GetCode = %v", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %v, want empty", got)
	}

	// Codes survive wrapping in plain errors.
	wrapped := stderrors.Join(stderrors.New("outer"), err)
	if !Is(wrapped, ErrCodeNotFound) {
		t.Error("Is failed through error chain")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "width must be positive")
	if got := UserMessage(err); got != "width must be positive" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage plain = %q", got)
	}
}
