package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err      *Error
		expected string
	}{
		{New(UnreadableFile, ".env.json", "", fs.ErrPermission), "unreadable file '.env.json': permission denied"},
		{New(InvalidArgument, "", "--set-defaults requires a defaults path", nil), "--set-defaults requires a defaults path"},
		{New(MissingInputFile, "/p/.env.json", "no input file", nil), "no input file '/p/.env.json'"},
		{Newf(MalformedJSON, "nested value for %s", "A.local"), "nested value for A.local"},
	}

	for _, test := range tests {
		if got := test.err.Error(); got != test.expected {
			t.Errorf("Error() = %q; want %q", got, test.expected)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	base := New(WriteFailure, "out", "", fs.ErrExist)
	wrapped := fmt.Errorf("generate: %w", base)

	if KindOf(wrapped) != WriteFailure {
		t.Errorf("KindOf(wrapped) = %v; want %v", KindOf(wrapped), WriteFailure)
	}
	if !Is(wrapped, WriteFailure) {
		t.Error("Is(wrapped, WriteFailure) = false")
	}
	if !errors.Is(wrapped, fs.ErrExist) {
		t.Error("errors.Is should reach the underlying cause")
	}
	if KindOf(errors.New("plain")) != Unknown {
		t.Error("plain errors should be Unknown")
	}
	if Is(nil, Unknown) {
		t.Error("nil error should not match any kind")
	}
}
