package console

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestQuestionPrompt(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultValue string
		expected     bool
	}{
		{"yes", "y", "n", true},
		{"upper yes", "Y", "", true},
		{"no", "n", "y", false},
		{"enter takes default yes", "\n", "y", true},
		{"enter takes default no", "\r", "n", false},
		{"enter ignored without default", "\nxy", "", true},
		{"other keys ignored", "qzn", "y", false},
		{"eof takes default", "", "y", true},
		{"eof without default is no", "", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var printed []string
			printer := func(ctx context.Context, msg string, args ...any) {
				printed = append(printed, fmt.Sprintf(msg, args...))
			}

			got := QuestionPrompt(context.Background(), printer, strings.NewReader(test.input), "Delete?", test.defaultValue)
			if got != test.expected {
				t.Errorf("QuestionPrompt(%q, %q) = %v; want %v", test.input, test.defaultValue, got, test.expected)
			}
			if len(printed) != 3 || printed[0] != "Delete?" {
				t.Errorf("unexpected prompt output %q", printed)
			}
		})
	}
}

func TestIsInteractiveReader(t *testing.T) {
	if IsInteractive(strings.NewReader("y")) {
		t.Error("a strings.Reader is never interactive")
	}
}
