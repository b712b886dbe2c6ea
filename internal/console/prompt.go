package console

import (
	"context"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Printer is a function compatible with logger.Notice
type Printer func(ctx context.Context, msg string, args ...any)

// IsInteractive reports whether in is a terminal a user can answer prompts on.
func IsInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// QuestionPrompt prompts the user with a Yes/No question read from in.
// It returns true if the user answers Yes, false otherwise.
// defaultValue determines the default action if the user just presses Enter ("Y"=Yes, "N"=No, ""=Require Input).
// A read failure (including EOF) answers with the default, or No when there is none.
func QuestionPrompt(ctx context.Context, printer Printer, in io.Reader, question string, defaultValue string) bool {
	ynPrompt := "[YN]"
	if strings.EqualFold(defaultValue, "y") {
		ynPrompt = "[Yn]"
	} else if strings.EqualFold(defaultValue, "n") {
		ynPrompt = "[yN]"
	}

	printer(ctx, question)
	printer(ctx, ynPrompt)

	// Switch to raw mode to read a single character
	var restore func()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		if oldState, err := term.MakeRaw(fd); err == nil {
			restore = func() { _ = term.Restore(fd, oldState) }
		}
	}

	answer := readAnswer(in, defaultValue)

	// Restore terminal before printing log messages
	if restore != nil {
		restore()
	}

	if answer {
		printer(ctx, "Answered: Yes")
	} else {
		printer(ctx, "Answered: No")
	}
	return answer
}

func readAnswer(in io.Reader, defaultValue string) bool {
	b := make([]byte, 1)
	for {
		if _, err := in.Read(b); err != nil {
			return strings.EqualFold(defaultValue, "y")
		}

		switch strings.ToLower(string(b[0])) {
		case "\r", "\n":
			if strings.EqualFold(defaultValue, "y") {
				return true
			}
			if strings.EqualFold(defaultValue, "n") {
				return false
			}
			// No default, Enter is ignored
		case "y":
			return true
		case "n":
			return false
		}
	}
}
