package defaults

import (
	"strings"

	"envgen/internal/errs"
	"envgen/internal/system"
)

// parsePointer reports whether content is a pointer file: one non-empty line
// that is not a KEY=value assignment.
func parsePointer(content string) (string, bool) {
	line := strings.TrimSpace(content)
	if line == "" || strings.ContainsAny(line, "=\n") || strings.HasPrefix(line, "#") {
		return "", false
	}
	return line, true
}

func writePointer(link, target string) error {
	if err := system.WriteFile(link, []byte(target+"\n"), 0644); err != nil {
		return errs.New(errs.WriteFailure, link, "cannot write pointer file", err)
	}
	return nil
}
