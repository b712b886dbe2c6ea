// Package pinned carries the hand-edited block at the end of the output file
// across regenerations.
package pinned

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"envgen/internal/constants"
	"envgen/internal/envutil"
	"envgen/internal/errs"
)

var assignmentLine = regexp.MustCompile(`^(export\s+)?[A-Za-z_][A-Za-z0-9_.]*\s*=`)

// Block is the trailing pinned section of an output file.
type Block struct {
	// Text is appended verbatim after the generated lines.
	Text string
	// Found reports whether Text was taken from an existing output file.
	Found bool
}

// Default returns the block used when no output file or marker exists.
func Default() Block {
	return Block{Text: constants.PinnedTemplate}
}

// Extract reads the output file at path and returns everything from the
// pinned header to the end of the file, prefixed with a newline. A missing
// file or a file without the header yields the default block.
func Extract(path string) (Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Block{}, errs.New(errs.UnreadableFile, path, "", err)
	}
	return FromContent(string(data)), nil
}

// FromContent extracts the pinned block from output file content. The header
// only counts on a line of its own, so a generated value that contains the
// header text does not start the block.
func FromContent(content string) Block {
	idx := headerIndex(content)
	if idx < 0 {
		return Default()
	}
	return Block{Text: "\n" + content[idx:], Found: true}
}

func headerIndex(content string) int {
	offset := 0
	for {
		line, _, found := strings.Cut(content[offset:], "\n")
		if strings.TrimRight(line, " \t\r") == constants.PinnedHeader {
			return offset
		}
		if !found {
			return -1
		}
		offset += len(line) + 1
	}
}

// Keys returns the variables the block assigns. Commented lines do not pin.
// When the block does not parse as a whole, it is read line by line and the
// lines that are not assignments are returned as skipped.
func (b Block) Keys() (keys map[string]bool, skipped []string) {
	keys = make(map[string]bool)
	if vars, err := envutil.ParseString(b.Text); err == nil {
		for k := range vars {
			keys[k] = true
		}
		return keys, nil
	}

	for _, line := range strings.Split(b.Text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !assignmentLine.MatchString(trimmed) {
			skipped = append(skipped, trimmed)
			continue
		}
		vars, err := envutil.ParseString(trimmed)
		if err != nil || len(vars) == 0 {
			skipped = append(skipped, trimmed)
			continue
		}
		for k := range vars {
			keys[k] = true
		}
	}
	return keys, skipped
}
