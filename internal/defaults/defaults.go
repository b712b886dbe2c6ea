// Package defaults loads the per-run override values that take precedence
// over the JSON source, and manages the remembered defaults link of each
// environment.
package defaults

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"envgen/internal/constants"
	"envgen/internal/envutil"
	"envgen/internal/errs"
	"envgen/internal/logger"
	"envgen/internal/paths"
)

// Request describes where defaults come from for one run.
type Request struct {
	Root        string
	Environment string
	// Path is the explicit defaults file argument, if any.
	Path string
	// Remember replaces the environment's remembered link with Path.
	Remember bool
	LinkMode string
	// DryRun skips creating the remembered link.
	DryRun bool
}

// Result is the loaded defaults map and the file it came from.
type Result struct {
	Values map[string]string
	// Path is the file the values were read from, empty if none.
	Path string
}

// Load resolves the defaults file for req and parses it. Without an explicit
// path the remembered link is followed; when nothing resolves to an existing
// file the result is an empty map.
func Load(ctx context.Context, req Request) (Result, error) {
	empty := Result{Values: map[string]string{}}

	if req.Remember && req.Path == "" {
		return empty, errs.Newf(errs.InvalidArgument, "--set-defaults requires a defaults file argument")
	}

	link := paths.DefaultsLinkPath(req.Root, req.Environment)
	var path string

	if req.Path != "" {
		abs, err := filepath.Abs(req.Path)
		if err != nil {
			return empty, errs.New(errs.InvalidArgument, req.Path, "cannot resolve defaults file", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return empty, errs.New(errs.InvalidArgument, req.Path, "defaults file not found", err)
		}
		if info.IsDir() {
			return empty, errs.New(errs.InvalidArgument, req.Path, "defaults file is a directory", nil)
		}
		path = abs

		if req.Remember {
			if req.DryRun {
				logger.Notice(ctx, "Dry run, not remembering '%s' for %s.", abs, req.Environment)
			} else if err := Remember(ctx, link, abs, req.LinkMode); err != nil {
				return empty, err
			}
		}
	} else {
		resolved, ok, err := Follow(link)
		if err != nil {
			return empty, err
		}
		if !ok {
			logger.Debug(ctx, "No defaults file for %s.", req.Environment)
			return empty, nil
		}
		if _, err := os.Stat(resolved); err != nil {
			logger.Warn(ctx, "Remembered defaults '%s' points to missing file '%s', ignoring it.", link, resolved)
			return empty, nil
		}
		path = resolved
	}

	values, err := envutil.ReadFlatFile(path)
	if err != nil {
		return empty, err
	}
	logger.Info(ctx, "Loaded %d default value(s) from '%s'.", len(values), path)
	logger.Debug(ctx, "Default keys: %s", strings.Join(envutil.SortedKeys(values), ", "))
	return Result{Values: values, Path: path}, nil
}

// Follow returns the defaults file a remembered link refers to. ok is false
// when the link does not exist. A symlink is followed; a regular file holding
// a single path line is a pointer file; any other regular file is itself the
// defaults file.
func Follow(link string) (target string, ok bool, err error) {
	info, err := os.Lstat(link)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errs.New(errs.UnreadableFile, link, "", err)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		dest, err := os.Readlink(link)
		if err != nil {
			return "", false, errs.New(errs.UnreadableFile, link, "", err)
		}
		return relativeTo(link, dest), true, nil
	case info.IsDir():
		return "", false, errs.New(errs.UnreadableFile, link, "remembered defaults link is a directory", nil)
	}

	data, err := os.ReadFile(link)
	if err != nil {
		return "", false, errs.New(errs.UnreadableFile, link, "", err)
	}
	if dest, isPointer := parsePointer(string(data)); isPointer {
		return relativeTo(link, dest), true, nil
	}
	return link, true, nil
}

// Remember points link at target, replacing a previous symlink or pointer
// file. Nothing changes when link already resolves to target. A link that is
// itself a defaults file holding values is never replaced.
func Remember(ctx context.Context, link, target, mode string) error {
	if info, err := os.Lstat(link); err == nil {
		if info.IsDir() {
			return errs.New(errs.WriteFailure, link, "remembered defaults link is a directory", nil)
		}
		if sameFile(link, target) {
			logger.Info(ctx, "'%s' is already the remembered defaults file.", target)
			return nil
		}
		if info.Mode().IsRegular() {
			data, err := os.ReadFile(link)
			if err != nil {
				return errs.New(errs.UnreadableFile, link, "", err)
			}
			if _, isPointer := parsePointer(string(data)); !isPointer && strings.TrimSpace(string(data)) != "" {
				return errs.New(errs.InvalidArgument, link, "remembered defaults link holds values, move it away before remembering another file", nil)
			}
		}
		if err := os.Remove(link); err != nil {
			return errs.New(errs.WriteFailure, link, "cannot replace remembered defaults", err)
		}
	}

	switch mode {
	case constants.LinkModePointer:
		if err := writePointer(link, target); err != nil {
			return err
		}
	case constants.LinkModeSymlink:
		if err := os.Symlink(target, link); err != nil {
			return errs.New(errs.WriteFailure, link, "cannot create symlink", err)
		}
	default:
		if err := os.Symlink(target, link); err != nil {
			logger.Info(ctx, "Symlinks unavailable (%v), writing a pointer file instead.", err)
			if err := writePointer(link, target); err != nil {
				return err
			}
		}
	}

	logger.Notice(ctx, "Remembered defaults file '%s' as '%s'.", target, link)
	return nil
}

// sameFile reports whether a and b name the same file once symlinks are followed.
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func relativeTo(link, dest string) string {
	if filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(filepath.Dir(link), dest)
}
