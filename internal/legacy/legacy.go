// Package legacy migrates a flat .env.example file into the .env.json source.
package legacy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"envgen/internal/constants"
	"envgen/internal/envspec"
	"envgen/internal/envutil"
	"envgen/internal/errs"
	"envgen/internal/logger"
	"envgen/internal/system"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(ctx context.Context, question string) bool

// Options configures a conversion.
type Options struct {
	Source string
	Legacy string
	// DryRun builds the JSON document without writing or deleting anything.
	DryRun bool
	// Confirm is asked before deleting the legacy file. Nil never deletes.
	Confirm ConfirmFunc
}

// Result reports what Convert did.
type Result struct {
	Converted bool
	// JSON is the generated source document when Converted is true.
	JSON []byte
}

// Convert writes the JSON source from the legacy file. It does nothing when
// the source already exists or there is no legacy file.
func Convert(ctx context.Context, opts Options) (Result, error) {
	if exists, err := fileExists(opts.Source); err != nil {
		return Result{}, errs.New(errs.UnreadableFile, opts.Source, "", err)
	} else if exists {
		return Result{}, nil
	}
	if exists, err := fileExists(opts.Legacy); err != nil {
		return Result{}, errs.New(errs.UnreadableFile, opts.Legacy, "", err)
	} else if !exists {
		return Result{}, nil
	}

	logger.Notice(ctx, "File '%s' not found, converting '%s'.", opts.Source, opts.Legacy)

	vars, err := envutil.ParseFile(opts.Legacy)
	if err != nil {
		return Result{}, err
	}

	data, err := Build(vars)
	if err != nil {
		return Result{}, errs.New(errs.WriteFailure, opts.Source, "cannot build JSON source", err)
	}

	if opts.DryRun {
		logger.Notice(ctx, "Dry run, not writing '%s'.", opts.Source)
		return Result{Converted: true, JSON: data}, nil
	}

	if err := system.WriteFile(opts.Source, data, 0644); err != nil {
		return Result{}, errs.New(errs.WriteFailure, opts.Source, "", err)
	}
	logger.Notice(ctx, "Created '%s' with %d variable(s).", opts.Source, len(vars))

	if opts.Confirm != nil && opts.Confirm(ctx, fmt.Sprintf("Delete the legacy file '%s'?", opts.Legacy)) {
		if err := os.Remove(opts.Legacy); err != nil {
			return Result{}, errs.New(errs.WriteFailure, opts.Legacy, "cannot delete legacy file", err)
		}
		logger.Notice(ctx, "Deleted '%s'.", opts.Legacy)
	}

	return Result{Converted: true, JSON: data}, nil
}

// Build returns the pretty printed JSON source for the legacy variables.
// Keys are written in natural order. APP_ENV and APP_DEBUG become
// per-environment maps with their conventional values.
func Build(vars map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	envspec.SortKeys(keys)

	doc := "{}"
	for _, key := range keys {
		var err error
		switch key {
		case constants.AppEnvKey:
			doc, err = sjson.SetRaw(doc, escapePath(key), perEnvironment(func(env string) any { return env }))
		case constants.AppDebugKey:
			doc, err = sjson.SetRaw(doc, escapePath(key), perEnvironment(func(env string) any {
				return env == constants.EnvLocal || env == constants.EnvTesting
			}))
		default:
			doc, err = sjson.Set(doc, escapePath(key), vars[key])
		}
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}

	out := pretty.PrettyOptions([]byte(doc), &pretty.Options{Width: 80, Indent: "  "})
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

func perEnvironment(value func(env string) any) string {
	obj := "{}"
	for _, env := range constants.KnownEnvironments {
		obj, _ = sjson.Set(obj, env, value(env))
	}
	return obj
}

// escapePath escapes characters sjson treats as path syntax.
func escapePath(key string) string {
	var sb strings.Builder
	for _, r := range key {
		if strings.ContainsRune(`\.*?|#@!=<>%:`, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
