package appenv

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"envgen/internal/defaults"
	"envgen/internal/envspec"
	"envgen/internal/errs"
	"envgen/internal/legacy"
	"envgen/internal/logger"
	"envgen/internal/paths"
	"envgen/internal/pinned"
	"envgen/internal/render"
	"envgen/internal/system"

	"github.com/gofrs/flock"
)

// Options configures one generation run.
type Options struct {
	Project     paths.Project
	Environment string
	// DefaultsPath is the explicit defaults file argument, if any.
	DefaultsPath string
	// Remember stores DefaultsPath as the environment's remembered defaults.
	Remember bool
	LinkMode string

	// LockPath enables the advisory run lock when set.
	LockPath    string
	LockTimeout time.Duration

	// Confirm is asked before deleting a converted legacy file.
	Confirm legacy.ConfirmFunc

	// DryRun writes the document to Out instead of the output file and
	// leaves every file untouched.
	DryRun bool
	Out    io.Writer
}

// Result summarizes a run.
type Result struct {
	Environment  string
	OutputPath   string
	DefaultsPath string
	Keys         int
	PinnedKeys   int
	Converted    bool
	Written      bool
}

// Generate renders the output file for opts.Environment.
//
// The steps run in order: legacy conversion, defaults loading, source
// decoding, pinned block extraction, rendering and the atomic write. The
// first failure stops the run; the output file is only replaced at the end.
func Generate(ctx context.Context, opts Options) (Result, error) {
	env, err := envspec.NormalizeEnvironment(opts.Environment)
	if err != nil {
		return Result{}, err
	}
	if !envspec.IsKnownEnvironment(env) {
		logger.Warn(ctx, "Environment '%s' is not one of local, testing, staging or production.", env)
	}
	res := Result{Environment: env, OutputPath: opts.Project.Output}

	if opts.LockPath != "" && !opts.DryRun {
		unlock, err := acquireLock(ctx, opts.LockPath, opts.LockTimeout)
		if err != nil {
			return res, err
		}
		defer unlock()
	}

	converted, err := legacy.Convert(ctx, legacy.Options{
		Source:  opts.Project.Source,
		Legacy:  opts.Project.Legacy,
		DryRun:  opts.DryRun,
		Confirm: opts.Confirm,
	})
	if err != nil {
		return res, err
	}
	res.Converted = converted.Converted

	if !converted.Converted {
		if _, err := os.Stat(opts.Project.Source); errors.Is(err, fs.ErrNotExist) {
			return res, errs.New(errs.MissingInputFile, opts.Project.Source,
				"no legacy file to convert and no JSON source", nil)
		}
	}

	defs, err := defaults.Load(ctx, defaults.Request{
		Root:        opts.Project.Root,
		Environment: env,
		Path:        opts.DefaultsPath,
		Remember:    opts.Remember,
		LinkMode:    opts.LinkMode,
		DryRun:      opts.DryRun,
	})
	if err != nil {
		return res, err
	}
	res.DefaultsPath = defs.Path

	var spec *envspec.Spec
	if converted.Converted && opts.DryRun {
		spec, err = envspec.Decode(converted.JSON)
	} else {
		spec, err = envspec.LoadFile(opts.Project.Source)
	}
	if err != nil {
		return res, err
	}
	res.Keys = spec.Len()
	logger.Info(ctx, "Read %d variable(s) from '%s'.", spec.Len(), opts.Project.Source)

	block, err := pinned.Extract(opts.Project.Output)
	if err != nil {
		return res, err
	}
	pinnedKeys, skipped := block.Keys()
	for _, line := range skipped {
		logger.Warn(ctx, "Pinned line '%s' in '%s' is not an assignment, it pins nothing.", line, opts.Project.Output)
	}
	res.PinnedKeys = len(pinnedKeys)
	for key := range pinnedKeys {
		if _, ok := spec.Values[key]; ok {
			logger.Debug(ctx, "'%s' is pinned, commenting out the generated line.", key)
		}
	}

	doc := render.Document(spec, env, defs.Values, pinnedKeys, block.Text)

	if opts.DryRun {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		if _, err := io.WriteString(out, doc); err != nil {
			return res, errs.New(errs.WriteFailure, "", "cannot write dry run output", err)
		}
		return res, nil
	}

	if err := system.WriteFile(opts.Project.Output, []byte(doc), 0644); err != nil {
		return res, errs.New(errs.WriteFailure, opts.Project.Output, "", err)
	}
	res.Written = true
	logger.Notice(ctx, "Generated '%s' for %s with %d variable(s).", opts.Project.Output, env, spec.Len())
	return res, nil
}

func acquireLock(ctx context.Context, path string, timeout time.Duration) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errs.New(errs.WriteFailure, path, "cannot create lock directory", err)
	}

	lockCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	fileLock := flock.New(path)
	locked, err := fileLock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil || !locked {
		if err == nil {
			err = context.DeadlineExceeded
		}
		return nil, errs.New(errs.WriteFailure, path, "another run holds the lock", err)
	}
	logger.Debug(ctx, "Acquired lock '%s'.", path)

	return func() {
		if err := fileLock.Unlock(); err != nil {
			logger.Warn(ctx, "Failed to release lock '%s': %v", path, err)
		}
	}, nil
}
