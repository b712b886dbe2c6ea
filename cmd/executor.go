package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"envgen/internal/appenv"
	"envgen/internal/config"
	"envgen/internal/console"
	"envgen/internal/errs"
	"envgen/internal/legacy"
	"envgen/internal/logger"
	"envgen/internal/paths"
)

// IO carries the streams a run reads answers from and prints dry runs to.
type IO struct {
	In  io.Reader
	Out io.Writer
}

// Execute runs one generation with the given flags and positional arguments.
// Settings are applied in order: config file, ENVGEN_* environment, flags.
func Execute(ctx context.Context, flags Flags, args []string, streams IO) error {
	conf, err := config.LoadAppConfig()
	if err != nil {
		logger.Warn(ctx, "Ignoring part of the configuration: %v", err)
	}
	applyLogLevel(ctx, conf, flags)

	root, err := projectRoot(flags.Dir)
	if err != nil {
		return err
	}

	environment := conf.Defaults.Environment
	if len(args) > 0 {
		environment = args[0]
	}
	defaultsPath := ""
	if len(args) > 1 {
		defaultsPath = args[1]
	}

	opts := appenv.Options{
		Project:      paths.NewProject(root, conf.Files.Source, conf.Files.Legacy, conf.Files.Output),
		Environment:  environment,
		DefaultsPath: defaultsPath,
		Remember:     flags.SetDefaults,
		LinkMode:     conf.Defaults.LinkMode,
		Confirm:      confirmFunc(streams.In),
		DryRun:       flags.DryRun,
		Out:          streams.Out,
	}
	if conf.Lock.Enabled {
		opts.LockPath = paths.GetLockFilePath(root)
		opts.LockTimeout = time.Duration(conf.Lock.TimeoutSeconds) * time.Second
	}

	logger.Debug(ctx, "Project '%s', environment '%s'.", root, environment)
	_, err = appenv.Generate(ctx, opts)
	return err
}

func applyLogLevel(ctx context.Context, conf config.AppConfig, flags Flags) {
	level, err := logger.ParseLevel(conf.Log.Level)
	if err != nil {
		logger.Warn(ctx, "%v", err)
	}
	switch {
	case flags.Debug:
		level = logger.LevelDebug
	case flags.Verbose:
		level = logger.LevelInfo
	}
	logger.SetLevel(level)
}

func projectRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errs.New(errs.InvalidArgument, "", "cannot determine the current directory", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errs.New(errs.InvalidArgument, dir, "cannot resolve project directory", err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", errs.New(errs.InvalidArgument, dir, "project directory not found", err)
	}
	return abs, nil
}

// confirmFunc asks on in when it is a terminal. Without one the legacy file is kept.
func confirmFunc(in io.Reader) legacy.ConfirmFunc {
	if !console.IsInteractive(in) {
		return nil
	}
	return func(ctx context.Context, question string) bool {
		return console.QuestionPrompt(ctx, logger.Notice, in, question, "N")
	}
}
