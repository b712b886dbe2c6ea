package cmd

import (
	"github.com/spf13/pflag"
)

// Flags holds the command line options of one invocation.
type Flags struct {
	SetDefaults bool
	Dir         string
	DryRun      bool
	Verbose     bool
	Debug       bool
}

// Register defines the flags on fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.SetDefaults, "set-defaults", false, "Remember the defaults file for this environment")
	fs.StringVarP(&f.Dir, "dir", "C", "", "Project directory (default: current directory)")
	fs.BoolVar(&f.DryRun, "dry-run", false, "Print the generated file to stdout and write nothing")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVarP(&f.Debug, "debug", "x", false, "Debug output")
}
