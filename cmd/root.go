package cmd

import (
	"envgen/internal/version"

	"github.com/spf13/cobra"
)

// NewRootCommand returns the envgen command.
func NewRootCommand() *cobra.Command {
	flags := &Flags{}

	rootCmd := &cobra.Command{
		Use:     version.CommandName + " [environment] [defaults]",
		Short:   "Generate a .env file from .env.json",
		Long:    GetUsage(),
		Example: GetExamples(),
		Version: version.String(),
		Args:    cobra.RangeArgs(0, 2),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), *flags, args, IO{
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
			})
		},
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	flags.Register(rootCmd.Flags())

	return rootCmd
}
