package cmd

import (
	"fmt"
	"strings"

	"envgen/internal/constants"
	"envgen/internal/version"
)

// GetUsage returns the long help text shown by --help.
func GetUsage() string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	printStr(fmt.Sprintf("%s [%s]", version.ApplicationName, version.Version))
	printStr(fmt.Sprintf("Generates '%s' from '%s' for one environment.", constants.OutputFileName, constants.SourceFileName))
	printStr("")
	printStr(fmt.Sprintf("When '%s' does not exist it is created from '%s' first.", constants.SourceFileName, constants.LegacyFileName))
	printStr("Values from the defaults file replace the generated values and fill {{NAME}}")
	printStr("placeholders. With --set-defaults the defaults file is remembered as")
	printStr(fmt.Sprintf("'%s<environment>%s' and used on later runs.", constants.DefaultsLinkPrefix, constants.DefaultsLinkSuffix))
	printStr("")
	printStr(fmt.Sprintf("Everything from the '%s' line to the end of", constants.PinnedHeader))
	printStr(fmt.Sprintf("'%s' is kept, and the variables it sets are commented out above it.", constants.OutputFileName))
	printStr("")
	printStr(fmt.Sprintf("Environments: %s (aliases: test, stag, prod).", strings.Join(constants.KnownEnvironments, ", ")))
	return strings.TrimRight(sb.String(), "\n")
}

// GetExamples returns the examples shown by --help.
func GetExamples() string {
	appCmd := version.CommandName
	lines := []string{
		fmt.Sprintf("  %s", appCmd),
		fmt.Sprintf("  %s production", appCmd),
		fmt.Sprintf("  %s prod ~/secrets/shop.env --set-defaults", appCmd),
		fmt.Sprintf("  %s staging --dry-run", appCmd),
	}
	return strings.Join(lines, "\n")
}
