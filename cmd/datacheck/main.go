package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"datacheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "datacheck",
	Short: "Data-class constructor checker",
	Long:  `datacheck synthesizes implicit constructors from data-class fixtures and validates every construction call against them`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the tri-state --color flag against the output terminal.
func useColor(mode string, out *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}
