package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pubdiff/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pubdiff",
	Short: "Diff the public API surface of two library releases",
	Long:  `pubdiff compares two public API snapshots and reports removed, changed, and added items`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress human-readable output (json/markdown still print)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the destination stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
