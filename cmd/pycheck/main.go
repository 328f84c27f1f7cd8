package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pycheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pycheck",
	Short: "Static analyzer for Python source trees",
	Long:  `pycheck finds observable writes to and escapes of global state in Python code`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0=config or built-in default)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to the given path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(flag string) bool {
	return flag == "on" || (flag == "auto" && isTerminal(os.Stdout))
}
