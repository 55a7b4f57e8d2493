package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦═╗┌─┐┌─┐┌─┐┌─┐
  ╠╦╝├┤ ├─┤│ ┬│ │
  ╩╚═└─┘┴ ┴└─┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "reago",
		Short: "Fine-grained reactive runtime for Go",
		Long: `Reago is a fine-grained reactive dependency-tracking runtime.

Signals, memos, and effects form a live dependency graph that
recomputes exactly what a write invalidates. This CLI ships the
supporting tools:

  • Live graph inspector with WebSocket event feed
  • Prometheus metrics and OpenTelemetry tracing
  • Propagation throughput benchmarks`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		inspectCmd(),
		benchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the reago ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
