// Command desimctl runs and inspects desim scenarios from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "desimctl",
	Short: "desimctl runs and inspects discrete-event simulations built on desim.",
	Long: `desimctl runs and inspects discrete-event simulations built on desim. ` +
		`It currently supports running one of the built-in demo scenarios and ` +
		`listing the contents of a recorded trace file.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
