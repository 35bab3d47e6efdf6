package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gopoly/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gopoly",
	Short: "Headless tools for gopoly polygons",
	Long: `gopoly builds the same polygons as the viewer from points given on the
command line and inspects exported STL files.`,
	Version:      version.GetFullVersion(),
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
