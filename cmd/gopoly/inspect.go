package main

import (
	"fmt"

	"github.com/philipparndt/gopoly/pkg/stl"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Display information about an exported STL file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := stl.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("parse STL file: %w", err)
	}
	out := cmd.OutOrStdout()
	lo, hi := model.Bounds()

	fmt.Fprintln(out, "STL File Information")
	fmt.Fprintln(out, "====================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintf(out, "Triangles: %d\n", model.TriangleCount())
	fmt.Fprintf(out, "Surface Area: %.6f square units\n\n", model.SurfaceArea())

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: (%.6f, %.6f, %.6f)\n", lo.X, lo.Y, lo.Z)
	fmt.Fprintf(out, "  Max: (%.6f, %.6f, %.6f)\n", hi.X, hi.Y, hi.Z)
	return nil
}
