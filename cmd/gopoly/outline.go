package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/philipparndt/gopoly/internal/config"
	"github.com/philipparndt/gopoly/internal/editor"
	"github.com/philipparndt/gopoly/pkg/geometry"
	"github.com/philipparndt/gopoly/pkg/scene"
	"github.com/philipparndt/gopoly/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	outlinePoints   []string
	outlineGeoJSON  bool
	outlineSTL      string
	outlineBinary   bool
	outlineLogLevel string
)

var outlineCmd = &cobra.Command{
	Use:   "outline --point x,z --point x,z --point x,z ...",
	Short: "Build a polygon from ground points",
	Long: `Sort the points around their centroid, fill the polygon and print the
result. Duplicate points are ignored the same way repeated clicks are.`,
	Example: `  gopoly outline -p 0,0 -p 2,0 -p 2,2 -p 0,2
  gopoly outline -p 0,0 -p 4,0 -p 2,3 --geojson
  gopoly outline -p 0,0 -p 4,0 -p 2,3 --stl triangle.stl`,
	Args: cobra.NoArgs,
	RunE: runOutline,
}

func init() {
	outlineCmd.Flags().StringArrayVarP(&outlinePoints, "point", "p", nil, "ground point as x,z (repeatable)")
	outlineCmd.Flags().BoolVar(&outlineGeoJSON, "geojson", false, "print the polygon as a GeoJSON FeatureCollection")
	outlineCmd.Flags().StringVar(&outlineSTL, "stl", "", "write the filled polygon to this STL file")
	outlineCmd.Flags().BoolVar(&outlineBinary, "binary", false, "write binary instead of ASCII STL")
	outlineCmd.Flags().StringVar(&outlineLogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(outlineCmd)
}

func parsePoint(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Vector3{}, fmt.Errorf("point %q: expected x,z", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Vector3{}, fmt.Errorf("point %q: %w", s, err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Vector3{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geometry.NewVector3(x, 0, z), nil
}

// buildOutline runs the editor on the given points the way clicks would
func buildOutline(points []string, logger *slog.Logger) (*editor.Editor, error) {
	cfg := config.Default()
	ed := editor.New(scene.New(cfg.Scene.GroundSize, cfg.Scene.GridDivisions), cfg.EditorOptions(), logger)
	for _, s := range points {
		p, err := parsePoint(s)
		if err != nil {
			return nil, err
		}
		ed.OnSurfaceClick(p)
	}
	if err := ed.CompletePolygon(); err != nil {
		return nil, err
	}
	return ed, nil
}

func runOutline(cmd *cobra.Command, args []string) error {
	ed, err := buildOutline(outlinePoints, config.NewLogger(outlineLogLevel))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if outlineGeoJSON {
		data, err := json.MarshalIndent(ed.FeatureCollection(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode GeoJSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		printOutline(out, ed)
	}

	if outlineSTL != "" {
		model := ed.Model()
		if err := stl.WriteFile(outlineSTL, model, outlineBinary); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d triangles to %s\n", model.TriangleCount(), outlineSTL)
	}
	return nil
}

func printOutline(out io.Writer, ed *editor.Editor) {
	poly := ed.State().Polygon
	mesh := poly.Object.Mesh

	fmt.Fprintln(out, "Polygon")
	fmt.Fprintln(out, "=======")
	fmt.Fprintf(out, "Vertices: %d\n", len(poly.Ring))
	fmt.Fprintf(out, "Centroid: (%.6f, %.6f)\n\n", poly.Centroid.X, poly.Centroid.Z)

	fmt.Fprintln(out, "Ring (descending angle):")
	for i, p := range poly.Ring {
		fmt.Fprintf(out, "  %2d: (%.6f, %.6f)\n", i+1, p.X, p.Z)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Triangles: %d", mesh.TriangleCount())
	if mesh.Fallback {
		fmt.Fprint(out, " (fan fill)")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Area: %.6f square units\n", mesh.Area())
	fmt.Fprintf(out, "Simple: %t\n", poly.Simple)
	fmt.Fprintf(out, "WKT: %s\n", poly.WKT)
}
