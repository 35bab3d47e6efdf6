package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gopoly/pkg/geometry"
)

// WriteASCII writes the model in ASCII STL format
func WriteASCII(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	name := strings.TrimSpace(m.Name)

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range m.Triangles {
		n := facetNormal(t)
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", n.X, n.Y, n.Z)
		bw.WriteString("    outer loop\n")
		for _, v := range []geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		bw.WriteString("    endloop\n")
		bw.WriteString("  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ASCII STL: %w", err)
	}
	return nil
}

// WriteBinary writes the model in binary STL format
func WriteBinary(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)

	// the header must not start with "solid" or readers take it for ASCII
	header := make([]byte, 80)
	copy(header, "binary "+m.Name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("write STL header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return fmt.Errorf("write triangle count: %w", err)
	}

	for i, t := range m.Triangles {
		var record [12]float32
		for j, v := range []geometry.Vector3{facetNormal(t), t.V1, t.V2, t.V3} {
			record[j*3] = float32(v.X)
			record[j*3+1] = float32(v.Y)
			record[j*3+2] = float32(v.Z)
		}
		if err := binary.Write(bw, binary.LittleEndian, record); err != nil {
			return fmt.Errorf("write triangle %d: %w", i, err)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("write attribute for triangle %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write binary STL: %w", err)
	}
	return nil
}

// WriteFile writes the model to path, choosing binary output for a ".stlb"
// extension or when binary is set.
func WriteFile(path string, m *Model, binaryFormat bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if binaryFormat || strings.EqualFold(filepath.Ext(path), ".stlb") {
		err = WriteBinary(f, m)
	} else {
		err = WriteASCII(f, m)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// facetNormal returns the stored normal, or the geometric one when the
// stored normal is unset
func facetNormal(t geometry.Triangle) geometry.Vector3 {
	if t.Normal.Length() > 0 && !math.IsNaN(t.Normal.Length()) {
		return t.Normal
	}
	return t.CalculateNormal()
}
