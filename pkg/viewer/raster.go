package viewer

import (
	"image"
	"image/color"
	"math"
)

// Frame is a color buffer with a depth buffer
type Frame struct {
	img    *image.RGBA
	zbuf   []float64
	width  int
	height int
}

// NewFrame allocates a frame of the given size
func NewFrame(width, height int) *Frame {
	width = max(width, 1)
	height = max(height, 1)
	return &Frame{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		zbuf:   make([]float64, width*height),
		width:  width,
		height: height,
	}
}

// Image returns the color buffer
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// Clear fills the color buffer and resets depth
func (f *Frame) Clear(bg color.RGBA) {
	for i := 0; i < len(f.img.Pix); i += 4 {
		f.img.Pix[i] = bg.R
		f.img.Pix[i+1] = bg.G
		f.img.Pix[i+2] = bg.B
		f.img.Pix[i+3] = bg.A
	}
	for i := range f.zbuf {
		f.zbuf[i] = math.Inf(1)
	}
}

// plot writes a pixel if it passes the depth test, blending translucent colors
func (f *Frame) plot(x, y int, z float64, col color.RGBA, writeDepth bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	idx := y*f.width + x
	if z >= f.zbuf[idx] {
		return
	}
	if writeDepth {
		f.zbuf[idx] = z
	}
	if col.A == 255 {
		f.img.SetRGBA(x, y, col)
		return
	}
	f.img.SetRGBA(x, y, blend(f.img.RGBAAt(x, y), col))
}

// blend composes src over dst using the source alpha
func blend(dst, src color.RGBA) color.RGBA {
	a := float64(src.A) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}

// FillTriangle fills a screen triangle with depth testing. Translucent
// triangles do not write depth so that later geometry shows through.
func (f *Frame) FillTriangle(x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	vertices := [3][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1, z1 = vertices[0][0], vertices[0][1], vertices[0][2]
	x2, y2, z2 = vertices[1][0], vertices[1][1], vertices[1][2]
	x3, y3, z3 = vertices[2][0], vertices[2][1], vertices[2][2]

	opaque := col.A == 255

	type hit struct{ x, z float64 }
	edge := func(fy, ax, ay, az, bx, by, bz float64) (hit, bool) {
		if ay == by || fy < ay || fy > by {
			return hit{}, false
		}
		t := (fy - ay) / (by - ay)
		return hit{ax + t*(bx-ax), az + t*(bz-az)}, true
	}

	yStart := int(math.Ceil(math.Max(0, y1)))
	yEnd := int(math.Min(float64(f.height-1), y3))
	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		var hits []hit
		for _, e := range [3][6]float64{
			{x1, y1, z1, x2, y2, z2},
			{x2, y2, z2, x3, y3, z3},
			{x1, y1, z1, x3, y3, z3},
		} {
			if h, ok := edge(fy, e[0], e[1], e[2], e[3], e[4], e[5]); ok {
				hits = append(hits, h)
			}
		}
		if len(hits) < 2 {
			continue
		}
		start, end := hits[0], hits[1]
		if start.x > end.x {
			start, end = end, start
		}

		xs := int(math.Ceil(math.Max(0, start.x)))
		xe := int(math.Min(float64(f.width-1), end.x))
		for x := xs; x <= xe; x++ {
			t := 0.0
			if end.x != start.x {
				t = (float64(x) - start.x) / (end.x - start.x)
			}
			f.plot(x, y, start.z+t*(end.z-start.z), col, opaque)
		}
	}
}

// FillDisc draws a filled circle facing the viewer at the given depth
func (f *Frame) FillDisc(cx, cy, radius, z float64, col color.RGBA) {
	r2 := radius * radius
	for y := int(cy - radius); y <= int(cy+radius); y++ {
		for x := int(cx - radius); x <= int(cx+radius); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r2 {
				f.plot(x, y, z, col, col.A == 255)
			}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm without depth testing
func (f *Frame) DrawLine(x1, y1, x2, y2 int, col color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < f.width && y1 >= 0 && y1 < f.height {
			f.img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DepthAt returns the stored depth of a pixel
func (f *Frame) DepthAt(x, y int) float64 {
	return f.zbuf[y*f.width+x]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
