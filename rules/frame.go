package rules

// Frame is a rendered W×H image, one color per cell, row-major.
type Frame struct {
	Width  int
	Height int
	Turn   int64
	// Snakes is the roster size when the frame was rendered.
	Snakes int
	Pixels []Color
}

// NewFrame returns a frame filled with bg.
func NewFrame(width, height int, bg Color) *Frame {
	pixels := make([]Color, width*height)
	for i := range pixels {
		pixels[i] = bg
	}
	return &Frame{Width: width, Height: height, Pixels: pixels}
}

func (f *Frame) index(p Point) int {
	return p.Y*f.Width + p.X
}

// Set paints cell p. Cells outside the frame are ignored.
func (f *Frame) Set(p Point, c Color) {
	if p.X < 0 || p.X >= f.Width || p.Y < 0 || p.Y >= f.Height {
		return
	}
	f.Pixels[f.index(p)] = c
}

// At returns the color of cell p.
func (f *Frame) At(p Point) Color {
	return f.Pixels[f.index(p)]
}

// Bytes flattens the frame into the RGB byte layout the display expects:
// 3 bytes per cell, row-major.
func (f *Frame) Bytes() []byte {
	buf := make([]byte, 0, len(f.Pixels)*3)
	for _, c := range f.Pixels {
		buf = append(buf, c.R, c.G, c.B)
	}
	return buf
}
