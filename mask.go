package inkflow

import (
	"image"
	"math"

	"github.com/gogpu/gputypes"
)

// Mask is an 8-bit reveal mask: 0 hides a pixel, 255 leaves it untouched.
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a mask with every value 0 (fully hidden).
// Negative dimensions are treated as 0.
func NewMask(width, height int) *Mask {
	width = max(width, 0)
	height = max(height, 0)
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Size returns the mask dimensions as a surface size.
func (m *Mask) Size() Vec2 {
	return Vec2{X: float64(m.width), Y: float64(m.height)}
}

// Format returns the GPU texture format matching the mask layout.
func (m *Mask) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatR8Unorm
}

// At returns the mask value at (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the mask value at (x, y). Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// Fill sets every value.
func (m *Mask) Fill(value uint8) {
	for i := range m.data {
		m.data[i] = value
	}
}

// Data returns the underlying row-major values.
func (m *Mask) Data() []uint8 {
	return m.data
}

// Mean returns the average alpha in [0, 1], the revealed fraction of the
// surface.
func (m *Mask) Mean() float64 {
	if len(m.data) == 0 {
		return 0
	}
	var sum uint64
	for _, v := range m.data {
		sum += uint64(v)
	}
	return float64(sum) / (255 * float64(len(m.data)))
}

// ApplyTo multiplies the alpha of img by the mask.
//
// img holds premultiplied RGBA, so every channel is scaled; in straight-alpha
// terms the color is unchanged and only coverage drops. The mask is anchored
// at img.Bounds().Min; pixels outside the mask are left alone.
func (m *Mask) ApplyTo(img *image.RGBA) {
	b := img.Bounds()
	w := min(b.Dx(), m.width)
	h := min(b.Dy(), m.height)
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		maskRow := m.data[y*m.width : y*m.width+w]
		for x, a := range maskRow {
			if a == 255 {
				continue
			}
			px := row[x*4 : x*4+4 : x*4+4]
			px[0] = mul8(px[0], a)
			px[1] = mul8(px[1], a)
			px[2] = mul8(px[2], a)
			px[3] = mul8(px[3], a)
		}
	}
}

// mul8 returns round(v * a / 255).
func mul8(v, a uint8) uint8 {
	t := uint32(v)*uint32(a) + 128
	// #nosec G115 -- result is at most 255
	return uint8((t + t>>8) >> 8)
}

// toMask8 converts an alpha in [0, 1] to a rounded mask value.
func toMask8(alpha float64) uint8 {
	// #nosec G115 -- clamp01 bounds the product to [0, 255]
	return uint8(math.Round(clamp01(alpha) * 255))
}
