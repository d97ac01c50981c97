package soft

import (
	"image"
	"image/color"
	"math"

	"github.com/gekko3d/letterbox"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas is a CPU render target. Pixels are stored bottom-up: memory row 0
// is the bottom row of the picture, the way GL framebuffers are laid out.
type Canvas struct {
	img    *image.RGBA
	assets *letterbox.AssetServer
	active bool
}

func NewCanvas(size letterbox.Size, assets *letterbox.AssetServer) *Canvas {
	return &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, size.Width, size.Height)),
		assets: assets,
	}
}

func (c *Canvas) Size() letterbox.Size {
	b := c.img.Bounds()
	return letterbox.Size{Width: b.Dx(), Height: b.Dy()}
}

func (c *Canvas) Begin() { c.active = true }
func (c *Canvas) End()   { c.active = false }

// Active reports whether the canvas is between Begin and End.
func (c *Canvas) Active() bool { return c.active }

// Storage is the bottom-up pixel store.
func (c *Canvas) Storage() *image.RGBA { return c.img }

// Upright returns a top-down copy of the canvas.
func (c *Canvas) Upright() *image.RGBA {
	b := c.img.Bounds()
	out := image.NewRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], c.img.Pix[(b.Dy()-1-y)*c.img.Stride:])
	}
	return out
}

// At reads pixel (x, y) in top-down coordinates.
func (c *Canvas) At(x, y int) color.RGBA {
	h := c.img.Bounds().Dy()
	return c.img.RGBAAt(x, h-1-y)
}

func (c *Canvas) Clear(col color.RGBA) {
	pix := c.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = col.R, col.G, col.B, col.A
	}
}

// blend composites a straight-alpha colour over the pixel at top-down (x, y)
// with coverage cov in [0,1].
func (c *Canvas) blend(x, y int, col color.RGBA, cov float32) {
	b := c.img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return
	}
	a := float32(col.A) / 255 * cov
	if a <= 0 {
		return
	}
	i := c.img.PixOffset(x, b.Dy()-1-y)
	p := c.img.Pix[i : i+4 : i+4]
	mix := func(dst uint8, src uint8) uint8 {
		return uint8(float32(src)*a + float32(dst)*(1-a) + 0.5)
	}
	p[0] = mix(p[0], col.R)
	p[1] = mix(p[1], col.G)
	p[2] = mix(p[2], col.B)
	p[3] = uint8(255*a + float32(p[3])*(1-a) + 0.5)
}

func (c *Canvas) FillCircle(center mgl32.Vec2, radius float32, col color.RGBA) {
	if radius <= 0 {
		return
	}
	x0 := int(math.Floor(float64(center.X() - radius - 1)))
	x1 := int(math.Ceil(float64(center.X() + radius + 1)))
	y0 := int(math.Floor(float64(center.Y() - radius - 1)))
	y1 := int(math.Ceil(float64(center.Y() + radius + 1)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}.Sub(center).Len()
			c.blend(x, y, col, mgl32.Clamp(radius-d+0.5, 0, 1))
		}
	}
}

// DrawTexture draws a texture with its top-left corner at pos, multiplying
// every texel by tint. Unknown ids draw nothing.
func (c *Canvas) DrawTexture(tex letterbox.AssetId, pos mgl32.Vec2, tint color.RGBA) {
	if c.assets == nil {
		return
	}
	t, ok := c.assets.Texture(tex)
	if !ok {
		return
	}
	ox := int(math.Round(float64(pos.X())))
	oy := int(math.Round(float64(pos.Y())))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c.blend(ox+x, oy+y, modulate(t.At(x, y), tint), 1)
		}
	}
}

func modulate(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(a.R) * uint16(b.R) / 255),
		G: uint8(uint16(a.G) * uint16(b.G) / 255),
		B: uint8(uint16(a.B) * uint16(b.B) / 255),
		A: uint8(uint16(a.A) * uint16(b.A) / 255),
	}
}

var face = basicfont.Face7x13

// glyph scale for a requested pixel size; the face is 13px tall
func textScale(size int) int {
	return max(1, int(math.Round(float64(size)/13)))
}

func (c *Canvas) MeasureText(text string, size int) int {
	return font.MeasureString(face, text).Ceil() * textScale(size)
}

// DrawText renders text with its top-left corner at (x, y).
func (c *Canvas) DrawText(text string, x, y, size int, col color.RGBA) {
	w := font.MeasureString(face, text).Ceil()
	if w == 0 {
		return
	}
	h := face.Metrics().Height.Ceil()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	s := textScale(size)
	for my := 0; my < h; my++ {
		for mx := 0; mx < w; mx++ {
			a := mask.AlphaAt(mx, my).A
			if a == 0 {
				continue
			}
			cov := float32(a) / 255
			for sy := 0; sy < s; sy++ {
				for sx := 0; sx < s; sx++ {
					c.blend(x+mx*s+sx, y+my*s+sy, col, cov)
				}
			}
		}
	}
}
