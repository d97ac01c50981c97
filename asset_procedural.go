package letterbox

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

func newTexels(width, height int) []uint8 {
	return make([]uint8, width*height*4)
}

func setTexel(texels []uint8, width, x, y int, c color.RGBA) {
	i := (y*width + x) * 4
	texels[i] = c.R
	texels[i+1] = c.G
	texels[i+2] = c.B
	texels[i+3] = c.A
}

// CreateCheckerTexture builds a two-colour checkerboard with square cells.
func (server *AssetServer) CreateCheckerTexture(width, height, cell int, a, b color.RGBA) AssetId {
	if cell <= 0 {
		cell = 1
	}
	texels := newTexels(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			setTexel(texels, width, x, y, c)
		}
	}
	return server.CreateTexture(texels, width, height)
}

// CreateCircleSprite builds a (2r+1) square sprite holding a filled disc
// with a one pixel soft edge. Pixels outside the disc are transparent.
func (server *AssetServer) CreateCircleSprite(radius int, c color.RGBA) AssetId {
	size := radius*2 + 1
	texels := newTexels(size, size)
	r := float32(radius) + 0.5

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := mgl32.Vec2{float32(x - radius), float32(y - radius)}.Len()
			cov := mgl32.Clamp(r-d, 0, 1)
			if cov == 0 {
				continue
			}
			px := c
			px.A = uint8(float32(c.A) * cov)
			setTexel(texels, size, x, y, px)
		}
	}
	return server.CreateTexture(texels, size, size)
}

// CreateTreeSprite builds a pine: a stacked triangular crown over a trunk.
// Mirrored sprites shade the other side of the crown.
func (server *AssetServer) CreateTreeSprite(width, height int, foliage, trunk color.RGBA, mirrored bool) AssetId {
	texels := newTexels(width, height)
	trunkH := height / 5
	trunkW := max(width/6, 1)
	crownH := height - trunkH
	cx := float32(width-1) / 2

	shade := func(c color.RGBA, f float32) color.RGBA {
		return color.RGBA{uint8(float32(c.R) * f), uint8(float32(c.G) * f), uint8(float32(c.B) * f), c.A}
	}

	for y := 0; y < crownH; y++ {
		// three tiers, each widening toward its base
		tier := y * 3 / crownH
		t := float32(y-tier*crownH/3) / float32(crownH/3+1)
		half := (float32(tier+1)/3*0.5 + t*0.15) * float32(width)
		half = min(half, cx)
		for x := 0; x < width; x++ {
			dx := float32(x) - cx
			if dx < -half || dx > half {
				continue
			}
			lit := dx < 0
			if mirrored {
				lit = !lit
			}
			c := foliage
			if !lit {
				c = shade(foliage, 0.7)
			}
			setTexel(texels, width, x, y, c)
		}
	}

	x0 := int(cx) - trunkW/2
	for y := crownH; y < height; y++ {
		for x := x0; x < x0+trunkW && x < width; x++ {
			setTexel(texels, width, max(x, 0), y, trunk)
		}
	}
	return server.CreateTexture(texels, width, height)
}

// CreateGroundTexture builds a speckled dirt texture. The same seed always
// produces the same texels.
func (server *AssetServer) CreateGroundTexture(width, height int, base color.RGBA, seed int64) AssetId {
	rng := rand.New(rand.NewSource(seed))
	texels := newTexels(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f := 0.8 + 0.4*rng.Float64()
			// larger blotches every few texels
			f *= 0.9 + 0.1*math.Sin(float64(x)*0.35)*math.Cos(float64(y)*0.27)
			c := color.RGBA{
				R: clampByte(float64(base.R) * f),
				G: clampByte(float64(base.G) * f),
				B: clampByte(float64(base.B) * f),
				A: base.A,
			}
			setTexel(texels, width, x, y, c)
		}
	}
	return server.CreateTexture(texels, width, height)
}

func clampByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
