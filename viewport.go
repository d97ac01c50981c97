package letterbox

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Point is an integer pixel coordinate.
type Point struct {
	X int
	Y int
}

// Rect is a float rectangle as used by blits. Height may be negative to
// request a vertical flip of the source.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// OverflowPolicy decides what happens when the window is smaller than the
// virtual framebuffer.
type OverflowPolicy int

const (
	// OverflowAllow keeps the centering offset even when it goes negative and
	// lets the display clip whatever falls outside the window.
	OverflowAllow OverflowPolicy = iota
	// OverflowClamp pins the offset to the window origin, so the image is
	// cropped on the right and bottom edges instead.
	OverflowClamp
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowClamp:
		return "clamp"
	default:
		return "allow"
	}
}

// Placement is where a scaled virtual framebuffer lands inside the window.
// It is derived every frame and never cached.
type Placement struct {
	Virtual  Size
	Physical Size
	Scale    int
	Offset   Point
}

// ComputePlacement picks the largest uniform integer scale at which the
// virtual framebuffer fits in the physical window, falling back to 1, and
// centers the result.
func ComputePlacement(virtual, physical Size) Placement {
	return ComputePlacementWithPolicy(virtual, physical, OverflowAllow)
}

// ComputePlacementWithPolicy is ComputePlacement with an explicit overflow
// policy for windows smaller than the virtual framebuffer.
func ComputePlacementWithPolicy(virtual, physical Size, policy OverflowPolicy) Placement {
	scale := 1
	if virtual.Width > 0 && virtual.Height > 0 {
		scaleX := physical.Width / virtual.Width
		scaleY := physical.Height / virtual.Height
		candidate := min(scaleX, scaleY)
		if candidate > 1 &&
			virtual.Width*candidate <= physical.Width &&
			virtual.Height*candidate <= physical.Height {
			scale = candidate
		}
	}

	offset := Point{
		X: (physical.Width - virtual.Width*scale) / 2,
		Y: (physical.Height - virtual.Height*scale) / 2,
	}
	if policy == OverflowClamp {
		offset.X = max(offset.X, 0)
		offset.Y = max(offset.Y, 0)
	}

	return Placement{
		Virtual:  virtual,
		Physical: physical,
		Scale:    scale,
		Offset:   offset,
	}
}

// ScaledSize is the size of the virtual framebuffer after scaling.
func (p Placement) ScaledSize() Size {
	return Size{Width: p.Virtual.Width * p.Scale, Height: p.Virtual.Height * p.Scale}
}

// Fits reports whether the scaled framebuffer lies fully inside the window.
func (p Placement) Fits() bool {
	s := p.ScaledSize()
	return p.Offset.X >= 0 && p.Offset.Y >= 0 &&
		p.Offset.X+s.Width <= p.Physical.Width &&
		p.Offset.Y+s.Height <= p.Physical.Height
}

// Source is the whole virtual framebuffer with a negated height. Render
// targets are stored bottom-up, so the flip brings them upright.
func (p Placement) Source() Rect {
	return Rect{
		X:      0,
		Y:      0,
		Width:  float32(p.Virtual.Width),
		Height: -float32(p.Virtual.Height),
	}
}

// Dest is the window-space rectangle the framebuffer is drawn into.
func (p Placement) Dest() Rect {
	s := p.ScaledSize()
	return Rect{
		X:      float32(p.Offset.X),
		Y:      float32(p.Offset.Y),
		Width:  float32(s.Width),
		Height: float32(s.Height),
	}
}

// BlitCommand describes the single blit that presents the framebuffer.
func (p Placement) BlitCommand() BlitCommand {
	return BlitCommand{
		Source:   p.Source(),
		Dest:     p.Dest(),
		Origin:   mgl32.Vec2{0, 0},
		Rotation: 0,
		Tint:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// ToVirtual maps a window coordinate into virtual framebuffer pixels. The
// second result is false when the point falls outside the framebuffer.
func (p Placement) ToVirtual(x, y float32) (mgl32.Vec2, bool) {
	if p.Scale <= 0 {
		return mgl32.Vec2{}, false
	}
	s := float32(p.Scale)
	v := mgl32.Vec2{
		(x - float32(p.Offset.X)) / s,
		(y - float32(p.Offset.Y)) / s,
	}
	inside := v.X() >= 0 && v.Y() >= 0 &&
		v.X() < float32(p.Virtual.Width) && v.Y() < float32(p.Virtual.Height)
	return v, inside
}
