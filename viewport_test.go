package letterbox

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePlacement_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		virtual  Size
		physical Size
		scale    int
		offset   Point
	}{
		{"exact triple", Size{320, 240}, Size{960, 720}, 3, Point{0, 0}},
		{"limited by height", Size{320, 240}, Size{1000, 700}, 2, Point{180, 110}},
		{"narrower than virtual", Size{640, 480}, Size{600, 500}, 1, Point{-20, 10}},
		{"identical", Size{320, 240}, Size{320, 240}, 1, Point{0, 0}},
		{"just under double", Size{320, 240}, Size{639, 479}, 1, Point{159, 119}},
		{"odd remainder", Size{320, 240}, Size{645, 483}, 2, Point{2, 1}},
		{"smaller both axes", Size{320, 240}, Size{200, 100}, 1, Point{-60, -70}},
		{"odd negative truncates", Size{640, 480}, Size{601, 480}, 1, Point{-19, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputePlacement(tt.virtual, tt.physical)
			assert.Equal(t, tt.scale, p.Scale)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestComputePlacement_ExactMultiplesAreCentered(t *testing.T) {
	virtual := Size{320, 240}
	for k := 1; k <= 6; k++ {
		for _, pad := range []Size{{0, 0}, {10, 0}, {0, 30}, {7, 9}} {
			physical := Size{virtual.Width*k + pad.Width, virtual.Height*k + pad.Height}
			t.Run(fmt.Sprintf("k%d_%dx%d", k, physical.Width, physical.Height), func(t *testing.T) {
				p := ComputePlacement(virtual, physical)
				require.Equal(t, k, p.Scale)
				assert.Equal(t, Point{pad.Width / 2, pad.Height / 2}, p.Offset)
				assert.True(t, p.Fits())
			})
		}
	}
}

func TestComputePlacement_FitsWheneverWindowIsLarger(t *testing.T) {
	virtuals := []Size{{320, 240}, {256, 224}, {100, 300}, {1, 1}}
	for _, v := range virtuals {
		for w := v.Width; w <= v.Width*4+3; w += 37 {
			for h := v.Height; h <= v.Height*4+3; h += 41 {
				p := ComputePlacement(v, Size{w, h})
				if !assert.GreaterOrEqual(t, p.Scale, 1) ||
					!assert.True(t, p.Fits(), "virtual %v physical %dx%d placement %+v", v, w, h, p) {
					return
				}
			}
		}
	}
}

func TestComputePlacement_SmallerWindowFallsBackToOne(t *testing.T) {
	virtual := Size{320, 240}
	for _, physical := range []Size{{319, 1000}, {1000, 239}, {10, 10}, {0, 0}} {
		p := ComputePlacement(virtual, physical)
		assert.Equal(t, 1, p.Scale, "physical %v", physical)
		assert.False(t, p.Fits(), "physical %v", physical)
	}
}

func TestComputePlacement_DegenerateVirtual(t *testing.T) {
	p := ComputePlacement(Size{0, 0}, Size{800, 600})
	assert.Equal(t, 1, p.Scale)
	assert.Equal(t, Point{400, 300}, p.Offset)
}

func TestComputePlacementWithPolicy_Clamp(t *testing.T) {
	allow := ComputePlacementWithPolicy(Size{640, 480}, Size{600, 400}, OverflowAllow)
	assert.Equal(t, Point{-20, -40}, allow.Offset)

	clamp := ComputePlacementWithPolicy(Size{640, 480}, Size{600, 400}, OverflowClamp)
	assert.Equal(t, 1, clamp.Scale)
	assert.Equal(t, Point{0, 0}, clamp.Offset)

	// Clamp changes nothing when the image fits.
	fits := ComputePlacementWithPolicy(Size{320, 240}, Size{1000, 700}, OverflowClamp)
	assert.Equal(t, Point{180, 110}, fits.Offset)
}

func TestPlacement_BlitCommand(t *testing.T) {
	p := ComputePlacement(Size{320, 240}, Size{1000, 700})
	cmd := p.BlitCommand()

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 320, Height: -240}, cmd.Source)
	assert.Equal(t, Rect{X: 180, Y: 110, Width: 640, Height: 480}, cmd.Dest)
	assert.Equal(t, mgl32.Vec2{0, 0}, cmd.Origin)
	assert.Zero(t, cmd.Rotation)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, cmd.Tint)
	assert.Nil(t, cmd.Program)
}

func TestPlacement_ToVirtual(t *testing.T) {
	p := ComputePlacement(Size{320, 240}, Size{1000, 700})

	v, inside := p.ToVirtual(180, 110)
	assert.True(t, inside)
	assert.Equal(t, mgl32.Vec2{0, 0}, v)

	v, inside = p.ToVirtual(180+640-2, 110+480-2)
	assert.True(t, inside)
	assert.Equal(t, mgl32.Vec2{319, 239}, v)

	v, inside = p.ToVirtual(100, 50)
	assert.False(t, inside)
	assert.Equal(t, mgl32.Vec2{-40, -30}, v)

	_, inside = p.ToVirtual(180+640, 300)
	assert.False(t, inside)
}

func TestOverflowPolicy_String(t *testing.T) {
	assert.Equal(t, "allow", OverflowAllow.String())
	assert.Equal(t, "clamp", OverflowClamp.String())
}
