package soft

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/letterbox"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var black = color.RGBA{A: 255}

func markedCanvas(t *testing.T, virtual letterbox.Size) *Canvas {
	t.Helper()
	assets := letterbox.NewAssetServer()
	marker := assets.CreateTexture([]uint8{0, 255, 0, 255}, 1, 1)
	c := NewCanvas(virtual, assets)
	c.Clear(red)
	c.DrawTexture(marker, mgl32.Vec2{0, 0}, white)
	return c
}

func TestDisplay_BlitLetterboxesUpright(t *testing.T) {
	virtual := letterbox.Size{Width: 320, Height: 240}
	d := NewDisplay(letterbox.Size{Width: 1000, Height: 700}, letterbox.NewNopLogger())
	c := markedCanvas(t, virtual)

	d.BeginFrame()
	p := letterbox.ComputePlacement(virtual, d.CurrentSize())
	d.Blit(c, p.BlitCommand())
	d.EndFrame()

	img := d.Snapshot()
	// The top-left virtual pixel lands at the offset, scaled 2x.
	assert.Equal(t, green, img.RGBAAt(180, 110))
	assert.Equal(t, green, img.RGBAAt(181, 111))
	assert.Equal(t, red, img.RGBAAt(182, 110))
	assert.Equal(t, red, img.RGBAAt(180+639, 110+479))
	// Bars stay black.
	assert.Equal(t, black, img.RGBAAt(179, 110))
	assert.Equal(t, black, img.RGBAAt(180, 109))
	assert.Equal(t, black, img.RGBAAt(180+640, 300))
	assert.Equal(t, black, img.RGBAAt(500, 110+480))

	require.Len(t, d.Blits(), 1)
}

func TestDisplay_OverflowClips(t *testing.T) {
	virtual := letterbox.Size{Width: 640, Height: 480}
	d := NewDisplay(letterbox.Size{Width: 600, Height: 500}, letterbox.NewNopLogger())
	c := markedCanvas(t, virtual)

	d.BeginFrame()
	d.Blit(c, letterbox.ComputePlacement(virtual, d.CurrentSize()).BlitCommand())
	d.EndFrame()

	img := d.Snapshot()
	// Offset (-20, 10): the marker column is off screen.
	assert.Equal(t, red, img.RGBAAt(0, 10))
	assert.Equal(t, black, img.RGBAAt(0, 9))
	assert.Equal(t, red, img.RGBAAt(599, 489))
	assert.Equal(t, black, img.RGBAAt(300, 490))
}

func TestDisplay_ResizeMidFrameIsDeferred(t *testing.T) {
	d := NewDisplay(letterbox.Size{Width: 100, Height: 100}, letterbox.NewNopLogger())

	d.BeginFrame()
	d.Resize(letterbox.Size{Width: 300, Height: 200})
	assert.Equal(t, letterbox.Size{Width: 300, Height: 200}, d.CurrentSize())
	assert.Equal(t, 100, d.Snapshot().Bounds().Dx())
	d.EndFrame()

	d.BeginFrame()
	assert.Equal(t, 300, d.Snapshot().Bounds().Dx())
	d.EndFrame()

	d.Resize(letterbox.Size{Width: 50, Height: 40})
	assert.Equal(t, 40, d.Snapshot().Bounds().Dy())
}

func TestDisplay_ToggleFullscreen(t *testing.T) {
	d := NewDisplay(letterbox.Size{Width: 640, Height: 480}, letterbox.NewNopLogger())
	d.ToggleFullscreen()
	assert.True(t, d.Fullscreen())
	assert.Equal(t, letterbox.Size{Width: 1920, Height: 1080}, d.CurrentSize())
	d.ToggleFullscreen()
	assert.False(t, d.Fullscreen())
	assert.Equal(t, letterbox.Size{Width: 640, Height: 480}, d.CurrentSize())
}

func TestDisplay_BlitWithLighting(t *testing.T) {
	virtual := letterbox.Size{Width: 4, Height: 4}
	d := NewDisplay(letterbox.Size{Width: 4, Height: 4}, letterbox.NewNopLogger())
	c := NewCanvas(virtual, nil)
	c.Clear(white)

	table := letterbox.NewUniformTable(letterbox.LightingLayout(letterbox.MaxLights))
	table.SetUniformVec4(table.UniformLocation(letterbox.UniformAmbient), mgl32.Vec4{0.5, 0.5, 0.5, 1})

	cmd := letterbox.ComputePlacement(virtual, d.CurrentSize()).BlitCommand()
	cmd.Program = table
	d.BeginFrame()
	d.Blit(c, cmd)
	d.EndFrame()

	assert.Equal(t, color.RGBA{128, 128, 128, 255}, d.Snapshot().RGBAAt(2, 2))
	// The canvas itself is untouched.
	assert.Equal(t, white, c.At(2, 2))
}

func TestDisplay_SavePNG(t *testing.T) {
	d := NewDisplay(letterbox.Size{Width: 8, Height: 8}, letterbox.NewNopLogger())
	d.BeginFrame()
	d.EndFrame()

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, d.SavePNG(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, d.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")))
}
