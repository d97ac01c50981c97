package letterbox

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// BlitCommand copies a region of a render target onto the display.
type BlitCommand struct {
	Source   Rect
	Dest     Rect
	Origin   mgl32.Vec2
	Rotation float32
	Tint     color.RGBA

	// Program, when set, shades the blit. It must come from the same
	// platform as the display.
	Program ShaderProgram
}

// DisplaySurface is the physical window back buffer.
type DisplaySurface interface {
	CurrentSize() Size
	BeginFrame()
	EndFrame()
	Blit(src RenderTarget, cmd BlitCommand)
}

// RenderTarget is a fixed-resolution offscreen surface. Implementations store
// rows bottom-up, which is why presenting blits flip the source.
type RenderTarget interface {
	Size() Size
	Begin()
	End()
	Clear(c color.RGBA)
	FillCircle(center mgl32.Vec2, radius float32, c color.RGBA)
	DrawTexture(tex AssetId, pos mgl32.Vec2, tint color.RGBA)
	DrawText(text string, x, y, size int, c color.RGBA)
	MeasureText(text string, size int) int
}

// WindowConfig holds the window flags set once at startup.
type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

// FullscreenToggler is implemented by displays that can switch to fullscreen.
type FullscreenToggler interface {
	ToggleFullscreen()
}

func (c WindowConfig) withDefaults() WindowConfig {
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Title == "" {
		c.Title = "letterbox"
	}
	return c
}
