package soft

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gekko3d/letterbox"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Display is an in-memory window back buffer, stored top-down like a screen.
type Display struct {
	back       *image.RGBA
	pending    *letterbox.Size
	fullscreen bool
	windowed   letterbox.Size
	screen     letterbox.Size
	inFrame    bool
	blits      []letterbox.BlitCommand
	logger     letterbox.Logger
}

func NewDisplay(size letterbox.Size, logger letterbox.Logger) *Display {
	return &Display{
		back:     image.NewRGBA(image.Rect(0, 0, size.Width, size.Height)),
		windowed: size,
		screen:   letterbox.Size{Width: 1920, Height: 1080},
		logger:   logger,
	}
}

func (d *Display) CurrentSize() letterbox.Size {
	if d.pending != nil {
		return *d.pending
	}
	b := d.back.Bounds()
	return letterbox.Size{Width: b.Dx(), Height: b.Dy()}
}

// Resize changes the window size. Mid-frame resizes take effect at the next
// BeginFrame, as a real window would report them.
func (d *Display) Resize(size letterbox.Size) {
	if d.inFrame {
		d.pending = &size
		return
	}
	d.back = image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	d.pending = nil
}

func (d *Display) ToggleFullscreen() {
	d.fullscreen = !d.fullscreen
	if d.fullscreen {
		d.windowed = d.CurrentSize()
		d.Resize(d.screen)
	} else {
		d.Resize(d.windowed)
	}
	d.logger.Debugf("soft display fullscreen=%v", d.fullscreen)
}

func (d *Display) Fullscreen() bool { return d.fullscreen }

func (d *Display) BeginFrame() {
	if d.pending != nil {
		size := *d.pending
		d.pending = nil
		d.back = image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	}
	d.inFrame = true
	d.blits = d.blits[:0]
	draw.Draw(d.back, d.back.Bounds(), image.Black, image.Point{}, draw.Src)
}

func (d *Display) EndFrame() {
	d.inFrame = false
}

// Blits are the commands issued during the current or last frame.
func (d *Display) Blits() []letterbox.BlitCommand { return d.blits }

func (d *Display) Blit(src letterbox.RenderTarget, cmd letterbox.BlitCommand) {
	d.blits = append(d.blits, cmd)
	canvas, ok := src.(*Canvas)
	if !ok {
		d.logger.Warnf("soft display cannot blit %T", src)
		return
	}
	if cmd.Source.Width == 0 || cmd.Source.Height == 0 || cmd.Dest.Width == 0 || cmd.Dest.Height == 0 {
		return
	}

	pixels := shadePass(canvas, cmd)
	draw.NearestNeighbor.Transform(d.back, blitTransform(cmd.Source, cmd.Dest), pixels, pixels.Bounds(), draw.Over, nil)
}

// blitTransform maps storage coordinates of the source onto the window. A
// negative source extent mirrors along that axis.
func blitTransform(src, dst letterbox.Rect) f64.Aff3 {
	kx := float64(dst.Width) / float64(src.Width)
	ky := float64(dst.Height) / float64(src.Height)
	x0 := float64(src.X)
	if src.Width < 0 {
		x0 -= float64(src.Width)
	}
	y0 := float64(src.Y)
	if src.Height < 0 {
		y0 -= float64(src.Height)
	}
	return f64.Aff3{
		kx, 0, float64(dst.X) - x0*kx,
		0, ky, float64(dst.Y) - y0*ky,
	}
}

// shadePass applies tint and, for lighting tables, the lighting model to a
// copy of the canvas storage. Shading happens in upright virtual
// coordinates.
func shadePass(canvas *Canvas, cmd letterbox.BlitCommand) *image.RGBA {
	src := canvas.Storage()
	table, lit := cmd.Program.(*letterbox.UniformTable)
	white := cmd.Tint == color.RGBA{255, 255, 255, 255}
	if !lit && white {
		return src
	}

	var params letterbox.LightingParams
	if lit {
		params = letterbox.ReadLightingParams(table)
	}
	b := src.Bounds()
	out := image.NewRGBA(b)
	h := b.Dy()
	for row := 0; row < h; row++ {
		vy := float32(h-1-row) + 0.5
		for x := 0; x < b.Dx(); x++ {
			px := src.RGBAAt(x, row)
			if !white {
				px = modulate(px, cmd.Tint)
			}
			if lit {
				px = params.Shade(float32(x)+0.5, vy, px)
			}
			out.SetRGBA(x, row, px)
		}
	}
	return out
}

// Snapshot copies the back buffer.
func (d *Display) Snapshot() *image.RGBA {
	out := image.NewRGBA(d.back.Bounds())
	copy(out.Pix, d.back.Pix)
	return out
}

func (d *Display) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	if err := png.Encode(f, d.back); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot %s: %w", path, err)
	}
	return f.Close()
}
