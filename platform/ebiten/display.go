package ebiten

import (
	"image"
	"image/color"

	"github.com/gekko3d/letterbox"
	"github.com/hajimehoshi/ebiten/v2"
)

type recordedBlit struct {
	target *Target
	cmd    letterbox.BlitCommand
}

// Display records the frame's blits during Update and replays them onto the
// screen in Draw.
type Display struct {
	shader  *ebiten.Shader
	logger  letterbox.Logger
	size    letterbox.Size
	pending []recordedBlit
	ready   []recordedBlit
}

func (d *Display) CurrentSize() letterbox.Size { return d.size }

func (d *Display) BeginFrame() {
	d.pending = d.pending[:0]
}

func (d *Display) Blit(src letterbox.RenderTarget, cmd letterbox.BlitCommand) {
	target, ok := src.(*Target)
	if !ok {
		d.logger.Warnf("ebiten display cannot blit %T", src)
		return
	}
	d.pending = append(d.pending, recordedBlit{target: target, cmd: cmd})
}

func (d *Display) EndFrame() {
	d.ready, d.pending = d.pending, d.ready[:0]
}

func (d *Display) ToggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
}

// blitGeoM maps the normalized source sub-image onto the destination. A
// negative source extent mirrors that axis.
func blitGeoM(src, dst letterbox.Rect) (image.Rectangle, ebiten.GeoM) {
	sx0 := min(src.X, src.X+src.Width)
	sy0 := min(src.Y, src.Y+src.Height)
	xStart := src.X - min(src.Width, 0)
	yStart := src.Y - min(src.Height, 0)
	kx := float64(dst.Width / src.Width)
	ky := float64(dst.Height / src.Height)

	var geo ebiten.GeoM
	geo.Scale(kx, ky)
	geo.Translate(
		float64(dst.X)+float64(sx0-xStart)*kx,
		float64(dst.Y)+float64(sy0-yStart)*ky,
	)
	rect := image.Rect(int(sx0), int(sy0), int(sx0+abs(src.Width)), int(sy0+abs(src.Height)))
	return rect, geo
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (d *Display) draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	for _, b := range d.ready {
		cmd := b.cmd
		if cmd.Source.Width == 0 || cmd.Source.Height == 0 {
			continue
		}
		rect, geo := blitGeoM(cmd.Source, cmd.Dest)
		sub := b.target.img.SubImage(rect).(*ebiten.Image)

		table, lit := cmd.Program.(*letterbox.UniformTable)
		if lit && d.shader != nil {
			op := &ebiten.DrawRectShaderOptions{}
			op.GeoM = geo
			op.Images[0] = sub
			op.Uniforms = kageUniforms(table)
			op.ColorScale.ScaleWithColor(cmd.Tint)
			screen.DrawRectShader(rect.Dx(), rect.Dy(), d.shader, op)
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM = geo
		op.ColorScale.ScaleWithColor(cmd.Tint)
		screen.DrawImage(sub, op)
	}
}
