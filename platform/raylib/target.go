package raylib

import (
	"image/color"

	"github.com/gekko3d/letterbox"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func toVector2(v mgl32.Vec2) rl.Vector2 {
	return rl.NewVector2(v.X(), v.Y())
}

type gpuTexture struct {
	tex     rl.Texture2D
	version uint
}

// Target is a RenderTexture2D. GL stores it bottom-up.
type Target struct {
	rt       rl.RenderTexture2D
	size     letterbox.Size
	assets   *letterbox.AssetServer
	textures map[letterbox.AssetId]*gpuTexture
}

func newTarget(size letterbox.Size, assets *letterbox.AssetServer) *Target {
	return &Target{
		rt:       rl.LoadRenderTexture(int32(size.Width), int32(size.Height)),
		size:     size,
		assets:   assets,
		textures: make(map[letterbox.AssetId]*gpuTexture),
	}
}

func (t *Target) Size() letterbox.Size { return t.size }
func (t *Target) Begin()               { rl.BeginTextureMode(t.rt) }
func (t *Target) End()                 { rl.EndTextureMode() }

func (t *Target) Clear(c color.RGBA) {
	rl.ClearBackground(toColor(c))
}

func (t *Target) FillCircle(center mgl32.Vec2, radius float32, c color.RGBA) {
	rl.DrawCircleV(toVector2(center), radius, toColor(c))
}

// texture uploads an asset on first use and again whenever its texels change.
func (t *Target) texture(id letterbox.AssetId) (rl.Texture2D, bool) {
	asset, ok := t.assets.Texture(id)
	if !ok {
		return rl.Texture2D{}, false
	}
	if cached, ok := t.textures[id]; ok {
		if cached.version == asset.Version {
			return cached.tex, true
		}
		rl.UnloadTexture(cached.tex)
	}
	img := rl.NewImage(asset.Texels, int32(asset.Width), int32(asset.Height), 1, rl.UncompressedR8g8b8a8)
	tex := rl.LoadTextureFromImage(img)
	t.textures[id] = &gpuTexture{tex: tex, version: asset.Version}
	return tex, true
}

func (t *Target) DrawTexture(id letterbox.AssetId, pos mgl32.Vec2, tint color.RGBA) {
	if t.assets == nil {
		return
	}
	if tex, ok := t.texture(id); ok {
		rl.DrawTextureV(tex, toVector2(pos), toColor(tint))
	}
}

func (t *Target) DrawText(text string, x, y, size int, c color.RGBA) {
	rl.DrawText(text, int32(x), int32(y), int32(size), toColor(c))
}

func (t *Target) MeasureText(text string, size int) int {
	return int(rl.MeasureText(text, int32(size)))
}

func (t *Target) unload() {
	for _, cached := range t.textures {
		rl.UnloadTexture(cached.tex)
	}
	rl.UnloadRenderTexture(t.rt)
}

type Display struct {
	logger letterbox.Logger
}

func (d *Display) CurrentSize() letterbox.Size {
	return letterbox.Size{Width: rl.GetRenderWidth(), Height: rl.GetRenderHeight()}
}

func (d *Display) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
}

func (d *Display) EndFrame() {
	rl.EndDrawing()
}

func (d *Display) Blit(src letterbox.RenderTarget, cmd letterbox.BlitCommand) {
	target, ok := src.(*Target)
	if !ok {
		d.logger.Warnf("raylib display cannot blit %T", src)
		return
	}
	program, shaded := cmd.Program.(*Program)
	if shaded {
		rl.BeginShaderMode(program.shader)
	}
	rl.DrawTexturePro(
		target.rt.Texture,
		rl.NewRectangle(cmd.Source.X, cmd.Source.Y, cmd.Source.Width, cmd.Source.Height),
		rl.NewRectangle(cmd.Dest.X, cmd.Dest.Y, cmd.Dest.Width, cmd.Dest.Height),
		toVector2(cmd.Origin),
		cmd.Rotation,
		toColor(cmd.Tint),
	)
	if shaded {
		rl.EndShaderMode()
	}
}

func (d *Display) ToggleFullscreen() {
	rl.ToggleFullscreen()
}
