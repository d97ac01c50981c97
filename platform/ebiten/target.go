package ebiten

import (
	"image"
	"image/color"

	"github.com/gekko3d/letterbox"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var face = text.NewGoXFace(basicfont.Face7x13)

type cachedImage struct {
	img     *ebiten.Image
	version uint
}

// Target is an offscreen ebiten image written bottom-up, matching GL
// render textures: every draw mirrors y before it lands.
type Target struct {
	img      *ebiten.Image
	size     letterbox.Size
	assets   *letterbox.AssetServer
	textures map[letterbox.AssetId]*cachedImage
}

func newTarget(size letterbox.Size, assets *letterbox.AssetServer) *Target {
	return &Target{
		img:      ebiten.NewImage(size.Width, size.Height),
		size:     size,
		assets:   assets,
		textures: make(map[letterbox.AssetId]*cachedImage),
	}
}

func (t *Target) Size() letterbox.Size { return t.size }
func (t *Target) Begin()               {}
func (t *Target) End()                 {}

func (t *Target) Clear(c color.RGBA) {
	t.img.Fill(c)
}

// flipY maps a top-down y onto storage rows.
func (t *Target) flipY(y float32) float32 {
	return float32(t.size.Height) - y
}

func (t *Target) FillCircle(center mgl32.Vec2, radius float32, c color.RGBA) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(t.img, center.X(), t.flipY(center.Y()), radius, c, true)
}

func (t *Target) image(id letterbox.AssetId) (*ebiten.Image, bool) {
	asset, ok := t.assets.Texture(id)
	if !ok {
		return nil, false
	}
	if cached, ok := t.textures[id]; ok && cached.version == asset.Version {
		return cached.img, true
	} else if ok {
		cached.img.Deallocate()
	}
	src := &image.NRGBA{
		Pix:    asset.Texels,
		Stride: asset.Width * 4,
		Rect:   image.Rect(0, 0, asset.Width, asset.Height),
	}
	img := ebiten.NewImageFromImage(src)
	t.textures[id] = &cachedImage{img: img, version: asset.Version}
	return img, true
}

// mirrored places a top-down quad with its top-left corner at (x, y) in
// storage space.
func (t *Target) mirrored(x, y float64) ebiten.GeoM {
	var geo ebiten.GeoM
	geo.Scale(1, -1)
	geo.Translate(x, float64(t.size.Height)-y)
	return geo
}

func (t *Target) DrawTexture(id letterbox.AssetId, pos mgl32.Vec2, tint color.RGBA) {
	if t.assets == nil {
		return
	}
	img, ok := t.image(id)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = t.mirrored(float64(pos.X()), float64(pos.Y()))
	op.ColorScale.ScaleWithColor(tint)
	t.img.DrawImage(img, op)
}

func fontScale(size int) float64 {
	return max(1, float64(size)/13)
}

func (t *Target) DrawText(s string, x, y, size int, c color.RGBA) {
	op := &text.DrawOptions{}
	k := fontScale(size)
	op.GeoM.Scale(k, k)
	op.GeoM.Concat(t.mirrored(float64(x), float64(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(t.img, s, face, op)
}

func (t *Target) MeasureText(s string, size int) int {
	w, _ := text.Measure(s, face, 0)
	return int(w * fontScale(size))
}

func (t *Target) deallocate() {
	for _, cached := range t.textures {
		cached.img.Deallocate()
	}
	t.img.Deallocate()
}
