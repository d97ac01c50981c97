package letterbox

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

type AssetId string

// NoAsset is the zero AssetId; lookups with it always fail.
const NoAsset AssetId = ""

type AssetServer struct {
	materials map[AssetId]*MaterialAsset
	textures  map[AssetId]*TextureAsset
	sounds    map[AssetId]*SoundAsset
	names     map[string]AssetId
}

type AssetServerModule struct{}

// TextureAsset holds straight RGBA8 texels, rows top-down. Version changes
// whenever texels are replaced so platforms know to re-upload.
type TextureAsset struct {
	Version uint
	Texels  []uint8
	Width   int
	Height  int
}

func (t *TextureAsset) At(x, y int) color.RGBA {
	i := (y*t.Width + x) * 4
	return color.RGBA{t.Texels[i], t.Texels[i+1], t.Texels[i+2], t.Texels[i+3]}
}

// MaterialAsset pairs a texture with the program used to shade it. Both are
// set through AssetServer.BindTexture and AssetServer.BindProgram.
type MaterialAsset struct {
	Version uint
	Texture AssetId
	Program ShaderProgram
}

type SoundAsset struct {
	Name       string
	PCM        []int16
	SampleRate int
}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		materials: make(map[AssetId]*MaterialAsset),
		textures:  make(map[AssetId]*TextureAsset),
		sounds:    make(map[AssetId]*SoundAsset),
		names:     make(map[string]AssetId),
	}
}

func (server *AssetServer) CreateTexture(texels []uint8, texWidth, texHeight int) AssetId {
	if len(texels) != texWidth*texHeight*4 {
		panic(fmt.Sprintf("CreateTexture: %d texels for %dx%d RGBA", len(texels), texWidth, texHeight))
	}
	id := makeAssetId()

	server.textures[id] = &TextureAsset{
		Version: 0,
		Texels:  texels,
		Width:   texWidth,
		Height:  texHeight,
	}

	return id
}

// CreateTextureFromImage copies img into a new RGBA texture.
func (server *AssetServer) CreateTextureFromImage(img image.Image) AssetId {
	bounds := img.Bounds()
	rgbaImg, ok := img.(*image.RGBA)
	if !ok || rgbaImg.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		rgbaImg = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgbaImg, rgbaImg.Bounds(), img, bounds.Min, draw.Src)
	}
	return server.CreateTexture(rgbaImg.Pix, bounds.Dx(), bounds.Dy())
}

func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return NoAsset, fmt.Errorf("loading texture: %w", err)
	}
	id, err := server.LoadTextureBytes(data)
	if err != nil {
		return NoAsset, fmt.Errorf("loading texture %s: %w", filename, err)
	}
	server.names[filename] = id
	return id, nil
}

// LoadTextureBytes decodes png, jpeg, gif or bmp data.
func (server *AssetServer) LoadTextureBytes(data []byte) (AssetId, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return NoAsset, fmt.Errorf("decoding texture: %w", err)
	}
	return server.CreateTextureFromImage(img), nil
}

func (server *AssetServer) Texture(id AssetId) (*TextureAsset, bool) {
	t, ok := server.textures[id]
	return t, ok
}

// UpdateTexture replaces the texels of an existing texture of the same size.
func (server *AssetServer) UpdateTexture(id AssetId, texels []uint8) bool {
	t, ok := server.textures[id]
	if !ok || len(texels) != len(t.Texels) {
		return false
	}
	t.Texels = texels
	t.Version++
	return true
}

// Lookup finds an asset registered under a file or sound name.
func (server *AssetServer) Lookup(name string) (AssetId, bool) {
	id, ok := server.names[name]
	return id, ok
}

func (server *AssetServer) CreateMaterial() AssetId {
	id := makeAssetId()
	server.materials[id] = &MaterialAsset{}
	return id
}

func (server *AssetServer) Material(id AssetId) (*MaterialAsset, bool) {
	m, ok := server.materials[id]
	return m, ok
}

// BindTexture sets a material's albedo texture. Both ids must exist.
func (server *AssetServer) BindTexture(material, texture AssetId) error {
	m, ok := server.materials[material]
	if !ok {
		return fmt.Errorf("binding texture: unknown material %s", material)
	}
	if _, ok := server.textures[texture]; !ok {
		return fmt.Errorf("binding texture: unknown texture %s", texture)
	}
	m.Texture = texture
	m.Version++
	return nil
}

// BindProgram sets the program a material is shaded with. Several materials
// may share one program.
func (server *AssetServer) BindProgram(material AssetId, program ShaderProgram) error {
	m, ok := server.materials[material]
	if !ok {
		return fmt.Errorf("binding program: unknown material %s", material)
	}
	m.Program = program
	m.Version++
	return nil
}

// DrawMaterial draws a material's texture into target at pos and returns the
// program the material is shaded with, nil if none is bound.
func (server *AssetServer) DrawMaterial(target RenderTarget, material AssetId, pos mgl32.Vec2, tint color.RGBA) (ShaderProgram, error) {
	m, ok := server.materials[material]
	if !ok {
		return nil, fmt.Errorf("drawing material: unknown material %s", material)
	}
	if m.Texture == NoAsset {
		return m.Program, fmt.Errorf("drawing material %s: no texture bound", material)
	}
	target.DrawTexture(m.Texture, pos, tint)
	return m.Program, nil
}

func (server *AssetServer) CreateSound(name string, pcm []int16, sampleRate int) AssetId {
	id := makeAssetId()
	server.sounds[id] = &SoundAsset{
		Name:       name,
		PCM:        pcm,
		SampleRate: sampleRate,
	}
	server.names[name] = id
	return id
}

func (server *AssetServer) Sound(id AssetId) (*SoundAsset, bool) {
	s, ok := server.sounds[id]
	return s, ok
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer())
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
