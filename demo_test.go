package letterbox_test

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/gekko3d/letterbox"
	"github.com/gekko3d/letterbox/platform/soft"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDemo(t *testing.T, opts soft.Options, cfg letterbox.Config) (*letterbox.App, *soft.Platform) {
	t.Helper()
	p := soft.New(opts)
	app := letterbox.NewAppBuilder().
		UseModule(letterbox.AssetServerModule{}).
		UseModule(letterbox.PlatformModule{Platform: p, Window: cfg.WindowConfig()}).
		UseModule(letterbox.TimeModule{}).
		UseModule(letterbox.InputModule{}).
		UseModule(cfg.ViewportModule()).
		UseModule(cfg.LightingModule()).
		UseModule(cfg.AudioModule()).
		UseModule(letterbox.DemoModule{Seed: 42}).
		Build()
	return app, p
}

func TestDemo_RunsHeadless(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "frame.png")
	cfg := letterbox.DefaultConfig()
	app, p := buildDemo(t, soft.Options{Frames: 90, Snapshot: snapshot}, cfg)

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, uint64(90), app.Frame())
	assert.FileExists(t, snapshot)

	// 320x240 in 640x480 is an exact 2x with no bars.
	blits := p.SoftDisplay().Blits()
	require.Len(t, blits, 1)
	assert.Equal(t, letterbox.Rect{Width: 320, Height: -240}, blits[0].Source)
	assert.Equal(t, letterbox.Rect{Width: 640, Height: 480}, blits[0].Dest)
	assert.NotNil(t, blits[0].Program)

	// the frame is shaded with the background material's program
	scene := letterbox.MustResource[letterbox.Scene](app)
	material, ok := letterbox.MustResource[letterbox.AssetServer](app).Material(scene.Background())
	require.True(t, ok)
	assert.NotEqual(t, letterbox.NoAsset, material.Texture)
	assert.Same(t, material.Program, blits[0].Program)

	audio := p.SoftAudio()
	assert.True(t, audio.Loaded(letterbox.SoundExplosion))
	assert.Equal(t, float32(0.5), audio.Volume)
}

func TestDemo_LetterboxBarsStayBlack(t *testing.T) {
	cfg := letterbox.DefaultConfig()
	cfg.Window.Width, cfg.Window.Height = 1000, 700
	app, p := buildDemo(t, soft.Options{Frames: 3}, cfg)
	require.NoError(t, app.Run(context.Background()))

	img := p.SoftDisplay().Snapshot()
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(100, 350))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(500, 50))
	assert.NotEqual(t, color.RGBA{A: 255}, img.RGBAAt(500, 350))
}

func TestDemo_EscapeQuits(t *testing.T) {
	cfg := letterbox.DefaultConfig()
	app, _ := buildDemo(t, soft.Options{Frames: 1000, Script: func(frame int, p *soft.Platform) {
		if frame == 10 {
			p.SoftInput().Press(letterbox.KeyEscape)
		}
	}}, cfg)

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, uint64(11), app.Frame())
}

func TestDemo_ResizeFollowsWindow(t *testing.T) {
	cfg := letterbox.DefaultConfig()
	app, p := buildDemo(t, soft.Options{Frames: 4, Script: func(frame int, p *soft.Platform) {
		if frame == 2 {
			p.SoftDisplay().Resize(letterbox.Size{Width: 1000, Height: 700})
		}
	}}, cfg)
	require.NoError(t, app.Run(context.Background()))

	blits := p.SoftDisplay().Blits()
	require.Len(t, blits, 1)
	assert.Equal(t, letterbox.Rect{X: 180, Y: 110, Width: 640, Height: 480}, blits[0].Dest)
}

func TestDemo_FogKeys(t *testing.T) {
	cfg := letterbox.DefaultConfig()
	app, _ := buildDemo(t, soft.Options{Frames: 10, Script: func(frame int, p *soft.Platform) {
		if frame == 0 {
			p.SoftInput().Press(letterbox.KeyF)
		}
	}}, cfg)
	require.NoError(t, app.Run(context.Background()))

	lighting := letterbox.MustResource[letterbox.Lighting](app)
	assert.InDelta(t, 0.15+10*0.001, lighting.FogDensity, 1e-5)
}

func TestDemo_CollisionPlaysSoundOnce(t *testing.T) {
	cfg := letterbox.DefaultConfig()
	app, p := buildDemo(t, soft.Options{Frames: 1}, cfg)
	require.NoError(t, app.Run(context.Background()))

	// Both balls start at the centre, so the first frame collides.
	scene := letterbox.MustResource[letterbox.Scene](app)
	assert.True(t, scene.Colliding)
	assert.Equal(t, 1, p.SoftAudio().Played(letterbox.SoundExplosion))
}

func TestDemo_MouseDragsPlayer(t *testing.T) {
	cfg := letterbox.DefaultConfig()
	app, _ := buildDemo(t, soft.Options{Frames: 30, Script: func(frame int, p *soft.Platform) {
		p.SoftInput().MoveCursor(40, 40)
		p.SoftInput().Press(letterbox.MouseButtonLeft)
	}}, cfg)
	require.NoError(t, app.Run(context.Background()))

	input := letterbox.MustResource[letterbox.Input](app)
	assert.Equal(t, float32(20), input.VirtualX)
	assert.True(t, input.MouseInside)

	scene := letterbox.MustResource[letterbox.Scene](app)
	start := mgl32.Vec2{160, 120}
	assert.Less(t, scene.Player.Position.Sub(mgl32.Vec2{20, 20}).Len(), start.Sub(mgl32.Vec2{20, 20}).Len())
}
