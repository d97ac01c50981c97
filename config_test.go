package letterbox

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "letterbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "soft", cfg.Platform)
	assert.Equal(t, VersionName, cfg.Window.Title)
	assert.Equal(t, 60, cfg.Headless.Hz)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
platform: raylib
window:
  width: 1280
  height: 720
  title: demo
  resizable: false
  vsync: false
virtual:
  width: 256
  height: 224
scaling:
  overflow: clamp
lighting:
  ambient: [0.1, 0.1, 0.1, 1]
  fog_density: 0.4
  lights:
    - kind: directional
      position: [0, 0, 1]
      color: [255, 128, 0, 255]
audio:
  volume: 0.25
  enabled: false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "raylib", cfg.Platform)
	assert.Equal(t, WindowConfig{Width: 1280, Height: 720, Title: "demo"}, cfg.WindowConfig())
	assert.False(t, cfg.Debug)

	vp := cfg.ViewportModule()
	assert.Equal(t, 256, vp.Width)
	assert.Equal(t, 224, vp.Height)
	assert.Equal(t, OverflowClamp, vp.Overflow)
	assert.Equal(t, color.RGBA{A: 255}, vp.ClearColor)

	lm := cfg.LightingModule()
	assert.Equal(t, mgl32.Vec4{0.1, 0.1, 0.1, 1}, lm.Ambient)
	assert.Equal(t, float32(0.4), lm.FogDensity)
	require.Len(t, lm.Lights, 1)
	assert.Equal(t, LightDirectional, lm.Lights[0].Kind)
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, lm.Lights[0].Color)

	am := cfg.AudioModule()
	assert.False(t, am.Enabled)
	assert.Equal(t, float32(0.25), am.Volume)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "window: [1, 2"))
	assert.Error(t, err)

	cases := map[string]string{
		"overflow":   "scaling:\n  overflow: stretch\n",
		"light kind": "lighting:\n  lights:\n    - kind: spot\n",
		"virtual":    "virtual:\n  width: 0\n  height: 240\n",
		"volume":     "audio:\n  volume: 2\n",
		"frames":     "headless:\n  frames: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestParseOverflowPolicy(t *testing.T) {
	p, err := ParseOverflowPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OverflowAllow, p)

	p, err = ParseOverflowPolicy("clamp")
	require.NoError(t, err)
	assert.Equal(t, OverflowClamp, p)
}

func TestParseLightKind(t *testing.T) {
	k, err := ParseLightKind("")
	require.NoError(t, err)
	assert.Equal(t, LightPoint, k)

	k, err = ParseLightKind("directional")
	require.NoError(t, err)
	assert.Equal(t, LightDirectional, k)
}
