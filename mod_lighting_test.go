package letterbox_test

import (
	"context"
	"fmt"
	"image/color"
	"testing"

	"github.com/gekko3d/letterbox"
	"github.com/gekko3d/letterbox/platform/soft"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLighting(t *testing.T, lights []letterbox.LightSetup) (*letterbox.App, *letterbox.Lighting, *letterbox.UniformTable) {
	t.Helper()
	p := soft.New(soft.Options{Frames: 1})
	app, err := letterbox.NewAppBuilder().
		UseModule(letterbox.AssetServerModule{}).
		UseModule(letterbox.PlatformModule{Platform: p, Window: letterbox.WindowConfig{Width: 640, Height: 480}}).
		UseModule(letterbox.ViewportModule{Width: 320, Height: 240}).
		UseModule(letterbox.LightingModule{Ambient: mgl32.Vec4{0.2, 0.2, 0.2, 1}, Lights: lights}).
		TryBuild()
	require.NoError(t, err)

	lighting := letterbox.MustResource[letterbox.Lighting](app)
	table, ok := lighting.Program.(*letterbox.UniformTable)
	require.True(t, ok)
	return app, lighting, table
}

func lightPosition(table *letterbox.UniformTable, slot int) mgl32.Vec3 {
	return table.Vec3(table.UniformLocation(fmtLight(slot, "position")))
}

func lightEnabled(table *letterbox.UniformTable, slot int) int32 {
	return table.Int(table.UniformLocation(fmtLight(slot, "enabled")))
}

func fmtLight(slot int, field string) string {
	return fmt.Sprintf("lights[%d].%s", slot, field)
}

func TestLighting_PushesChangesEveryFrame(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	app, lighting, table := buildLighting(t, []letterbox.LightSetup{
		{Kind: letterbox.LightPoint, Position: mgl32.Vec3{10, 20, 30}, Color: white},
	})
	assert.Equal(t, mgl32.Vec3{10, 20, 30}, lightPosition(table, 0))

	light := lighting.Light(0)
	require.NotNil(t, light)
	for i := 1; i <= 3; i++ {
		light.Position = mgl32.Vec3{float32(10 * i), 5, 30}
		app.Step()
		assert.Equal(t, light.Position, lightPosition(table, 0))
	}

	light.Enabled = false
	app.Step()
	assert.Equal(t, int32(0), lightEnabled(table, 0))

	lighting.SetFogDensity(0.25)
	app.Step()
	assert.Equal(t, float32(0.25), table.Float(table.UniformLocation(letterbox.UniformFogDensity)))
}

func TestLighting_ExtraLightsGetNoSlot(t *testing.T) {
	var setups []letterbox.LightSetup
	for i := 0; i < letterbox.MaxLights+2; i++ {
		setups = append(setups, letterbox.LightSetup{
			Kind:     letterbox.LightPoint,
			Position: mgl32.Vec3{float32(i + 1), 0, 50},
			Color:    color.RGBA{255, 0, 0, 255},
		})
	}
	app, lighting, table := buildLighting(t, setups)

	assert.Equal(t, letterbox.MaxLights, lighting.Registry.Count())
	assert.Nil(t, lighting.Light(letterbox.MaxLights))
	for i, light := range lighting.Registry.Lights() {
		assert.Equal(t, i, light.Slot())
		assert.Equal(t, setups[i].Position, light.Position)
	}

	app.Step()
	for slot := 0; slot < letterbox.MaxLights; slot++ {
		assert.Equal(t, setups[slot].Position, lightPosition(table, slot))
		assert.Equal(t, int32(1), lightEnabled(table, slot))
	}
	assert.Equal(t, letterbox.UniformNotFound, table.UniformLocation(fmtLight(letterbox.MaxLights, "position")))
}

func TestDemo_LightFollowsOrbit(t *testing.T) {
	cfg := letterbox.DefaultConfig()
	app, _ := buildDemo(t, soft.Options{Frames: 30}, cfg)
	lighting := letterbox.MustResource[letterbox.Lighting](app)
	table, ok := lighting.Program.(*letterbox.UniformTable)
	require.True(t, ok)
	start := lightPosition(table, 0)

	require.NoError(t, app.Run(context.Background()))

	light := lighting.Light(0)
	require.NotNil(t, light)
	assert.NotEqual(t, start, light.Position)
	assert.Equal(t, light.Position, lightPosition(table, 0))
}
