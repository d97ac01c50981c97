package ebiten

import (
	_ "embed"
	"fmt"

	"github.com/gekko3d/letterbox"
	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed lighting.kage
var lightingKage []byte

func compileLighting() (*ebiten.Shader, error) {
	s, err := ebiten.NewShader(lightingKage)
	if err != nil {
		return nil, fmt.Errorf("compiling lighting shader: %w", err)
	}
	return s, nil
}

// kageUniforms converts a lighting table into the uniform map the Kage
// shader declares. Per-light fields become parallel arrays.
func kageUniforms(t *letterbox.UniformTable) map[string]any {
	u := map[string]any{
		"Ambient":     t.Float32s(t.UniformLocation(letterbox.UniformAmbient)),
		"ViewPos":     t.Float32s(t.UniformLocation(letterbox.UniformViewPos)),
		"FogDensity":  t.Float(t.UniformLocation(letterbox.UniformFogDensity)),
		"VirtualSize": t.Float32s(t.UniformLocation(letterbox.UniformVirtualSize)),
		"Lit":         float32(1),
	}
	fields := []struct {
		uniform string
		field   string
	}{
		{"LightEnabled", "enabled"},
		{"LightKind", "type"},
		{"LightPosition", "position"},
		{"LightTarget", "target"},
		{"LightColor", "color"},
	}
	for _, f := range fields {
		var vs []float32
		for i := 0; i < letterbox.MaxLights; i++ {
			loc := t.UniformLocation(fmt.Sprintf("lights[%d].%s", i, f.field))
			vs = append(vs, t.Float32s(loc)...)
		}
		u[f.uniform] = vs
	}
	return u
}
