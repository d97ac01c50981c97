package letterbox

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Point light falloff: 1 / (1 + k*d^2), d in virtual pixels.
const pointLightFalloff = 0.0005

// LightingParams is a decoded snapshot of the lighting uniforms, ready to
// shade texels on the CPU. GPU shaders implement the same model.
type LightingParams struct {
	Ambient    mgl32.Vec4
	ViewPos    mgl32.Vec3
	FogDensity float32
	Lights     []ShadedLight
}

type ShadedLight struct {
	Kind     LightKind
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Color    mgl32.Vec4
}

// ReadLightingParams decodes a lighting table. Disabled lights are dropped.
func ReadLightingParams(t *UniformTable) LightingParams {
	p := LightingParams{
		Ambient:    t.Vec4(t.UniformLocation(UniformAmbient)),
		ViewPos:    t.Vec3(t.UniformLocation(UniformViewPos)),
		FogDensity: t.Float(t.UniformLocation(UniformFogDensity)),
	}
	for i := 0; i < MaxLights; i++ {
		enabled := t.UniformLocation(lightUniformName(i, "enabled"))
		if enabled == UniformNotFound {
			break
		}
		if t.Int(enabled) == 0 {
			continue
		}
		p.Lights = append(p.Lights, ShadedLight{
			Kind:     LightKind(t.Int(t.UniformLocation(lightUniformName(i, "type")))),
			Position: t.Vec3(t.UniformLocation(lightUniformName(i, "position"))),
			Target:   t.Vec3(t.UniformLocation(lightUniformName(i, "target"))),
			Color:    t.Vec4(t.UniformLocation(lightUniformName(i, "color"))),
		})
	}
	return p
}

// Irradiance is the light reaching virtual pixel (x, y) on the z=0 plane.
func (p *LightingParams) Irradiance(x, y float32) mgl32.Vec3 {
	lit := p.Ambient.Vec3()
	pos := mgl32.Vec3{x, y, 0}
	for _, l := range p.Lights {
		switch l.Kind {
		case LightDirectional:
			dir := l.Position.Sub(l.Target)
			if dir.Len() == 0 {
				continue
			}
			ndl := max(dir.Normalize().Z(), 0)
			lit = lit.Add(l.Color.Vec3().Mul(ndl))
		case LightPoint:
			v := l.Position.Sub(pos)
			d := v.Len()
			if d == 0 {
				lit = lit.Add(l.Color.Vec3())
				continue
			}
			ndl := max(v.Z()/d, 0)
			lit = lit.Add(l.Color.Vec3().Mul(ndl / (1 + pointLightFalloff*d*d)))
		}
	}
	return lit
}

// FogFactor is how far pixel (x, y) is blended toward the ambient colour.
func (p *LightingParams) FogFactor(x, y float32) float32 {
	d := p.ViewPos.Sub(mgl32.Vec3{x, y, 0}).Len()
	return 1 - float32(math.Exp(float64(-p.FogDensity*d/100)))
}

// Shade lights one texel sampled at virtual pixel (x, y).
func (p *LightingParams) Shade(x, y float32, texel color.RGBA) color.RGBA {
	lit := p.Irradiance(x, y)
	base := mgl32.Vec3{float32(texel.R) / 255, float32(texel.G) / 255, float32(texel.B) / 255}
	rgb := mgl32.Vec3{base[0] * lit[0], base[1] * lit[1], base[2] * lit[2]}

	f := p.FogFactor(x, y)
	fog := p.Ambient.Vec3()
	rgb = rgb.Mul(1 - f).Add(fog.Mul(f))

	return color.RGBA{
		R: unitToByte(rgb[0]),
		G: unitToByte(rgb[1]),
		B: unitToByte(rgb[2]),
		A: texel.A,
	}
}

func unitToByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
