package raylib

import (
	_ "embed"
	"math"

	"github.com/gekko3d/letterbox"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	//go:embed base.vs
	baseVS string
	//go:embed lighting.fs
	lightingFS string
)

// Program is a compiled GLSL program. Locations are raylib's own.
type Program struct {
	shader rl.Shader
}

func loadLightingProgram() *Program {
	return &Program{shader: rl.LoadShaderFromMemory(baseVS, lightingFS)}
}

func (p *Program) UniformLocation(name string) letterbox.UniformLocation {
	loc := rl.GetShaderLocation(p.shader, name)
	if loc < 0 {
		return letterbox.UniformNotFound
	}
	return letterbox.UniformLocation(loc)
}

func (p *Program) set(loc letterbox.UniformLocation, v []float32, t rl.ShaderUniformDataType) {
	if loc == letterbox.UniformNotFound {
		return
	}
	rl.SetShaderValue(p.shader, int32(loc), v, t)
}

// SetUniformInt passes the int's bits through the float slice raylib takes;
// the driver reads them back as an int.
func (p *Program) SetUniformInt(loc letterbox.UniformLocation, v int32) {
	p.set(loc, []float32{math.Float32frombits(uint32(v))}, rl.ShaderUniformInt)
}

func (p *Program) SetUniformFloat(loc letterbox.UniformLocation, v float32) {
	p.set(loc, []float32{v}, rl.ShaderUniformFloat)
}

func (p *Program) SetUniformVec2(loc letterbox.UniformLocation, v mgl32.Vec2) {
	p.set(loc, v[:], rl.ShaderUniformVec2)
}

func (p *Program) SetUniformVec3(loc letterbox.UniformLocation, v mgl32.Vec3) {
	p.set(loc, v[:], rl.ShaderUniformVec3)
}

func (p *Program) SetUniformVec4(loc letterbox.UniformLocation, v mgl32.Vec4) {
	p.set(loc, v[:], rl.ShaderUniformVec4)
}

func (p *Program) unload() {
	rl.UnloadShader(p.shader)
}
