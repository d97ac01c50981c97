package letterbox

import (
	"github.com/go-gl/mathgl/mgl32"
)

// UniformLocation identifies a named uniform inside one shader program.
type UniformLocation int32

// UniformNotFound is returned for names the program does not declare.
// Writes to it are dropped.
const UniformNotFound UniformLocation = -1

// ShaderProgram is a compiled shader whose uniforms are addressed by location.
type ShaderProgram interface {
	UniformLocation(name string) UniformLocation
	SetUniformInt(loc UniformLocation, v int32)
	SetUniformFloat(loc UniformLocation, v float32)
	SetUniformVec2(loc UniformLocation, v mgl32.Vec2)
	SetUniformVec3(loc UniformLocation, v mgl32.Vec3)
	SetUniformVec4(loc UniformLocation, v mgl32.Vec4)
}

// Uniform names shared by every lighting shader.
const (
	UniformAmbient     = "ambient"
	UniformViewPos     = "viewPos"
	UniformFogDensity  = "fogDensity"
	UniformVirtualSize = "virtualSize"
)
