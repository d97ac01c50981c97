package letterbox

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// LightSetup is a light to register at startup.
type LightSetup struct {
	Kind     LightKind
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Color    color.RGBA
}

type LightingModule struct {
	Ambient    mgl32.Vec4
	FogDensity float32
	Lights     []LightSetup
}

// Lighting owns the lighting program and its light registry. Scene values
// are pushed to the program every frame in PreRender.
type Lighting struct {
	Program    ShaderProgram
	Registry   *LightRegistry
	Ambient    mgl32.Vec4
	FogDensity float32
	ViewPos    mgl32.Vec3
	Virtual    Size

	ambientLoc UniformLocation
	viewPosLoc UniformLocation
	fogLoc     UniformLocation
	virtualLoc UniformLocation
}

// SetFogDensity clamps d to [0, 1].
func (l *Lighting) SetFogDensity(d float32) {
	l.FogDensity = mgl32.Clamp(d, 0, 1)
}

func (l *Lighting) Light(slot int) *LightDescriptor {
	return l.Registry.Light(slot)
}

// Push writes the scene uniforms and every registered light.
func (l *Lighting) Push() {
	l.Program.SetUniformVec4(l.ambientLoc, l.Ambient)
	l.Program.SetUniformVec3(l.viewPosLoc, l.ViewPos)
	l.Program.SetUniformFloat(l.fogLoc, l.FogDensity)
	l.Program.SetUniformVec2(l.virtualLoc, mgl32.Vec2{float32(l.Virtual.Width), float32(l.Virtual.Height)})
	l.Registry.PushAll()
}

func (mod LightingModule) Install(app *App, cmd *Commands) {
	host := MustResource[Host](app)
	vp := MustResource[Viewport](app)
	logger := app.Logger()

	program := host.Platform.NewLightingProgram()
	if program == nil {
		logger.Warnf("%s platform has no lighting shader, lights are tracked but not drawn", host.Platform.Name())
		program = NewUniformTable(LightingLayout(MaxLights))
	} else {
		vp.Program = program
	}

	registry := NewLightRegistry(program)
	registry.SetLogger(logger)

	l := &Lighting{
		Program:    program,
		Registry:   registry,
		Ambient:    mod.Ambient,
		FogDensity: mgl32.Clamp(mod.FogDensity, 0, 1),
		ViewPos:    mgl32.Vec3{float32(vp.Virtual.Width) / 2, float32(vp.Virtual.Height) / 2, 120},
		Virtual:    vp.Virtual,
		ambientLoc: program.UniformLocation(UniformAmbient),
		viewPosLoc: program.UniformLocation(UniformViewPos),
		fogLoc:     program.UniformLocation(UniformFogDensity),
		virtualLoc: program.UniformLocation(UniformVirtualSize),
	}

	for _, setup := range mod.Lights {
		light := registry.RegisterLight(setup.Kind, setup.Position, setup.Target, setup.Color)
		if light.Slot() < 0 {
			logger.Warnf("only %d lights supported, ignoring %s light at %v", MaxLights, setup.Kind, setup.Position)
		}
	}
	l.Push()

	cmd.AddResources(l)
	app.UseSystem(System(lightingSystem).InStage(PreRender))
}

func lightingSystem(l *Lighting) {
	l.Push()
}
