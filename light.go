package letterbox

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the number of light slots the lighting shaders declare.
const MaxLights = 4

type LightKind int32

const (
	LightDirectional LightKind = 0
	LightPoint       LightKind = 1
)

func (k LightKind) String() string {
	if k == LightPoint {
		return "point"
	}
	return "directional"
}

// LightUniforms are the locations a light writes to. They are resolved once
// against the program the registry serves.
type LightUniforms struct {
	Enabled  UniformLocation
	Kind     UniformLocation
	Position UniformLocation
	Target   UniformLocation
	Color    UniformLocation
}

func unboundLightUniforms() LightUniforms {
	return LightUniforms{
		Enabled:  UniformNotFound,
		Kind:     UniformNotFound,
		Position: UniformNotFound,
		Target:   UniformNotFound,
		Color:    UniformNotFound,
	}
}

func (u LightUniforms) bound() bool {
	return u.Enabled != UniformNotFound || u.Kind != UniformNotFound ||
		u.Position != UniformNotFound || u.Target != UniformNotFound ||
		u.Color != UniformNotFound
}

// LightDescriptor is one light slot. Position, Target, Color and Enabled may
// change every frame; Kind and Uniforms are fixed at registration.
type LightDescriptor struct {
	Enabled  bool
	Kind     LightKind
	Position mgl32.Vec3
	Target   mgl32.Vec3 // point lights ignore it
	Color    color.RGBA
	Uniforms LightUniforms

	slot int
}

// Slot is the index in lights[] this descriptor writes to, or -1 for an
// inert descriptor returned past capacity.
func (l *LightDescriptor) Slot() int {
	return l.slot
}

// NormalizedColor maps each 8-bit channel onto [0,1].
func (l *LightDescriptor) NormalizedColor() mgl32.Vec4 {
	return mgl32.Vec4{
		float32(l.Color.R) / 255,
		float32(l.Color.G) / 255,
		float32(l.Color.B) / 255,
		float32(l.Color.A) / 255,
	}
}

// LightRegistry hands out the light slots of one shader program. Slots are
// assigned in registration order and never reused.
type LightRegistry struct {
	program ShaderProgram
	slots   [MaxLights]LightDescriptor
	count   int
	logger  Logger
}

func NewLightRegistry(program ShaderProgram) *LightRegistry {
	return &LightRegistry{
		program: program,
		logger:  NewNopLogger(),
	}
}

func (r *LightRegistry) SetLogger(l Logger) {
	if l == nil {
		l = NewNopLogger()
	}
	r.logger = l
}

func (r *LightRegistry) Program() ShaderProgram { return r.program }
func (r *LightRegistry) Count() int             { return r.count }
func (r *LightRegistry) Capacity() int          { return MaxLights }

// RegisterLight binds a new light to the next free slot and pushes its values
// to the program. Past capacity it returns a disabled descriptor that is not
// part of the registry and touches no uniforms.
func (r *LightRegistry) RegisterLight(kind LightKind, position, target mgl32.Vec3, c color.RGBA) *LightDescriptor {
	if r.count >= MaxLights {
		r.logger.Debugf("light registry full (%d slots), ignoring %s light", MaxLights, kind)
		return &LightDescriptor{
			Uniforms: unboundLightUniforms(),
			slot:     -1,
		}
	}

	slot := r.count
	light := &r.slots[slot]
	*light = LightDescriptor{
		Enabled:  true,
		Kind:     kind,
		Position: position,
		Target:   target,
		Color:    c,
		Uniforms: LightUniforms{
			Enabled:  r.resolve(slot, "enabled"),
			Kind:     r.resolve(slot, "type"),
			Position: r.resolve(slot, "position"),
			Target:   r.resolve(slot, "target"),
			Color:    r.resolve(slot, "color"),
		},
		slot: slot,
	}

	PushLightValues(r.program, light)
	r.count++
	return light
}

func (r *LightRegistry) resolve(slot int, field string) UniformLocation {
	name := lightUniformName(slot, field)
	loc := r.program.UniformLocation(name)
	if loc == UniformNotFound {
		r.logger.Debugf("uniform %q not found in lighting program", name)
	}
	return loc
}

// Lights returns the occupied slots in registration order.
func (r *LightRegistry) Lights() []*LightDescriptor {
	out := make([]*LightDescriptor, r.count)
	for i := range out {
		out[i] = &r.slots[i]
	}
	return out
}

// Light returns the descriptor in a slot, or nil if the slot is free.
func (r *LightRegistry) Light(slot int) *LightDescriptor {
	if slot < 0 || slot >= r.count {
		return nil
	}
	return &r.slots[slot]
}

// Push writes one light's state to the registry's program.
func (r *LightRegistry) Push(light *LightDescriptor) {
	PushLightValues(r.program, light)
}

// PushAll writes every registered light.
func (r *LightRegistry) PushAll() {
	for i := 0; i < r.count; i++ {
		PushLightValues(r.program, &r.slots[i])
	}
}

// PushLightValues writes a light's enabled flag, kind, position, target and
// normalized color to the uniforms it was bound to. Inert descriptors are
// skipped.
func PushLightValues(program ShaderProgram, light *LightDescriptor) {
	if program == nil || light == nil || !light.Uniforms.bound() {
		return
	}
	enabled := int32(0)
	if light.Enabled {
		enabled = 1
	}
	program.SetUniformInt(light.Uniforms.Enabled, enabled)
	program.SetUniformInt(light.Uniforms.Kind, int32(light.Kind))
	program.SetUniformVec3(light.Uniforms.Position, light.Position)
	program.SetUniformVec3(light.Uniforms.Target, light.Target)
	program.SetUniformVec4(light.Uniforms.Color, light.NormalizedColor())
}
