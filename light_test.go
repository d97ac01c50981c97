package letterbox

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uniformWrite struct {
	Loc   UniformLocation
	Value any
}

// recordingProgram resolves every lights[] name it was built with and records
// each write in order.
type recordingProgram struct {
	names  map[string]UniformLocation
	writes []uniformWrite
}

func newRecordingProgram(slots int) *recordingProgram {
	p := &recordingProgram{names: map[string]UniformLocation{}}
	for i := 0; i < slots; i++ {
		for _, f := range []string{"enabled", "type", "position", "target", "color"} {
			p.names[lightUniformName(i, f)] = UniformLocation(len(p.names))
		}
	}
	return p
}

func (p *recordingProgram) UniformLocation(name string) UniformLocation {
	if loc, ok := p.names[name]; ok {
		return loc
	}
	return UniformNotFound
}

func (p *recordingProgram) record(loc UniformLocation, v any) {
	p.writes = append(p.writes, uniformWrite{loc, v})
}

func (p *recordingProgram) SetUniformInt(loc UniformLocation, v int32)       { p.record(loc, v) }
func (p *recordingProgram) SetUniformFloat(loc UniformLocation, v float32)   { p.record(loc, v) }
func (p *recordingProgram) SetUniformVec2(loc UniformLocation, v mgl32.Vec2) { p.record(loc, v) }
func (p *recordingProgram) SetUniformVec3(loc UniformLocation, v mgl32.Vec3) { p.record(loc, v) }
func (p *recordingProgram) SetUniformVec4(loc UniformLocation, v mgl32.Vec4) { p.record(loc, v) }

var white = color.RGBA{255, 255, 255, 255}

func TestLightRegistry_RegisterPushesImmediately(t *testing.T) {
	prog := newRecordingProgram(MaxLights)
	reg := NewLightRegistry(prog)

	light := reg.RegisterLight(LightPoint, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, color.RGBA{255, 0, 51, 255})

	require.Equal(t, 0, light.Slot())
	assert.True(t, light.Enabled)
	assert.Equal(t, 1, reg.Count())
	assert.Equal(t, []uniformWrite{
		{prog.names["lights[0].enabled"], int32(1)},
		{prog.names["lights[0].type"], int32(LightPoint)},
		{prog.names["lights[0].position"], mgl32.Vec3{1, 2, 3}},
		{prog.names["lights[0].target"], mgl32.Vec3{}},
		{prog.names["lights[0].color"], mgl32.Vec4{1, 0, 0.2, 1}},
	}, prog.writes)
}

func TestLightRegistry_SlotsInOrder(t *testing.T) {
	prog := newRecordingProgram(MaxLights)
	reg := NewLightRegistry(prog)

	for i := 0; i < MaxLights; i++ {
		l := reg.RegisterLight(LightDirectional, mgl32.Vec3{float32(i)}, mgl32.Vec3{}, white)
		assert.Equal(t, i, l.Slot())
		assert.Equal(t, prog.names[fmt.Sprintf("lights[%d].position", i)], l.Uniforms.Position)
	}
	assert.Len(t, reg.Lights(), MaxLights)
	assert.Same(t, reg.Lights()[2], reg.Light(2))
	assert.Nil(t, reg.Light(MaxLights))
	assert.Nil(t, reg.Light(-1))
}

func TestLightRegistry_FifthLightIsInert(t *testing.T) {
	prog := newRecordingProgram(MaxLights + 1)
	reg := NewLightRegistry(prog)
	for i := 0; i < MaxLights; i++ {
		reg.RegisterLight(LightPoint, mgl32.Vec3{}, mgl32.Vec3{}, white)
	}
	writes := len(prog.writes)

	extra := reg.RegisterLight(LightPoint, mgl32.Vec3{9, 9, 9}, mgl32.Vec3{}, white)

	assert.False(t, extra.Enabled)
	assert.Equal(t, -1, extra.Slot())
	assert.Equal(t, MaxLights, reg.Count())
	assert.Len(t, prog.writes, writes)

	// Pushing the inert descriptor still writes nothing.
	extra.Enabled = true
	reg.Push(extra)
	PushLightValues(prog, extra)
	assert.Len(t, prog.writes, writes)
}

func TestPushLightValues_Idempotent(t *testing.T) {
	prog := newRecordingProgram(MaxLights)
	reg := NewLightRegistry(prog)
	light := reg.RegisterLight(LightPoint, mgl32.Vec3{4, 5, 6}, mgl32.Vec3{}, color.RGBA{10, 20, 30, 40})
	light.Position = mgl32.Vec3{7, 8, 9}
	light.Enabled = false

	prog.writes = nil
	PushLightValues(prog, light)
	first := prog.writes

	prog.writes = nil
	PushLightValues(prog, light)
	assert.Equal(t, first, prog.writes)
	assert.Equal(t, uniformWrite{prog.names["lights[0].enabled"], int32(0)}, first[0])
}

func TestLightRegistry_MissingUniformsAreNotFound(t *testing.T) {
	// A program that only declares slot 0 positions.
	prog := &recordingProgram{names: map[string]UniformLocation{"lights[0].position": 0}}
	reg := NewLightRegistry(prog)

	light := reg.RegisterLight(LightPoint, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, white)

	assert.Equal(t, UniformNotFound, light.Uniforms.Enabled)
	assert.Equal(t, UniformNotFound, light.Uniforms.Color)
	assert.Equal(t, UniformLocation(0), light.Uniforms.Position)
	assert.Len(t, prog.writes, 5)
}

func TestLightRegistry_AgainstUniformTable(t *testing.T) {
	table := NewUniformTable(LightingLayout(MaxLights))
	reg := NewLightRegistry(table)

	reg.RegisterLight(LightPoint, mgl32.Vec3{160, 60, 80}, mgl32.Vec3{}, white)
	dir := reg.RegisterLight(LightDirectional, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, color.RGBA{0, 255, 0, 255})

	assert.Equal(t, int32(1), table.Int(table.UniformLocation("lights[0].enabled")))
	assert.Equal(t, mgl32.Vec3{160, 60, 80}, table.Vec3(table.UniformLocation("lights[0].position")))
	assert.Equal(t, int32(LightDirectional), table.Int(dir.Uniforms.Kind))
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, table.Vec4(dir.Uniforms.Color))
	assert.Equal(t, int32(0), table.Int(table.UniformLocation("lights[2].enabled")))
}

func TestLightDescriptor_NormalizedColor(t *testing.T) {
	l := LightDescriptor{Color: color.RGBA{0, 51, 102, 255}}
	assert.Equal(t, mgl32.Vec4{0, 0.2, 0.4, 1}, l.NormalizedColor())
}
