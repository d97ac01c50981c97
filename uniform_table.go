package letterbox

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type UniformType int

const (
	UniformInt UniformType = iota
	UniformFloat
	UniformVec2
	UniformVec3
	UniformVec4
)

func (t UniformType) size() int {
	switch t {
	case UniformVec2:
		return 8
	case UniformVec3:
		return 12
	case UniformVec4:
		return 16
	default:
		return 4
	}
}

// std140 base alignment
func (t UniformType) align() int {
	switch t {
	case UniformVec2:
		return 8
	case UniformVec3, UniformVec4:
		return 16
	default:
		return 4
	}
}

type UniformDecl struct {
	Name   string
	Type   UniformType
	Offset int
}

// UniformLayout places uniforms into a std140 block in declaration order.
type UniformLayout struct {
	decls []UniformDecl
	size  int
}

func (l *UniformLayout) Add(name string, t UniformType) *UniformLayout {
	l.AlignTo(t.align())
	l.decls = append(l.decls, UniformDecl{Name: name, Type: t, Offset: l.size})
	l.size += t.size()
	return l
}

func (l *UniformLayout) AlignTo(n int) *UniformLayout {
	if rem := l.size % n; rem != 0 {
		l.size += n - rem
	}
	return l
}

// Size is the block size rounded up to a vec4 boundary.
func (l *UniformLayout) Size() int {
	size := l.size
	if rem := size % 16; rem != 0 {
		size += 16 - rem
	}
	return size
}

func (l *UniformLayout) Decls() []UniformDecl {
	return l.decls
}

// LightingLayout is the uniform block every lighting shader declares:
//
//	ambient vec4, viewPos vec3, fogDensity float, virtualSize vec2,
//	lights[n] { int enabled; int type; vec3 position; vec3 target; vec4 color }
//
// Each light struct occupies 64 bytes.
func LightingLayout(maxLights int) *UniformLayout {
	l := &UniformLayout{}
	l.Add(UniformAmbient, UniformVec4).
		Add(UniformViewPos, UniformVec3).
		Add(UniformFogDensity, UniformFloat).
		Add(UniformVirtualSize, UniformVec2)
	for i := 0; i < maxLights; i++ {
		l.AlignTo(16)
		l.Add(lightUniformName(i, "enabled"), UniformInt).
			Add(lightUniformName(i, "type"), UniformInt).
			Add(lightUniformName(i, "position"), UniformVec3).
			Add(lightUniformName(i, "target"), UniformVec3).
			Add(lightUniformName(i, "color"), UniformVec4)
	}
	l.AlignTo(16)
	return l
}

func lightUniformName(slot int, field string) string {
	return fmt.Sprintf("lights[%d].%s", slot, field)
}

// UniformTable is a CPU-side uniform block. It implements ShaderProgram for
// platforms that upload uniforms as one packed buffer or evaluate shading on
// the CPU.
type UniformTable struct {
	decls []UniformDecl
	index map[string]UniformLocation
	data  []byte
	dirty bool
}

func NewUniformTable(layout *UniformLayout) *UniformTable {
	t := &UniformTable{
		decls: append([]UniformDecl(nil), layout.Decls()...),
		index: make(map[string]UniformLocation, len(layout.Decls())),
		data:  make([]byte, layout.Size()),
		dirty: true,
	}
	for i, d := range t.decls {
		t.index[d.Name] = UniformLocation(i)
	}
	return t
}

func (t *UniformTable) UniformLocation(name string) UniformLocation {
	if loc, ok := t.index[name]; ok {
		return loc
	}
	return UniformNotFound
}

// Decl returns the declaration behind a location.
func (t *UniformTable) Decl(loc UniformLocation) (UniformDecl, bool) {
	if loc < 0 || int(loc) >= len(t.decls) {
		return UniformDecl{}, false
	}
	return t.decls[loc], true
}

func (t *UniformTable) Decls() []UniformDecl {
	return t.decls
}

// Bytes is the packed block. The slice is owned by the table.
func (t *UniformTable) Bytes() []byte {
	return t.data
}

func (t *UniformTable) Dirty() bool {
	return t.dirty
}

func (t *UniformTable) ClearDirty() {
	t.dirty = false
}

func (t *UniformTable) slot(loc UniformLocation, typ UniformType) []byte {
	d, ok := t.Decl(loc)
	if !ok || d.Type != typ {
		return nil
	}
	return t.data[d.Offset : d.Offset+typ.size()]
}

func (t *UniformTable) putFloats(b []byte, vs ...float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	t.dirty = true
}

func (t *UniformTable) SetUniformInt(loc UniformLocation, v int32) {
	b := t.slot(loc, UniformInt)
	if b == nil {
		return
	}
	binary.LittleEndian.PutUint32(b, uint32(v))
	t.dirty = true
}

func (t *UniformTable) SetUniformFloat(loc UniformLocation, v float32) {
	if b := t.slot(loc, UniformFloat); b != nil {
		t.putFloats(b, v)
	}
}

func (t *UniformTable) SetUniformVec2(loc UniformLocation, v mgl32.Vec2) {
	if b := t.slot(loc, UniformVec2); b != nil {
		t.putFloats(b, v[:]...)
	}
}

func (t *UniformTable) SetUniformVec3(loc UniformLocation, v mgl32.Vec3) {
	if b := t.slot(loc, UniformVec3); b != nil {
		t.putFloats(b, v[:]...)
	}
}

func (t *UniformTable) SetUniformVec4(loc UniformLocation, v mgl32.Vec4) {
	if b := t.slot(loc, UniformVec4); b != nil {
		t.putFloats(b, v[:]...)
	}
}

func (t *UniformTable) floats(loc UniformLocation, typ UniformType) []float32 {
	b := t.slot(loc, typ)
	if b == nil {
		return nil
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

func (t *UniformTable) Int(loc UniformLocation) int32 {
	b := t.slot(loc, UniformInt)
	if b == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

func (t *UniformTable) Float(loc UniformLocation) float32 {
	if f := t.floats(loc, UniformFloat); f != nil {
		return f[0]
	}
	return 0
}

func (t *UniformTable) Vec2(loc UniformLocation) mgl32.Vec2 {
	var v mgl32.Vec2
	copy(v[:], t.floats(loc, UniformVec2))
	return v
}

func (t *UniformTable) Vec3(loc UniformLocation) mgl32.Vec3 {
	var v mgl32.Vec3
	copy(v[:], t.floats(loc, UniformVec3))
	return v
}

func (t *UniformTable) Vec4(loc UniformLocation) mgl32.Vec4 {
	var v mgl32.Vec4
	copy(v[:], t.floats(loc, UniformVec4))
	return v
}

// Float32s returns the raw float view of a uniform regardless of its type,
// ints converted. Used to feed shader systems that take name maps.
func (t *UniformTable) Float32s(loc UniformLocation) []float32 {
	d, ok := t.Decl(loc)
	if !ok {
		return nil
	}
	if d.Type == UniformInt {
		return []float32{float32(t.Int(loc))}
	}
	return t.floats(loc, d.Type)
}
