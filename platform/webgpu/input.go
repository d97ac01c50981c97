package webgpu

import (
	"github.com/gekko3d/letterbox"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input reads glfw key and cursor state. Events are pumped by the frame
// loop, so PollEvents has nothing left to do.
type Input struct {
	window *glfw.Window
}

func (in *Input) PollEvents() {}

func (in *Input) KeyDown(key int) bool {
	switch key {
	case letterbox.MouseButtonLeft:
		return in.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	case letterbox.MouseButtonRight:
		return in.window.GetMouseButton(glfw.MouseButtonRight) == glfw.Press
	case letterbox.MouseButtonMiddle:
		return in.window.GetMouseButton(glfw.MouseButtonMiddle) == glfw.Press
	}
	glfwKey, ok := keyToGlfw[key]
	if !ok {
		return false
	}
	return in.window.GetKey(glfwKey) == glfw.Press
}

// CursorPos is in framebuffer pixels so it matches the display size on
// HiDPI screens.
func (in *Input) CursorPos() (float64, float64) {
	x, y := in.window.GetCursorPos()
	w, _ := in.window.GetSize()
	fw, _ := in.window.GetFramebufferSize()
	if w > 0 && fw != w {
		s := float64(fw) / float64(w)
		return x * s, y * s
	}
	return x, y
}

func (in *Input) WindowSize() (int, int) {
	return in.window.GetFramebufferSize()
}

var keyToGlfw = map[int]glfw.Key{
	letterbox.KeyA:         glfw.KeyA,
	letterbox.KeyB:         glfw.KeyB,
	letterbox.KeyC:         glfw.KeyC,
	letterbox.KeyD:         glfw.KeyD,
	letterbox.KeyE:         glfw.KeyE,
	letterbox.KeyF:         glfw.KeyF,
	letterbox.KeyG:         glfw.KeyG,
	letterbox.KeyH:         glfw.KeyH,
	letterbox.KeyI:         glfw.KeyI,
	letterbox.KeyJ:         glfw.KeyJ,
	letterbox.KeyK:         glfw.KeyK,
	letterbox.KeyL:         glfw.KeyL,
	letterbox.KeyM:         glfw.KeyM,
	letterbox.KeyN:         glfw.KeyN,
	letterbox.KeyO:         glfw.KeyO,
	letterbox.KeyP:         glfw.KeyP,
	letterbox.KeyQ:         glfw.KeyQ,
	letterbox.KeyR:         glfw.KeyR,
	letterbox.KeyS:         glfw.KeyS,
	letterbox.KeyT:         glfw.KeyT,
	letterbox.KeyU:         glfw.KeyU,
	letterbox.KeyV:         glfw.KeyV,
	letterbox.KeyW:         glfw.KeyW,
	letterbox.KeyX:         glfw.KeyX,
	letterbox.KeyY:         glfw.KeyY,
	letterbox.KeyZ:         glfw.KeyZ,
	letterbox.Key0:         glfw.Key0,
	letterbox.Key1:         glfw.Key1,
	letterbox.Key2:         glfw.Key2,
	letterbox.Key3:         glfw.Key3,
	letterbox.Key4:         glfw.Key4,
	letterbox.Key5:         glfw.Key5,
	letterbox.Key6:         glfw.Key6,
	letterbox.Key7:         glfw.Key7,
	letterbox.Key8:         glfw.Key8,
	letterbox.Key9:         glfw.Key9,
	letterbox.KeySpace:     glfw.KeySpace,
	letterbox.KeyEnter:     glfw.KeyEnter,
	letterbox.KeyEscape:    glfw.KeyEscape,
	letterbox.KeyTab:       glfw.KeyTab,
	letterbox.KeyBackspace: glfw.KeyBackspace,
	letterbox.KeyInsert:    glfw.KeyInsert,
	letterbox.KeyDelete:    glfw.KeyDelete,
	letterbox.KeyRight:     glfw.KeyRight,
	letterbox.KeyLeft:      glfw.KeyLeft,
	letterbox.KeyDown:      glfw.KeyDown,
	letterbox.KeyUp:        glfw.KeyUp,
	letterbox.KeyF1:        glfw.KeyF1,
	letterbox.KeyF2:        glfw.KeyF2,
	letterbox.KeyF3:        glfw.KeyF3,
	letterbox.KeyF4:        glfw.KeyF4,
	letterbox.KeyF5:        glfw.KeyF5,
	letterbox.KeyF6:        glfw.KeyF6,
	letterbox.KeyF7:        glfw.KeyF7,
	letterbox.KeyF8:        glfw.KeyF8,
	letterbox.KeyF9:        glfw.KeyF9,
	letterbox.KeyF10:       glfw.KeyF10,
	letterbox.KeyF11:       glfw.KeyF11,
	letterbox.KeyF12:       glfw.KeyF12,
	letterbox.KeyMinus:     glfw.KeyMinus,
	letterbox.KeyEqual:     glfw.KeyEqual,
	letterbox.KeyKPPlus:    glfw.KeyKPAdd,
	letterbox.KeyKPMinus:   glfw.KeyKPSubtract,
	letterbox.KeyShift:     glfw.KeyLeftShift,
	letterbox.KeyControl:   glfw.KeyLeftControl,
	letterbox.KeyLeftAlt:   glfw.KeyLeftAlt,
}
