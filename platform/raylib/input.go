package raylib

import (
	"github.com/gekko3d/letterbox"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input reads raylib's polled state; EndDrawing pumps the events.
type Input struct{}

func (Input) PollEvents() {}

func (Input) KeyDown(key int) bool {
	switch key {
	case letterbox.MouseButtonLeft:
		return rl.IsMouseButtonDown(rl.MouseButtonLeft)
	case letterbox.MouseButtonRight:
		return rl.IsMouseButtonDown(rl.MouseButtonRight)
	case letterbox.MouseButtonMiddle:
		return rl.IsMouseButtonDown(rl.MouseButtonMiddle)
	}
	rlKey, ok := keyToRaylib[key]
	return ok && rl.IsKeyDown(rlKey)
}

func (Input) CursorPos() (float64, float64) {
	p := rl.GetMousePosition()
	return float64(p.X), float64(p.Y)
}

func (Input) WindowSize() (int, int) {
	return rl.GetRenderWidth(), rl.GetRenderHeight()
}

var keyToRaylib = map[int]int32{
	letterbox.KeyA:         rl.KeyA,
	letterbox.KeyB:         rl.KeyB,
	letterbox.KeyC:         rl.KeyC,
	letterbox.KeyD:         rl.KeyD,
	letterbox.KeyE:         rl.KeyE,
	letterbox.KeyF:         rl.KeyF,
	letterbox.KeyG:         rl.KeyG,
	letterbox.KeyH:         rl.KeyH,
	letterbox.KeyI:         rl.KeyI,
	letterbox.KeyJ:         rl.KeyJ,
	letterbox.KeyK:         rl.KeyK,
	letterbox.KeyL:         rl.KeyL,
	letterbox.KeyM:         rl.KeyM,
	letterbox.KeyN:         rl.KeyN,
	letterbox.KeyO:         rl.KeyO,
	letterbox.KeyP:         rl.KeyP,
	letterbox.KeyQ:         rl.KeyQ,
	letterbox.KeyR:         rl.KeyR,
	letterbox.KeyS:         rl.KeyS,
	letterbox.KeyT:         rl.KeyT,
	letterbox.KeyU:         rl.KeyU,
	letterbox.KeyV:         rl.KeyV,
	letterbox.KeyW:         rl.KeyW,
	letterbox.KeyX:         rl.KeyX,
	letterbox.KeyY:         rl.KeyY,
	letterbox.KeyZ:         rl.KeyZ,
	letterbox.Key0:         rl.KeyZero,
	letterbox.Key1:         rl.KeyOne,
	letterbox.Key2:         rl.KeyTwo,
	letterbox.Key3:         rl.KeyThree,
	letterbox.Key4:         rl.KeyFour,
	letterbox.Key5:         rl.KeyFive,
	letterbox.Key6:         rl.KeySix,
	letterbox.Key7:         rl.KeySeven,
	letterbox.Key8:         rl.KeyEight,
	letterbox.Key9:         rl.KeyNine,
	letterbox.KeySpace:     rl.KeySpace,
	letterbox.KeyEnter:     rl.KeyEnter,
	letterbox.KeyEscape:    rl.KeyEscape,
	letterbox.KeyTab:       rl.KeyTab,
	letterbox.KeyBackspace: rl.KeyBackspace,
	letterbox.KeyInsert:    rl.KeyInsert,
	letterbox.KeyDelete:    rl.KeyDelete,
	letterbox.KeyRight:     rl.KeyRight,
	letterbox.KeyLeft:      rl.KeyLeft,
	letterbox.KeyDown:      rl.KeyDown,
	letterbox.KeyUp:        rl.KeyUp,
	letterbox.KeyF1:        rl.KeyF1,
	letterbox.KeyF2:        rl.KeyF2,
	letterbox.KeyF3:        rl.KeyF3,
	letterbox.KeyF4:        rl.KeyF4,
	letterbox.KeyF5:        rl.KeyF5,
	letterbox.KeyF6:        rl.KeyF6,
	letterbox.KeyF7:        rl.KeyF7,
	letterbox.KeyF8:        rl.KeyF8,
	letterbox.KeyF9:        rl.KeyF9,
	letterbox.KeyF10:       rl.KeyF10,
	letterbox.KeyF11:       rl.KeyF11,
	letterbox.KeyF12:       rl.KeyF12,
	letterbox.KeyMinus:     rl.KeyMinus,
	letterbox.KeyEqual:     rl.KeyEqual,
	letterbox.KeyKPPlus:    rl.KeyKpAdd,
	letterbox.KeyKPMinus:   rl.KeyKpSubtract,
	letterbox.KeyShift:     rl.KeyLeftShift,
	letterbox.KeyControl:   rl.KeyLeftControl,
	letterbox.KeyLeftAlt:   rl.KeyLeftAlt,
}
