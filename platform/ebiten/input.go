package ebiten

import (
	"github.com/gekko3d/letterbox"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type Input struct {
	display *Display
	keys    []ebiten.Key
	down    map[ebiten.Key]bool
}

func newInput(display *Display) *Input {
	return &Input{display: display, down: make(map[ebiten.Key]bool)}
}

// PollEvents snapshots the keys held during this tick.
func (in *Input) PollEvents() {
	clear(in.down)
	in.keys = inpututil.AppendPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.down[k] = true
	}
}

func (in *Input) KeyDown(key int) bool {
	switch key {
	case letterbox.MouseButtonLeft:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	case letterbox.MouseButtonRight:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	case letterbox.MouseButtonMiddle:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	}
	k, ok := keyToEbiten[key]
	return ok && in.down[k]
}

func (in *Input) CursorPos() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

func (in *Input) WindowSize() (int, int) {
	s := in.display.CurrentSize()
	return s.Width, s.Height
}

var keyToEbiten = map[int]ebiten.Key{
	letterbox.KeyA:         ebiten.KeyA,
	letterbox.KeyB:         ebiten.KeyB,
	letterbox.KeyC:         ebiten.KeyC,
	letterbox.KeyD:         ebiten.KeyD,
	letterbox.KeyE:         ebiten.KeyE,
	letterbox.KeyF:         ebiten.KeyF,
	letterbox.KeyG:         ebiten.KeyG,
	letterbox.KeyH:         ebiten.KeyH,
	letterbox.KeyI:         ebiten.KeyI,
	letterbox.KeyJ:         ebiten.KeyJ,
	letterbox.KeyK:         ebiten.KeyK,
	letterbox.KeyL:         ebiten.KeyL,
	letterbox.KeyM:         ebiten.KeyM,
	letterbox.KeyN:         ebiten.KeyN,
	letterbox.KeyO:         ebiten.KeyO,
	letterbox.KeyP:         ebiten.KeyP,
	letterbox.KeyQ:         ebiten.KeyQ,
	letterbox.KeyR:         ebiten.KeyR,
	letterbox.KeyS:         ebiten.KeyS,
	letterbox.KeyT:         ebiten.KeyT,
	letterbox.KeyU:         ebiten.KeyU,
	letterbox.KeyV:         ebiten.KeyV,
	letterbox.KeyW:         ebiten.KeyW,
	letterbox.KeyX:         ebiten.KeyX,
	letterbox.KeyY:         ebiten.KeyY,
	letterbox.KeyZ:         ebiten.KeyZ,
	letterbox.Key0:         ebiten.KeyDigit0,
	letterbox.Key1:         ebiten.KeyDigit1,
	letterbox.Key2:         ebiten.KeyDigit2,
	letterbox.Key3:         ebiten.KeyDigit3,
	letterbox.Key4:         ebiten.KeyDigit4,
	letterbox.Key5:         ebiten.KeyDigit5,
	letterbox.Key6:         ebiten.KeyDigit6,
	letterbox.Key7:         ebiten.KeyDigit7,
	letterbox.Key8:         ebiten.KeyDigit8,
	letterbox.Key9:         ebiten.KeyDigit9,
	letterbox.KeySpace:     ebiten.KeySpace,
	letterbox.KeyEnter:     ebiten.KeyEnter,
	letterbox.KeyEscape:    ebiten.KeyEscape,
	letterbox.KeyTab:       ebiten.KeyTab,
	letterbox.KeyBackspace: ebiten.KeyBackspace,
	letterbox.KeyInsert:    ebiten.KeyInsert,
	letterbox.KeyDelete:    ebiten.KeyDelete,
	letterbox.KeyRight:     ebiten.KeyArrowRight,
	letterbox.KeyLeft:      ebiten.KeyArrowLeft,
	letterbox.KeyDown:      ebiten.KeyArrowDown,
	letterbox.KeyUp:        ebiten.KeyArrowUp,
	letterbox.KeyF1:        ebiten.KeyF1,
	letterbox.KeyF2:        ebiten.KeyF2,
	letterbox.KeyF3:        ebiten.KeyF3,
	letterbox.KeyF4:        ebiten.KeyF4,
	letterbox.KeyF5:        ebiten.KeyF5,
	letterbox.KeyF6:        ebiten.KeyF6,
	letterbox.KeyF7:        ebiten.KeyF7,
	letterbox.KeyF8:        ebiten.KeyF8,
	letterbox.KeyF9:        ebiten.KeyF9,
	letterbox.KeyF10:       ebiten.KeyF10,
	letterbox.KeyF11:       ebiten.KeyF11,
	letterbox.KeyF12:       ebiten.KeyF12,
	letterbox.KeyMinus:     ebiten.KeyMinus,
	letterbox.KeyEqual:     ebiten.KeyEqual,
	letterbox.KeyKPPlus:    ebiten.KeyNumpadAdd,
	letterbox.KeyKPMinus:   ebiten.KeyNumpadSubtract,
	letterbox.KeyShift:     ebiten.KeyShiftLeft,
	letterbox.KeyControl:   ebiten.KeyControlLeft,
	letterbox.KeyLeftAlt:   ebiten.KeyAltLeft,
}
