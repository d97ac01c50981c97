package soft

import "github.com/gekko3d/letterbox"

// Input is a scripted input source. Tests and frame scripts press keys and
// move the cursor; PollEvents is a no-op.
type Input struct {
	keys    [letterbox.KeyCount]bool
	x, y    float64
	display *Display
}

func (in *Input) PollEvents() {}

func (in *Input) KeyDown(key int) bool {
	if key < 0 || key >= len(in.keys) {
		return false
	}
	return in.keys[key]
}

func (in *Input) CursorPos() (float64, float64) { return in.x, in.y }

func (in *Input) WindowSize() (int, int) {
	s := in.display.CurrentSize()
	return s.Width, s.Height
}

func (in *Input) Press(keys ...int) {
	for _, k := range keys {
		in.keys[k] = true
	}
}

func (in *Input) Release(keys ...int) {
	for _, k := range keys {
		in.keys[k] = false
	}
}

func (in *Input) MoveCursor(x, y float64) {
	in.x, in.y = x, y
}
