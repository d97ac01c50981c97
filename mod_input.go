package letterbox

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// KeyCount bounds the key and mouse button codes above.
const KeyCount = MouseButtonMiddle + 1

// InputSource reports raw device state for the current frame. Mouse buttons
// share the key code space.
type InputSource interface {
	PollEvents()
	KeyDown(key int) bool
	CursorPos() (x, y float64)
	WindowSize() (w, h int)
}

type InputModule struct{}

type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	// VirtualX, VirtualY is the cursor in render target pixels. MouseInside
	// is false when the cursor sits on the letterbox bars.
	VirtualX, VirtualY float32
	MouseInside        bool

	WindowWidth, WindowHeight int
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(host *Host, input *Input) {
	src := host.Input()
	if src == nil {
		return
	}
	src.PollEvents()
	pollInput(src, input)
}

func pollInput(src InputSource, input *Input) {
	for key := 0; key < KeyCount; key++ {
		down := src.KeyDown(key)

		input.JustPressed[key] = false
		input.JustReleased[key] = false

		if down {
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		} else {
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}

	mx, my := src.CursorPos()
	input.MouseDeltaX = mx - input.MouseX
	input.MouseDeltaY = my - input.MouseY
	input.MouseX = mx
	input.MouseY = my

	input.WindowWidth, input.WindowHeight = src.WindowSize()
}
