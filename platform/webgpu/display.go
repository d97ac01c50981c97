package webgpu

import (
	"github.com/gekko3d/letterbox"
	"github.com/gekko3d/letterbox/platform/soft"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type queuedBlit struct {
	cmd  letterbox.BlitCommand
	pix  []byte
	size letterbox.Size
}

// Display presents CPU framebuffers through the GPU blit pipeline.
type Display struct {
	window   *glfw.Window
	renderer *renderer
	logger   letterbox.Logger
	blits    []queuedBlit

	fullscreen bool
	windowed   [4]int // x, y, w, h before going fullscreen
}

func (d *Display) CurrentSize() letterbox.Size {
	w, h := d.window.GetFramebufferSize()
	return letterbox.Size{Width: w, Height: h}
}

func (d *Display) BeginFrame() {
	d.blits = d.blits[:0]
}

// Blit queues the canvas contents. Render targets other than soft canvases
// cannot be uploaded and are skipped.
func (d *Display) Blit(src letterbox.RenderTarget, cmd letterbox.BlitCommand) {
	canvas, ok := src.(*soft.Canvas)
	if !ok {
		d.logger.Warnf("webgpu display cannot blit %T", src)
		return
	}
	d.blits = append(d.blits, queuedBlit{
		cmd:  cmd,
		pix:  canvas.Storage().Pix,
		size: canvas.Size(),
	})
}

func (d *Display) EndFrame() {
	size := d.CurrentSize()
	if size.Width == 0 || size.Height == 0 {
		// minimized
		return
	}
	if err := d.renderer.draw(d.blits); err != nil {
		d.logger.Errorf("webgpu present: %v", err)
	}
}

func (d *Display) ToggleFullscreen() {
	if d.fullscreen {
		x, y, w, h := d.windowed[0], d.windowed[1], d.windowed[2], d.windowed[3]
		d.window.SetMonitor(nil, x, y, w, h, 0)
		d.fullscreen = false
		return
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return
	}
	x, y := d.window.GetPos()
	w, h := d.window.GetSize()
	d.windowed = [4]int{x, y, w, h}
	mode := monitor.GetVideoMode()
	d.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	d.fullscreen = true
}
