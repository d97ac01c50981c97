package letterbox

import (
	"image/color"
)

// ViewportModule renders the scene into a fixed-size target and presents it
// letterboxed at the largest integer scale the window allows.
type ViewportModule struct {
	Width      int
	Height     int
	Overflow   OverflowPolicy
	ClearColor color.RGBA
}

type Viewport struct {
	Target     RenderTarget
	Virtual    Size
	Overflow   OverflowPolicy
	ClearColor color.RGBA
	// Program shades the presenting blit. LightingModule sets it.
	Program ShaderProgram
}

// Placement recomputes where the target lands in a window of the given size.
func (vp *Viewport) Placement(physical Size) Placement {
	return ComputePlacementWithPolicy(vp.Virtual, physical, vp.Overflow)
}

func (mod ViewportModule) Install(app *App, cmd *Commands) {
	host := MustResource[Host](app)
	virtual := Size{Width: mod.Width, Height: mod.Height}
	if virtual.Width <= 0 || virtual.Height <= 0 {
		virtual = Size{Width: host.Window.Width / 2, Height: host.Window.Height / 2}
	}

	vp := &Viewport{
		Target:     host.Platform.NewRenderTarget(virtual),
		Virtual:    virtual,
		Overflow:   mod.Overflow,
		ClearColor: mod.ClearColor,
	}
	cmd.AddResources(vp)
	app.Logger().Infof("Virtual framebuffer %dx%d, overflow=%s", virtual.Width, virtual.Height, mod.Overflow)

	if _, ok := Resource[Input](app); ok {
		app.UseSystem(System(viewportMouseSystem).InStage(PreUpdate))
	}
	app.UseSystem(System(viewportBeginSystem).InStage(PreRender))
	app.UseSystem(System(viewportPresentSystem).InStage(PostRender))
}

func viewportMouseSystem(host *Host, vp *Viewport, input *Input) {
	p := vp.Placement(host.Display().CurrentSize())
	v, inside := p.ToVirtual(float32(input.MouseX), float32(input.MouseY))
	input.VirtualX, input.VirtualY = v.X(), v.Y()
	input.MouseInside = inside
}

func viewportBeginSystem(host *Host, vp *Viewport) {
	host.Display().BeginFrame()
	vp.Target.Begin()
	vp.Target.Clear(vp.ClearColor)
}

func viewportPresentSystem(host *Host, vp *Viewport) {
	display := host.Display()
	vp.Target.End()

	placement := vp.Placement(display.CurrentSize())
	blit := placement.BlitCommand()
	blit.Program = vp.Program
	display.Blit(vp.Target, blit)

	display.EndFrame()
}
