// Package ebiten runs the host inside an ebiten game loop. Frames are
// simulated and recorded in Update and presented with a Kage lighting
// shader in Draw.
package ebiten

import (
	"context"

	"github.com/gekko3d/letterbox"
	"github.com/gekko3d/letterbox/platform/sound"
	"github.com/hajimehoshi/ebiten/v2"
)

const Name = "ebiten"

func init() {
	letterbox.RegisterPlatform(Name, func() letterbox.Platform { return New() })
}

type Platform struct {
	assets  *letterbox.AssetServer
	logger  letterbox.Logger
	display *Display
	input   *Input
	audio   *sound.Device
	targets []*Target
}

func New() *Platform {
	return &Platform{logger: letterbox.NewNopLogger()}
}

func (p *Platform) Name() string { return Name }

func (p *Platform) Open(cfg letterbox.WindowConfig, assets *letterbox.AssetServer, logger letterbox.Logger) error {
	if logger != nil {
		p.logger = logger
	}
	p.assets = assets

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetVsyncEnabled(cfg.VSync)

	shader, err := compileLighting()
	if err != nil {
		return err
	}
	p.display = &Display{
		shader: shader,
		logger: p.logger,
		size:   letterbox.Size{Width: cfg.Width, Height: cfg.Height},
	}
	p.input = newInput(p.display)
	p.audio = sound.New(letterbox.DefaultSampleRate, p.logger)
	return nil
}

type game struct {
	ctx     context.Context
	step    func() error
	display *Display
	input   *Input
}

func (g *game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return err
	}
	g.input.PollEvents()
	return g.step()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.display.draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.display.size = letterbox.Size{Width: outsideWidth, Height: outsideHeight}
	return outsideWidth, outsideHeight
}

// Run blocks in ebiten.RunGame. A nil return from ebiten means the window
// was closed.
func (p *Platform) Run(ctx context.Context, step func() error) error {
	err := ebiten.RunGame(&game{ctx: ctx, step: step, display: p.display, input: p.input})
	if err == nil {
		return letterbox.ErrWindowClosed
	}
	return err
}

func (p *Platform) Close() error {
	for _, t := range p.targets {
		t.deallocate()
	}
	return p.audio.Close()
}

func (p *Platform) Display() letterbox.DisplaySurface { return p.display }
func (p *Platform) Input() letterbox.InputSource      { return p.input }
func (p *Platform) Audio() letterbox.AudioDevice      { return p.audio }

func (p *Platform) NewRenderTarget(size letterbox.Size) letterbox.RenderTarget {
	t := newTarget(size, p.assets)
	p.targets = append(p.targets, t)
	return t
}

// NewLightingProgram returns the table the Kage shader's uniforms are read
// from.
func (p *Platform) NewLightingProgram() letterbox.ShaderProgram {
	return letterbox.NewUniformTable(letterbox.LightingLayout(letterbox.MaxLights))
}
