// Package raylib runs the host on raylib: a RenderTexture2D framebuffer,
// a GLSL lighting shader and raylib's audio device.
package raylib

import (
	"context"
	"time"

	"github.com/gekko3d/letterbox"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const Name = "raylib"

func init() {
	letterbox.RegisterPlatform(Name, func() letterbox.Platform { return New() })
}

type Platform struct {
	assets  *letterbox.AssetServer
	logger  letterbox.Logger
	display *Display
	audio   *Audio
	targets []*Target
	program *Program
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

	var flags uint32
	if cfg.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if cfg.VSync {
		flags |= rl.FlagVsyncHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	// Escape reaches the input system instead of closing the window
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	p.display = &Display{logger: p.logger}
	p.audio = newAudio()
	return nil
}

func (p *Platform) Run(ctx context.Context, step func() error) error {
	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := step(); err != nil {
			return err
		}
	}
	return letterbox.ErrWindowClosed
}

func (p *Platform) Close() error {
	err := p.audio.Close()
	for _, t := range p.targets {
		t.unload()
	}
	if p.program != nil {
		p.program.unload()
	}
	rl.CloseWindow()
	return err
}

// FrameTime is raylib's measured time for the last frame.
func (p *Platform) FrameTime() time.Duration {
	return time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
}

func (p *Platform) Display() letterbox.DisplaySurface { return p.display }
func (p *Platform) Input() letterbox.InputSource      { return Input{} }
func (p *Platform) Audio() letterbox.AudioDevice      { return p.audio }

func (p *Platform) NewRenderTarget(size letterbox.Size) letterbox.RenderTarget {
	t := newTarget(size, p.assets)
	p.targets = append(p.targets, t)
	return t
}

func (p *Platform) NewLightingProgram() letterbox.ShaderProgram {
	if p.program == nil {
		p.program = loadLightingProgram()
	}
	return p.program
}
