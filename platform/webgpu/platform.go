// Package webgpu opens a glfw window and presents frames through WebGPU.
// Scene drawing happens on CPU canvases; the GPU performs the lit,
// letterboxed blit.
package webgpu

import (
	"context"
	"fmt"

	"github.com/gekko3d/letterbox"
	"github.com/gekko3d/letterbox/platform/soft"
	"github.com/gekko3d/letterbox/platform/sound"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const Name = "wgpu"

func init() {
	letterbox.RegisterPlatform(Name, func() letterbox.Platform { return New() })
}

type Platform struct {
	window   *glfw.Window
	renderer *renderer
	display  *Display
	input    *Input
	audio    *sound.Device
	assets   *letterbox.AssetServer
	logger   letterbox.Logger
}

func New() *Platform {
	return &Platform{logger: letterbox.NewNopLogger()}
}

func (p *Platform) Name() string { return Name }

// Open must run on the main OS thread.
func (p *Platform) Open(cfg letterbox.WindowConfig, assets *letterbox.AssetServer, logger letterbox.Logger) error {
	if logger != nil {
		p.logger = logger
	}
	p.assets = assets

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initializing glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	resizable := glfw.False
	if cfg.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("creating window: %w", err)
	}
	p.window = window

	p.renderer, err = newRenderer(window, cfg.VSync)
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return fmt.Errorf("initializing webgpu: %w", err)
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		p.renderer.resize(width, height)
	})

	p.display = &Display{window: window, renderer: p.renderer, logger: p.logger}
	p.input = &Input{window: window}
	p.audio = sound.New(letterbox.DefaultSampleRate, p.logger)
	return nil
}

func (p *Platform) Run(ctx context.Context, step func() error) error {
	for !p.window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		glfw.PollEvents()
		if err := step(); err != nil {
			return err
		}
	}
	return letterbox.ErrWindowClosed
}

func (p *Platform) Close() error {
	var err error
	if p.audio != nil {
		err = p.audio.Close()
	}
	if p.renderer != nil {
		p.renderer.release()
		p.renderer = nil
	}
	if p.window != nil {
		p.window.Destroy()
		p.window = nil
		glfw.Terminate()
	}
	return err
}

func (p *Platform) Display() letterbox.DisplaySurface { return p.display }
func (p *Platform) Input() letterbox.InputSource      { return p.input }
func (p *Platform) Audio() letterbox.AudioDevice      { return p.audio }

// NewRenderTarget returns a CPU canvas; the display uploads it every frame.
func (p *Platform) NewRenderTarget(size letterbox.Size) letterbox.RenderTarget {
	return soft.NewCanvas(size, p.assets)
}

// NewLightingProgram returns the uniform block bound to the blit shader.
func (p *Platform) NewLightingProgram() letterbox.ShaderProgram {
	return letterbox.NewUniformTable(letterbox.LightingLayout(letterbox.MaxLights))
}
