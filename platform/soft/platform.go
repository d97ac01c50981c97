// Package soft is a headless platform that rasterizes on the CPU. It backs
// the test suite and the -platform soft mode of the demo.
package soft

import (
	"context"
	"fmt"
	"time"

	"github.com/gekko3d/letterbox"
)

const Name = "soft"

func init() {
	letterbox.RegisterPlatform(Name, func() letterbox.Platform { return New(Options{Hz: 60}) })
}

// Options control the headless frame loop. Frames 0 runs until the context
// ends. Hz 0 runs frames back to back.
type Options struct {
	Frames   int
	Hz       int
	Snapshot string
	// Script runs before each frame with the frame index, for scripted
	// resizes and input.
	Script func(frame int, p *Platform)
}

type Platform struct {
	opts    Options
	window  letterbox.WindowConfig
	assets  *letterbox.AssetServer
	logger  letterbox.Logger
	display *Display
	input   *Input
	audio   *Audio
	frame   int
}

func New(opts Options) *Platform {
	return &Platform{opts: opts, logger: letterbox.NewNopLogger()}
}

// Configure replaces the loop options. Must be called before Run.
func (p *Platform) Configure(opts Options) {
	p.opts = opts
}

func (p *Platform) Name() string { return Name }

func (p *Platform) Open(cfg letterbox.WindowConfig, assets *letterbox.AssetServer, logger letterbox.Logger) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("soft window size %dx%d", cfg.Width, cfg.Height)
	}
	if logger != nil {
		p.logger = logger
	}
	p.window = cfg
	p.assets = assets
	p.display = NewDisplay(letterbox.Size{Width: cfg.Width, Height: cfg.Height}, p.logger)
	p.input = &Input{display: p.display}
	p.audio = NewAudio()
	p.logger.Debugf("soft window %dx%d '%s'", cfg.Width, cfg.Height, cfg.Title)
	return nil
}

// Run steps until the frame budget is spent, step fails or ctx is done. The
// snapshot, when configured, is written on every one of those exits.
func (p *Platform) Run(ctx context.Context, step func() error) (err error) {
	if p.opts.Snapshot != "" {
		defer func() {
			if serr := p.writeSnapshot(); serr != nil && err == nil {
				err = serr
			}
		}()
	}

	var tick <-chan time.Time
	if p.opts.Hz > 0 {
		t := time.NewTicker(time.Second / time.Duration(p.opts.Hz))
		defer t.Stop()
		tick = t.C
	}

	for p.opts.Frames == 0 || p.frame < p.opts.Frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}

		if p.opts.Script != nil {
			p.opts.Script(p.frame, p)
		}
		stepErr := step()
		p.frame++
		if stepErr != nil {
			return stepErr
		}
	}
	return nil
}

func (p *Platform) writeSnapshot() error {
	if err := p.display.SavePNG(p.opts.Snapshot); err != nil {
		p.logger.Errorf("writing snapshot: %v", err)
		return err
	}
	p.logger.Infof("Snapshot written to %s after %d frames", p.opts.Snapshot, p.frame)
	return nil
}

func (p *Platform) Close() error {
	return p.audio.Close()
}

// FrameTime is the fixed step implied by Hz, so headless runs are
// deterministic.
func (p *Platform) FrameTime() time.Duration {
	hz := p.opts.Hz
	if hz <= 0 {
		hz = 60
	}
	return time.Second / time.Duration(hz)
}

func (p *Platform) Frame() int { return p.frame }

func (p *Platform) Display() letterbox.DisplaySurface { return p.display }
func (p *Platform) Input() letterbox.InputSource      { return p.input }
func (p *Platform) Audio() letterbox.AudioDevice      { return p.audio }

// Concrete accessors for scripts and tests.
func (p *Platform) SoftDisplay() *Display { return p.display }
func (p *Platform) SoftInput() *Input     { return p.input }
func (p *Platform) SoftAudio() *Audio     { return p.audio }

func (p *Platform) NewRenderTarget(size letterbox.Size) letterbox.RenderTarget {
	return NewCanvas(size, p.assets)
}

func (p *Platform) NewLightingProgram() letterbox.ShaderProgram {
	return letterbox.NewUniformTable(letterbox.LightingLayout(letterbox.MaxLights))
}
