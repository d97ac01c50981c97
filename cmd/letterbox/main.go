// Command letterbox runs the bouncing-ball demo inside a fixed-size virtual
// screen that is scaled into whatever window it is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/gekko3d/letterbox"
	"github.com/gekko3d/letterbox/platform/soft"
)

func init() {
	// glfw, raylib and ebiten all need the main thread.
	runtime.LockOSThread()
}

type options struct {
	config   string
	platform string
	frames   int
	snapshot string
	debug    bool
	seed     int64
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "YAML config file")
	flag.StringVar(&opts.platform, "platform", "", "platform to run on ("+strings.Join(letterbox.Platforms(), ", ")+")")
	flag.IntVar(&opts.frames, "frames", -1, "stop the soft platform after n frames")
	flag.StringVar(&opts.snapshot, "snapshot", "", "write the last soft frame to a PNG")
	flag.BoolVar(&opts.debug, "debug", false, "debug logging")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed for the demo, 0 uses the clock")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "letterbox:", err)
		os.Exit(1)
	}
}

func loadConfig(opts options) (letterbox.Config, error) {
	cfg := letterbox.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = letterbox.LoadConfig(opts.config); err != nil {
			return cfg, err
		}
	}
	if opts.platform != "" {
		cfg.Platform = opts.platform
	}
	if opts.frames >= 0 {
		cfg.Headless.Frames = opts.frames
	}
	if opts.snapshot != "" {
		cfg.Headless.Snapshot = opts.snapshot
	}
	if opts.debug {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	app, err := buildApp(cfg, opts.seed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}

// buildApp wires the modules. Wiring panics come back as an error and close
// the platform if it was already opened.
func buildApp(cfg letterbox.Config, seed int64) (*letterbox.App, error) {
	platform, err := letterbox.NewPlatform(cfg.Platform)
	if err != nil {
		return nil, err
	}
	if sp, ok := platform.(*soft.Platform); ok {
		sp.Configure(soft.Options{
			Frames:   cfg.Headless.Frames,
			Hz:       cfg.Headless.Hz,
			Snapshot: cfg.Headless.Snapshot,
		})
	}

	return letterbox.NewAppBuilder().
		UseModule(letterbox.LoggingModule{Prefix: "letterbox", Debug: cfg.Debug}).
		UseModule(letterbox.AssetServerModule{}).
		UseModule(letterbox.PlatformModule{Platform: platform, Window: cfg.WindowConfig()}).
		UseModule(letterbox.TimeModule{}).
		UseModule(letterbox.InputModule{}).
		UseModule(cfg.ViewportModule()).
		UseModule(cfg.LightingModule()).
		UseModule(cfg.AudioModule()).
		UseModule(letterbox.DemoModule{Seed: seed}).
		TryBuild()
}
