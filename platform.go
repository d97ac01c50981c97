package letterbox

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ErrUnknownPlatform is returned by NewPlatform for names nobody registered.
var ErrUnknownPlatform = errors.New("letterbox: unknown platform")

// Platform is one windowing and graphics backend. Open must be called before
// any of the accessors, and Run owns the calling goroutine until the loop ends.
type Platform interface {
	Name() string
	Open(cfg WindowConfig, assets *AssetServer, logger Logger) error
	// Run calls step once per frame until step returns an error, the window
	// closes (ErrWindowClosed) or ctx is done.
	Run(ctx context.Context, step func() error) error
	Close() error

	Display() DisplaySurface
	Input() InputSource
	Audio() AudioDevice
	NewRenderTarget(size Size) RenderTarget
	// NewLightingProgram compiles the lighting shader. Backends without
	// shader support may return nil.
	NewLightingProgram() ShaderProgram
}

type PlatformFactory func() Platform

var (
	platformsMu sync.RWMutex
	platforms   = make(map[string]PlatformFactory)
)

// RegisterPlatform makes a backend available by name. Backends call it from
// init; registering the same name twice panics.
func RegisterPlatform(name string, factory PlatformFactory) {
	platformsMu.Lock()
	defer platformsMu.Unlock()
	if factory == nil {
		panic("letterbox: RegisterPlatform factory is nil")
	}
	if _, dup := platforms[name]; dup {
		panic("letterbox: RegisterPlatform called twice for " + name)
	}
	platforms[name] = factory
}

func NewPlatform(name string) (Platform, error) {
	platformsMu.RLock()
	factory, ok := platforms[name]
	platformsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownPlatform, name, Platforms())
	}
	return factory(), nil
}

// Platforms lists registered backend names, sorted.
func Platforms() []string {
	platformsMu.RLock()
	defer platformsMu.RUnlock()
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Host is the resource through which systems reach the opened platform.
type Host struct {
	Platform Platform
	Window   WindowConfig
}

func (h *Host) Display() DisplaySurface { return h.Platform.Display() }
func (h *Host) Input() InputSource      { return h.Platform.Input() }
func (h *Host) Audio() AudioDevice      { return h.Platform.Audio() }

// PlatformTag marks that a platform has been installed into the App.
type PlatformTag struct {
	Name string
}

// ensureSinglePlatform panics if a different platform is already installed.
func ensureSinglePlatform(app *App, name string) {
	if app == nil {
		panic("ensureSinglePlatform: app is nil")
	}
	t := reflect.TypeOf((*PlatformTag)(nil)).Elem()
	if res, ok := app.resources[t]; ok {
		if tag, ok2 := res.(*PlatformTag); ok2 {
			if tag.Name != name {
				app.Logger().Errorf("Multiple platforms installed: %s and %s", tag.Name, name)
				panic(fmt.Sprintf("Multiple platforms installed: %s and %s", tag.Name, name))
			}
			return
		}
		panic("PlatformTag resource present with unexpected type")
	}
	app.addResources(&PlatformTag{Name: name})
}

// PlatformModule opens a window on the given backend and publishes *Host.
// Platform takes precedence over Name. An AssetServer resource is created
// when no AssetsModule was installed first.
type PlatformModule struct {
	Name     string
	Platform Platform
	Window   WindowConfig
}

func (m PlatformModule) Install(app *App, cmd *Commands) {
	p := m.Platform
	if p == nil {
		var err error
		if p, err = NewPlatform(m.Name); err != nil {
			panic(err)
		}
	}
	ensureSinglePlatform(app, p.Name())

	assets, ok := Resource[AssetServer](app)
	if !ok {
		assets = NewAssetServer()
		cmd.AddResources(assets)
	}

	window := m.Window.withDefaults()
	if err := p.Open(window, assets, app.Logger()); err != nil {
		panic(fmt.Errorf("opening %s platform: %w", p.Name(), err))
	}
	app.Logger().Infof("Platform selected: %s (%dx%d '%s')", p.Name(), window.Width, window.Height, window.Title)

	cmd.AddResources(&Host{Platform: p, Window: window})
}
