package letterbox

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module wires resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

var (
	// ErrWindowClosed is returned by platforms when the user closes the window.
	ErrWindowClosed = errors.New("letterbox: window closed")
	// ErrQuit ends the frame loop after a system called Commands.Quit.
	ErrQuit = errors.New("letterbox: quit requested")
)

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	quit      bool
	frame     uint64
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	return app
}

// Frame is the number of completed frames.
func (app *App) Frame() uint64 {
	return app.frame
}

// Step runs every stage once.
func (app *App) Step() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
	}
	app.frame++
}

// Run drives frames through the installed platform until the window closes,
// a system asks to quit or ctx is done.
func (app *App) Run(ctx context.Context) error {
	host, ok := Resource[Host](app)
	if !ok {
		return errors.New("letterbox: no platform installed")
	}
	logger := app.Logger()
	logger.Infof("Running on %s platform", host.Platform.Name())

	err := host.Platform.Run(ctx, func() error {
		app.Step()
		if app.quit {
			return ErrQuit
		}
		return nil
	})
	if cerr := host.Platform.Close(); cerr != nil {
		logger.Warnf("closing %s platform: %v", host.Platform.Name(), cerr)
	}

	switch {
	case err == nil, errors.Is(err, ErrQuit), errors.Is(err, ErrWindowClosed):
		logger.Infof("Stopped after %d frames", app.frame)
		return nil
	case errors.Is(err, context.Canceled):
		logger.Infof("Interrupted after %d frames", app.frame)
		return nil
	default:
		return err
	}
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("System %s takes non-pointer argument %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(), argType))
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("%s is not a pointer resource", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource looks up a resource by its struct type.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := r.(*T)
	return typed, ok
}

// MustResource is Resource for wiring code that cannot continue without it.
func MustResource[T any](app *App) *T {
	r, ok := Resource[T](app)
	if !ok {
		panic(fmt.Sprintf("%s is not in resources", reflect.TypeOf((*T)(nil)).Elem()))
	}
	return r
}
