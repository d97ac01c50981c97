package letterbox

import (
	"fmt"
	"reflect"
)

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	app := &App{
		stages:    defaultStages(),
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, s := range app.stages {
		app.systems[s.Name] = make([]systemFn, 0)
	}
	return &AppBuilder{app: app}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

func (b *AppBuilder) Build() *App {
	return b.app.UseModules(b.modules...)
}

// TryBuild is Build for callers that want module wiring failures as an
// error. A platform opened before the failure is closed again.
func (b *AppBuilder) TryBuild() (app *App, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rerr, ok := r.(error); ok {
			err = rerr
		} else {
			err = fmt.Errorf("%v", r)
		}
		if host, ok := Resource[Host](b.app); ok {
			if cerr := host.Platform.Close(); cerr != nil {
				b.app.Logger().Warnf("closing %s platform: %v", host.Platform.Name(), cerr)
			}
		}
		app = nil
	}()
	return b.Build(), nil
}
