package letterbox

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	require.Panics(t, func() {
		app.addResources(MockResource1{name: "by value"})
	})
}

func TestResource_Lookup(t *testing.T) {
	app := NewAppBuilder().Build()
	app.addResources(NewMockResource1("one"))

	r, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, "one", r.name)

	_, ok = Resource[MockResource2](app)
	assert.False(t, ok)
	assert.Panics(t, func() { MustResource[MockResource2](app) })
}

func TestApp_StepRunsStagesInOrder(t *testing.T) {
	app := NewAppBuilder().Build()
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}
	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("prelude")).InStage(Prelude))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("update2")).InStage(Update))

	app.Step()

	assert.Equal(t, []string{"prelude", "update", "update2", "render"}, order)
	assert.Equal(t, uint64(1), app.Frame())
}

func TestApp_SystemInjection(t *testing.T) {
	app := NewAppBuilder().Build()
	app.addResources(NewMockResource1("injected"))

	var got string
	var frame uint64 = 99
	app.UseSystem(System(func(r *MockResource1, cmd *Commands) {
		got = r.name
		frame = cmd.Frame()
	}))
	app.Step()

	assert.Equal(t, "injected", got)
	assert.Equal(t, uint64(0), frame)
}

func TestApp_SystemMissingDependencyPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(r *MockResource2) {}))
	assert.Panics(t, app.Step)
}

func TestApp_SystemNonPointerArgumentPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(r MockResource1) {}))
	assert.Panics(t, app.Step)
}

func TestApp_UseStage(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseStage(Stage{Name: "Physics"}, AfterStage(Update))
	app.UseStage(Stage{Name: "Setup"}, BeforeStage(Prelude))

	assert.Equal(t, []string{"Setup", "Prelude", "PreUpdate", "Update", "Physics", "PostUpdate",
		"PreRender", "Render", "PostRender", "Finale"}, app.Stages())

	assert.Panics(t, func() { app.UseStage(Stage{Name: "Physics"}, AfterStage(Render)) })
	assert.Panics(t, func() { app.UseStage(Stage{Name: "Other"}, AfterStage(Stage{Name: "Missing"})) })
	assert.Panics(t, func() { app.UseSystem(System(func() {}).InStage(Stage{Name: "Missing"})) })
}

// loopPlatform runs step a fixed number of times without a window.
type loopPlatform struct {
	frames int
	err    error
	closed bool
}

func (p *loopPlatform) Name() string                                  { return "loop" }
func (p *loopPlatform) Open(WindowConfig, *AssetServer, Logger) error { return nil }
func (p *loopPlatform) Display() DisplaySurface                       { return nil }
func (p *loopPlatform) Input() InputSource                            { return nil }
func (p *loopPlatform) Audio() AudioDevice                            { return nil }
func (p *loopPlatform) NewRenderTarget(Size) RenderTarget             { return nil }
func (p *loopPlatform) NewLightingProgram() ShaderProgram             { return nil }

func (p *loopPlatform) Close() error {
	p.closed = true
	return nil
}

func (p *loopPlatform) Run(ctx context.Context, step func() error) error {
	for i := 0; i < p.frames; i++ {
		if err := step(); err != nil {
			return err
		}
	}
	return p.err
}

func TestApp_RunRequiresPlatform(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.Error(t, app.Run(context.Background()))
}

func TestApp_RunStopsOnQuit(t *testing.T) {
	p := &loopPlatform{frames: 100}
	app := NewAppBuilder().UseModule(PlatformModule{Platform: p}).Build()
	app.UseSystem(System(func(cmd *Commands) {
		if cmd.Frame() == 4 {
			cmd.Quit()
		}
	}))

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, uint64(5), app.Frame())
	assert.True(t, p.closed)
}

func TestApp_RunTreatsWindowCloseAsClean(t *testing.T) {
	p := &loopPlatform{frames: 3, err: ErrWindowClosed}
	app := NewAppBuilder().UseModule(PlatformModule{Platform: p}).Build()
	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, uint64(3), app.Frame())
}

func TestApp_RunReturnsPlatformErrors(t *testing.T) {
	boom := errors.New("device lost")
	p := &loopPlatform{frames: 1, err: boom}
	app := NewAppBuilder().UseModule(PlatformModule{Platform: p}).Build()
	assert.ErrorIs(t, app.Run(context.Background()), boom)
}
