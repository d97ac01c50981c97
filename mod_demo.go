package letterbox

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const VersionName = "Sound fix"

var (
	colorRed      = color.RGBA{230, 41, 55, 255}
	colorBlue     = color.RGBA{0, 121, 241, 255}
	colorWhite    = color.RGBA{255, 255, 255, 255}
	colorRayWhite = color.RGBA{245, 245, 245, 255}
	colorDarkGray = color.RGBA{80, 80, 80, 255}
)

const (
	ballSpeed      = 120
	ballRadius     = 5
	mouseLerp      = 0.025
	fogStep        = 0.001
	valueEvery     = 60
	lightOrbitRate = 0.6 // radians per second
)

// Ball is the player sprite, steered by arrow keys or dragged by the mouse.
type Ball struct {
	Direction mgl32.Vec2
	Position  mgl32.Vec2
	Speed     float32
	Radius    float32
	Color     color.RGBA
	Sprite    AssetId
}

type BouncingBall struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Radius   float32
	Color    color.RGBA
}

// Scene is the demo state.
type Scene struct {
	Player    Ball
	Bouncer   BouncingBall
	Value     int
	Colliding bool

	frameCount int
	rng        *rand.Rand
	bounds     mgl32.Vec2

	// checker material; its program shades the presenting blit
	background AssetId
	ground     AssetId
	treeRight  AssetId

	orbitCenter mgl32.Vec2
	orbitRadius float32
	orbitAngle  float32
	fps         fpsCounter
}

type fpsCounter struct {
	frames  int
	elapsed time.Duration
	value   int
}

func (f *fpsCounter) tick(dt time.Duration) {
	f.frames++
	f.elapsed += dt
	if f.elapsed >= time.Second {
		f.value = int(math.Round(float64(f.frames) / f.elapsed.Seconds()))
		f.frames = 0
		f.elapsed = 0
	}
}

func (s *Scene) FPS() int { return s.fps.value }

// Background is the material the frame is drawn over.
func (s *Scene) Background() AssetId { return s.background }

type DemoModule struct {
	// Seed for the displayed random value; 0 seeds from the clock.
	Seed int64
}

func (mod DemoModule) Install(app *App, cmd *Commands) {
	vp := MustResource[Viewport](app)
	assets := MustResource[AssetServer](app)

	seed := mod.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w, h := float32(vp.Virtual.Width), float32(vp.Virtual.Height)
	center := mgl32.Vec2{w / 2, h / 2}

	checker := assets.CreateCheckerTexture(vp.Virtual.Width, vp.Virtual.Height, 16, color.RGBA{200, 200, 200, 255}, color.RGBA{140, 140, 140, 255})
	scene := &Scene{
		Player: Ball{
			Position: center,
			Speed:    ballSpeed,
			Radius:   ballRadius,
			Color:    colorRed,
			Sprite:   assets.CreateTreeSprite(16, 24, color.RGBA{34, 139, 34, 255}, color.RGBA{101, 67, 33, 255}, false),
		},
		Bouncer: BouncingBall{
			Position: center,
			Velocity: mgl32.Vec2{200, 200},
			Radius:   ballRadius,
			Color:    colorBlue,
		},
		rng:         rand.New(rand.NewSource(seed)),
		bounds:      mgl32.Vec2{w, h},
		background:  assets.CreateMaterial(),
		ground:      assets.CreateGroundTexture(vp.Virtual.Width/4, vp.Virtual.Height/4, color.RGBA{120, 90, 60, 255}, seed),
		treeRight:   assets.CreateTreeSprite(24, 36, color.RGBA{46, 120, 50, 255}, color.RGBA{101, 67, 33, 255}, true),
		orbitCenter: center,
		orbitRadius: min(w, h) / 3,
	}
	scene.Value = scene.randomValue()

	if err := assets.BindTexture(scene.background, checker); err != nil {
		panic(err)
	}
	if vp.Program != nil {
		if err := assets.BindProgram(scene.background, vp.Program); err != nil {
			panic(err)
		}
	}

	cmd.AddResources(scene)
	app.UseSystem(System(demoControlSystem).InStage(Update))
	app.UseSystem(System(demoUpdateSystem).InStage(Update))
	app.UseSystem(System(demoDrawSystem).InStage(Render))
}

func (s *Scene) randomValue() int {
	return s.rng.Intn(200) - 100
}

func demoControlSystem(cmd *Commands, host *Host, input *Input, lighting *Lighting) {
	if input.JustPressed[KeyEscape] {
		cmd.Quit()
	}
	if input.JustPressed[KeyF11] {
		if t, ok := host.Display().(FullscreenToggler); ok {
			t.ToggleFullscreen()
		}
	}
	if input.Pressed[KeyF] {
		lighting.SetFogDensity(lighting.FogDensity + fogStep)
	}
	if input.Pressed[KeyC] {
		lighting.SetFogDensity(lighting.FogDensity - fogStep)
	}
}

func demoUpdateSystem(scene *Scene, t *Time, input *Input, audio *Audio, lighting *Lighting) {
	dt := t.DtSeconds()
	scene.fps.tick(t.Dt)

	wasColliding := scene.Colliding
	scene.Colliding = CirclesOverlap(scene.Player.Position, scene.Player.Radius, scene.Bouncer.Position, scene.Bouncer.Radius)
	if scene.Colliding {
		scene.Bouncer.Velocity = scene.Bouncer.Velocity.Mul(-1)
		if !wasColliding {
			audio.PlaySound(SoundExplosion)
		}
	}

	scene.Bouncer.step(dt, scene.bounds)

	scene.frameCount++
	if scene.frameCount%valueEvery == 0 {
		scene.Value = scene.randomValue()
		scene.frameCount = 0
	}

	if input.Pressed[MouseButtonLeft] {
		target := mgl32.Vec2{input.VirtualX, input.VirtualY}
		scene.Player.Position = lerpVec2(scene.Player.Position, target, mouseLerp)
	}

	if !scene.Colliding {
		var dir mgl32.Vec2
		if input.Pressed[KeyUp] {
			dir[1] -= 1
		}
		if input.Pressed[KeyDown] {
			dir[1] += 1
		}
		if input.Pressed[KeyLeft] {
			dir[0] -= 1
		}
		if input.Pressed[KeyRight] {
			dir[0] += 1
		}
		if dir.Len() > 0 {
			dir = dir.Normalize()
		}
		scene.Player.Direction = dir
		scene.Player.Position = scene.Player.Position.Add(dir.Mul(scene.Player.Speed * dt))
	}

	if light := lighting.Light(0); light != nil {
		scene.orbitAngle += lightOrbitRate * dt
		s, c := math.Sincos(float64(scene.orbitAngle))
		light.Position[0] = scene.orbitCenter.X() + scene.orbitRadius*float32(c)
		light.Position[1] = scene.orbitCenter.Y() + scene.orbitRadius*float32(s)
	}
}

func (b *BouncingBall) step(dt float32, bounds mgl32.Vec2) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	if b.Position.X() >= bounds.X()-b.Radius || b.Position.X() <= b.Radius {
		b.Velocity[0] *= -1
	}
	if b.Position.Y() >= bounds.Y()-b.Radius || b.Position.Y() <= b.Radius {
		b.Velocity[1] *= -1
	}
}

// CirclesOverlap reports whether two circles touch or intersect.
func CirclesOverlap(c1 mgl32.Vec2, r1 float32, c2 mgl32.Vec2, r2 float32) bool {
	return c1.Sub(c2).Len() <= r1+r2
}

func lerpVec2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

func demoDrawSystem(scene *Scene, vp *Viewport, lighting *Lighting, assets *AssetServer) {
	target := vp.Target
	h := vp.Virtual.Height

	if program, err := assets.DrawMaterial(target, scene.background, mgl32.Vec2{0, 0}, colorWhite); err == nil && program != nil {
		vp.Program = program
	}
	target.DrawTexture(scene.ground, mgl32.Vec2{0, 0}, colorWhite)
	target.DrawTexture(scene.treeRight, mgl32.Vec2{0, 0}, colorWhite)

	b := scene.Bouncer
	target.FillCircle(b.Position, b.Radius, b.Color)
	target.FillCircle(b.Position, b.Radius-2, colorWhite)

	drawTextCenter(target, vp.Virtual.Width, "every 60 frames new value generated", h/2-40, 24, colorDarkGray)
	drawTextCenter(target, vp.Virtual.Width, strconv.Itoa(scene.Value), h/2-20, 24, colorDarkGray)

	p := scene.Player
	if sprite, ok := assets.Texture(p.Sprite); ok {
		half := mgl32.Vec2{float32(sprite.Width) / 2, float32(sprite.Height) / 2}
		target.DrawTexture(p.Sprite, p.Position.Sub(half), p.Color)
	}
	target.FillCircle(p.Position, p.Radius+2, p.Color)
	target.FillCircle(p.Position, p.Radius, colorWhite)

	target.DrawText(VersionName, 12, 12, 16, colorRayWhite)
	target.DrawText(strconv.Itoa(scene.FPS()), 12, 24, 16, colorRayWhite)
	target.DrawText(fmt.Sprintf("%.3f", lighting.FogDensity), 12, 36, 12, colorRayWhite)
}

func drawTextCenter(target RenderTarget, width int, text string, y, size int, c color.RGBA) {
	w := target.MeasureText(text, size)
	target.DrawText(text, width/2-w/2, y, size, c)
}
