package letterbox

import (
	"fmt"
	"image/color"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Platform string         `yaml:"platform"`
	Window   WindowSection  `yaml:"window"`
	Virtual  VirtualSection `yaml:"virtual"`
	Scaling  ScalingSection `yaml:"scaling"`
	Lighting LightingConfig `yaml:"lighting"`
	Audio    AudioConfig    `yaml:"audio"`
	Headless HeadlessConfig `yaml:"headless"`
	Debug    bool           `yaml:"debug"`
}

type WindowSection struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
}

type VirtualSection struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ScalingSection struct {
	Overflow string `yaml:"overflow"`
}

type LightingConfig struct {
	Ambient    [4]float32    `yaml:"ambient"`
	FogDensity float32       `yaml:"fog_density"`
	Lights     []LightConfig `yaml:"lights"`
}

type LightConfig struct {
	Kind     string     `yaml:"kind"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Color    [4]uint8   `yaml:"color"`
}

type AudioConfig struct {
	Music   string  `yaml:"music"`
	Volume  float32 `yaml:"volume"`
	Enabled bool    `yaml:"enabled"`
}

// HeadlessConfig drives the soft platform. Frames 0 runs until the context
// is cancelled.
type HeadlessConfig struct {
	Frames   int    `yaml:"frames"`
	Hz       int    `yaml:"hz"`
	Snapshot string `yaml:"snapshot"`
}

func DefaultConfig() Config {
	return Config{
		Platform: "soft",
		Window: WindowSection{
			Width:     640,
			Height:    480,
			Title:     VersionName,
			Resizable: true,
			VSync:     true,
		},
		Virtual: VirtualSection{Width: 320, Height: 240},
		Scaling: ScalingSection{Overflow: OverflowAllow.String()},
		Lighting: LightingConfig{
			Ambient:    [4]float32{0.2, 0.2, 0.2, 1},
			FogDensity: 0.15,
			Lights: []LightConfig{
				{Kind: "point", Position: [3]float32{160, 60, 80}, Color: [4]uint8{255, 255, 255, 255}},
			},
		},
		Audio:    AudioConfig{Volume: 0.5, Enabled: true},
		Headless: HeadlessConfig{Hz: 60},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Virtual.Width <= 0 || c.Virtual.Height <= 0 {
		return fmt.Errorf("virtual size %dx%d must be positive", c.Virtual.Width, c.Virtual.Height)
	}
	if _, err := ParseOverflowPolicy(c.Scaling.Overflow); err != nil {
		return err
	}
	for i, l := range c.Lighting.Lights {
		if _, err := ParseLightKind(l.Kind); err != nil {
			return fmt.Errorf("lights[%d]: %w", i, err)
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %v outside [0,1]", c.Audio.Volume)
	}
	if c.Headless.Frames < 0 {
		return fmt.Errorf("headless frames %d is negative", c.Headless.Frames)
	}
	return nil
}

func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "", "allow":
		return OverflowAllow, nil
	case "clamp":
		return OverflowClamp, nil
	}
	return OverflowAllow, fmt.Errorf("unknown overflow policy %q", s)
}

func ParseLightKind(s string) (LightKind, error) {
	switch s {
	case "directional":
		return LightDirectional, nil
	case "", "point":
		return LightPoint, nil
	}
	return LightPoint, fmt.Errorf("unknown light kind %q", s)
}

func (c Config) WindowConfig() WindowConfig {
	return WindowConfig{
		Width:     c.Window.Width,
		Height:    c.Window.Height,
		Title:     c.Window.Title,
		Resizable: c.Window.Resizable,
		VSync:     c.Window.VSync,
	}
}

// ViewportModule assumes a validated config.
func (c Config) ViewportModule() ViewportModule {
	overflow, _ := ParseOverflowPolicy(c.Scaling.Overflow)
	return ViewportModule{
		Width:      c.Virtual.Width,
		Height:     c.Virtual.Height,
		Overflow:   overflow,
		ClearColor: color.RGBA{A: 255},
	}
}

func (c Config) LightingModule() LightingModule {
	mod := LightingModule{
		Ambient:    mgl32.Vec4(c.Lighting.Ambient),
		FogDensity: c.Lighting.FogDensity,
	}
	for _, l := range c.Lighting.Lights {
		kind, _ := ParseLightKind(l.Kind)
		mod.Lights = append(mod.Lights, LightSetup{
			Kind:     kind,
			Position: mgl32.Vec3(l.Position),
			Target:   mgl32.Vec3(l.Target),
			Color:    color.RGBA{l.Color[0], l.Color[1], l.Color[2], l.Color[3]},
		})
	}
	return mod
}

func (c Config) AudioModule() AudioModule {
	return AudioModule{
		Music:   c.Audio.Music,
		Volume:  c.Audio.Volume,
		Enabled: c.Audio.Enabled,
	}
}
