package letterbox

// AudioDevice plays named music streams and one-shot sounds.
type AudioDevice interface {
	LoadMusic(name, path string) error
	LoadSound(name string, pcm []int16, sampleRate int) error
	PlayMusic(name string)
	PlaySound(name string)
	SetVolume(v float32)
	// Update feeds streaming music; call once per frame.
	Update()
	Close() error
}

// Sound names the demo looks up.
const (
	SoundExplosion = "explosion"
	MusicTheme     = "theme"
)

const DefaultSampleRate = 44100

type AudioModule struct {
	Music   string
	Volume  float32
	Enabled bool
}

// Audio is the resource systems play sounds through. It is silent when the
// module is disabled or the platform has no device.
type Audio struct {
	device  AudioDevice
	enabled bool
}

func (a *Audio) PlaySound(name string) {
	if a.enabled {
		a.device.PlaySound(name)
	}
}

func (a *Audio) Enabled() bool { return a.enabled }

func (mod AudioModule) Install(app *App, cmd *Commands) {
	host := MustResource[Host](app)
	logger := app.Logger()
	res := &Audio{}
	cmd.AddResources(res)

	device := host.Audio()
	if !mod.Enabled || device == nil {
		logger.Infof("Audio disabled")
		return
	}
	res.device = device
	res.enabled = true

	device.SetVolume(mod.Volume)

	pcm := SynthesizeExplosion(DefaultSampleRate)
	if assets, ok := Resource[AssetServer](app); ok {
		assets.CreateSound(SoundExplosion, pcm, DefaultSampleRate)
	}
	if err := device.LoadSound(SoundExplosion, pcm, DefaultSampleRate); err != nil {
		logger.Warnf("loading %s sound: %v", SoundExplosion, err)
	}

	if mod.Music != "" {
		if err := device.LoadMusic(MusicTheme, mod.Music); err != nil {
			logger.Warnf("background music unavailable: %v", err)
		} else {
			device.PlayMusic(MusicTheme)
		}
	}

	app.UseSystem(System(audioSystem).InStage(PostUpdate))
}

func audioSystem(a *Audio) {
	a.device.Update()
}
