// Package sound is an AudioDevice on top of ebiten's audio package. It is
// shared by the platforms that do not bring their own mixer.
package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gekko3d/letterbox"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

type Device struct {
	ctx    *audio.Context
	logger letterbox.Logger
	volume float64

	music   map[string]*audio.Player
	files   []io.Closer
	current *audio.Player
	sounds  map[string][]byte
	voices  []*audio.Player
}

// New reuses the process audio context when one exists; ebiten allows only
// one per sample rate.
func New(sampleRate int, logger letterbox.Logger) *Device {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	if logger == nil {
		logger = letterbox.NewNopLogger()
	}
	return &Device{
		ctx:    ctx,
		logger: logger,
		volume: 1,
		music:  make(map[string]*audio.Player),
		sounds: make(map[string][]byte),
	}
}

func (d *Device) LoadMusic(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loading music %s: %w", name, err)
	}

	var stream io.ReadSeeker
	var length int64
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(d.ctx.SampleRate(), f)
		if err != nil {
			f.Close()
			return fmt.Errorf("decoding music %s: %w", path, err)
		}
		stream, length = s, s.Length()
	case ".wav":
		s, err := wav.DecodeWithSampleRate(d.ctx.SampleRate(), f)
		if err != nil {
			f.Close()
			return fmt.Errorf("decoding music %s: %w", path, err)
		}
		stream, length = s, s.Length()
	default:
		f.Close()
		return fmt.Errorf("loading music %s: unsupported format %q", name, filepath.Ext(path))
	}

	p, err := d.ctx.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		f.Close()
		return fmt.Errorf("creating music player %s: %w", name, err)
	}
	p.SetBufferSize(100 * time.Millisecond)
	d.music[name] = p
	d.files = append(d.files, f)
	return nil
}

// LoadSound stores mono PCM as the 16-bit stereo stream ebiten plays.
func (d *Device) LoadSound(name string, pcm []int16, sampleRate int) error {
	if len(pcm) == 0 {
		return fmt.Errorf("loading sound %s: empty pcm", name)
	}
	if sampleRate != d.ctx.SampleRate() {
		pcm = resample(pcm, sampleRate, d.ctx.SampleRate())
	}
	buf := make([]byte, len(pcm)*4)
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	d.sounds[name] = buf
	return nil
}

// nearest-sample resampling; only used for short effects
func resample(pcm []int16, from, to int) []int16 {
	if from <= 0 || to <= 0 {
		return pcm
	}
	n := int(int64(len(pcm)) * int64(to) / int64(from))
	out := make([]int16, n)
	for i := range out {
		out[i] = pcm[int64(i)*int64(from)/int64(to)]
	}
	return out
}

func (d *Device) PlayMusic(name string) {
	p, ok := d.music[name]
	if !ok {
		d.logger.Warnf("no music named %q", name)
		return
	}
	if d.current != nil && d.current != p {
		d.current.Pause()
	}
	p.SetVolume(d.volume)
	p.Play()
	d.current = p
}

func (d *Device) PlaySound(name string) {
	buf, ok := d.sounds[name]
	if !ok {
		d.logger.Debugf("no sound named %q", name)
		return
	}
	p := d.ctx.NewPlayerFromBytes(buf)
	p.SetVolume(d.volume)
	p.Play()
	d.voices = append(d.voices, p)
}

func (d *Device) SetVolume(v float32) {
	d.volume = float64(max(0, min(v, 1)))
	for _, p := range d.music {
		p.SetVolume(d.volume)
	}
}

// Update releases one-shot players that finished.
func (d *Device) Update() {
	live := d.voices[:0]
	for _, p := range d.voices {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		_ = p.Close()
	}
	d.voices = live
}

func (d *Device) Close() error {
	var errs []error
	for _, p := range d.voices {
		errs = append(errs, p.Close())
	}
	for _, p := range d.music {
		errs = append(errs, p.Close())
	}
	for _, f := range d.files {
		errs = append(errs, f.Close())
	}
	d.voices, d.files = nil, nil
	d.music = make(map[string]*audio.Player)
	return errors.Join(errs...)
}
