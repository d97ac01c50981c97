package raylib

import (
	"encoding/binary"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Audio is raylib's own mixer: streamed music and in-memory sounds.
type Audio struct {
	music   map[string]rl.Music
	sounds  map[string]rl.Sound
	current string
	volume  float32
}

func newAudio() *Audio {
	rl.InitAudioDevice()
	return &Audio{
		music:  make(map[string]rl.Music),
		sounds: make(map[string]rl.Sound),
		volume: 1,
	}
}

func (a *Audio) LoadMusic(name, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("loading music %s: %w", name, err)
	}
	m := rl.LoadMusicStream(path)
	if !rl.IsMusicValid(m) {
		return fmt.Errorf("loading music %s: raylib could not decode %s", name, path)
	}
	a.music[name] = m
	return nil
}

func (a *Audio) LoadSound(name string, pcm []int16, sampleRate int) error {
	if len(pcm) == 0 {
		return fmt.Errorf("loading sound %s: empty pcm", name)
	}
	data := make([]byte, len(pcm)*2)
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	wave := rl.NewWave(uint32(len(pcm)), uint32(sampleRate), 16, 1, data)
	a.sounds[name] = rl.LoadSoundFromWave(wave)
	return nil
}

func (a *Audio) PlayMusic(name string) {
	m, ok := a.music[name]
	if !ok {
		return
	}
	if cur, ok := a.music[a.current]; ok && a.current != name {
		rl.StopMusicStream(cur)
	}
	rl.SetMusicVolume(m, a.volume)
	rl.PlayMusicStream(m)
	a.current = name
}

func (a *Audio) PlaySound(name string) {
	if s, ok := a.sounds[name]; ok {
		rl.PlaySound(s)
	}
}

func (a *Audio) SetVolume(v float32) {
	a.volume = max(0, min(v, 1))
	rl.SetMasterVolume(a.volume)
}

func (a *Audio) Update() {
	if m, ok := a.music[a.current]; ok {
		rl.UpdateMusicStream(m)
	}
}

func (a *Audio) Close() error {
	for _, m := range a.music {
		rl.UnloadMusicStream(m)
	}
	for _, s := range a.sounds {
		rl.UnloadSound(s)
	}
	a.music = map[string]rl.Music{}
	a.sounds = map[string]rl.Sound{}
	rl.CloseAudioDevice()
	return nil
}
