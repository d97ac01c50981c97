package soft

import (
	"fmt"
	"os"
	"slices"
)

// Audio records what would have been played.
type Audio struct {
	Volume float32
	Calls  []string

	music  map[string]string
	sounds map[string]int
}

func NewAudio() *Audio {
	return &Audio{
		music:  make(map[string]string),
		sounds: make(map[string]int),
	}
}

func (a *Audio) LoadMusic(name, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("loading music %s: %w", name, err)
	}
	a.music[name] = path
	a.Calls = append(a.Calls, "load-music "+name)
	return nil
}

func (a *Audio) LoadSound(name string, pcm []int16, sampleRate int) error {
	if len(pcm) == 0 || sampleRate <= 0 {
		return fmt.Errorf("loading sound %s: empty pcm", name)
	}
	a.sounds[name] = len(pcm)
	a.Calls = append(a.Calls, "load-sound "+name)
	return nil
}

func (a *Audio) PlayMusic(name string) {
	if _, ok := a.music[name]; ok {
		a.Calls = append(a.Calls, "play-music "+name)
	}
}

func (a *Audio) PlaySound(name string) {
	if _, ok := a.sounds[name]; ok {
		a.Calls = append(a.Calls, "play-sound "+name)
	}
}

func (a *Audio) SetVolume(v float32) { a.Volume = v }

func (a *Audio) Update() {}

func (a *Audio) Close() error { return nil }

// Played counts play calls for a sound.
func (a *Audio) Played(name string) int {
	n := 0
	for _, c := range a.Calls {
		if c == "play-sound "+name {
			n++
		}
	}
	return n
}

func (a *Audio) Loaded(name string) bool {
	return slices.Contains(a.Calls, "load-sound "+name) || slices.Contains(a.Calls, "load-music "+name)
}
