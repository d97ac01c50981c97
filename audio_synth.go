package letterbox

import (
	"math"
	"math/rand"
)

const explosionSeconds = 0.35

// SynthesizeExplosion renders a short mono noise burst: low-passed white
// noise under a fast exponential decay, peaking near 80% of full scale.
// The output is deterministic.
func SynthesizeExplosion(sampleRate int) []int16 {
	if sampleRate <= 0 {
		return nil
	}
	n := int(float64(sampleRate) * explosionSeconds)
	out := make([]int16, n)
	rng := rand.New(rand.NewSource(7))

	// one-pole low pass around 1.2 kHz
	alpha := 1 - math.Exp(-2*math.Pi*1200/float64(sampleRate))
	var lp float64
	for i := range out {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-t * 12)
		if i < sampleRate/200 {
			env *= float64(i) / float64(sampleRate/200)
		}
		lp += alpha * (rng.Float64()*2 - 1 - lp)
		out[i] = int16(math.Max(-1, math.Min(1, lp*env*2.4)) * 0.8 * math.MaxInt16)
	}
	return out
}
