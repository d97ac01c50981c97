package letterbox

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeExplosion(t *testing.T) {
	rate := DefaultSampleRate
	pcm := SynthesizeExplosion(rate)
	require.Len(t, pcm, int(float64(rate)*explosionSeconds))

	assert.Equal(t, pcm, SynthesizeExplosion(rate))
	assert.Zero(t, pcm[0])

	peak := func(s []int16) int {
		m := 0
		for _, v := range s {
			m = max(m, int(math.Abs(float64(v))))
		}
		return m
	}
	head := peak(pcm[:len(pcm)/4])
	tail := peak(pcm[len(pcm)*3/4:])
	assert.Greater(t, head, 1000)
	assert.Less(t, tail, head)
	limit := 0.8 * math.MaxInt16
	assert.LessOrEqual(t, head, int(limit)+1)
}

func TestSynthesizeExplosion_BadRate(t *testing.T) {
	assert.Nil(t, SynthesizeExplosion(0))
	assert.Nil(t, SynthesizeExplosion(-1))
}
