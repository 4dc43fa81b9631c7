package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvgFPS(t *testing.T) {

	Init()
	frameTimeCount = 0
	frameTimeIndex = 0
	assert.Equal(t, float32(0), GetAvgFPS())

	frameEnded(10 * time.Millisecond)
	frameEnded(30 * time.Millisecond)

	assert.InDelta(t, 0.03, DT(), 1e-6)
	assert.InDelta(t, 50, GetAvgFPS(), 1e-3)

	// Old frames fall out of the window
	for i := 0; i < avgFrameCount; i++ {
		frameEnded(20 * time.Millisecond)
	}
	assert.InDelta(t, 50, GetAvgFPS(), 1e-3)
	assert.Equal(t, avgFrameCount, frameTimeCount)
}
