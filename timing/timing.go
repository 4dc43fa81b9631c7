package timing

import "time"

// Number of frames averaged by GetAvgFPS
const avgFrameCount = 60

var (
	startTime      time.Time
	frameStartTime time.Time
	dt             float32

	frameTimes     [avgFrameCount]float32
	frameTimeIndex int
	frameTimeCount int
)

func Init() {
	startTime = time.Now()
	frameStartTime = startTime
	dt = 0.01
}

func FrameStarted() {
	frameStartTime = time.Now()
}

func FrameEnded() {
	frameEnded(time.Since(frameStartTime))
}

func frameEnded(frameTime time.Duration) {

	dt = float32(frameTime.Seconds())

	frameTimes[frameTimeIndex] = dt
	frameTimeIndex = (frameTimeIndex + 1) % avgFrameCount
	frameTimeCount = min(frameTimeCount+1, avgFrameCount)
}

// DT returns the duration of the last frame in seconds
func DT() float32 {
	return dt
}

// GetAvgFPS returns the frame rate averaged over the last few frames
func GetAvgFPS() float32 {

	if frameTimeCount == 0 {
		return 0
	}

	var sum float32
	for i := 0; i < frameTimeCount; i++ {
		sum += frameTimes[i]
	}

	if sum == 0 {
		return 0
	}

	return float32(frameTimeCount) / sum
}

// ElapsedTime returns seconds since Init
func ElapsedTime() float64 {
	return time.Since(startTime).Seconds()
}
