package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(kc sdl.Keycode, pressed bool) *sdl.KeyboardEvent {

	e := &sdl.KeyboardEvent{Type: sdl.KEYUP, State: sdl.RELEASED, Keysym: sdl.Keysym{Sym: kc}}
	if pressed {
		e.Type = sdl.KEYDOWN
		e.State = sdl.PRESSED
	}

	return e
}

func TestKeyClickedOnlyForOneFrame(t *testing.T) {

	ClearState()
	EventLoopStart()

	HandleKeyboardEvent(keyEvent(sdl.K_w, true))
	assert.True(t, KeyClicked(sdl.K_w))
	assert.True(t, KeyDown(sdl.K_w))

	EventLoopStart()
	assert.False(t, KeyClicked(sdl.K_w))
	assert.True(t, KeyDown(sdl.K_w))

	HandleKeyboardEvent(keyEvent(sdl.K_w, false))
	assert.True(t, KeyReleased(sdl.K_w))
	assert.True(t, KeyUp(sdl.K_w))
	assert.False(t, KeyDown(sdl.K_w))
}

func TestKeyAxis(t *testing.T) {

	ClearState()
	EventLoopStart()
	assert.Equal(t, float32(0), KeyAxis(sdl.K_a, sdl.K_d))

	HandleKeyboardEvent(keyEvent(sdl.K_a, true))
	assert.Equal(t, float32(-1), KeyAxis(sdl.K_a, sdl.K_d))

	HandleKeyboardEvent(keyEvent(sdl.K_d, true))
	assert.Equal(t, float32(0), KeyAxis(sdl.K_a, sdl.K_d))

	HandleKeyboardEvent(keyEvent(sdl.K_a, false))
	assert.Equal(t, float32(1), KeyAxis(sdl.K_a, sdl.K_d))
}

func TestMouseWheelAndQuit(t *testing.T) {

	ClearState()
	EventLoopStart()

	HandleMouseWheelEvent(&sdl.MouseWheelEvent{Y: -3})
	assert.Equal(t, int32(-1), GetMouseWheelYNorm())

	HandleQuitEvent(&sdl.QuitEvent{})
	assert.True(t, IsQuitClicked())

	EventLoopStart()
	assert.Equal(t, int32(0), GetMouseWheelYNorm())
	assert.False(t, IsQuitClicked())
}
