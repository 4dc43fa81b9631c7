// The input package tracks keyboard, mouse and window-close state fed from SDL events.
//
// State is per frame: call EventLoopStart before pumping the frame's events, then query
// with KeyDown (held), KeyClicked (pressed this frame) and friends.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type keyState struct {
	Key                 sdl.Keycode
	State               int
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn   int
	State int

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseWheelState struct {
	XDelta int32
	YDelta int32
}

var (
	mouseWheel  = mouseWheelState{}
	mouseBtnMap = make(map[int]mouseBtnState)
	keyMap      = make(map[sdl.Keycode]keyState)

	isQuitRequested bool
)

func EventLoopStart() {

	// Update per-frame state
	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	for k, v := range mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		mouseBtnMap[k] = v
	}

	mouseWheel.XDelta = 0
	mouseWheel.YDelta = 0

	isQuitRequested = false
}

// ClearState forgets everything, used when the window loses focus so held keys don't stay held
func ClearState() {
	clear(keyMap)
	clear(mouseBtnMap)
	mouseWheel = mouseWheelState{}
}

func HandleQuitEvent(e *sdl.QuitEvent) {
	isQuitRequested = true
}

func IsQuitClicked() bool {
	return isQuitRequested
}

func HandleKeyboardEvent(e *sdl.KeyboardEvent) {

	ks, ok := keyMap[e.Keysym.Sym]
	if !ok {
		ks = keyState{Key: e.Keysym.Sym}
	}

	ks.State = int(e.State)
	ks.IsPressedThisFrame = e.State == sdl.PRESSED && e.Repeat == 0
	ks.IsReleasedThisFrame = e.State == sdl.RELEASED && e.Repeat == 0

	keyMap[ks.Key] = ks
}

func HandleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	mb, ok := mouseBtnMap[int(e.Button)]
	if !ok {
		mb = mouseBtnState{Btn: int(e.Button)}
	}

	mb.State = int(e.State)
	mb.IsPressedThisFrame = e.State == sdl.PRESSED
	mb.IsReleasedThisFrame = e.State == sdl.RELEASED

	mouseBtnMap[int(e.Button)] = mb
}

func HandleMouseWheelEvent(e *sdl.MouseWheelEvent) {
	mouseWheel.XDelta += e.X
	mouseWheel.YDelta += e.Y
}

// GetMouseWheelYNorm returns 1 if the wheel was scrolled up this frame, -1 if down, zero otherwise
func GetMouseWheelYNorm() int32 {

	if mouseWheel.YDelta > 0 {
		return 1
	} else if mouseWheel.YDelta < 0 {
		return -1
	}

	return 0
}

func KeyClicked(kc sdl.Keycode) bool {
	return keyMap[kc].IsPressedThisFrame
}

func KeyReleased(kc sdl.Keycode) bool {
	return keyMap[kc].IsReleasedThisFrame
}

func KeyDown(kc sdl.Keycode) bool {
	return keyMap[kc].State == sdl.PRESSED
}

func KeyUp(kc sdl.Keycode) bool {
	return keyMap[kc].State == sdl.RELEASED
}

// KeyAxis returns -1 while only neg is held, 1 while only pos is held and zero otherwise
func KeyAxis(neg, pos sdl.Keycode) float32 {

	var v float32
	if KeyDown(neg) {
		v -= 1
	}

	if KeyDown(pos) {
		v += 1
	}

	return v
}

func MouseClicked(mb int) bool {
	return mouseBtnMap[mb].IsPressedThisFrame
}

func MouseDown(mb int) bool {
	return mouseBtnMap[mb].State == sdl.PRESSED
}
