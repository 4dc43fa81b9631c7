package engine

import (
	"github.com/bloeys/nchess/timing"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	isRunning = false
)

type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run calls Init then loops Update, Render and FrameEnd until Quit is called, then calls DeInit.
// It must be called from the goroutine that called Init.
func Run(g Game, w *Window) {

	isRunning = true

	// Resize once so the viewport matches drawable size on high dpi displays
	w.handleWindowResize()
	g.Init()

	for isRunning {

		timing.FrameStarted()
		w.handleInputs()

		g.Update()

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
		g.Render()

		w.SDLWin.GLSwap()

		g.FrameEnd()
		w.Rend.FrameEnd()
		timing.FrameEnded()
	}

	g.DeInit()
}

func Quit() {
	isRunning = false
}
