package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/camera"
	"github.com/bloeys/nchess/config"
	"github.com/bloeys/nchess/engine"
	"github.com/bloeys/nchess/input"
	"github.com/bloeys/nchess/logging"
	"github.com/bloeys/nchess/materials"
	"github.com/bloeys/nchess/renderer/rend3dgl"
	"github.com/bloeys/nchess/scene"
	"github.com/bloeys/nchess/timing"
	"github.com/veandco/go-sdl2/sdl"
)

const defaultConfigPath = "./res/nchess.toml"

type Game struct {
	Win  *engine.Window
	Rend *rend3dgl.Rend3DGL
	Cfg  *config.Config

	Scene    *scene.Scene
	ChessMat materials.Material
	Cam      camera.Orbit

	takeScreenshot bool
}

func main() {

	cfgPath := defaultConfigPath
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logging.WarnLog.Printf("Using default config because loading '%s' failed. Err: %v\n", cfgPath, err)
	}

	//Init engine
	err = engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init engine. Err:", err)
	}

	//Create window
	rend := rend3dgl.NewRend3DGL()
	dpiScaling := getDpiScaling(cfg.Window.Width, cfg.Window.Height)
	window, err := engine.CreateOpenGLWindowCentered(
		cfg.Window.Title,
		int32(float32(cfg.Window.Width)*dpiScaling),
		int32(float32(cfg.Window.Height)*dpiScaling),
		engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI,
		rend,
	)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}
	defer window.Destroy()

	rend.MarkContextCurrent()
	engine.SetMSAA(cfg.Window.MSAA)
	engine.SetVSync(cfg.Window.VSync)

	game := &Game{
		Win:  window,
		Rend: rend,
		Cfg:  &cfg,
	}
	window.EventCallbacks = append(window.EventCallbacks, game.handleWindowEvents)

	engine.Run(game, window)
}

func (g *Game) handleWindowEvents(e sdl.Event) {

	switch e := e.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			g.Cam.SetAspectRatio(g.Win.AspectRatio())
			g.Cam.Update()
		}
	}
}

func getDpiScaling(unscaledWindowWidth, unscaledWindowHeight int32) float32 {

	// The no-scaling DPI on different platforms (e.g. when scale=100% on windows)
	var defaultDpi float32 = 96
	if runtime.GOOS == "darwin" {
		defaultDpi = 72
	}

	// Current DPI of the monitor
	_, dpiHorizontal, _, err := sdl.GetDisplayDPI(0)
	if err != nil {
		dpiHorizontal = defaultDpi
		logging.ErrLog.Printf("Failed to get DPI with error '%s'. Using default DPI of '%f'\n", err.Error(), defaultDpi)
	}

	// Scaling factor (e.g. will be 1.25 for 125% scaling on windows)
	dpiScaling := dpiHorizontal / defaultDpi

	logging.InfoLog.Printf(
		"DPI scaling=%f; unscaled window size=(%d, %d); scaled window size=(%d, %d)\n",
		dpiScaling,
		unscaledWindowWidth, unscaledWindowHeight,
		int32(float32(unscaledWindowWidth)*dpiScaling), int32(float32(unscaledWindowHeight)*dpiScaling),
	)

	return dpiScaling
}

func (g *Game) Init() {

	var err error
	g.ChessMat, err = materials.NewMaterial("chess", g.Cfg.Assets.ShaderPath)
	if err != nil {
		logging.ErrLog.Fatalf("Failed to create chess material from '%s'. Err: %v\n", g.Cfg.Assets.ShaderPath, err)
	}

	lp := g.Cfg.Light.Position
	g.ChessMat.LightPos = gglm.NewVec3(lp[0], lp[1], lp[2])

	g.Cam = camera.NewOrbit(&g.Cfg.Camera, g.Win.AspectRatio())

	g.Scene = scene.New(g.Cfg, g.Rend, &assets.AssimpImporter{})
	report := g.Scene.Load()
	if !report.BoardLoaded || !report.PiecesLoaded || !report.TexturesLoaded {
		logging.WarnLog.Printf("Scene partially loaded (board=%v; pieces=%v; textures=%v). Missing assets won't be drawn\n", report.BoardLoaded, report.PiecesLoaded, report.TexturesLoaded)
	}

	if err := g.Scene.SetUpBoard(); err != nil {
		logging.ErrLog.Printf("Failed to set up the board. Err: %v\n", err)
	}
}

func (g *Game) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	dt := timing.DT()
	g.Cam.Step(
		dt,
		input.KeyAxis(sdl.K_a, sdl.K_d),
		input.KeyAxis(sdl.K_s, sdl.K_w),
		input.KeyAxis(sdl.K_UP, sdl.K_DOWN),
	)

	if wheel := input.GetMouseWheelYNorm(); wheel != 0 {
		g.Cam.Zoom(-float32(wheel) * g.Cfg.Camera.RadialSpeed * 0.1)
	}

	g.Cam.Update()

	if input.KeyClicked(sdl.K_F12) {
		g.takeScreenshot = true
	}

	g.Win.SDLWin.SetTitle(fmt.Sprintf("%s (%.0f FPS)", g.Cfg.Window.Title, timing.GetAvgFPS()))
}

func (g *Game) Render() {

	g.Scene.Render(&g.ChessMat, &g.Cam)

	if !g.takeScreenshot {
		return
	}

	g.takeScreenshot = false
	path, err := g.Win.Screenshot(g.Cfg.Assets.ScreenshotDir)
	if err != nil {
		logging.ErrLog.Printf("Failed to save screenshot. Err: %v\n", err)
		return
	}

	logging.InfoLog.Printf("Saved screenshot to '%s'\n", path)
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {
	g.Scene.Release()
	g.ChessMat.Delete()
}
