package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bloeys/nchess/assets"
	"github.com/pelletier/go-toml/v2"
)

// StandardStartFEN is the normal chess starting position
const StandardStartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Config struct {
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Camera CameraConfig `toml:"camera"`
	Light  LightConfig  `toml:"light"`
	Board  BoardConfig  `toml:"board"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int32  `toml:"width"`
	Height int32  `toml:"height"`
	VSync  bool   `toml:"vsync"`
	MSAA   bool   `toml:"msaa"`
}

type AssetsConfig struct {
	BoardMeshPath     string `toml:"board_mesh_path"`
	BoardSubMeshIndex int    `toml:"board_sub_mesh_index"`
	PiecesMeshPath    string `toml:"pieces_mesh_path"`
	ShaderPath        string `toml:"shader_path"`
	ScreenshotDir     string `toml:"screenshot_dir"`

	// Upper bound on texture decode goroutines. Zero means one per CPU
	DecodeWorkers int `toml:"decode_workers"`

	// Piece mesh name (e.g. "pawn") to its sub-mesh index in the pieces file
	PieceMeshIndices map[string]int `toml:"piece_mesh_indices"`

	// Texture name (e.g. "white_pawn" or "board") to file path
	Textures map[string]string `toml:"textures"`
}

type CameraConfig struct {
	Radius       float32 `toml:"radius"`
	ElevationDeg float32 `toml:"elevation_deg"`
	AzimuthDeg   float32 `toml:"azimuth_deg"`
	FovDeg       float32 `toml:"fov_deg"`
	NearClip     float32 `toml:"near_clip"`
	FarClip      float32 `toml:"far_clip"`

	// Radians per second
	AngularSpeed float32 `toml:"angular_speed"`
	// Units per second
	RadialSpeed float32 `toml:"radial_speed"`
	MinRadius   float32 `toml:"min_radius"`
}

type LightConfig struct {
	Position [3]float32 `toml:"position"`
}

type BoardConfig struct {
	StartFEN string `toml:"start_fen"`
}

func Default() Config {

	textures := make(map[string]string, assets.TextureKey_Count)
	for k := assets.TextureKey(0); k < assets.TextureKey_Count; k++ {
		textures[k.String()] = filepath.Join("res", "textures", k.String()+".bmp")
	}

	return Config{
		Window: WindowConfig{
			Title:  "nChess",
			Width:  1024,
			Height: 768,
			VSync:  true,
			MSAA:   true,
		},
		Assets: AssetsConfig{
			BoardMeshPath:     filepath.Join("res", "models", "chess_board.obj"),
			BoardSubMeshIndex: 0,
			PiecesMeshPath:    filepath.Join("res", "models", "chess_pieces.obj"),
			ShaderPath:        filepath.Join("res", "shaders", "chess.glsl"),
			ScreenshotDir:     "screenshots",
			DecodeWorkers:     0,
			PieceMeshIndices: map[string]int{
				assets.MeshKey_Pawn.String():   5,
				assets.MeshKey_Knight.String(): 3,
				assets.MeshKey_Bishop.String(): 1,
				assets.MeshKey_Rook.String():   11,
				assets.MeshKey_Queen.String():  9,
				assets.MeshKey_King.String():   7,
			},
			Textures: textures,
		},
		Camera: CameraConfig{
			Radius:       20,
			ElevationDeg: 45,
			AzimuthDeg:   90,
			FovDeg:       45,
			NearClip:     0.1,
			FarClip:      100,
			AngularSpeed: 1,
			RadialSpeed:  5,
			MinRadius:    0.1,
		},
		Light: LightConfig{
			Position: [3]float32{0, 15, 0},
		},
		Board: BoardConfig{
			StartFEN: StandardStartFEN,
		},
	}
}

// Load reads a TOML file on top of the defaults, so the file only needs the values it changes.
// On any error the defaults are returned alongside it.
func Load(path string) (Config, error) {

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	loaded := Default()
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := loaded.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	return loaded, nil
}

func (c *Config) Validate() error {

	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	if c.Assets.BoardSubMeshIndex < 0 {
		errs = append(errs, fmt.Errorf("board sub-mesh index can't be negative, got %d", c.Assets.BoardSubMeshIndex))
	}

	if c.Assets.DecodeWorkers < 0 {
		errs = append(errs, fmt.Errorf("decode workers can't be negative, got %d", c.Assets.DecodeWorkers))
	}

	for name, idx := range c.Assets.PieceMeshIndices {

		mk, err := assets.ParseMeshKey(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if !mk.IsPiece() {
			errs = append(errs, fmt.Errorf("'%s' is not a piece mesh", name))
		}

		if idx < 0 {
			errs = append(errs, fmt.Errorf("sub-mesh index of '%s' can't be negative, got %d", name, idx))
		}
	}

	for name := range c.Assets.Textures {
		if _, err := assets.ParseTextureKey(name); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Camera.MinRadius <= 0 || c.Camera.Radius < c.Camera.MinRadius {
		errs = append(errs, fmt.Errorf("camera radius %f must be at least the min radius %f, which must be positive", c.Camera.Radius, c.Camera.MinRadius))
	}

	if c.Camera.NearClip <= 0 || c.Camera.FarClip <= c.Camera.NearClip {
		errs = append(errs, fmt.Errorf("camera clip planes must satisfy 0 < near < far, got near=%f far=%f", c.Camera.NearClip, c.Camera.FarClip))
	}

	return errors.Join(errs...)
}

// PieceSubMeshIndices returns the sub-mesh index of every piece mesh that has one configured
func (c *Config) PieceSubMeshIndices() map[assets.MeshKey]int {

	out := make(map[assets.MeshKey]int, len(c.Assets.PieceMeshIndices))
	for name, idx := range c.Assets.PieceMeshIndices {

		mk, err := assets.ParseMeshKey(name)
		if err != nil || !mk.IsPiece() {
			continue
		}

		out[mk] = idx
	}

	return out
}

// TexturePaths returns the configured path of every known texture key
func (c *Config) TexturePaths() map[assets.TextureKey]string {

	out := make(map[assets.TextureKey]string, len(c.Assets.Textures))
	for name, p := range c.Assets.Textures {

		tk, err := assets.ParseTextureKey(name)
		if err != nil {
			continue
		}

		out[tk] = p
	}

	return out
}

func (c *Config) DecodeWorkerCount() int {

	if c.Assets.DecodeWorkers > 0 {
		return c.Assets.DecodeWorkers
	}

	return runtime.NumCPU()
}
