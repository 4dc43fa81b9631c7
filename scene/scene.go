// Package scene owns every GPU resource of the chess scene and composes the per-frame board pass.
//
// A Scene goes through Uninitialized -> Loading -> Ready exactly once. Loading imports the
// board and piece meshes, centers them on the XZ origin, uploads them, then decodes all textures
// in parallel and uploads them serially. A failed asset is logged and left out, lookups for it
// return assets.ErrLookup and draws that need it are skipped.
//
// Every method must be called from the goroutine that owns the GL context.
package scene

import (
	"errors"
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/config"
	"github.com/bloeys/nchess/logging"
	"github.com/bloeys/nchess/materials"
	"github.com/bloeys/nchess/meshes"
	"github.com/bloeys/nchess/renderer"
	"github.com/notnil/chess"
)

type State uint8

const (
	State_Uninitialized State = iota
	State_Loading
	State_Ready
)

func (s State) String() string {

	switch s {
	case State_Uninitialized:
		return "uninitialized"
	case State_Loading:
		return "loading"
	case State_Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// LoadReport tells the caller which parts of the scene are usable
type LoadReport struct {
	BoardLoaded    bool
	PiecesLoaded   bool
	TexturesLoaded bool
	TextureErrors  map[assets.TextureKey]error
}

// Viewer is anything that provides the camera matrices of a frame
type Viewer interface {
	ViewMat() *gglm.Mat4
	ProjViewMat() gglm.Mat4
}

type Scene struct {
	Buffers  *BufferRegistry
	Textures *TextureRegistry
	Board    Board
	// Arena of every piece ever spawned. Squares refer to pieces by index
	Pieces []Piece

	cfg      *config.Config
	rend     renderer.Render
	importer assets.MeshImporter

	state  State
	report LoadReport
}

func (s *Scene) State() State {
	return s.state
}

// Load loads every asset. Only the first call does any work, later calls return the first report.
func (s *Scene) Load() LoadReport {

	if s.state != State_Uninitialized {
		return s.report
	}

	s.state = State_Loading
	logging.InfoLog.Println("Loading meshes and GPU buffers...")

	if err := s.loadBoard(); err != nil {
		logging.ErrLog.Printf("Error while loading the board mesh from '%s'. Err: %v\n", s.cfg.Assets.BoardMeshPath, err)
	} else {
		s.report.BoardLoaded = true
	}

	if err := s.loadPieces(); err != nil {
		logging.ErrLog.Printf("Error while loading the piece meshes from '%s'. Err: %v\n", s.cfg.Assets.PiecesMeshPath, err)
	} else {
		s.report.PiecesLoaded = true
	}

	logging.InfoLog.Println("Loading textures...")
	s.report.TextureErrors = s.loadTextures()
	s.report.TexturesLoaded = len(s.report.TextureErrors) == 0

	s.Board.InitGrid()
	s.Board.Mesh, _ = s.GetBufferHandle(assets.MeshKey_Board)
	s.Board.Tex, _ = s.GetTextureHandle(assets.MeshKey_Board, assets.Team_None)

	s.state = State_Ready
	logging.InfoLog.Printf("Scene loaded (board=%v; pieces=%v; textures=%d/%d)\n", s.report.BoardLoaded, s.report.PiecesLoaded, s.Textures.Len(), assets.TextureKey_Count)

	return s.report
}

func (s *Scene) loadBoard() error {

	raws, err := s.importer.Import(s.cfg.Assets.BoardMeshPath, s.cfg.Assets.BoardSubMeshIndex)
	if err != nil {
		return err
	}

	if len(raws) != 1 {
		return fmt.Errorf("%w: expected 1 board mesh but got %d", assets.ErrImport, len(raws))
	}

	raws[0].CenterXZ()
	_, err = s.Buffers.Create(assets.MeshKey_Board, &raws[0])
	return err
}

func (s *Scene) loadPieces() error {

	subMeshIndices := s.cfg.PieceSubMeshIndices()

	indices := make([]int, 0, len(assets.PieceMeshKeys))
	for _, mk := range assets.PieceMeshKeys {

		idx, ok := subMeshIndices[mk]
		if !ok {
			return fmt.Errorf("%w: no sub-mesh index configured for '%s'", assets.ErrImport, mk)
		}

		indices = append(indices, idx)
	}

	raws, err := s.importer.Import(s.cfg.Assets.PiecesMeshPath, indices...)
	if err != nil {
		return err
	}

	if len(raws) != len(assets.PieceMeshKeys) {
		return fmt.Errorf("%w: expected %d piece meshes but got %d", assets.ErrImport, len(assets.PieceMeshKeys), len(raws))
	}

	var errs []error
	for i, mk := range assets.PieceMeshKeys {

		raws[i].CenterXZ()
		if _, err := s.Buffers.Create(mk, &raws[i]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", mk, err))
		}
	}

	return errors.Join(errs...)
}

func (s *Scene) loadTextures() map[assets.TextureKey]error {

	paths := s.cfg.TexturePaths()
	errs := s.Textures.LoadAll(paths, s.cfg.DecodeWorkerCount())

	for k := assets.TextureKey(0); k < assets.TextureKey_Count; k++ {

		if _, ok := paths[k]; ok {
			continue
		}

		errs[k] = fmt.Errorf("%w: no path configured for texture '%s'", assets.ErrLookup, k)
		logging.ErrLog.Println(errs[k])
	}

	return errs
}

// SetUpBoard spawns and places the pieces of the configured start position. It only does
// anything the first time it is called after a successful Load.
func (s *Scene) SetUpBoard() error {

	if s.Board.IsSetUp() {
		return nil
	}

	if s.state != State_Ready {
		return fmt.Errorf("can't set up the board of a scene that is %s", s.state)
	}

	fen, err := chess.FEN(s.cfg.Board.StartFEN)
	if err != nil {
		return fmt.Errorf("invalid start position '%s'. Err: %w", s.cfg.Board.StartFEN, err)
	}

	var bySquare [BoardSize * BoardSize]chess.Piece
	for sq, p := range chess.NewGame(fen).Position().Board().SquareMap() {
		bySquare[int(sq)] = p
	}

	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {

			p := bySquare[rank*BoardSize+file]
			if p == chess.NoPiece {
				continue
			}

			key, ok := assetKeyFromChessPiece(p)
			if !ok {
				continue
			}

			id := s.spawnPiece(key)
			s.Pieces[id].Place(s.Board.Squares[rank][file].Pos)
			s.Board.PlacePiece(rank, file, id)
		}
	}

	s.Board.MarkSetUp()
	return nil
}

func (s *Scene) spawnPiece(key assets.AssetKey) PieceID {

	mesh, tex, _ := s.GetHandles(key)

	s.Pieces = append(s.Pieces, NewPiece(key, mesh, tex))
	return PieceID(len(s.Pieces) - 1)
}

// MovePiece moves whatever stands on from to to, capturing what was on to. No chess rules are checked.
func (s *Scene) MovePiece(from, to string) error {

	fromRank, fromFile, err := ParseNotation(from)
	if err != nil {
		return err
	}

	toRank, toFile, err := ParseNotation(to)
	if err != nil {
		return err
	}

	mover := s.Board.Occupant(fromRank, fromFile)
	if mover == NoPiece {
		return fmt.Errorf("no piece on '%s'", from)
	}

	if fromRank == toRank && fromFile == toFile {
		return nil
	}

	if victim := s.Board.Occupant(toRank, toFile); victim != NoPiece {
		s.Pieces[victim].Capture()
	}

	s.Board.ClearSquare(fromRank, fromFile)
	s.Board.PlacePiece(toRank, toFile, mover)
	s.Pieces[mover].Place(s.Board.Squares[toRank][toFile].Pos)

	return nil
}

// Render draws the board, then if it is set up, every occupied square in rank then file order
func (s *Scene) Render(mat *materials.Material, viewer Viewer) {

	projView := viewer.ProjViewMat()
	ctx := DrawContext{
		Rend:        s.rend,
		Mat:         mat,
		ViewMat:     viewer.ViewMat(),
		ProjViewMat: &projView,
	}

	s.Board.Render(&ctx)

	if !s.Board.IsSetUp() {
		return
	}

	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			s.Board.RenderOccupant(rank, file, s.Pieces, &ctx)
		}
	}
}

// GetBufferHandle returns a read-only copy of the mesh handle. Failures are logged and
// return the zero handle along with an assets.ErrLookup.
func (s *Scene) GetBufferHandle(key assets.MeshKey) (meshes.Mesh, error) {

	mesh, err := s.Buffers.Get(key)
	if err != nil {
		logging.ErrLog.Println(err)
		return meshes.Mesh{}, err
	}

	return mesh, nil
}

// GetTextureHandle resolves the texture of a mesh for a team. The board only has a
// team-less texture and pieces only have team textures.
func (s *Scene) GetTextureHandle(mesh assets.MeshKey, team assets.Team) (assets.Texture, error) {

	tk, err := assets.AssetKey{Mesh: mesh, Team: team}.TextureKey()
	if err != nil {
		logging.ErrLog.Println(err)
		return assets.Texture{}, err
	}

	tex, err := s.Textures.Get(tk)
	if err != nil {
		logging.ErrLog.Println(err)
		return assets.Texture{}, err
	}

	return tex, nil
}

func (s *Scene) GetHandles(key assets.AssetKey) (meshes.Mesh, assets.Texture, error) {

	mesh, meshErr := s.GetBufferHandle(key.Mesh)
	tex, texErr := s.GetTextureHandle(key.Mesh, key.Team)

	return mesh, tex, errors.Join(meshErr, texErr)
}

// Release frees every GPU resource. Handles held by the board and pieces become invalid.
func (s *Scene) Release() {

	s.Buffers.ReleaseAll()
	s.Textures.ReleaseAll()

	s.Board.Mesh = meshes.Mesh{}
	s.Board.Tex = assets.Texture{}
	for i := range s.Pieces {
		s.Pieces[i].Mesh = meshes.Mesh{}
		s.Pieces[i].Tex = assets.Texture{}
	}
}

func assetKeyFromChessPiece(p chess.Piece) (assets.AssetKey, bool) {

	key := assets.AssetKey{}
	switch p.Type() {
	case chess.Pawn:
		key.Mesh = assets.MeshKey_Pawn
	case chess.Rook:
		key.Mesh = assets.MeshKey_Rook
	case chess.Knight:
		key.Mesh = assets.MeshKey_Knight
	case chess.Bishop:
		key.Mesh = assets.MeshKey_Bishop
	case chess.Queen:
		key.Mesh = assets.MeshKey_Queen
	case chess.King:
		key.Mesh = assets.MeshKey_King
	default:
		return assets.AssetKey{}, false
	}

	switch p.Color() {
	case chess.White:
		key.Team = assets.Team_White
	case chess.Black:
		key.Team = assets.Team_Black
	default:
		return assets.AssetKey{}, false
	}

	return key, true
}

func New(cfg *config.Config, rend renderer.Render, importer assets.MeshImporter) *Scene {
	return &Scene{
		Buffers:  NewBufferRegistry(rend),
		Textures: NewTextureRegistry(rend),
		Pieces:   make([]Piece, 0, 32),
		cfg:      cfg,
		rend:     rend,
		importer: importer,
	}
}
