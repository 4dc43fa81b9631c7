package scene

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/logging"
	"github.com/bloeys/nchess/meshes"
)

const BoardSize = 8

// Center of a1. Squares are one unit apart, files grow along +X and ranks along -Z.
const (
	boardOriginX float32 = -3.5
	boardOriginZ float32 = 3.5
)

type Square struct {
	Notation string
	Pos      gglm.Vec3
	// Non-owning index into the scene's piece arena, NoPiece when empty
	Occupant PieceID
}

// Board is the 8x8 grid of squares, indexed [rank][file] with rank 0 being rank 1 and file 0 being 'a'.
// It records occupancy only, pieces belong to the Scene.
type Board struct {
	Squares [BoardSize][BoardSize]Square

	Mesh      meshes.Mesh
	Tex       assets.Texture
	Transform gglm.TrMat

	gridInited bool
	isSetUp    bool
	warnedDraw bool
}

// InitGrid sets every square's notation and position. The first call also empties every square,
// later calls leave occupancy alone.
func (b *Board) InitGrid() {

	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {

			sq := &b.Squares[rank][file]
			sq.Notation = SquareNotation(rank, file)
			sq.Pos = SquarePos(rank, file)

			if !b.gridInited {
				sq.Occupant = NoPiece
			}
		}
	}

	if !b.gridInited {
		b.Transform = gglm.NewTrMatId()
	}

	b.gridInited = true
}

func (b *Board) PlacePiece(rank, file int, id PieceID) error {

	if !inBounds(rank, file) {
		return fmt.Errorf("square (rank=%d, file=%d) is off the board", rank, file)
	}

	b.Squares[rank][file].Occupant = id
	return nil
}

func (b *Board) ClearSquare(rank, file int) {

	if !inBounds(rank, file) {
		return
	}

	b.Squares[rank][file].Occupant = NoPiece
}

func (b *Board) IsOccupied(rank, file int) bool {
	return b.Occupant(rank, file) != NoPiece
}

func (b *Board) Occupant(rank, file int) PieceID {

	if !inBounds(rank, file) {
		return NoPiece
	}

	return b.Squares[rank][file].Occupant
}

// RenderOccupant draws the piece on the square, if any
func (b *Board) RenderOccupant(rank, file int, pieces []Piece, ctx *DrawContext) {

	id := b.Occupant(rank, file)
	if id == NoPiece {
		return
	}

	if int(id) < 0 || int(id) >= len(pieces) {
		logging.ErrLog.Printf("Square '%s' holds unknown piece id %d\n", b.Squares[rank][file].Notation, id)
		return
	}

	pieces[id].Render(ctx)
}

// Render draws the board mesh itself
func (b *Board) Render(ctx *DrawContext) {

	if !b.Mesh.IsValid() || !b.Tex.IsValid() {

		if !b.warnedDraw {
			logging.WarnLog.Println("Skipping draw of the board because its mesh or texture failed to load")
			b.warnedDraw = true
		}

		return
	}

	ctx.Rend.DrawMesh(&b.Mesh, &b.Tex, &b.Transform, ctx.ViewMat, ctx.ProjViewMat, ctx.Mat)
}

func (b *Board) SquareAt(notation string) (*Square, error) {

	rank, file, err := ParseNotation(notation)
	if err != nil {
		return nil, err
	}

	return &b.Squares[rank][file], nil
}

func (b *Board) IsSetUp() bool {
	return b.isSetUp
}

func (b *Board) MarkSetUp() {
	b.isSetUp = true
}

func SquareNotation(rank, file int) string {
	return string([]byte{byte('a' + file), byte('1' + rank)})
}

func SquarePos(rank, file int) gglm.Vec3 {
	return gglm.NewVec3(boardOriginX+float32(file), 0, boardOriginZ-float32(rank))
}

// ParseNotation turns a square name like "e4" into (rank, file) indices
func ParseNotation(notation string) (rank, file int, err error) {

	if len(notation) != 2 {
		return 0, 0, fmt.Errorf("invalid square '%s'", notation)
	}

	file = int(notation[0]) - 'a'
	rank = int(notation[1]) - '1'
	if !inBounds(rank, file) {
		return 0, 0, fmt.Errorf("invalid square '%s'", notation)
	}

	return rank, file, nil
}

func inBounds(rank, file int) bool {
	return rank >= 0 && rank < BoardSize && file >= 0 && file < BoardSize
}
