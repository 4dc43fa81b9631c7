package scene

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/logging"
	"github.com/bloeys/nchess/materials"
	"github.com/bloeys/nchess/meshes"
	"github.com/bloeys/nchess/renderer"
)

// PieceID indexes the piece arena owned by Scene
type PieceID int

const NoPiece PieceID = -1

// DrawContext is the per-frame state every draw needs
type DrawContext struct {
	Rend        renderer.Render
	Mat         *materials.Material
	ViewMat     *gglm.Mat4
	ProjViewMat *gglm.Mat4
}

// Piece is a placeable chess piece. Mesh and Tex are read-only copies of registry handles.
// The zero value is inert: not alive and on no team.
type Piece struct {
	Key       assets.AssetKey
	Mesh      meshes.Mesh
	Tex       assets.Texture
	Pos       gglm.Vec3
	Transform gglm.TrMat
	Alive     bool

	warnedInvalid bool
}

// Place moves the piece to pos and rebuilds its transform
func (p *Piece) Place(pos gglm.Vec3) {
	p.Pos = pos
	p.Transform = gglm.NewTrMatWithPos(pos.X(), pos.Y(), pos.Z())
}

func (p *Piece) Capture() {
	p.Alive = false
}

func (p *Piece) Render(ctx *DrawContext) {

	if !p.Alive {
		return
	}

	if !p.Mesh.IsValid() || !p.Tex.IsValid() {

		if !p.warnedInvalid {
			logging.WarnLog.Printf("Skipping draw of piece '%s' because its mesh or texture failed to load\n", p.Key)
			p.warnedInvalid = true
		}

		return
	}

	ctx.Rend.DrawMesh(&p.Mesh, &p.Tex, &p.Transform, ctx.ViewMat, ctx.ProjViewMat, ctx.Mat)
}

func NewPiece(key assets.AssetKey, mesh meshes.Mesh, tex assets.Texture) Piece {
	return Piece{
		Key:       key,
		Mesh:      mesh,
		Tex:       tex,
		Transform: gglm.NewTrMatId(),
		Alive:     true,
	}
}
