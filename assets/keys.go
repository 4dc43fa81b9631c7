package assets

import (
	"fmt"
	"strings"
)

// MeshKey identifies a geometry asset. Geometry is shared between teams.
type MeshKey uint8

const (
	MeshKey_Pawn MeshKey = iota
	MeshKey_Rook
	MeshKey_Knight
	MeshKey_Bishop
	MeshKey_Queen
	MeshKey_King
	MeshKey_Board

	MeshKey_Count
)

// PieceMeshKeys lists the meshes of the six piece types, in MeshKey order.
var PieceMeshKeys = [...]MeshKey{
	MeshKey_Pawn,
	MeshKey_Rook,
	MeshKey_Knight,
	MeshKey_Bishop,
	MeshKey_Queen,
	MeshKey_King,
}

func (k MeshKey) IsPiece() bool {
	return k < MeshKey_Board
}

func (k MeshKey) String() string {

	switch k {
	case MeshKey_Pawn:
		return "pawn"
	case MeshKey_Rook:
		return "rook"
	case MeshKey_Knight:
		return "knight"
	case MeshKey_Bishop:
		return "bishop"
	case MeshKey_Queen:
		return "queen"
	case MeshKey_King:
		return "king"
	case MeshKey_Board:
		return "board"
	default:
		return fmt.Sprintf("MeshKey(%d)", k)
	}
}

func ParseMeshKey(s string) (MeshKey, error) {

	s = strings.ToLower(strings.TrimSpace(s))
	for k := MeshKey(0); k < MeshKey_Count; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown mesh key '%s'", s)
}

// Team is the side a piece belongs to. Non-piece objects use Team_None, which is also the zero value.
type Team uint8

const (
	Team_None Team = iota
	Team_White
	Team_Black
)

func (t Team) String() string {

	switch t {
	case Team_White:
		return "white"
	case Team_Black:
		return "black"
	case Team_None:
		return "none"
	default:
		return fmt.Sprintf("Team(%d)", t)
	}
}

// TextureKey identifies a material asset. Unlike geometry, textures differ per team.
type TextureKey uint8

const (
	TextureKey_WhitePawn TextureKey = iota
	TextureKey_WhiteRook
	TextureKey_WhiteKnight
	TextureKey_WhiteBishop
	TextureKey_WhiteQueen
	TextureKey_WhiteKing

	TextureKey_BlackPawn
	TextureKey_BlackRook
	TextureKey_BlackKnight
	TextureKey_BlackBishop
	TextureKey_BlackQueen
	TextureKey_BlackKing

	TextureKey_Board

	TextureKey_Count
)

func (k TextureKey) String() string {

	if k >= TextureKey_Count {
		return fmt.Sprintf("TextureKey(%d)", k)
	}

	if k == TextureKey_Board {
		return "board"
	}

	team := Team_White
	if k >= TextureKey_BlackPawn {
		team = Team_Black
	}

	return team.String() + "_" + PieceMeshKeys[k%TextureKey_BlackPawn].String()
}

func ParseTextureKey(s string) (TextureKey, error) {

	s = strings.ToLower(strings.TrimSpace(s))
	for k := TextureKey(0); k < TextureKey_Count; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown texture key '%s'", s)
}

// AssetKey is the single lookup key for everything drawable: a geometry plus the team
// that selects its material.
type AssetKey struct {
	Mesh MeshKey
	Team Team
}

// TextureKey resolves the material of the asset. The board only has a team-less texture
// and pieces only have team textures, anything else is an ErrLookup.
func (ak AssetKey) TextureKey() (TextureKey, error) {

	if ak.Mesh == MeshKey_Board {

		if ak.Team != Team_None {
			return 0, fmt.Errorf("%w: board has no %s texture", ErrLookup, ak.Team)
		}

		return TextureKey_Board, nil
	}

	if !ak.Mesh.IsPiece() {
		return 0, fmt.Errorf("%w: unknown mesh %s", ErrLookup, ak.Mesh)
	}

	switch ak.Team {
	case Team_White:
		return TextureKey_WhitePawn + TextureKey(ak.Mesh), nil
	case Team_Black:
		return TextureKey_BlackPawn + TextureKey(ak.Mesh), nil
	default:
		return 0, fmt.Errorf("%w: %s needs a team to select its texture, got %s", ErrLookup, ak.Mesh, ak.Team)
	}
}

func (ak AssetKey) String() string {

	if ak.Team == Team_None {
		return ak.Mesh.String()
	}

	return ak.Team.String() + "_" + ak.Mesh.String()
}
