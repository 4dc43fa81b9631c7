package scene

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedScene(t *testing.T) (*Scene, *fakeRender) {

	cfg := config.Default()
	s, rend := newTestScene(&cfg, fakeAssets(&cfg))

	report := s.Load()
	require.True(t, report.BoardLoaded)
	require.True(t, report.PiecesLoaded)
	require.True(t, report.TexturesLoaded)
	require.Equal(t, State_Ready, s.State())

	return s, rend
}

func TestLoadCentersMeshesOnOrigin(t *testing.T) {

	s, rend := loadedScene(t)

	assert.Equal(t, int(assets.MeshKey_Count), s.Buffers.Len())
	assert.Equal(t, int(assets.TextureKey_Count), s.Textures.Len())

	board, ok := rend.meshUploads["board"]
	require.True(t, ok)

	// Board quad was authored around (10, 0, 10)
	var sumX, sumZ float32
	for _, p := range board.Positions {
		sumX += p.X()
		sumZ += p.Z()
		assert.Equal(t, float32(0), p.Y())
	}
	assert.InDelta(t, 0, sumX/4, 1e-5)
	assert.InDelta(t, 0, sumZ/4, 1e-5)
	assert.InDelta(t, -1, board.Positions[0].X(), 1e-5)
	assert.InDelta(t, 1, board.Positions[2].Z(), 1e-5)

	for _, mk := range assets.PieceMeshKeys {

		piece, ok := rend.meshUploads[mk.String()]
		require.True(t, ok, mk.String())

		cx, cz := piece.CentroidXZ()
		assert.InDelta(t, 0, cx, 1e-5, mk.String())
		assert.InDelta(t, 0, cz, 1e-5, mk.String())
		assert.Equal(t, float32(0.5), piece.Positions[0].Y())
	}

	assert.True(t, s.Board.Mesh.IsValid())
	assert.True(t, s.Board.Tex.IsValid())
}

func TestLoadRunsOnce(t *testing.T) {

	cfg := config.Default()
	importer := fakeAssets(&cfg)
	s, rend := newTestScene(&cfg, importer)

	first := s.Load()
	second := s.Load()

	assert.Equal(t, first, second)
	assert.Equal(t, 2, importer.calls)
	assert.Equal(t, int(assets.TextureKey_Count), rend.texUploads)
}

func TestLoadDegradesOnMissingAssets(t *testing.T) {

	cfg := config.Default()
	s, rend := newTestScene(&cfg, &fakeImporter{}, cfg.Assets.Textures["board"], cfg.Assets.Textures["black_queen"])

	report := s.Load()
	assert.False(t, report.BoardLoaded)
	assert.False(t, report.PiecesLoaded)
	assert.False(t, report.TexturesLoaded)
	assert.Len(t, report.TextureErrors, 2)
	assert.ErrorIs(t, report.TextureErrors[assets.TextureKey_Board], assets.ErrDecode)
	assert.Equal(t, State_Ready, s.State())

	_, err := s.GetBufferHandle(assets.MeshKey_Pawn)
	assert.ErrorIs(t, err, assets.ErrLookup)

	_, err = s.GetTextureHandle(assets.MeshKey_Queen, assets.Team_Black)
	assert.ErrorIs(t, err, assets.ErrLookup)

	tex, err := s.GetTextureHandle(assets.MeshKey_Queen, assets.Team_White)
	assert.NoError(t, err)
	assert.True(t, tex.IsValid())

	// Nothing drawable, so a full frame issues no draws
	require.NoError(t, s.SetUpBoard())
	s.Render(nil, newFixedViewer())
	s.Render(nil, newFixedViewer())
	assert.Empty(t, rend.draws)
}

func TestLoadReportsUnconfiguredTextures(t *testing.T) {

	cfg := config.Default()
	delete(cfg.Assets.Textures, "white_king")
	s, _ := newTestScene(&cfg, fakeAssets(&cfg))

	report := s.Load()
	assert.True(t, report.BoardLoaded)
	assert.False(t, report.TexturesLoaded)
	assert.ErrorIs(t, report.TextureErrors[assets.TextureKey_WhiteKing], assets.ErrLookup)
}

func TestBadPieceIndexFailsPieces(t *testing.T) {

	cfg := config.Default()
	cfg.Assets.PieceMeshIndices["king"] = 40
	s, _ := newTestScene(&cfg, fakeAssets(&cfg))

	report := s.Load()
	assert.True(t, report.BoardLoaded)
	assert.False(t, report.PiecesLoaded)
	assert.Equal(t, 1, s.Buffers.Len())
}

func TestHandleLookups(t *testing.T) {

	s, _ := loadedScene(t)

	tests := []struct {
		name    string
		mesh    assets.MeshKey
		team    assets.Team
		wantErr bool
	}{
		{name: "board", mesh: assets.MeshKey_Board, team: assets.Team_None},
		{name: "white knight", mesh: assets.MeshKey_Knight, team: assets.Team_White},
		{name: "black pawn", mesh: assets.MeshKey_Pawn, team: assets.Team_Black},
		{name: "board with team", mesh: assets.MeshKey_Board, team: assets.Team_White, wantErr: true},
		{name: "piece without team", mesh: assets.MeshKey_Rook, team: assets.Team_None, wantErr: true},
		{name: "unknown mesh", mesh: assets.MeshKey_Count, team: assets.Team_White, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			tex, err := s.GetTextureHandle(tt.mesh, tt.team)
			if tt.wantErr {
				assert.ErrorIs(t, err, assets.ErrLookup)
				assert.False(t, tex.IsValid())
				return
			}

			assert.NoError(t, err)
			assert.True(t, tex.IsValid())
		})
	}

	mesh, err := s.GetBufferHandle(assets.MeshKey_Count)
	assert.ErrorIs(t, err, assets.ErrLookup)
	assert.False(t, mesh.IsValid())

	mesh, err = s.GetBufferHandle(assets.MeshKey_Queen)
	assert.NoError(t, err)
	assert.Equal(t, "queen", mesh.Name)
	assert.Equal(t, int32(6), mesh.IndexCount())
}

func TestSetUpBoardNeedsLoad(t *testing.T) {

	cfg := config.Default()
	s, _ := newTestScene(&cfg, fakeAssets(&cfg))

	assert.Error(t, s.SetUpBoard())
	assert.False(t, s.Board.IsSetUp())
	assert.Empty(t, s.Pieces)
}

func TestSetUpBoardRejectsBadFEN(t *testing.T) {

	cfg := config.Default()
	s, _ := newTestScene(&cfg, fakeAssets(&cfg))
	s.Load()

	cfg.Board.StartFEN = "not a position"
	assert.Error(t, s.SetUpBoard())
	assert.False(t, s.Board.IsSetUp())
}

func TestSetUpBoardIsIdempotent(t *testing.T) {

	s, _ := loadedScene(t)

	require.NoError(t, s.SetUpBoard())
	require.NoError(t, s.SetUpBoard())
	s.Load()
	require.NoError(t, s.SetUpBoard())

	assert.Len(t, s.Pieces, 32)

	occupied := 0
	seen := make(map[PieceID]bool)
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {

			id := s.Board.Occupant(rank, file)
			if id == NoPiece {
				assert.True(t, rank > 1 && rank < 6, SquareNotation(rank, file))
				continue
			}

			occupied++
			assert.False(t, seen[id], "piece %d on two squares", id)
			seen[id] = true

			p := &s.Pieces[id]
			assert.True(t, p.Alive)
			assert.Equal(t, s.Board.Squares[rank][file].Pos, p.Pos)
			assert.Equal(t, gglm.NewTrMatWithPos(p.Pos.X(), p.Pos.Y(), p.Pos.Z()), p.Transform)
			assert.True(t, p.Mesh.IsValid())
			assert.True(t, p.Tex.IsValid())
		}
	}
	assert.Equal(t, 32, occupied)

	checks := map[string]assets.AssetKey{
		"a1": {Mesh: assets.MeshKey_Rook, Team: assets.Team_White},
		"b1": {Mesh: assets.MeshKey_Knight, Team: assets.Team_White},
		"c1": {Mesh: assets.MeshKey_Bishop, Team: assets.Team_White},
		"d1": {Mesh: assets.MeshKey_Queen, Team: assets.Team_White},
		"e1": {Mesh: assets.MeshKey_King, Team: assets.Team_White},
		"e2": {Mesh: assets.MeshKey_Pawn, Team: assets.Team_White},
		"d8": {Mesh: assets.MeshKey_Queen, Team: assets.Team_Black},
		"e8": {Mesh: assets.MeshKey_King, Team: assets.Team_Black},
		"h7": {Mesh: assets.MeshKey_Pawn, Team: assets.Team_Black},
	}

	for notation, want := range checks {

		sq, err := s.Board.SquareAt(notation)
		require.NoError(t, err)
		require.NotEqual(t, NoPiece, sq.Occupant, notation)
		assert.Equal(t, want, s.Pieces[sq.Occupant].Key, notation)
	}
}

func TestSetUpBoardCustomPosition(t *testing.T) {

	cfg := config.Default()
	cfg.Board.StartFEN = "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	s, _ := newTestScene(&cfg, fakeAssets(&cfg))
	s.Load()

	require.NoError(t, s.SetUpBoard())
	assert.Len(t, s.Pieces, 3)

	// Spawned in rank then file order
	assert.Equal(t, assets.AssetKey{Mesh: assets.MeshKey_King, Team: assets.Team_White}, s.Pieces[0].Key)
	assert.Equal(t, assets.AssetKey{Mesh: assets.MeshKey_Rook, Team: assets.Team_White}, s.Pieces[1].Key)
	assert.Equal(t, assets.AssetKey{Mesh: assets.MeshKey_King, Team: assets.Team_Black}, s.Pieces[2].Key)
}

func TestRenderOrder(t *testing.T) {

	s, rend := loadedScene(t)

	// Board only until set up
	s.Render(nil, newFixedViewer())
	require.Len(t, rend.draws, 1)
	assert.Equal(t, "board", rend.draws[0].Mesh)
	assert.Equal(t, gglm.NewTrMatId(), rend.draws[0].Model)

	rend.draws = nil
	require.NoError(t, s.SetUpBoard())
	s.Render(nil, newFixedViewer())
	require.Len(t, rend.draws, 33)

	assert.Equal(t, "board", rend.draws[0].Mesh)
	wantFirstRank := []string{"rook", "knight", "bishop", "queen", "king", "bishop", "knight", "rook"}
	for file, name := range wantFirstRank {

		d := rend.draws[1+file]
		assert.Equal(t, name, d.Mesh)

		pos := SquarePos(0, file)
		assert.Equal(t, gglm.NewTrMatWithPos(pos.X(), pos.Y(), pos.Z()), d.Model)
	}

	for i := 9; i < 17; i++ {
		assert.Equal(t, "pawn", rend.draws[i].Mesh)
	}

	// White and black pieces of the same type share geometry but not textures
	whiteRook, err := s.GetTextureHandle(assets.MeshKey_Rook, assets.Team_White)
	require.NoError(t, err)
	blackRook, err := s.GetTextureHandle(assets.MeshKey_Rook, assets.Team_Black)
	require.NoError(t, err)

	assert.Equal(t, whiteRook.TexID, rend.draws[1].TexID)
	assert.Equal(t, blackRook.TexID, rend.draws[32].TexID)
	assert.Equal(t, rend.draws[1].Mesh, rend.draws[32].Mesh)
}

func TestRenderSkipsBoardWithoutTexture(t *testing.T) {

	cfg := config.Default()
	s, rend := newTestScene(&cfg, fakeAssets(&cfg), cfg.Assets.Textures["board"])
	s.Load()
	require.NoError(t, s.SetUpBoard())

	s.Render(nil, newFixedViewer())
	require.Len(t, rend.draws, 32)
	assert.Equal(t, "rook", rend.draws[0].Mesh)
}

func TestMovePieceCaptures(t *testing.T) {

	s, rend := loadedScene(t)
	require.NoError(t, s.SetUpBoard())

	require.NoError(t, s.MovePiece("e2", "e4"))
	require.NoError(t, s.MovePiece("d7", "d5"))

	e4, err := s.Board.SquareAt("e4")
	require.NoError(t, err)
	mover := e4.Occupant
	require.NotEqual(t, NoPiece, mover)
	assert.Equal(t, e4.Pos, s.Pieces[mover].Pos)

	d5, err := s.Board.SquareAt("d5")
	require.NoError(t, err)
	victim := d5.Occupant

	require.NoError(t, s.MovePiece("e4", "d5"))
	assert.False(t, s.Pieces[victim].Alive)
	assert.True(t, s.Pieces[mover].Alive)
	assert.Equal(t, mover, s.Board.Occupant(4, 3))
	assert.False(t, s.Board.IsOccupied(3, 4))

	s.Render(nil, newFixedViewer())
	assert.Len(t, rend.draws, 32)

	assert.Error(t, s.MovePiece("e4", "e5"))
	assert.Error(t, s.MovePiece("z9", "e5"))
	assert.Error(t, s.MovePiece("d5", "d9"))
}

func TestReleaseFreesEverythingOnce(t *testing.T) {

	s, rend := loadedScene(t)
	require.NoError(t, s.SetUpBoard())

	s.Release()
	assert.Len(t, rend.deletedMeshes, int(assets.MeshKey_Count))
	assert.Len(t, rend.deletedTexs, int(assets.TextureKey_Count))
	assert.Equal(t, 0, s.Buffers.Len())
	assert.Equal(t, 0, s.Textures.Len())
	assert.False(t, s.Board.Mesh.IsValid())
	assert.False(t, s.Pieces[0].Mesh.IsValid())

	s.Release()
	assert.Len(t, rend.deletedMeshes, int(assets.MeshKey_Count))
	assert.Len(t, rend.deletedTexs, int(assets.TextureKey_Count))

	_, err := s.GetBufferHandle(assets.MeshKey_Board)
	assert.ErrorIs(t, err, assets.ErrLookup)

	rend.draws = nil
	s.Render(nil, newFixedViewer())
	assert.Empty(t, rend.draws)
}
