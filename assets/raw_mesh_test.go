package assets

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/assert"
)

// quadAt returns a unit quad on the XZ plane centered at (cx, y, cz)
func quadAt(cx, y, cz float32) RawMeshData {
	return RawMeshData{
		Positions: []gglm.Vec3{
			gglm.NewVec3(cx-0.5, y, cz-0.5),
			gglm.NewVec3(cx+0.5, y, cz-0.5),
			gglm.NewVec3(cx+0.5, y, cz+0.5),
			gglm.NewVec3(cx-0.5, y, cz+0.5),
		},
		UVs:     make([]gglm.Vec2, 4),
		Normals: make([]gglm.Vec3, 4),
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

func TestCenterXZ(t *testing.T) {

	m := quadAt(10, 2, 10)
	m.CenterXZ()

	cx, cz := m.CentroidXZ()
	assert.InDelta(t, 0, cx, 1e-5)
	assert.InDelta(t, 0, cz, 1e-5)

	for i := range m.Positions {
		assert.InDelta(t, 2, m.Positions[i].Y(), 1e-6, "Y must not change")
	}

	assert.InDelta(t, -0.5, m.Positions[0].X(), 1e-5)
	assert.InDelta(t, 0.5, m.Positions[2].Z(), 1e-5)
}

func TestCenterXZEmptyAndCentered(t *testing.T) {

	empty := RawMeshData{}
	empty.CenterXZ()
	assert.Equal(t, 0, empty.VertexCount())

	m := quadAt(0, 0, 0)
	m.CenterXZ()
	assert.InDelta(t, -0.5, m.Positions[0].X(), 1e-6)
}

func TestRawMeshValidate(t *testing.T) {

	good := quadAt(0, 0, 0)
	assert.NoError(t, good.Validate())

	badLens := quadAt(0, 0, 0)
	badLens.UVs = badLens.UVs[:3]
	assert.ErrorIs(t, badLens.Validate(), ErrImport)

	badCount := quadAt(0, 0, 0)
	badCount.Indices = badCount.Indices[:5]
	assert.ErrorIs(t, badCount.Validate(), ErrImport)

	badIndex := quadAt(0, 0, 0)
	badIndex.Indices[4] = 4
	assert.ErrorIs(t, badIndex.Validate(), ErrImport)
}
