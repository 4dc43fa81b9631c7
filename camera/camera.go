package camera

import (
	"github.com/bloeys/gglm/gglm"
)

// Camera is a perspective camera looking from Pos at Target. Call Update after changing any field.
type Camera struct {
	Pos     gglm.Vec3
	Target  gglm.Vec3
	WorldUp gglm.Vec3

	// Vertical field of view in radians
	Fov         float32
	AspectRatio float32
	NearClip    float32
	FarClip     float32

	ViewMat gglm.Mat4
	ProjMat gglm.Mat4
}

func (c *Camera) Update() {

	c.ViewMat = gglm.LookAtRH(&c.Pos, &c.Target, &c.WorldUp).Mat4

	projMat := gglm.Perspective(c.Fov, c.AspectRatio, c.NearClip, c.FarClip)
	c.ProjMat = *projMat.Clone()
}

// ProjViewMat returns projection * view
func (c *Camera) ProjViewMat() gglm.Mat4 {
	projView := c.ProjMat
	return *projView.Mul(&c.ViewMat)
}

func NewPerspective(pos, target, worldUp *gglm.Vec3, nearClip, farClip, fovRadians, aspectRatio float32) Camera {

	cam := Camera{
		Pos:         *pos,
		Target:      *target,
		WorldUp:     *worldUp,
		Fov:         fovRadians,
		AspectRatio: aspectRatio,
		NearClip:    nearClip,
		FarClip:     farClip,
	}

	cam.Update()
	return cam
}
