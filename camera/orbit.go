package camera

import (
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/config"
)

// Elevation is kept strictly inside (-pi/2, pi/2) so the view never flips over the poles
const MaxElevation float32 = 0.9 * math.Pi / 2

// Orbit moves a camera on a sphere around the origin, always looking at the origin.
//
//	Pos = (r cos(elevation) cos(azimuth), r sin(elevation), r cos(elevation) sin(azimuth))
type Orbit struct {
	Cam Camera

	Radius    float32
	Elevation float32
	Azimuth   float32

	// Radians per second
	AngularSpeed float32
	// Units per second
	RadialSpeed float32
	MinRadius   float32
}

// Orbit changes the angles by the given amounts in radians. Elevation is clamped.
func (o *Orbit) Orbit(dAzimuth, dElevation float32) {

	o.Azimuth += dAzimuth
	o.Elevation += dElevation

	if o.Elevation > MaxElevation {
		o.Elevation = MaxElevation
	} else if o.Elevation < -MaxElevation {
		o.Elevation = -MaxElevation
	}

	o.Update()
}

// Zoom changes the radius by dr. The radius never goes below MinRadius.
func (o *Orbit) Zoom(dr float32) {

	o.Radius += dr
	if o.Radius < o.MinRadius {
		o.Radius = o.MinRadius
	}

	o.Update()
}

// Step applies one frame of held input, each direction is -1, 0 or 1
func (o *Orbit) Step(dt float32, azimuthDir, elevationDir, radialDir float32) {

	if azimuthDir != 0 || elevationDir != 0 {
		o.Orbit(azimuthDir*o.AngularSpeed*dt, elevationDir*o.AngularSpeed*dt)
	}

	if radialDir != 0 {
		o.Zoom(radialDir * o.RadialSpeed * dt)
	}
}

func (o *Orbit) SetAspectRatio(aspect float32) {
	o.Cam.AspectRatio = aspect
	o.Cam.Update()
}

func (o *Orbit) CartesianPos() gglm.Vec3 {

	cosEl := float32(math.Cos(float64(o.Elevation)))
	sinEl := float32(math.Sin(float64(o.Elevation)))
	cosAz := float32(math.Cos(float64(o.Azimuth)))
	sinAz := float32(math.Sin(float64(o.Azimuth)))

	return gglm.NewVec3(
		o.Radius*cosEl*cosAz,
		o.Radius*sinEl,
		o.Radius*cosEl*sinAz,
	)
}

func (o *Orbit) Update() {
	o.Cam.Pos = o.CartesianPos()
	o.Cam.Update()
}

func (o *Orbit) ViewMat() *gglm.Mat4 {
	return &o.Cam.ViewMat
}

func (o *Orbit) ProjViewMat() gglm.Mat4 {
	return o.Cam.ProjViewMat()
}

func NewOrbit(cfg *config.CameraConfig, aspectRatio float32) Orbit {

	o := Orbit{
		Radius:       cfg.Radius,
		Elevation:    cfg.ElevationDeg * gglm.Deg2Rad,
		Azimuth:      cfg.AzimuthDeg * gglm.Deg2Rad,
		AngularSpeed: cfg.AngularSpeed,
		RadialSpeed:  cfg.RadialSpeed,
		MinRadius:    cfg.MinRadius,
	}

	// Clamp whatever the config asked for
	o.Elevation = min(max(o.Elevation, -MaxElevation), MaxElevation)
	o.Radius = max(o.Radius, o.MinRadius)

	origin := gglm.NewVec3(0, 0, 0)
	up := gglm.NewVec3(0, 1, 0)
	pos := o.CartesianPos()
	o.Cam = NewPerspective(&pos, &origin, &up, cfg.NearClip, cfg.FarClip, cfg.FovDeg*gglm.Deg2Rad, aspectRatio)

	return o
}
