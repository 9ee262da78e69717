package gekko

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
)

const KindCamera ComponentKind = "Camera"

type ProjectionType uint8

const (
	Perspective ProjectionType = iota
	Orthographic
)

// CameraMode is chosen once per camera. Attached cameras look down the
// owner's -Z axis; detached cameras use the tracked Position/LookAt/Up.
type CameraMode uint8

const (
	CameraAttached CameraMode = iota
	CameraDetached
)

type FollowSettings struct {
	Enabled  bool
	Distance float32
	Height   float32
}

type CameraComponent struct {
	ComponentBase
	Projection  ProjectionType
	Near        float32
	Far         float32
	FovY        float32 // radians
	OrthoHeight float32
	Mode        CameraMode

	// Tracked view triple, used only in CameraDetached mode.
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3

	Follow FollowSettings
}

func NewCameraComponent() *CameraComponent {
	return &CameraComponent{
		Projection:  Perspective,
		Near:        0.01,
		Far:         100,
		FovY:        mgl32.DegToRad(90),
		OrthoHeight: 1,
		Mode:        CameraAttached,
		LookAt:      mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		Follow:      FollowSettings{Distance: 5, Height: 2},
	}
}

func (c *CameraComponent) Kind() ComponentKind { return KindCamera }

func (c *CameraComponent) Deserialize(f config.Fields) error {
	switch t := f.String("cameraType", "perspective"); t {
	case "perspective":
		c.Projection = Perspective
	case "orthographic":
		c.Projection = Orthographic
	default:
		return errors.Errorf("unknown cameraType %q", t)
	}
	c.Near = f.Float("near", c.Near)
	c.Far = f.Float("far", c.Far)
	c.FovY = mgl32.DegToRad(f.Float("fovY", mgl32.RadToDeg(c.FovY)))
	c.OrthoHeight = f.Float("orthoHeight", c.OrthoHeight)

	c.Position = f.Vec3("position", c.Position)
	c.LookAt = f.Vec3("lookAt", c.LookAt)
	c.Up = f.Vec3("up", c.Up)

	// A tracked triple in the descriptor implies a detached camera.
	mode := "attached"
	if f.Has("position") || f.Has("lookAt") || f.Bool("follow", false) {
		mode = "detached"
	}
	switch m := f.String("mode", mode); m {
	case "attached":
		c.Mode = CameraAttached
	case "detached":
		c.Mode = CameraDetached
	default:
		return errors.Errorf("unknown camera mode %q", m)
	}

	c.Follow.Enabled = f.Bool("follow", c.Follow.Enabled)
	c.Follow.Distance = f.Float("distance", c.Follow.Distance)
	c.Follow.Height = f.Float("height", c.Follow.Height)
	if c.Follow.Enabled && c.Mode != CameraDetached {
		return errors.New("follow requires a detached camera")
	}
	return nil
}

// viewTriple returns eye, center and up in world space.
func (c *CameraComponent) viewTriple() (eye, center, up mgl32.Vec3) {
	if c.Mode == CameraDetached || c.owner == nil {
		return c.Position, c.LookAt, c.Up
	}
	m := c.owner.LocalToWorld()
	eye = m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	center = m.Mul4x1(mgl32.Vec4{0, 0, -1, 1}).Vec3()
	up = m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()
	return eye, center, up
}

func (c *CameraComponent) ViewMatrix() mgl32.Mat4 {
	eye, center, up := c.viewTriple()
	return mgl32.LookAtV(eye, center, up)
}

func (c *CameraComponent) ProjectionMatrix(viewport image.Point) mgl32.Mat4 {
	aspect := float32(1)
	if viewport.Y > 0 {
		aspect = float32(viewport.X) / float32(viewport.Y)
	}
	if c.Projection == Orthographic {
		h := c.OrthoHeight / 2
		w := h * aspect
		return mgl32.Ortho(-w, w, -h, h, c.Near, c.Far)
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

func (c *CameraComponent) Eye() mgl32.Vec3 {
	eye, _, _ := c.viewTriple()
	return eye
}

// Forward is the normalized direction from eye to look-at point.
func (c *CameraComponent) Forward() mgl32.Vec3 {
	eye, center, _ := c.viewTriple()
	d := center.Sub(eye)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// UpdateFollow places a detached camera Distance behind and Height above its
// owner, looking at the owner.
func (c *CameraComponent) UpdateFollow() {
	if !c.Follow.Enabled || c.Mode != CameraDetached || c.owner == nil {
		return
	}
	m := c.owner.LocalToWorld()
	target := m.Col(3).Vec3()
	back := m.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	back[1] = 0
	if back.Len() > 0 {
		back = back.Normalize()
	}
	c.Position = target.Add(back.Mul(c.Follow.Distance)).Add(mgl32.Vec3{0, c.Follow.Height, 0})
	c.LookAt = target
	c.Up = mgl32.Vec3{0, 1, 0}
}
