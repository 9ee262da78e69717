package gekko

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
)

// EulerOrder names the rotation product left to right: EulerYXZ is Ry·Rx·Rz,
// so roll is applied first and yaw last.
type EulerOrder uint8

const (
	EulerYXZ EulerOrder = iota
	EulerXYZ
	EulerXZY
	EulerYZX
	EulerZXY
	EulerZYX
)

var eulerOrderNames = [...]string{"YXZ", "XYZ", "XZY", "YZX", "ZXY", "ZYX"}

func (o EulerOrder) String() string {
	if int(o) < len(eulerOrderNames) {
		return eulerOrderNames[o]
	}
	return "unknown"
}

func ParseEulerOrder(s string) (EulerOrder, error) {
	for i, name := range eulerOrderNames {
		if strings.EqualFold(s, name) {
			return EulerOrder(i), nil
		}
	}
	return EulerYXZ, errors.Errorf("unknown rotation order %q", s)
}

// Transform is an entity's pose relative to its parent. Rotation holds Euler
// angles in radians.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Order    EulerOrder
}

func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

func (t Transform) RotationMatrix() mgl32.Mat4 {
	x := mgl32.HomogRotate3DX(t.Rotation.X())
	y := mgl32.HomogRotate3DY(t.Rotation.Y())
	z := mgl32.HomogRotate3DZ(t.Rotation.Z())
	switch t.Order {
	case EulerXYZ:
		return x.Mul4(y).Mul4(z)
	case EulerXZY:
		return x.Mul4(z).Mul4(y)
	case EulerYZX:
		return y.Mul4(z).Mul4(x)
	case EulerZXY:
		return z.Mul4(x).Mul4(y)
	case EulerZYX:
		return z.Mul4(y).Mul4(x)
	}
	return y.Mul4(x).Mul4(z)
}

// Matrix composes T · R · S. It is recomputed on every call.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.RotationMatrix()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

func degToRad3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.DegToRad(v[0]), mgl32.DegToRad(v[1]), mgl32.DegToRad(v[2])}
}

func radToDeg3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.RadToDeg(v[0]), mgl32.RadToDeg(v[1]), mgl32.RadToDeg(v[2])}
}

// Deserialize reads position, rotation (degrees), scale and rotationOrder.
// Absent keys keep their current values.
func (t *Transform) Deserialize(f config.Fields) error {
	t.Position = f.Vec3("position", t.Position)
	if f.Has("rotation") {
		t.Rotation = degToRad3(f.Vec3("rotation", radToDeg3(t.Rotation)))
	}
	t.Scale = f.Vec3("scale", t.Scale)
	if f.Has("rotationOrder") {
		order, err := ParseEulerOrder(f.String("rotationOrder", ""))
		if err != nil {
			return err
		}
		t.Order = order
	}
	return nil
}

func (t Transform) Serialize() config.Fields {
	r := radToDeg3(t.Rotation)
	f := config.Fields{
		"position": []any{float64(t.Position[0]), float64(t.Position[1]), float64(t.Position[2])},
		"rotation": []any{float64(r[0]), float64(r[1]), float64(r[2])},
		"scale":    []any{float64(t.Scale[0]), float64(t.Scale[1]), float64(t.Scale[2])},
	}
	if t.Order != EulerYXZ {
		f["rotationOrder"] = t.Order.String()
	}
	return f
}
