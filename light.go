package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
)

const KindLight ComponentKind = "Light"

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
	LightTypeAmbient     LightType = 3
)

var lightTypeNames = map[string]LightType{
	"point":       LightTypePoint,
	"directional": LightTypeDirectional,
	"spot":        LightTypeSpot,
	"ambient":     LightTypeAmbient,
}

func (t LightType) String() string {
	for name, v := range lightTypeNames {
		if v == t {
			return name
		}
	}
	return "unknown"
}

// LightComponent feeds one entry of the lit shaders' light array.
type LightComponent struct {
	ComponentBase
	Type        LightType
	Direction   mgl32.Vec3 // owner space
	Color       mgl32.Vec3 // RGB
	Intensity   float32
	Attenuation mgl32.Vec3 // quadratic, linear, constant
	ConeAngles  mgl32.Vec2 // inner, outer; radians
}

func NewLightComponent() *LightComponent {
	return &LightComponent{
		Type:        LightTypeDirectional,
		Direction:   mgl32.Vec3{0, -1, 0},
		Color:       mgl32.Vec3{1, 1, 1},
		Intensity:   1,
		Attenuation: mgl32.Vec3{0, 0, 1},
		ConeAngles:  mgl32.Vec2{mgl32.DegToRad(15), mgl32.DegToRad(30)},
	}
}

func (l *LightComponent) Kind() ComponentKind { return KindLight }

// Deserialize reads lightType, direction, color, intensity, attenuation and
// coneAngles (degrees).
func (l *LightComponent) Deserialize(f config.Fields) error {
	if f.Has("lightType") {
		name := f.String("lightType", "")
		t, ok := lightTypeNames[name]
		if !ok {
			return errors.Errorf("unknown lightType %q", name)
		}
		l.Type = t
	}
	l.Direction = f.Vec3("direction", l.Direction)
	l.Color = f.Vec3("color", l.Color)
	l.Intensity = f.Float("intensity", l.Intensity)
	l.Attenuation = f.Vec3("attenuation", l.Attenuation)
	if f.Has("coneAngles") {
		deg := f.Vec2("coneAngles", mgl32.Vec2{mgl32.RadToDeg(l.ConeAngles[0]), mgl32.RadToDeg(l.ConeAngles[1])})
		l.ConeAngles = mgl32.Vec2{mgl32.DegToRad(deg[0]), mgl32.DegToRad(deg[1])}
	}
	return nil
}

func (l *LightComponent) WorldPosition() mgl32.Vec3 {
	if l.owner == nil {
		return mgl32.Vec3{}
	}
	return l.owner.WorldCenter()
}

func (l *LightComponent) WorldDirection() mgl32.Vec3 {
	if l.owner == nil {
		return l.Direction
	}
	d := l.owner.LocalToWorld().Mul4x1(l.Direction.Vec4(0)).Vec3()
	if d.Len() == 0 {
		return l.Direction
	}
	return d.Normalize()
}
