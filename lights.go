package gekko

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-forward/gfx"
)

// MaxLights matches the light array size declared by the lit shaders.
const MaxLights = 16

type lightUniformNames struct {
	typ, direction, color, position, coneAngles, attenuation, intensity string
}

var lightNames = func() (names [MaxLights]lightUniformNames) {
	for i := range names {
		p := fmt.Sprintf("lights[%d].", i)
		names[i] = lightUniformNames{
			typ:         p + "type",
			direction:   p + "direction",
			color:       p + "color",
			position:    p + "position",
			coneAngles:  p + "coneAngles",
			attenuation: p + "attenuation",
			intensity:   p + "intensity",
		}
	}
	return names
}()

// lightState is a light resolved to world space for one frame.
type lightState struct {
	Type        LightType
	Direction   mgl32.Vec3
	Color       mgl32.Vec3
	Position    mgl32.Vec3
	ConeAngles  mgl32.Vec2
	Attenuation mgl32.Vec3
	Intensity   float32
}

// resolveLights snapshots up to MaxLights lights in collection order.
func resolveLights(dst []lightState, lights []*LightComponent, logger Logger) []lightState {
	dst = dst[:0]
	if len(lights) > MaxLights {
		logger.Debugf("%d lights in scene, using the first %d", len(lights), MaxLights)
		lights = lights[:MaxLights]
	}
	for _, l := range lights {
		dst = append(dst, lightState{
			Type:        l.Type,
			Direction:   l.WorldDirection(),
			Color:       l.Color,
			Position:    l.WorldPosition(),
			ConeAngles:  l.ConeAngles,
			Attenuation: l.Attenuation,
			Intensity:   l.Intensity,
		})
	}
	return dst
}

func uploadLights(m *gfx.Material, lights []lightState) {
	for i, l := range lights {
		n := &lightNames[i]
		m.SetInt(n.typ, int32(l.Type))
		m.SetVec3(n.direction, l.Direction)
		m.SetVec3(n.color, l.Color)
		m.SetVec3(n.position, l.Position)
		m.SetVec2(n.coneAngles, l.ConeAngles)
		m.SetVec3(n.attenuation, l.Attenuation)
		m.SetFloat(n.intensity, l.Intensity)
	}
	m.SetInt("lightCount", int32(len(lights)))
}
