package gekko

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-forward/gfx"
)

// RenderCommand is a per-frame view of one mesh renderer. It owns nothing.
type RenderCommand struct {
	LocalToWorld mgl32.Mat4
	Center       mgl32.Vec3
	Mesh         *gfx.Mesh
	Material     *gfx.Material
}

// SpecialCommand is drawn with the roll of the ball it is parented to.
type SpecialCommand struct {
	RenderCommand
	Axis  mgl32.Vec3
	Angle float32 // radians
}

// FrameCommands holds everything one frame draws. It is rebuilt from scratch
// every frame.
type FrameCommands struct {
	Camera      *CameraComponent
	Opaque      []RenderCommand
	Transparent []RenderCommand
	Special     []SpecialCommand
	Lights      []*LightComponent
}

func (fc *FrameCommands) reset() {
	fc.Camera = nil
	fc.Opaque = fc.Opaque[:0]
	fc.Transparent = fc.Transparent[:0]
	fc.Special = fc.Special[:0]
	fc.Lights = fc.Lights[:0]
}

// CollectCommands walks world in World.Entities order. The first camera met
// is used; later cameras are ignored.
func CollectCommands(world *World, logger Logger) FrameCommands {
	var fc FrameCommands
	fc.collect(world, logger)
	return fc
}

func (fc *FrameCommands) collect(world *World, logger Logger) {
	fc.reset()
	for _, e := range world.Entities() {
		if fc.Camera == nil {
			if cam, ok := ComponentOf[*CameraComponent](e); ok {
				fc.Camera = cam
			}
		}
		if mr, ok := ComponentOf[*MeshRendererComponent](e); ok && mr.Mesh != nil && mr.Material != nil {
			fc.classify(e, mr, logger)
		}
		if light, ok := ComponentOf[*LightComponent](e); ok {
			fc.Lights = append(fc.Lights, light)
		}
	}
}

func (fc *FrameCommands) classify(e *Entity, mr *MeshRendererComponent, logger Logger) {
	m := e.LocalToWorld()
	cmd := RenderCommand{
		LocalToWorld: m,
		Center:       m.Col(3).Vec3(),
		Mesh:         mr.Mesh,
		Material:     mr.Material,
	}

	if parent := e.Parent(); parent != nil && parent.HasComponent(KindBall) {
		if mv, ok := ComponentOf[*MovementComponent](parent); ok {
			fc.Special = append(fc.Special, SpecialCommand{
				RenderCommand: cmd,
				Axis:          mv.Forward,
				Angle:         mgl32.DegToRad(mv.CurrentAngle[0]),
			})
			return
		}
		logger.Warnf("%v: ball parent %v has no movement; drawing as a plain mesh", e, parent)
	}

	if mr.Material.Transparent {
		fc.Transparent = append(fc.Transparent, cmd)
	} else {
		fc.Opaque = append(fc.Opaque, cmd)
	}
}

// SortBackToFront orders cmds by descending projection of their centers
// onto forward. Equal projections keep their input order.
func SortBackToFront(cmds []RenderCommand, forward mgl32.Vec3) {
	sort.SliceStable(cmds, func(i, j int) bool {
		return forward.Dot(cmds[i].Center) > forward.Dot(cmds[j].Center)
	})
}
