package assets

import (
	"image"

	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
	"github.com/gekko3d/gekko-forward/gfx"
)

func (c *Cache) buildMesh(mc config.MeshConfig) (*gfx.Mesh, error) {
	switch mc.Kind {
	case "sphere":
		segments := image.Pt(32, 16)
		if len(mc.Segments) >= 2 {
			segments = image.Pt(mc.Segments[0], mc.Segments[1])
		}
		return gfx.NewSphereMesh(c.dev, segments)
	case "cube":
		return gfx.NewCubeMesh(c.dev)
	case "plane":
		return gfx.NewPlaneMesh(c.dev)
	}
	return nil, errors.Errorf("unknown procedural mesh %q", mc.Kind)
}
