package gekko

import (
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
	"github.com/gekko3d/gekko-forward/gfx"
)

const KindMeshRenderer ComponentKind = "MeshRenderer"

// MaterialResolver looks up shared meshes and materials by name.
// *assets.Cache implements it.
type MaterialResolver interface {
	Mesh(name string) (*gfx.Mesh, error)
	Material(name string) (*gfx.Material, error)
}

// ResourceLoader creates resources owned by the caller.
// *assets.Cache implements it.
type ResourceLoader interface {
	LoadProgram(vertexPath, fragmentPath string) (*gfx.Program, error)
	LoadTexture(path string, mipmaps bool) (*gfx.Texture, error)
}

// MeshRendererComponent draws a shared mesh with a shared material. Both
// belong to the asset cache and are never released here.
type MeshRendererComponent struct {
	ComponentBase
	Mesh     *gfx.Mesh
	Material *gfx.Material

	MeshName     string
	MaterialName string

	resolver MaterialResolver
}

func NewMeshRendererComponent(resolver MaterialResolver) *MeshRendererComponent {
	return &MeshRendererComponent{resolver: resolver}
}

func (r *MeshRendererComponent) Kind() ComponentKind { return KindMeshRenderer }

func (r *MeshRendererComponent) Deserialize(f config.Fields) error {
	if r.resolver == nil {
		return errors.Wrap(ErrMissingResource, "no asset cache to resolve mesh renderer")
	}
	r.MeshName = f.String("mesh", "")
	r.MaterialName = f.String("material", "")
	if r.MeshName == "" || r.MaterialName == "" {
		return errors.New("mesh renderer needs both mesh and material")
	}
	mesh, err := r.resolver.Mesh(r.MeshName)
	if err != nil {
		return errors.Wrapf(err, "mesh %q", r.MeshName)
	}
	mat, err := r.resolver.Material(r.MaterialName)
	if err != nil {
		return errors.Wrapf(err, "material %q", r.MaterialName)
	}
	r.Mesh, r.Material = mesh, mat
	return nil
}
