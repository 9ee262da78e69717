package gekko

import (
	"sort"

	"github.com/pkg/errors"
)

type ComponentFactory func() Component

// ComponentRegistry maps the "type" string of a component descriptor to a
// constructor. Registries are built per scene because MeshRenderer resolves
// names against that scene's assets.
type ComponentRegistry struct {
	factories map[ComponentKind]ComponentFactory

	// Strict makes unknown or malformed components fail deserialization.
	Strict bool
	Logger Logger
}

func NewComponentRegistry(resolver MaterialResolver) *ComponentRegistry {
	r := &ComponentRegistry{factories: make(map[ComponentKind]ComponentFactory)}
	r.Register(KindCamera, func() Component { return NewCameraComponent() })
	r.Register(KindLight, func() Component { return NewLightComponent() })
	r.Register(KindMeshRenderer, func() Component { return NewMeshRendererComponent(resolver) })
	r.Register("Mesh Renderer", func() Component { return NewMeshRendererComponent(resolver) })
	r.Register(KindMovement, func() Component { return NewMovementComponent() })
	r.Register(KindBall, func() Component { return &BallComponent{} })
	r.Register(KindLifetime, func() Component { return &LifetimeComponent{} })
	r.Register(KindFlyingCamera, func() Component { return NewFlyingCameraComponent() })
	return r
}

// DefaultRegistry has every built-in kind; MeshRenderer descriptors fail
// without a resolver.
func DefaultRegistry() *ComponentRegistry {
	return NewComponentRegistry(nil)
}

func (r *ComponentRegistry) Register(kind ComponentKind, factory ComponentFactory) {
	r.factories[kind] = factory
}

func (r *ComponentRegistry) New(kind ComponentKind) (Component, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownComponent, "%q", kind)
	}
	return f(), nil
}

func (r *ComponentRegistry) Kinds() []ComponentKind {
	kinds := make([]ComponentKind, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (r *ComponentRegistry) logger() Logger {
	if r.Logger == nil {
		return NewNopLogger()
	}
	return r.Logger
}
