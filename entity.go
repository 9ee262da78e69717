package gekko

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
)

type EntityId uint64

// Entity is a node of the scene tree. The World owns it; the parent link is a
// weak id and children are owned ids.
type Entity struct {
	Name      string
	Transform Transform

	id             EntityId
	world          *World
	parent         EntityId
	children       []EntityId
	components     map[ComponentKind]Component
	componentOrder []ComponentKind
}

func (e *Entity) Id() EntityId { return e.id }

func (e *Entity) World() *World { return e.world }

// Parent returns nil for roots.
func (e *Entity) Parent() *Entity {
	if e.parent == 0 || e.world == nil {
		return nil
	}
	return e.world.entities[e.parent]
}

func (e *Entity) Children() []*Entity {
	out := make([]*Entity, 0, len(e.children))
	for _, id := range e.children {
		if c := e.world.entities[id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// LocalToWorld composes this entity's local matrix with every ancestor's,
// ancestors outermost. Nothing is cached.
func (e *Entity) LocalToWorld() mgl32.Mat4 {
	m := e.Transform.Matrix()
	for p := e.Parent(); p != nil; p = p.Parent() {
		m = p.Transform.Matrix().Mul4(m)
	}
	return m
}

func (e *Entity) WorldCenter() mgl32.Vec3 {
	return e.LocalToWorld().Col(3).Vec3()
}

func (e *Entity) String() string {
	if e.Name != "" {
		return fmt.Sprintf("%s#%d", e.Name, e.id)
	}
	return fmt.Sprintf("#%d", e.id)
}

// Deserialize reads name, transform fields and the components list. Bad
// transform fields, unknown component kinds and components that fail to
// deserialize are returned as *ConfigError when reg is strict. Otherwise they
// are logged, the transform keeps its default order and the component is
// skipped.
func (e *Entity) Deserialize(f config.Fields, reg *ComponentRegistry) error {
	e.Name = f.String("name", e.Name)
	if err := e.Transform.Deserialize(f); err != nil {
		cerr := &ConfigError{Path: e.Name + ".transform", Err: err}
		if reg.Strict {
			return cerr
		}
		reg.logger().Warnf("keeping default rotation order: %v", cerr)
		e.Transform.Order = EulerYXZ
	}
	for i, cf := range f.List("components") {
		path := fmt.Sprintf("%s.components[%d]", e.Name, i)
		kind := ComponentKind(cf.String("type", ""))
		c, err := reg.New(kind)
		if err == nil {
			c.setOwner(e)
			if err = c.Deserialize(cf); err != nil {
				c.setOwner(nil)
				err = errors.Wrapf(err, "%s", kind)
			}
		}
		if err != nil {
			cerr := &ConfigError{Path: path, Err: err}
			if reg.Strict {
				return cerr
			}
			reg.logger().Warnf("skipping component: %v", cerr)
			continue
		}
		e.AddComponent(c)
	}
	return nil
}

// Serialize writes name, transform and the kinds of attached components.
// Component fields are not round-tripped.
func (e *Entity) Serialize() config.Fields {
	f := e.Transform.Serialize()
	f["name"] = e.Name
	if len(e.componentOrder) > 0 {
		comps := make([]any, 0, len(e.componentOrder))
		for _, k := range e.componentOrder {
			comps = append(comps, map[string]any{"type": string(k)})
		}
		f["components"] = comps
	}
	return f
}
