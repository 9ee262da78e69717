package gekko

import (
	"github.com/gekko3d/gekko-forward/config"
)

// ComponentKind is the stable identifier a component is keyed by inside its
// entity and named by in scene files.
type ComponentKind string

type Component interface {
	Kind() ComponentKind
	Owner() *Entity
	Deserialize(f config.Fields) error
	setOwner(e *Entity)
}

// Updater is implemented by components that advance every frame.
type Updater interface {
	Update(dt float32)
}

// Destroyer is implemented by components that hold something to release when
// they are replaced, removed or their entity is destroyed.
type Destroyer interface {
	Destroy()
}

// ComponentBase carries the owner back-reference. Embed it by value.
type ComponentBase struct {
	owner *Entity
}

func (b *ComponentBase) Owner() *Entity { return b.owner }

func (b *ComponentBase) setOwner(e *Entity) { b.owner = e }

func disposeComponent(c Component) {
	if d, ok := c.(Destroyer); ok {
		d.Destroy()
	}
	c.setOwner(nil)
}

// AddComponent attaches c, replacing any component of the same kind. The
// replaced instance is disposed and returned. Re-adding the attached instance
// is a no-op, and a component owned by another entity is moved off it first.
func (e *Entity) AddComponent(c Component) Component {
	kind := c.Kind()
	old, exists := e.components[kind]
	if exists && old == c {
		return nil
	}
	if prev := c.Owner(); prev != nil && prev != e && prev.components[kind] == c {
		prev.detachComponent(kind)
	}
	if exists {
		disposeComponent(old)
	} else {
		e.componentOrder = append(e.componentOrder, kind)
	}
	c.setOwner(e)
	e.components[kind] = c
	return old
}

func (e *Entity) Component(kind ComponentKind) Component {
	return e.components[kind]
}

func (e *Entity) HasComponent(kind ComponentKind) bool {
	_, ok := e.components[kind]
	return ok
}

// RemoveComponent detaches and disposes the component of kind.
func (e *Entity) RemoveComponent(kind ComponentKind) bool {
	c, ok := e.components[kind]
	if !ok {
		return false
	}
	e.detachComponent(kind)
	disposeComponent(c)
	return true
}

func (e *Entity) detachComponent(kind ComponentKind) {
	delete(e.components, kind)
	for i, k := range e.componentOrder {
		if k == kind {
			e.componentOrder = append(e.componentOrder[:i], e.componentOrder[i+1:]...)
			break
		}
	}
}

// Components returns the attached components in attach order.
func (e *Entity) Components() []Component {
	out := make([]Component, 0, len(e.componentOrder))
	for _, k := range e.componentOrder {
		out = append(out, e.components[k])
	}
	return out
}

// ComponentOf returns the first attached component of concrete type T.
func ComponentOf[T Component](e *Entity) (T, bool) {
	for _, k := range e.componentOrder {
		if c, ok := e.components[k].(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

func (e *Entity) disposeComponents() {
	for _, k := range e.componentOrder {
		disposeComponent(e.components[k])
	}
	e.components = make(map[ComponentKind]Component)
	e.componentOrder = nil
}
