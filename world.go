package gekko

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
)

// World is the arena that owns every entity. Roots keep creation order and
// so do each entity's children, which makes traversal deterministic.
type World struct {
	nextId   EntityId
	entities map[EntityId]*Entity
	roots    []EntityId
	pending  []EntityId
}

func NewWorld() *World {
	return &World{entities: make(map[EntityId]*Entity)}
}

func (w *World) Len() int { return len(w.entities) }

func (w *World) Get(id EntityId) *Entity { return w.entities[id] }

// NewEntity creates an entity under parent. Zero or an unknown id makes a root.
func (w *World) NewEntity(parent EntityId) *Entity {
	w.nextId++
	e := &Entity{
		Transform:  NewTransform(),
		id:         w.nextId,
		world:      w,
		components: make(map[ComponentKind]Component),
	}
	w.entities[e.id] = e
	if p := w.entities[parent]; p != nil {
		e.parent = parent
		p.children = append(p.children, e.id)
	} else {
		w.roots = append(w.roots, e.id)
	}
	return e
}

func (w *World) Roots() []*Entity {
	out := make([]*Entity, 0, len(w.roots))
	for _, id := range w.roots {
		out = append(out, w.entities[id])
	}
	return out
}

func removeId(ids []EntityId, id EntityId) []EntityId {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (w *World) detach(e *Entity) {
	if p := w.entities[e.parent]; p != nil {
		p.children = removeId(p.children, e.id)
	} else {
		w.roots = removeId(w.roots, e.id)
	}
	e.parent = 0
}

// SetParent moves child under parent (0 = make root). The child is appended
// after the new parent's existing children.
func (w *World) SetParent(child, parent EntityId) error {
	c := w.entities[child]
	if c == nil {
		return errors.Wrapf(ErrNoEntity, "child %d", child)
	}
	var p *Entity
	if parent != 0 {
		if p = w.entities[parent]; p == nil {
			return errors.Wrapf(ErrNoEntity, "parent %d", parent)
		}
		for a := p; a != nil; a = a.Parent() {
			if a.id == child {
				return errors.Wrapf(ErrCycle, "%v under %v", c, p)
			}
		}
	}
	w.detach(c)
	if p != nil {
		c.parent = parent
		p.children = append(p.children, child)
	} else {
		w.roots = append(w.roots, child)
	}
	return nil
}

// Destroy removes the entity and its whole subtree, disposing components
// children first.
func (w *World) Destroy(id EntityId) {
	e := w.entities[id]
	if e == nil {
		return
	}
	w.detach(e)
	w.destroySubtree(e)
}

func (w *World) destroySubtree(e *Entity) {
	for _, cid := range e.children {
		if c := w.entities[cid]; c != nil {
			w.destroySubtree(c)
		}
	}
	e.children = nil
	e.disposeComponents()
	delete(w.entities, e.id)
	e.world = nil
}

// MarkForRemoval defers Destroy until FlushRemovals, so systems can remove
// entities while iterating.
func (w *World) MarkForRemoval(id EntityId) {
	w.pending = append(w.pending, id)
}

func (w *World) FlushRemovals() int {
	n := 0
	for _, id := range w.pending {
		if w.entities[id] != nil {
			w.Destroy(id)
			n++
		}
	}
	w.pending = w.pending[:0]
	return n
}

func (w *World) Clear() {
	for len(w.roots) > 0 {
		w.Destroy(w.roots[0])
	}
	w.pending = w.pending[:0]
}

// Entities lists every entity depth-first, parents before children, roots
// and siblings in creation order.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.entities))
	var visit func(id EntityId)
	visit = func(id EntityId) {
		e := w.entities[id]
		if e == nil {
			return
		}
		out = append(out, e)
		for _, c := range e.children {
			visit(c)
		}
	}
	for _, r := range w.roots {
		visit(r)
	}
	return out
}

// Deserialize builds entities from descs under parent, recursing into each
// descriptor's "children". In strict mode the first error destroys every
// entity created by this call.
func (w *World) Deserialize(descs []config.Fields, parent EntityId, reg *ComponentRegistry) ([]*Entity, error) {
	var created []*Entity
	for i, d := range descs {
		e, err := w.deserializeOne(d, parent, reg)
		if err != nil {
			for _, c := range created {
				w.Destroy(c.id)
			}
			return nil, errors.Wrapf(err, "world[%d]", i)
		}
		created = append(created, e)
	}
	return created, nil
}

func (w *World) deserializeOne(d config.Fields, parent EntityId, reg *ComponentRegistry) (*Entity, error) {
	e := w.NewEntity(parent)
	if err := e.Deserialize(d, reg); err != nil {
		w.Destroy(e.id)
		return nil, err
	}
	for i, cd := range d.List("children") {
		if _, err := w.deserializeOne(cd, e.id, reg); err != nil {
			w.Destroy(e.id)
			return nil, errors.Wrap(err, fmt.Sprintf("%s.children[%d]", e.Name, i))
		}
	}
	return e, nil
}
