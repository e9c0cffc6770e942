package transform

import (
	"fmt"

	"github.com/Faultbox/midgard-scene/pkg/math"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// Hierarchy is the parent/child structure the graph walks. Slices returned
// by Roots and Children are read-only.
type Hierarchy interface {
	Roots() []uid.ID
	Children(id uid.ID) []uid.ID
	Parent(id uid.ID) uid.ID
	SetParent(child, parent uid.ID) error
	Transform(id uid.ID) *Transform
}

type visit struct {
	id            uid.ID
	parentWorld   math.Mat4
	parentChanged bool
}

// Graph propagates transforms over a Hierarchy. It is not safe for
// concurrent use.
type Graph struct {
	h     Hierarchy
	stack []visit
}

// NewGraph creates a graph over h.
func NewGraph(h Hierarchy) *Graph {
	return &Graph{h: h, stack: make([]visit, 0, 64)}
}

// Propagate runs one pass in parent-before-child pre-order starting at the
// roots. A transform is recomputed when it is dirty or when its parent's
// world matrix changed during this pass; entities without a Transform pass
// their parent's world through unchanged. onChange, if not nil, is called
// for every recomputed transform. Returns the number recomputed.
func (g *Graph) Propagate(onChange func(id uid.ID, world math.Mat4)) int {
	g.stack = g.stack[:0]
	g.pushAll(g.h.Roots(), math.Identity(), false)

	updated := 0
	for len(g.stack) > 0 {
		v := g.stack[len(g.stack)-1]
		g.stack = g.stack[:len(g.stack)-1]

		world, changed := v.parentWorld, v.parentChanged
		if t := g.h.Transform(v.id); t != nil {
			dirty := t.Dirty()
			if dirty {
				t.local = t.LocalMatrix()
			}
			if dirty || v.parentChanged {
				t.world = v.parentWorld.Mul(t.local)
				t.propagated = t.generation
				changed = true
				updated++
				if onChange != nil {
					onChange(v.id, t.world)
				}
			}
			world = t.world
		}
		g.pushAll(g.h.Children(v.id), world, changed)
	}
	return updated
}

// pushAll pushes ids in reverse so the first one is visited first.
func (g *Graph) pushAll(ids []uid.ID, parentWorld math.Mat4, parentChanged bool) {
	for i := len(ids) - 1; i >= 0; i-- {
		g.stack = append(g.stack, visit{id: ids[i], parentWorld: parentWorld, parentChanged: parentChanged})
	}
}

// World composes the current world matrix of id from its ancestors' local
// fields, independent of the propagation cache. ok is false when id has no
// Transform.
func (g *Graph) World(id uid.ID) (world math.Mat4, ok bool) {
	var chain []uid.ID
	for cur := id; cur.IsValid(); cur = g.h.Parent(cur) {
		chain = append(chain, cur)
	}

	world = math.Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		if t := g.h.Transform(chain[i]); t != nil {
			world = world.Mul(t.LocalMatrix())
		}
	}
	return world, g.h.Transform(id) != nil
}

// Reparent moves id under newParent (uid.Invalid detaches it to the root).
//
// With keepWorld the local transform is recomputed as
// inverse(newParent.world) * oldWorld so the entity stays where it is; the
// call fails with math.ErrSingularMatrix, leaving everything untouched, when
// that matrix cannot be inverted or decomposed. Without keepWorld the local
// transform is kept and reinterpreted relative to the new parent.
func (g *Graph) Reparent(id, newParent uid.ID, keepWorld bool) error {
	t := g.h.Transform(id)
	if !keepWorld || t == nil {
		return g.h.SetParent(id, newParent)
	}

	oldWorld, _ := g.World(id)
	parentWorld := math.Identity()
	if newParent.IsValid() {
		parentWorld, _ = g.World(newParent)
	}
	inv, ok := parentWorld.Inverse()
	if !ok {
		return fmt.Errorf("reparent %v under %v: %w", id, newParent, math.ErrSingularMatrix)
	}
	pos, rot, scale, err := inv.Mul(oldWorld).Decompose()
	if err != nil {
		return fmt.Errorf("reparent %v under %v: %w", id, newParent, err)
	}

	if err := g.h.SetParent(id, newParent); err != nil {
		return err
	}
	t.Set(pos, rot, scale)
	return nil
}
