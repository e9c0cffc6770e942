// Package transform maintains local and world matrices for scene entities
// and propagates them down the parent/child hierarchy once per frame.
package transform

import (
	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/pkg/math"
)

// Transform is the placement component of an entity.
//
// Every mutation bumps a generation counter; the transform is dirty while
// its generation differs from the one recorded by the last propagation
// pass. World is only guaranteed to equal parent.World * Local after a pass.
type Transform struct {
	position math.Vec3
	rotation math.Quat
	scale    math.Vec3

	local math.Mat4
	world math.Mat4

	generation uint64
	propagated uint64
}

// New returns an identity transform. It starts dirty so the first pass
// computes its matrices.
func New() Transform {
	return Transform{
		rotation:   math.QuatIdentity(),
		scale:      math.V3(1, 1, 1),
		local:      math.Identity(),
		world:      math.Identity(),
		generation: 1,
	}
}

// FromTRS returns a dirty transform with the given components.
func FromTRS(pos math.Vec3, rot math.Quat, scale math.Vec3) Transform {
	t := New()
	t.Set(pos, rot, scale)
	return t
}

// Kind implements component.Component.
func (Transform) Kind() component.Kind { return component.KindTransform }

func (t *Transform) Position() math.Vec3 { return t.position }
func (t *Transform) Rotation() math.Quat { return t.rotation }
func (t *Transform) Scale() math.Vec3    { return t.scale }

// SetPosition sets the local position.
func (t *Transform) SetPosition(p math.Vec3) {
	t.position = p
	t.MarkDirty()
}

// SetRotation sets the local rotation.
func (t *Transform) SetRotation(q math.Quat) {
	t.rotation = q.Normalize()
	t.MarkDirty()
}

// SetScale sets the local scale.
func (t *Transform) SetScale(s math.Vec3) {
	t.scale = s
	t.MarkDirty()
}

// Set replaces position, rotation and scale at once.
func (t *Transform) Set(pos math.Vec3, rot math.Quat, scale math.Vec3) {
	t.position = pos
	t.rotation = rot.Normalize()
	t.scale = scale
	t.MarkDirty()
}

// Translate moves the local position by delta.
func (t *Transform) Translate(delta math.Vec3) {
	t.SetPosition(t.position.Add(delta))
}

// MarkDirty forces the next pass to recompute this transform and its
// subtree.
func (t *Transform) MarkDirty() {
	t.generation++
}

// Dirty reports whether the transform changed since the last pass.
func (t *Transform) Dirty() bool {
	return t.generation != t.propagated
}

// Generation returns the mutation counter.
func (t *Transform) Generation() uint64 { return t.generation }

// Local returns the local matrix computed by the last pass.
func (t *Transform) Local() math.Mat4 { return t.local }

// World returns the world matrix computed by the last pass. It may be stale
// while Dirty is true or an ancestor changed.
func (t *Transform) World() math.Mat4 { return t.world }

// LocalMatrix composes Translate * Rotate * Scale from the current fields
// without touching the cache.
func (t *Transform) LocalMatrix() math.Mat4 {
	return math.Compose(t.position, t.rotation, t.scale)
}
