package engine

import (
	"github.com/Faultbox/midgard-scene/internal/scene"
	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/pkg/math"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// Pick returns the indexed entity whose world bounds the ray enters first.
func (e *Engine) Pick(ray math.Ray) (id uid.ID, dist float32, ok bool) {
	e.spatial.QueryFunc(func(b math.BoundingBox) bool {
		_, hit := ray.IntersectBox(b)
		return hit
	}, func(item uid.ID, b math.BoundingBox) bool {
		t, _ := ray.IntersectBox(b)
		if !ok || t < dist {
			id, dist, ok = item, t, true
		}
		return true
	})
	return id, dist, ok
}

// Visible returns the indexed entities whose world bounds may intersect
// the frustum of viewProj. Order is unspecified.
func (e *Engine) Visible(viewProj math.Mat4) []uid.ID {
	frustum := math.FrustumFromMatrix(viewProj)
	var ids []uid.ID
	e.spatial.QueryFunc(frustum.IntersectsBox, func(item uid.ID, _ math.BoundingBox) bool {
		ids = append(ids, item)
		return true
	})
	return ids
}

// PrimaryCamera returns the camera entity marked Primary, or the first
// camera when none is, with its view-projection matrix.
func (e *Engine) PrimaryCamera() (uid.ID, math.Mat4, bool) {
	var found uid.ID
	var cam *component.Camera
	e.entities.ForAll(func(id uid.ID) bool {
		c := scene.GetComponent[component.Camera](e.entities, id)
		if c == nil {
			return true
		}
		if cam == nil || c.Primary {
			found, cam = id, c
		}
		return !c.Primary
	})
	if cam == nil {
		return uid.Invalid, math.Identity(), false
	}

	world, _ := e.graph.World(found)
	vp, ok := cam.ViewProjection(world)
	if !ok {
		return uid.Invalid, math.Identity(), false
	}
	return found, vp, true
}
