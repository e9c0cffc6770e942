package engine

import (
	"fmt"
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-scene/internal/engine/command"
	"github.com/Faultbox/midgard-scene/internal/scene"
	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/internal/scene/transform"
	"github.com/Faultbox/midgard-scene/pkg/math"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// RegisterAsset creates an empty root asset and returns its id and unique
// name.
func (e *Engine) RegisterAsset(name string) (uid.ID, string) {
	return e.assets.Create(name)
}

// Instantiate copies the asset subtree rooted at asset into the entities
// and returns the new root. Components are copied, not shared. Every node
// with a Mesh gets a Transform so it is picked up by the spatial index.
func (e *Engine) Instantiate(asset uid.ID) (uid.ID, error) {
	if !e.assets.Exists(asset) {
		return uid.Invalid, fmt.Errorf("instantiate %v: %w", asset, ErrAssetNotFound)
	}

	copies := make(map[uid.ID]uid.ID)
	var root uid.ID
	var linkErr error
	e.assets.Walk(asset, func(src uid.ID, depth int) bool {
		dst, _ := e.entities.Create(e.assets.Name(src))
		for _, c := range e.assets.Components(src) {
			e.entities.SetComponent(dst, c)
		}
		if scene.HasComponent[component.Mesh](e.entities, dst) {
			scene.AddComponent[transform.Transform](e.entities, dst)
		}
		copies[src] = dst

		if depth == 0 {
			root = dst
			return true
		}
		if err := e.entities.AddChild(copies[e.assets.Parent(src)], dst); err != nil {
			linkErr = err
			return false
		}
		return true
	})
	if linkErr != nil {
		e.DeleteByID(root)
		return uid.Invalid, fmt.Errorf("instantiate %q: %w", e.assets.Name(asset), linkErr)
	}
	return root, nil
}

// InstantiateRandom instantiates the named asset count times, placing each
// root uniformly at random within radius of the origin.
func (e *Engine) InstantiateRandom(name string, count int, radius float32) ([]uid.ID, error) {
	if count <= 0 || radius < 0 || stdmath.IsNaN(float64(radius)) || stdmath.IsInf(float64(radius), 0) {
		return nil, fmt.Errorf("spawn %q (count %d, radius %g): %w", name, count, radius, ErrInvalidArgument)
	}
	asset, ok := e.assets.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("spawn %q: %w", name, ErrAssetNotFound)
	}

	ids := make([]uid.ID, 0, count)
	for range count {
		id, err := e.Instantiate(asset)
		if err != nil {
			return ids, err
		}
		scene.AddComponent[transform.Transform](e.entities, id).SetPosition(e.randomPoint(radius))
		ids = append(ids, id)
	}

	e.log.Info("spawned",
		zap.String("asset", name),
		zap.Int("count", count),
		zap.Float32("radius", radius),
	)
	return ids, nil
}

// randomPoint samples the ball of the given radius uniformly by rejection
// from the enclosing cube.
func (e *Engine) randomPoint(radius float32) math.Vec3 {
	for {
		p := math.V3(e.rng.Float32()*2-1, e.rng.Float32()*2-1, e.rng.Float32()*2-1)
		if p.Dot(p) <= 1 {
			return p.Scale(radius)
		}
	}
}

// DeleteByID removes id, its subtree and their spatial entries. Returns
// false for unknown ids.
func (e *Engine) DeleteByID(id uid.ID) bool {
	if !e.entities.Exists(id) {
		return false
	}
	e.entities.Walk(id, func(sub uid.ID, _ int) bool {
		e.unindex(sub)
		return true
	})
	return e.entities.Delete(id)
}

// DeleteEntity removes the entity with exactly this name and its subtree.
func (e *Engine) DeleteEntity(name string) bool {
	id, ok := e.entities.Lookup(name)
	if !ok {
		return false
	}
	return e.DeleteByID(id)
}

// DeleteAllEntities removes every entity whose name matches pattern (a
// trailing '*' matches by prefix) together with its subtree. It returns the
// number of entities removed, descendants included.
func (e *Engine) DeleteAllEntities(pattern string) int {
	var matched []uid.ID
	e.entities.ForAll(func(id uid.ID) bool {
		if command.Match(pattern, e.entities.Name(id)) {
			matched = append(matched, id)
		}
		return true
	})

	before := e.entities.Len()
	for _, id := range matched {
		// Descendants of an earlier match are already gone.
		e.DeleteByID(id)
	}
	removed := before - e.entities.Len()
	if removed > 0 {
		e.log.Info("deleted", zap.String("pattern", pattern), zap.Int("count", removed))
	}
	return removed
}
