// Package engine ties the asset and entity stores, the transform graph and
// the spatial index into one context driven by the frame loop.
//
// Nothing in the engine is safe for concurrent use except Post, which hands
// work from other goroutines to the next Step.
package engine

import (
	"errors"
	"maps"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-scene/internal/config"
	"github.com/Faultbox/midgard-scene/internal/scene"
	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/internal/scene/transform"
	"github.com/Faultbox/midgard-scene/pkg/math"
	"github.com/Faultbox/midgard-scene/pkg/octree"
	"github.com/Faultbox/midgard-scene/pkg/queue"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

var (
	// ErrAssetNotFound is returned when an asset name or id is unknown.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidArgument is returned for out-of-range counts or radii.
	ErrInvalidArgument = errors.New("invalid argument")
)

// FrameStats reports what one Step did.
type FrameStats struct {
	Frame      uint64
	Events     int // events drained
	Propagated int // transforms recomputed
	Indexed    int // spatial entries refreshed
	Rejected   int // mesh bounds outside the spatial index
}

// Engine is the scene context passed to everything that needs the scene.
type Engine struct {
	cfg config.SceneConfig
	log *zap.Logger

	assets   *scene.Store
	entities *scene.Store
	graph    *transform.Graph
	spatial  *octree.Octree[uid.ID]
	outside  map[uid.ID]struct{}

	events *queue.Queue[Event]
	rng    *rand.Rand

	frame uint64
	stats FrameStats
}

// New creates an engine. A zero cfg.Seed picks a random seed.
func New(cfg config.SceneConfig, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	center := math.V3(cfg.OctreeCenter[0], cfg.OctreeCenter[1], cfg.OctreeCenter[2])
	half := math.V3(cfg.OctreeHalfExtent, cfg.OctreeHalfExtent, cfg.OctreeHalfExtent)

	e := &Engine{
		cfg:      cfg,
		log:      log,
		assets:   scene.New("assets"),
		entities: scene.New("entities"),
		spatial:  octree.New[uid.ID](center, half, cfg.OctreeThreshold, cfg.OctreeMaxDepth),
		outside:  make(map[uid.ID]struct{}),
		events:   queue.New[Event](cfg.PoolCapacity),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	e.graph = transform.NewGraph(e.entities)

	log.Info("engine created",
		zap.Uint64("seed", seed),
		zap.Stringer("spatial_bounds", e.spatial.Bounds()),
		zap.Int("octree_threshold", cfg.OctreeThreshold),
		zap.Int("octree_max_depth", cfg.OctreeMaxDepth),
	)
	return e
}

// Assets returns the asset store. Assets are templates and are never
// propagated or indexed.
func (e *Engine) Assets() *scene.Store { return e.assets }

// Entities returns the live entity store.
func (e *Engine) Entities() *scene.Store { return e.entities }

// Graph returns the transform graph over the entities.
func (e *Engine) Graph() *transform.Graph { return e.graph }

// Spatial returns the spatial index of mesh entities.
func (e *Engine) Spatial() *octree.Octree[uid.ID] { return e.spatial }

// Frame returns the number of completed steps.
func (e *Engine) Frame() uint64 { return e.frame }

// Post queues ev for the next Step. Safe for concurrent use.
func (e *Engine) Post(ev Event) {
	e.events.Push(ev)
}

// Step runs one frame: drains posted events, propagates transforms and
// refreshes the spatial entries of every mesh whose world matrix changed.
func (e *Engine) Step() FrameStats {
	e.stats = FrameStats{Frame: e.frame}
	e.stats.Events = e.events.Drain(func(ev Event) { ev.apply(e) })
	e.stats.Propagated = e.graph.Propagate(e.reindex)
	e.frame++

	if e.stats.Propagated > 0 {
		e.log.Debug("frame",
			zap.Uint64("frame", e.stats.Frame),
			zap.Int("events", e.stats.Events),
			zap.Int("propagated", e.stats.Propagated),
			zap.Int("indexed", e.stats.Indexed),
			zap.Int("rejected", e.stats.Rejected),
		)
	}
	return e.stats
}

// reindex moves the spatial entry of id to its mesh bounds under world.
// Entities without a Mesh are dropped from the index.
func (e *Engine) reindex(id uid.ID, world math.Mat4) {
	mesh := scene.GetComponent[component.Mesh](e.entities, id)
	if mesh == nil {
		e.unindex(id)
		return
	}
	bounds := mesh.Bounds.Transform(world)
	if e.spatial.Update(id, bounds) {
		delete(e.outside, id)
		e.stats.Indexed++
		return
	}

	e.stats.Rejected++
	if _, known := e.outside[id]; !known {
		e.outside[id] = struct{}{}
		e.log.Warn("entity outside spatial bounds",
			zap.String("entity", e.entities.Name(id)),
			zap.Stringer("bounds", bounds),
			zap.Stringer("spatial_bounds", e.spatial.Bounds()),
		)
	}
}

// Reindex recomputes the spatial entry of id from its current world matrix,
// for example after its Mesh bounds were edited or its Mesh or Transform was
// removed. Only entities with both are indexed. It reports whether id is
// indexed afterwards.
func (e *Engine) Reindex(id uid.ID) bool {
	world, ok := e.graph.World(id)
	if !ok {
		e.unindex(id)
		return false
	}
	e.reindex(id, world)
	return e.spatial.Has(id)
}

func (e *Engine) unindex(id uid.ID) {
	e.spatial.Remove(id)
	delete(e.outside, id)
}

// OutOfBounds returns the mesh entities whose bounds did not fit the
// spatial index on their last update.
func (e *Engine) OutOfBounds() []uid.ID {
	return slices.Sorted(maps.Keys(e.outside))
}
