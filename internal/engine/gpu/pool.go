package gpu

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-scene/pkg/pool"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// HandlePool binds GPU object names to owning entities. It is not safe for
// concurrent use; call it from the thread that owns the GL context.
type HandlePool struct {
	kind    string
	handles *pool.Keyed[uid.ID, uint32]
	log     *zap.Logger
}

// NewHandlePool creates a pool of names from alloc with room for capacity
// owners before it grows.
func NewHandlePool(kind string, alloc Allocator, capacity int, log *zap.Logger) *HandlePool {
	if log == nil {
		log = zap.NewNop()
	}
	return &HandlePool{
		kind: kind,
		handles: pool.NewKeyed[uid.ID](capacity,
			alloc.Generate,
			func(h *uint32) {
				if *h != 0 {
					alloc.Delete(*h)
				}
			}),
		log: log.With(zap.String("pool", kind)),
	}
}

// Acquire returns the name bound to owner, binding one on first use. fresh
// is true when the name was just bound and its storage must be
// (re)specified by the caller.
func (p *HandlePool) Acquire(owner uid.ID) (handle uint32, fresh bool) {
	h, fresh := p.handles.Acquire(owner)
	if fresh {
		p.log.Debug("handle bound", zap.Stringer("owner", owner), zap.Uint32("handle", *h))
	}
	return *h, fresh
}

// Get returns the name bound to owner.
func (p *HandlePool) Get(owner uid.ID) (uint32, bool) {
	h := p.handles.Get(owner)
	if h == nil {
		return 0, false
	}
	return *h, true
}

// Release unbinds owner. The name stays allocated for the next owner.
func (p *HandlePool) Release(owner uid.ID) bool {
	return p.handles.Release(owner)
}

// Retain releases every owner for which keep returns false and returns how
// many were released.
func (p *HandlePool) Retain(keep func(owner uid.ID) bool) int {
	var drop []uid.ID
	p.handles.ForEach(func(owner uid.ID, _ *uint32) {
		if !keep(owner) {
			drop = append(drop, owner)
		}
	})
	for _, owner := range drop {
		p.handles.Release(owner)
	}
	if len(drop) > 0 {
		p.log.Debug("handles released", zap.Int("count", len(drop)))
	}
	return len(drop)
}

// Len returns the number of bound names.
func (p *HandlePool) Len() int { return p.handles.Len() }

// Allocated returns the number of names generated, bound or spare.
func (p *HandlePool) Allocated() int { return p.handles.Count() }

// Clear deletes every generated name.
func (p *HandlePool) Clear() {
	p.log.Debug("clearing", zap.Int("allocated", p.handles.Count()))
	p.handles.Clear()
}

// Pools groups the handle pools a renderer needs. Attachments holds the
// colour textures of render targets, keyed by the owning camera, so they
// never collide with Texture components.
type Pools struct {
	Textures      *HandlePool
	Attachments   *HandlePool
	Framebuffers  *HandlePool
	Renderbuffers *HandlePool
}

// NewPools creates OpenGL-backed pools. Requires a current GL context.
func NewPools(capacity int, log *zap.Logger) *Pools {
	return NewPoolsWith(capacity, TextureAllocator{}, FramebufferAllocator{}, RenderbufferAllocator{}, log)
}

// NewPoolsWith creates pools over the given allocators.
func NewPoolsWith(capacity int, textures, framebuffers, renderbuffers Allocator, log *zap.Logger) *Pools {
	return &Pools{
		Textures:      NewHandlePool("texture", textures, capacity, log),
		Attachments:   NewHandlePool("attachment", textures, capacity, log),
		Framebuffers:  NewHandlePool("framebuffer", framebuffers, capacity, log),
		Renderbuffers: NewHandlePool("renderbuffer", renderbuffers, capacity, log),
	}
}

// Release unbinds owner from every pool.
func (p *Pools) Release(owner uid.ID) {
	p.Textures.Release(owner)
	p.Attachments.Release(owner)
	p.Framebuffers.Release(owner)
	p.Renderbuffers.Release(owner)
}

// Clear deletes every generated name in every pool.
func (p *Pools) Clear() {
	p.Textures.Clear()
	p.Attachments.Clear()
	p.Framebuffers.Clear()
	p.Renderbuffers.Clear()
}
