package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/midgard-scene/internal/scene"
	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// fakeAllocator hands out increasing names and records deletions.
type fakeAllocator struct {
	next    uint32
	deleted []uint32
}

func (a *fakeAllocator) Generate() uint32 {
	a.next++
	return a.next
}

func (a *fakeAllocator) Delete(h uint32) { a.deleted = append(a.deleted, h) }

func TestHandlePoolReusesReleasedNames(t *testing.T) {
	alloc := &fakeAllocator{}
	p := NewHandlePool("texture", alloc, 2, zaptest.NewLogger(t))

	a, b, c := uid.Generate(), uid.Generate(), uid.Generate()
	ha, fresh := p.Acquire(a)
	require.True(t, fresh)
	hb, _ := p.Acquire(b)
	assert.NotEqual(t, ha, hb)

	again, fresh := p.Acquire(a)
	assert.False(t, fresh)
	assert.Equal(t, ha, again)

	require.True(t, p.Release(a))
	assert.False(t, p.Release(a), "double release")

	// b moved into a's slot but keeps its name.
	got, ok := p.Get(b)
	require.True(t, ok)
	assert.Equal(t, hb, got)

	hc, fresh := p.Acquire(c)
	assert.True(t, fresh)
	assert.Equal(t, ha, hc, "released name is handed to the next owner")
	assert.Equal(t, uint32(2), alloc.next, "no new name generated")
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 2, p.Allocated())

	p.Clear()
	assert.ElementsMatch(t, []uint32{1, 2}, alloc.deleted)
	assert.Equal(t, 0, p.Len())
}

func TestHandlePoolRetain(t *testing.T) {
	p := NewHandlePool("framebuffer", &fakeAllocator{}, 4, nil)
	keep := map[uid.ID]bool{}
	var ids []uid.ID
	for i := 0; i < 5; i++ {
		id := uid.Generate()
		ids = append(ids, id)
		keep[id] = i%2 == 0
		p.Acquire(id)
	}

	assert.Equal(t, 2, p.Retain(func(id uid.ID) bool { return keep[id] }))
	assert.Equal(t, 3, p.Len())
	for _, id := range ids {
		_, ok := p.Get(id)
		assert.Equal(t, keep[id], ok)
	}
}

func TestPoolsReleaseOwner(t *testing.T) {
	ps := NewPoolsWith(2, &fakeAllocator{}, &fakeAllocator{}, &fakeAllocator{}, nil)
	cam := uid.Generate()
	ps.Framebuffers.Acquire(cam)
	ps.Attachments.Acquire(cam)
	ps.Renderbuffers.Acquire(cam)

	ps.Release(cam)
	assert.Equal(t, 0, ps.Framebuffers.Len())
	assert.Equal(t, 0, ps.Attachments.Len())
	assert.Equal(t, 0, ps.Renderbuffers.Len())
	assert.Equal(t, 1, ps.Framebuffers.Allocated())
}

func TestSyncTextures(t *testing.T) {
	s := scene.New("entities")
	alloc := &fakeAllocator{}
	textures := NewHandlePool("texture", alloc, 2, zaptest.NewLogger(t))

	grass, _ := s.Create("Grass")
	rock, _ := s.Create("Rock")
	s.Create("Empty")
	scene.AddComponent[component.Texture](s, grass).Width = 64
	scene.AddComponent[component.Texture](s, rock)

	var uploaded []uid.ID
	upload := func(id uid.ID, tex *component.Texture) {
		assert.NotZero(t, tex.Handle)
		uploaded = append(uploaded, id)
	}

	bound, released := SyncTextures(s, textures, upload)
	assert.Equal(t, 2, bound)
	assert.Equal(t, 0, released)
	assert.Equal(t, []uid.ID{grass, rock}, uploaded)

	bound, _ = SyncTextures(s, textures, upload)
	assert.Equal(t, 0, bound, "already bound textures are not uploaded again")

	grassHandle := scene.GetComponent[component.Texture](s, grass).Handle
	require.True(t, s.Delete(grass))
	moss, _ := s.Create("Moss")
	scene.AddComponent[component.Texture](s, moss)

	bound, released = SyncTextures(s, textures, nil)
	assert.Equal(t, 1, bound)
	assert.Equal(t, 1, released)
	assert.Equal(t, grassHandle, scene.GetComponent[component.Texture](s, moss).Handle)
	assert.Equal(t, uint32(2), alloc.next)
}
