package gpu

import (
	"github.com/Faultbox/midgard-scene/internal/scene"
	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// SyncTextures gives every Texture component in s a texture name and
// releases the names of entities that were deleted or lost their texture.
// upload, if not nil, is called for each newly bound texture so the caller
// can specify its storage. Handle is 0 for textures without a name.
func SyncTextures(s *scene.Store, textures *HandlePool, upload func(id uid.ID, tex *component.Texture)) (bound, released int) {
	released = textures.Retain(func(owner uid.ID) bool {
		return scene.HasComponent[component.Texture](s, owner)
	})
	s.ForAll(func(id uid.ID) bool {
		tex := scene.GetComponent[component.Texture](s, id)
		if tex == nil {
			return true
		}
		h, fresh := textures.Acquire(id)
		tex.Handle = h
		if fresh {
			bound++
			if upload != nil {
				upload(id, tex)
			}
		}
		return true
	})
	return bound, released
}
