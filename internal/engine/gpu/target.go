package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// Target is an offscreen render target with a colour texture and a depth
// renderbuffer. Its names come from Pools and go back there on Release.
type Target struct {
	owner  uid.ID
	pools  *Pools
	fbo    uint32
	color  uint32
	depth  uint32
	width  int32
	height int32
}

// NewTarget binds a render target to owner (usually a camera entity).
func NewTarget(pools *Pools, owner uid.ID, width, height int32) (*Target, error) {
	t := &Target{
		owner:  owner,
		pools:  pools,
		width:  max(width, 1),
		height: max(height, 1),
	}
	t.fbo, _ = pools.Framebuffers.Acquire(owner)
	t.color, _ = pools.Attachments.Acquire(owner)
	t.depth, _ = pools.Renderbuffers.Acquire(owner)

	if err := t.create(); err != nil {
		t.Release()
		return nil, fmt.Errorf("creating render target for %v: %w", owner, err)
	}
	return t, nil
}

func (t *Target) create() error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	// Names may be reused from another owner, so storage is always
	// respecified.
	t.specify()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.color, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

func (t *Target) specify() {
	gl.BindTexture(gl.TEXTURE_2D, t.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, t.width, t.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, t.width, t.height)
}

// Bind makes the target current and sets the viewport to cover it.
func (t *Target) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, t.width, t.height)
}

// Unbind restores the default framebuffer.
func (t *Target) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Clear clears colour and depth of the bound target.
func (t *Target) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Resize respecifies the attachments when the size changed.
func (t *Target) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	if width == t.width && height == t.height {
		return
	}
	t.width, t.height = width, height
	t.specify()
}

// BlitToScreen copies the colour attachment onto the default framebuffer.
func (t *Target) BlitToScreen(width, height int32) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, t.width, t.height, 0, 0, width, height, gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ColorTexture returns the colour attachment name.
func (t *Target) ColorTexture() uint32 { return t.color }

// Size returns the target dimensions.
func (t *Target) Size() (width, height int32) { return t.width, t.height }

// Release hands the names back to the pools.
func (t *Target) Release() {
	t.pools.Framebuffers.Release(t.owner)
	t.pools.Attachments.Release(t.owner)
	t.pools.Renderbuffers.Release(t.owner)
	t.fbo, t.color, t.depth = 0, 0, 0
}

// SpecifyTexture allocates empty RGBA8 storage for tex. It has the shape
// SyncTextures expects for its upload callback.
func SpecifyTexture(_ uid.ID, tex *component.Texture) {
	w, h := int32(max(tex.Width, 1)), int32(max(tex.Height, 1))
	gl.BindTexture(gl.TEXTURE_2D, tex.Handle)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}
