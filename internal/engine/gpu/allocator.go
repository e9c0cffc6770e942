// Package gpu keeps OpenGL object names for scene entities in reusable
// pools. Released names are handed to the next owner instead of being
// deleted, so steady-state spawning and deleting never touches the driver.
package gpu

import "github.com/go-gl/gl/v4.1-core/gl"

// Allocator creates and deletes one kind of GPU object name.
type Allocator interface {
	Generate() uint32
	Delete(handle uint32)
}

// TextureAllocator allocates texture names. Requires a current GL context.
type TextureAllocator struct{}

func (TextureAllocator) Generate() uint32 {
	var h uint32
	gl.GenTextures(1, &h)
	return h
}

func (TextureAllocator) Delete(h uint32) { gl.DeleteTextures(1, &h) }

// FramebufferAllocator allocates framebuffer object names.
type FramebufferAllocator struct{}

func (FramebufferAllocator) Generate() uint32 {
	var h uint32
	gl.GenFramebuffers(1, &h)
	return h
}

func (FramebufferAllocator) Delete(h uint32) { gl.DeleteFramebuffers(1, &h) }

// RenderbufferAllocator allocates renderbuffer names.
type RenderbufferAllocator struct{}

func (RenderbufferAllocator) Generate() uint32 {
	var h uint32
	gl.GenRenderbuffers(1, &h)
	return h
}

func (RenderbufferAllocator) Delete(h uint32) { gl.DeleteRenderbuffers(1, &h) }
