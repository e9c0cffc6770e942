// Package component defines the closed set of component kinds that can be
// attached to scene entities.
package component

import (
	"github.com/Faultbox/midgard-scene/pkg/math"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// Kind tags a component type.
type Kind uint8

const (
	KindTransform Kind = iota
	KindMesh
	KindMaterial
	KindLight
	KindCamera
	KindTexture
	KindSkybox
	KindScript
	KindBoneData

	// KindCount is the number of component kinds.
	KindCount
)

var kindNames = [KindCount]string{
	"Transform", "Mesh", "Material", "Light", "Camera", "Texture", "Skybox", "Script", "BoneData",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// Component is implemented by every component payload. Switch on Kind()
// to dispatch.
type Component interface {
	Kind() Kind
}

// Mesh references renderable geometry and its local-space bounds.
type Mesh struct {
	Source      uid.ID // mesh asset the geometry was imported from
	Bounds      math.BoundingBox
	VertexCount int
	IndexCount  int
}

// Material holds surface parameters.
type Material struct {
	Albedo    [4]float32
	Metallic  float32
	Roughness float32
	AlbedoMap uid.ID // entity holding the Texture component, or Invalid
}

// LightType selects the light model.
type LightType uint8

const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
)

// Light is a light source placed by the entity transform.
type Light struct {
	Type      LightType
	Color     [3]float32
	Intensity float32
	Range     float32
}

// Camera is a perspective camera placed by the entity transform.
type Camera struct {
	FovY    float32 // radians
	Aspect  float32
	Near    float32
	Far     float32
	Primary bool
}

// Projection returns the camera projection matrix.
func (c Camera) Projection() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * inverse(world). ok is false when the
// camera world matrix is singular.
func (c Camera) ViewProjection(world math.Mat4) (vp math.Mat4, ok bool) {
	view, ok := world.Inverse()
	if !ok {
		return math.Identity(), false
	}
	return c.Projection().Mul(view), true
}

// Texture describes an image to be uploaded by the renderer. Handle is the
// GPU object name once resident, 0 otherwise.
type Texture struct {
	Path   string
	Width  int
	Height int
	Handle uint32
}

// Skybox references the cubemap texture entity used as background.
type Skybox struct {
	Cubemap  uid.ID
	Exposure float32
}

// Script binds a named behaviour to the entity.
type Script struct {
	Name    string
	Enabled bool
}

// Bone is one joint of a skeleton.
type Bone struct {
	Name   string
	Parent int // index into BoneData.Bones, -1 for the root
	Offset math.Mat4
}

// BoneData holds a skeleton for skinned meshes.
type BoneData struct {
	Bones []Bone
}

func (Mesh) Kind() Kind     { return KindMesh }
func (Material) Kind() Kind { return KindMaterial }
func (Light) Kind() Kind    { return KindLight }
func (Camera) Kind() Kind   { return KindCamera }
func (Texture) Kind() Kind  { return KindTexture }
func (Skybox) Kind() Kind   { return KindSkybox }
func (Script) Kind() Kind   { return KindScript }
func (BoneData) Kind() Kind { return KindBoneData }

// DefaultMaterial returns an opaque white dielectric.
func DefaultMaterial() Material {
	return Material{Albedo: [4]float32{1, 1, 1, 1}, Roughness: 0.5}
}

// DefaultCamera returns a 60 degree camera for a 16:9 viewport.
func DefaultCamera() Camera {
	return Camera{FovY: 1.0471976, Aspect: 16.0 / 9.0, Near: 0.1, Far: 1000}
}

// DefaultLight returns a white point light.
func DefaultLight() Light {
	return Light{Type: LightPoint, Color: [3]float32{1, 1, 1}, Intensity: 1, Range: 10}
}
