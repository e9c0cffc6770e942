package scene

import (
	"slices"

	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/internal/scene/transform"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// Kinds is the closed set of component types a Store accepts.
type Kinds interface {
	transform.Transform |
		component.Mesh |
		component.Material |
		component.Light |
		component.Camera |
		component.Texture |
		component.Skybox |
		component.Script |
		component.BoneData

	Kind() component.Kind
}

// AddComponent attaches a default-initialised C to id and returns it. If id
// already holds a C, that one is returned unchanged. Returns nil for unknown
// ids.
func AddComponent[C Kinds](s *Store, id uid.ID) *C {
	rec, ok := s.records[id]
	if !ok {
		return nil
	}
	var zero C
	k := zero.Kind()
	if p, ok := rec.components[k].(*C); ok {
		return p
	}
	p := new(C)
	setDefaults(p)
	rec.components[k] = p
	return p
}

// GetComponent returns the C attached to id, or nil.
func GetComponent[C Kinds](s *Store, id uid.ID) *C {
	rec, ok := s.records[id]
	if !ok {
		return nil
	}
	var zero C
	p, _ := rec.components[zero.Kind()].(*C)
	return p
}

// HasComponent reports whether id holds a C.
func HasComponent[C Kinds](s *Store, id uid.ID) bool {
	return GetComponent[C](s, id) != nil
}

// RemoveComponent detaches the C of id. Returns false if there was none.
func RemoveComponent[C Kinds](s *Store, id uid.ID) bool {
	rec, ok := s.records[id]
	if !ok {
		return false
	}
	var zero C
	k := zero.Kind()
	if rec.components[k] == nil {
		return false
	}
	rec.components[k] = nil
	if k == component.KindTransform {
		// Descendants now inherit the grandparent's world.
		for _, c := range rec.children {
			s.markDirty(c)
		}
	}
	return true
}

func setDefaults(p any) {
	switch v := p.(type) {
	case *transform.Transform:
		*v = transform.New()
	case *component.Material:
		*v = component.DefaultMaterial()
	case *component.Camera:
		*v = component.DefaultCamera()
	case *component.Light:
		*v = component.DefaultLight()
	}
}

// Component returns the component of kind k attached to id as a pointer
// wrapped in the Component interface, or nil.
func (s *Store) Component(id uid.ID, k component.Kind) component.Component {
	rec, ok := s.records[id]
	if !ok || k >= component.KindCount || rec.components[k] == nil {
		return nil
	}
	return rec.components[k].(component.Component)
}

// Components returns every component of id in kind order.
func (s *Store) Components(id uid.ID) []component.Component {
	rec, ok := s.records[id]
	if !ok {
		return nil
	}
	var out []component.Component
	for _, c := range rec.components {
		if c != nil {
			out = append(out, c.(component.Component))
		}
	}
	return out
}

// SetComponent stores a copy of c (a component value or pointer) on id,
// replacing any component of the same kind. Copied transforms are marked
// dirty and bone slices are cloned. Returns false for unknown ids.
func (s *Store) SetComponent(id uid.ID, c component.Component) bool {
	rec, ok := s.records[id]
	if !ok || c == nil {
		return false
	}

	var p any
	switch c.Kind() {
	case component.KindTransform:
		t := copyOf[transform.Transform](c)
		if t == nil {
			return false
		}
		t.MarkDirty()
		p = t
	case component.KindMesh:
		p = boxed(copyOf[component.Mesh](c))
	case component.KindMaterial:
		p = boxed(copyOf[component.Material](c))
	case component.KindLight:
		p = boxed(copyOf[component.Light](c))
	case component.KindCamera:
		p = boxed(copyOf[component.Camera](c))
	case component.KindTexture:
		p = boxed(copyOf[component.Texture](c))
	case component.KindSkybox:
		p = boxed(copyOf[component.Skybox](c))
	case component.KindScript:
		p = boxed(copyOf[component.Script](c))
	case component.KindBoneData:
		b := copyOf[component.BoneData](c)
		if b == nil {
			return false
		}
		b.Bones = slices.Clone(b.Bones)
		p = b
	}
	if p == nil {
		return false
	}
	rec.components[c.Kind()] = p
	return true
}

// copyOf returns a fresh copy of c when c is a C or *C.
func copyOf[C any](c component.Component) *C {
	switch v := any(c).(type) {
	case C:
		return &v
	case *C:
		if v == nil {
			return nil
		}
		cp := *v
		return &cp
	}
	return nil
}

// boxed keeps a nil *C from becoming a non-nil interface.
func boxed[C any](p *C) any {
	if p == nil {
		return nil
	}
	return p
}
