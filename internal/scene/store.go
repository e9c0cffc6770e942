// Package scene stores entities and assets: unique identifiers, unique
// names, a parent/child forest and sparse per-kind component data.
package scene

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/internal/scene/transform"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

var (
	// ErrUnknownID is returned for identifiers the store does not hold.
	ErrUnknownID = errors.New("unknown id")

	// ErrCyclicHierarchy is returned when a parent change would make an
	// entity its own ancestor.
	ErrCyclicHierarchy = errors.New("hierarchy change would create a cycle")
)

// DefaultName is used when Create is called with an empty name.
const DefaultName = "Entity"

type record struct {
	id         uid.ID
	name       string
	parent     uid.ID
	children   []uid.ID
	components [component.KindCount]any
}

// Store holds one namespace of entities (or assets). It is not safe for
// concurrent use.
type Store struct {
	namespace string
	records   map[uid.ID]*record
	names     map[string]uid.ID
	order     []uid.ID
	roots     []uid.ID
}

// New creates an empty store for the given namespace.
func New(namespace string) *Store {
	return &Store{
		namespace: namespace,
		records:   make(map[uid.ID]*record),
		names:     make(map[string]uid.ID),
	}
}

// Namespace returns the store namespace.
func (s *Store) Namespace() string { return s.namespace }

// Len returns the number of stored entities.
func (s *Store) Len() int { return len(s.records) }

// Create adds a root entity. If name is already taken the lowest unused
// integer suffix is appended ("Cube", "Cube0", "Cube1", ...); the assigned
// name is returned.
func (s *Store) Create(name string) (uid.ID, string) {
	if name == "" {
		name = DefaultName
	}
	name = s.uniqueName(name)

	id := uid.Generate()
	for _, taken := s.records[id]; taken; _, taken = s.records[id] {
		id = uid.Generate()
	}

	s.records[id] = &record{id: id, name: name}
	s.names[name] = id
	s.order = append(s.order, id)
	s.roots = append(s.roots, id)
	return id, name
}

func (s *Store) uniqueName(name string) string {
	if _, taken := s.names[name]; !taken {
		return name
	}
	for i := 0; ; i++ {
		candidate := name + strconv.Itoa(i)
		if _, taken := s.names[candidate]; !taken {
			return candidate
		}
	}
}

// Delete removes id and its whole subtree. Returns false for unknown ids.
func (s *Store) Delete(id uid.ID) bool {
	rec, ok := s.records[id]
	if !ok {
		return false
	}
	s.unlink(rec)

	stack := []uid.ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r := s.records[cur]
		stack = append(stack, r.children...)
		delete(s.names, r.name)
		delete(s.records, cur)
		clear(r.components[:])
	}

	s.order = slices.DeleteFunc(s.order, func(x uid.ID) bool {
		_, alive := s.records[x]
		return !alive
	})
	return true
}

// Exists reports whether id is stored.
func (s *Store) Exists(id uid.ID) bool {
	_, ok := s.records[id]
	return ok
}

// Name returns the entity name, or "" for unknown ids.
func (s *Store) Name(id uid.ID) string {
	if rec, ok := s.records[id]; ok {
		return rec.name
	}
	return ""
}

// Lookup finds an entity by exact name.
func (s *Store) Lookup(name string) (uid.ID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Rename changes the entity name. It fails without changing anything when
// id is unknown, name is empty or name belongs to another entity.
func (s *Store) Rename(id uid.ID, name string) bool {
	rec, ok := s.records[id]
	if !ok || name == "" {
		return false
	}
	if owner, taken := s.names[name]; taken {
		return owner == id
	}
	delete(s.names, rec.name)
	rec.name = name
	s.names[name] = id
	return true
}

// Parent returns the parent of id, or uid.Invalid for roots and unknown ids.
func (s *Store) Parent(id uid.ID) uid.ID {
	if rec, ok := s.records[id]; ok {
		return rec.parent
	}
	return uid.Invalid
}

// Children returns the ordered children of id. The slice must not be
// modified.
func (s *Store) Children(id uid.ID) []uid.ID {
	if rec, ok := s.records[id]; ok {
		return rec.children
	}
	return nil
}

// Roots returns the entities without a parent in creation order. The slice
// must not be modified.
func (s *Store) Roots() []uid.ID {
	return s.roots
}

// IsAncestor reports whether ancestor is a strict ancestor of id.
func (s *Store) IsAncestor(ancestor, id uid.ID) bool {
	for cur := s.Parent(id); cur.IsValid(); cur = s.Parent(cur) {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// AddChild makes child the last child of parent, detaching it from its
// previous parent. It fails with ErrCyclicHierarchy, changing nothing, when
// child is parent or one of its ancestors.
func (s *Store) AddChild(parent, child uid.ID) error {
	p, ok := s.records[parent]
	if !ok {
		return fmt.Errorf("add child to %v: %w", parent, ErrUnknownID)
	}
	c, ok := s.records[child]
	if !ok {
		return fmt.Errorf("add child %v: %w", child, ErrUnknownID)
	}
	if parent == child || s.IsAncestor(child, parent) {
		return fmt.Errorf("add %q under %q: %w", c.name, p.name, ErrCyclicHierarchy)
	}
	if c.parent == parent {
		return nil
	}

	s.unlink(c)
	c.parent = parent
	p.children = append(p.children, child)
	s.roots = slices.DeleteFunc(s.roots, func(x uid.ID) bool { return x == child })
	s.markDirty(child)
	return nil
}

// Detach turns child into a root. Returns false for unknown ids.
func (s *Store) Detach(child uid.ID) bool {
	c, ok := s.records[child]
	if !ok {
		return false
	}
	if !c.parent.IsValid() {
		return true
	}
	s.unlink(c)
	s.roots = append(s.roots, child)
	s.markDirty(child)
	return true
}

// SetParent is AddChild, or Detach when parent is uid.Invalid.
func (s *Store) SetParent(child, parent uid.ID) error {
	if !parent.IsValid() {
		if !s.Detach(child) {
			return fmt.Errorf("detach %v: %w", child, ErrUnknownID)
		}
		return nil
	}
	return s.AddChild(parent, child)
}

// unlink removes rec from its parent's child list or from the roots.
func (s *Store) unlink(rec *record) {
	if !rec.parent.IsValid() {
		s.roots = slices.DeleteFunc(s.roots, func(x uid.ID) bool { return x == rec.id })
		return
	}
	if p, ok := s.records[rec.parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(x uid.ID) bool { return x == rec.id })
	}
	rec.parent = uid.Invalid
}

// markDirty forces the transforms under id to be recomputed. Only the
// nearest transform on each path needs the bump; the pass carries the
// change further down.
func (s *Store) markDirty(id uid.ID) {
	stack := []uid.ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t := s.Transform(cur); t != nil {
			t.MarkDirty()
			continue
		}
		stack = append(stack, s.Children(cur)...)
	}
}

// ForAll calls yield for every entity in creation order until yield returns
// false. The store must not be modified during the walk.
func (s *Store) ForAll(yield func(uid.ID) bool) {
	for _, id := range s.order {
		if !yield(id) {
			return
		}
	}
}

// ForEachRoot calls yield for every root entity until yield returns false.
func (s *Store) ForEachRoot(yield func(uid.ID) bool) {
	for _, id := range s.roots {
		if !yield(id) {
			return
		}
	}
}

// ForEachChild calls yield for every direct child of id until yield returns
// false.
func (s *Store) ForEachChild(id uid.ID, yield func(uid.ID) bool) {
	for _, c := range s.Children(id) {
		if !yield(c) {
			return
		}
	}
}

// Walk visits id and its descendants in pre-order (parent before children,
// children in order) until fn returns false. Depth is 0 for id.
func (s *Store) Walk(id uid.ID, fn func(id uid.ID, depth int) bool) {
	type item struct {
		id    uid.ID
		depth int
	}
	if !s.Exists(id) {
		return
	}
	stack := []item{{id, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.id, it.depth) {
			return
		}
		children := s.Children(it.id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{children[i], it.depth + 1})
		}
	}
}

// Transform returns the Transform component of id, or nil. It lets the
// store serve as a transform.Hierarchy.
func (s *Store) Transform(id uid.ID) *transform.Transform {
	return GetComponent[transform.Transform](s, id)
}

var _ transform.Hierarchy = (*Store)(nil)
