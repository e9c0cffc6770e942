// Package octree provides a bounded-depth spatial index over axis-aligned
// bounding boxes.
//
// Items are kept at the shallowest node whose region fully contains their
// bounds. A node subdivides when it would hold more than the threshold and
// it is not at the maximum depth; children are created only when an item
// is pushed into them. Boxes that touch a splitting plane stay at the
// parent.
package octree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Faultbox/midgard-scene/pkg/math"
)

type entry[T comparable] struct {
	item   T
	bounds math.BoundingBox
}

type node[T comparable] struct {
	region   math.BoundingBox
	depth    int
	split    bool
	items    []entry[T]
	children [8]*node[T]
}

// Octree indexes items of type T by their bounds. It is not safe for
// concurrent use.
type Octree[T comparable] struct {
	root      *node[T]
	threshold int
	maxDepth  int
	index     map[T]*node[T]
}

// Stats summarises the tree shape.
type Stats struct {
	Nodes    int
	Items    int
	MaxDepth int // deepest node that exists
}

// New creates an octree whose root covers center ± halfExtent. A node
// subdivides once it would hold more than threshold items, down to
// maxDepth (the root is depth 0).
func New[T comparable](center, halfExtent math.Vec3, threshold, maxDepth int) *Octree[T] {
	if threshold < 1 {
		threshold = 1
	}
	if maxDepth < 0 {
		maxDepth = 0
	}
	region := math.BoundingBox{Min: center.Sub(halfExtent), Max: center.Add(halfExtent)}
	return &Octree[T]{
		root:      &node[T]{region: region},
		threshold: threshold,
		maxDepth:  maxDepth,
		index:     make(map[T]*node[T]),
	}
}

// Bounds returns the root region.
func (o *Octree[T]) Bounds() math.BoundingBox { return o.root.region }

// Len returns the number of stored items.
func (o *Octree[T]) Len() int { return len(o.index) }

// Has reports whether item is stored.
func (o *Octree[T]) Has(item T) bool {
	_, ok := o.index[item]
	return ok
}

// Get returns the bounds stored for item.
func (o *Octree[T]) Get(item T) (math.BoundingBox, bool) {
	n, ok := o.index[item]
	if !ok {
		return math.BoundingBox{}, false
	}
	for _, e := range n.items {
		if e.item == item {
			return e.bounds, true
		}
	}
	return math.BoundingBox{}, false
}

// Insert stores item with bounds. It returns false, leaving the tree
// untouched, when bounds is invalid or not fully inside the root region.
// Inserting an item that is already stored replaces its bounds.
func (o *Octree[T]) Insert(item T, bounds math.BoundingBox) bool {
	if !bounds.Valid() || !o.root.region.Contains(bounds) {
		return false
	}
	if _, ok := o.index[item]; ok {
		o.Remove(item)
	}
	o.place(o.root, entry[T]{item: item, bounds: bounds})
	return true
}

// place descends from n to the node that keeps e, subdividing full nodes on
// the way.
func (o *Octree[T]) place(n *node[T], e entry[T]) {
	for {
		if !n.split && n.depth < o.maxDepth && len(n.items) >= o.threshold {
			o.subdivide(n)
		}
		if !n.split {
			break
		}
		oct, ok := octant(n.region, e.bounds)
		if !ok {
			break
		}
		n = o.child(n, oct)
	}
	n.items = append(n.items, e)
	o.index[e.item] = n
}

// subdivide marks n as split and pushes down every item that fits a single
// octant.
func (o *Octree[T]) subdivide(n *node[T]) {
	n.split = true
	held := n.items
	n.items = nil
	for _, e := range held {
		if oct, ok := octant(n.region, e.bounds); ok {
			o.place(o.child(n, oct), e)
			continue
		}
		n.items = append(n.items, e)
	}
}

func (o *Octree[T]) child(n *node[T], oct int) *node[T] {
	if c := n.children[oct]; c != nil {
		return c
	}
	c := &node[T]{region: octantRegion(n.region, oct), depth: n.depth + 1}
	n.children[oct] = c
	return c
}

// octant returns the child index (bit 0 = +X, bit 1 = +Y, bit 2 = +Z) whose
// region holds b. ok is false when b touches or crosses a splitting plane.
func octant(region, b math.BoundingBox) (int, bool) {
	c := region.Center()
	oct := 0
	for axis := 0; axis < 3; axis++ {
		mid := c.Axis(axis)
		switch {
		case b.Max.Axis(axis) < mid:
		case b.Min.Axis(axis) > mid:
			oct |= 1 << axis
		default:
			return 0, false
		}
	}
	return oct, true
}

func octantRegion(region math.BoundingBox, oct int) math.BoundingBox {
	c := region.Center()
	r := math.BoundingBox{Min: region.Min, Max: c}
	if oct&1 != 0 {
		r.Min.X, r.Max.X = c.X, region.Max.X
	}
	if oct&2 != 0 {
		r.Min.Y, r.Max.Y = c.Y, region.Max.Y
	}
	if oct&4 != 0 {
		r.Min.Z, r.Max.Z = c.Z, region.Max.Z
	}
	return r
}

// Remove deletes item. Empty nodes are kept for reuse.
func (o *Octree[T]) Remove(item T) bool {
	n, ok := o.index[item]
	if !ok {
		return false
	}
	n.items = slices.DeleteFunc(n.items, func(e entry[T]) bool { return e.item == item })
	delete(o.index, item)
	return true
}

// Update moves item to new bounds. When the new bounds are rejected the
// item is removed and false is returned.
func (o *Octree[T]) Update(item T, bounds math.BoundingBox) bool {
	if o.Insert(item, bounds) {
		return true
	}
	o.Remove(item)
	return false
}

// Clear removes every item and node except the root.
func (o *Octree[T]) Clear() {
	o.root = &node[T]{region: o.root.region}
	clear(o.index)
}

// Query calls fn for every item whose bounds intersect volume until fn
// returns false.
func (o *Octree[T]) Query(volume math.BoundingBox, fn func(item T, bounds math.BoundingBox) bool) {
	o.QueryFunc(volume.Intersects, fn)
}

// QueryFunc walks every node whose region passes test and calls fn for the
// items whose bounds pass test, until fn returns false. Node order is
// unspecified.
func (o *Octree[T]) QueryFunc(test func(math.BoundingBox) bool, fn func(item T, bounds math.BoundingBox) bool) {
	stack := make([]*node[T], 1, 16)
	stack[0] = o.root
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !test(n.region) {
			continue
		}
		for _, e := range n.items {
			if test(e.bounds) && !fn(e.item, e.bounds) {
				return
			}
		}
		for _, c := range n.children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// Stats walks the tree and reports its shape.
func (o *Octree[T]) Stats() Stats {
	var s Stats
	o.walk(func(n *node[T]) {
		s.Nodes++
		s.Items += len(n.items)
		s.MaxDepth = max(s.MaxDepth, n.depth)
	})
	return s
}

// walk visits nodes in pre-order, children in octant order.
func (o *Octree[T]) walk(fn func(*node[T])) {
	stack := []*node[T]{o.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(n)
		for i := len(n.children) - 1; i >= 0; i-- {
			if c := n.children[i]; c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// String dumps the occupancy of every node, one line per node, indented
// by depth.
func (o *Octree[T]) String() string {
	var sb strings.Builder
	o.walk(func(n *node[T]) {
		fmt.Fprintf(&sb, "%s%d %v items=%d\n", strings.Repeat("  ", n.depth), n.depth, n.region, len(n.items))
	})
	return sb.String()
}
