package octree

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-scene/pkg/math"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) math.BoundingBox {
	return math.BoundingBox{Min: math.V3(minX, minY, minZ), Max: math.V3(maxX, maxY, maxZ)}
}

func cube(lo, hi float32) math.BoundingBox {
	return box(lo, lo, lo, hi, hi, hi)
}

func unitTree(threshold, maxDepth int) *Octree[int] {
	return New[int](math.V3(0.5, 0.5, 0.5), math.V3(0.5, 0.5, 0.5), threshold, maxDepth)
}

func TestInsertContainment(t *testing.T) {
	o := unitTree(4, 3)

	assert.False(t, o.Insert(1, cube(-0.5, 0.5)), "partially outside")
	assert.Equal(t, 0, o.Len())
	assert.True(t, o.Insert(2, cube(0.1, 0.9)), "fully inside")
	assert.False(t, o.Insert(3, cube(2, 4)), "fully outside")

	assert.True(t, o.Insert(4, cube(0, 1)), "root region itself is accepted")
	assert.False(t, o.Insert(5, box(0.5, 0.5, 0.5, 0.4, 0.6, 0.6)), "inverted")
	assert.Equal(t, 2, o.Len())
}

func TestSubdivideCascades(t *testing.T) {
	o := unitTree(1, 2)

	require.True(t, o.Insert(1, cube(0.1, 0.2)))
	assert.Equal(t, Stats{Nodes: 1, Items: 1, MaxDepth: 0}, o.Stats())

	require.True(t, o.Insert(2, cube(0.6, 0.7)))
	assert.Equal(t, Stats{Nodes: 3, Items: 2, MaxDepth: 1}, o.Stats())

	// Straddles the root centre on every axis.
	require.True(t, o.Insert(3, cube(0.4, 0.6)))
	assert.Equal(t, 3, o.Stats().Nodes)

	require.True(t, o.Insert(4, cube(0.05, 0.1)))
	assert.Equal(t, Stats{Nodes: 4, Items: 4, MaxDepth: 2}, o.Stats())
}

func TestOnPlaneItemsStayAtParent(t *testing.T) {
	o := unitTree(1, 3)
	require.True(t, o.Insert(1, cube(0.1, 0.2)))
	require.True(t, o.Insert(2, box(0.5, 0.6, 0.6, 0.7, 0.7, 0.7)))

	want := "0 [0 0 0]-[1 1 1] items=1\n" +
		"  1 [0 0 0]-[0.5 0.5 0.5] items=1\n"
	assert.Equal(t, want, o.String())
}

func TestMaxDepthDegradesToList(t *testing.T) {
	o := unitTree(1, 0)
	for i := 0; i < 10; i++ {
		require.True(t, o.Insert(i, cube(0.1, 0.2)))
	}
	s := o.Stats()
	assert.Equal(t, 1, s.Nodes)
	assert.Equal(t, 10, s.Items)
}

func TestQuery(t *testing.T) {
	o := unitTree(2, 4)
	rng := rand.New(rand.NewPCG(1, 2))
	boxes := make(map[int]math.BoundingBox)
	for i := 0; i < 200; i++ {
		lo := math.V3(rng.Float32()*0.9, rng.Float32()*0.9, rng.Float32()*0.9)
		b := math.BoundingBox{Min: lo, Max: lo.Add(math.V3(0.05, 0.05, 0.05))}
		require.True(t, o.Insert(i, b))
		boxes[i] = b
	}
	require.Greater(t, o.Stats().Nodes, 1)

	volume := box(0.2, 0.2, 0.2, 0.5, 0.6, 0.7)
	var want []int
	for i, b := range boxes {
		if volume.Intersects(b) {
			want = append(want, i)
		}
	}
	var got []int
	o.Query(volume, func(item int, b math.BoundingBox) bool {
		assert.Equal(t, boxes[item], b)
		got = append(got, item)
		return true
	})
	slices.Sort(want)
	slices.Sort(got)
	assert.Equal(t, want, got)

	calls := 0
	o.Query(cube(0, 1), func(int, math.BoundingBox) bool {
		calls++
		return calls < 3
	})
	assert.Equal(t, 3, calls, "query stops when fn returns false")
}

func TestQueryFuncRay(t *testing.T) {
	o := unitTree(1, 3)
	require.True(t, o.Insert(1, cube(0.1, 0.2)))
	require.True(t, o.Insert(2, cube(0.8, 0.9)))
	require.True(t, o.Insert(3, box(0.1, 0.8, 0.1, 0.2, 0.9, 0.2)))

	ray := math.Ray{Origin: math.V3(-1, -1, -1), Direction: math.V3(1, 1, 1).Normalize()}
	var hits []int
	o.QueryFunc(func(b math.BoundingBox) bool {
		_, hit := ray.IntersectBox(b)
		return hit
	}, func(item int, _ math.BoundingBox) bool {
		hits = append(hits, item)
		return true
	})
	slices.Sort(hits)
	assert.Equal(t, []int{1, 2}, hits)
}

func TestRemoveAndUpdate(t *testing.T) {
	o := unitTree(1, 3)
	require.True(t, o.Insert(1, cube(0.1, 0.2)))
	require.True(t, o.Insert(2, cube(0.6, 0.7)))

	assert.True(t, o.Remove(1))
	assert.False(t, o.Remove(1))
	assert.False(t, o.Has(1))
	assert.Equal(t, 1, o.Len())

	require.True(t, o.Update(2, cube(0.1, 0.3)))
	b, ok := o.Get(2)
	assert.True(t, ok)
	assert.Equal(t, cube(0.1, 0.3), b)

	var found []int
	o.Query(cube(0.6, 0.7), func(item int, _ math.BoundingBox) bool {
		found = append(found, item)
		return true
	})
	assert.Empty(t, found, "stale bounds must not be reported")

	assert.False(t, o.Update(2, cube(0.5, 1.5)))
	assert.False(t, o.Has(2), "rejected update drops the item")

	require.True(t, o.Insert(3, cube(0.1, 0.2)))
	require.True(t, o.Insert(3, cube(0.7, 0.8)))
	assert.Equal(t, 1, o.Len(), "reinsert replaces")

	o.Clear()
	assert.Equal(t, 0, o.Len())
	assert.Equal(t, Stats{Nodes: 1}, o.Stats())
}
