package physics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxAt(cx, cy, hx, hy float64) AABB {
	return AABB{Min: V(cx-hx, cy-hy), Max: V(cx+hx, cy+hy)}
}

func TestTreeEmptyScenario(t *testing.T) {
	tree := NewTree(0)
	assert.Empty(t, tree.QueryPoint(V(0, 0)))
	assert.Empty(t, tree.Pairs())
	assert.Equal(t, 0.0, tree.Cost())
}

func TestTreeTwoDisjointBoxes(t *testing.T) {
	tree := NewTree(0)
	tree.Insert(1, boxAt(0, 0, 1, 1), false)
	tree.Insert(2, boxAt(10, 0, 1, 1), false)

	assert.Empty(t, tree.Pairs())
	assert.Greater(t, tree.Cost(), 0.0)
}

func TestTreeTwoOverlappingBoxes(t *testing.T) {
	tree := NewTree(0)
	tree.Insert(1, boxAt(0, 0, 1, 1), false)
	tree.Insert(2, boxAt(1.5, 0, 1, 1), false)

	pairs := tree.Pairs()
	require.Len(t, pairs, 1)
	assert.ElementsMatch(t, []BodyID{1, 2}, []BodyID{pairs[0].A, pairs[0].B})
}

// three boxes overlapping pairwise-adjacent (A-B, B-C overlap; A-C disjoint).
func TestTreeThreeOverlapping(t *testing.T) {
	tree := NewTree(0)
	tree.Insert(1, boxAt(0, 0, 1, 1), false)   // A
	tree.Insert(2, boxAt(1.5, 0, 1, 1), false) // B
	tree.Insert(3, boxAt(3.0, 0, 1, 1), false) // C

	pairs := tree.Pairs()
	got := map[[2]BodyID]bool{}
	for _, p := range pairs {
		a, b := p.A, p.B
		if a > b {
			a, b = b, a
		}
		got[[2]BodyID{a, b}] = true
	}
	assert.True(t, got[[2]BodyID{1, 2}])
	assert.True(t, got[[2]BodyID{2, 3}])
	assert.False(t, got[[2]BodyID{1, 3}])
	assert.Len(t, pairs, 2)
}

// every internal node's AABB must equal the union of its children after
// a sequence of inserts and removes.
func TestTreeInvariantUnionAfterInsertAndRemove(t *testing.T) {
	tree := NewTree(0.05)
	var leaves []int
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		x := rng.Float64() * 100
		y := rng.Float64() * 100
		leaves = append(leaves, tree.Insert(BodyID(i), boxAt(x, y, 1, 1), false))
		assertUnionInvariant(t, tree)
	}
	for i := 0; i < 25; i++ {
		tree.Remove(leaves[i])
		assertUnionInvariant(t, tree)
	}
}

func assertUnionInvariant(t *testing.T, tree *Tree) {
	t.Helper()
	if tree.root == nilNode {
		return
	}
	var walk func(idx int)
	walk = func(idx int) {
		n := tree.nodes[idx]
		if n.leaf {
			return
		}
		want := tree.nodes[n.child1].box.Union(tree.nodes[n.child2].box)
		assert.Equal(t, want, n.box, "node %d AABB must equal union of children", idx)
		walk(n.child1)
		walk(n.child2)
	}
	walk(tree.root)
}

// a leaf's stored body id round-trips.
func TestTreeLeafBodyBackPointer(t *testing.T) {
	tree := NewTree(0)
	idx := tree.Insert(7, boxAt(0, 0, 1, 1), false)
	assert.Equal(t, BodyID(7), tree.nodes[idx].body)
}

// queryPoint returns every body whose AABB contains p and no other.
func TestTreeQueryPointExactness(t *testing.T) {
	tree := NewTree(0)
	tree.Insert(1, boxAt(0, 0, 1, 1), false)
	tree.Insert(2, boxAt(5, 5, 1, 1), false)

	assert.ElementsMatch(t, []BodyID{1}, tree.QueryPoint(V(0, 0)))
	assert.Empty(t, tree.QueryPoint(V(100, 100)))
	assert.ElementsMatch(t, []BodyID{2}, tree.QueryPoint(V(5, 5)))
}

// the candidate pair list must not contain duplicates, even for a larger
// random configuration.
func TestTreePairsNoDuplicates(t *testing.T) {
	tree := NewTree(0)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 60; i++ {
		x := rng.Float64() * 10
		y := rng.Float64() * 10
		tree.Insert(BodyID(i), boxAt(x, y, 1, 1), false)
	}
	pairs := tree.Pairs()
	seen := map[[2]BodyID]bool{}
	for _, p := range pairs {
		a, b := p.A, p.B
		if a > b {
			a, b = b, a
		}
		key := [2]BodyID{a, b}
		require.False(t, seen[key], "duplicate pair %v", key)
		seen[key] = true
	}
}

func TestTreeRemoveSingletonRoot(t *testing.T) {
	tree := NewTree(0)
	idx := tree.Insert(1, boxAt(0, 0, 1, 1), false)
	tree.Remove(idx)
	assert.Equal(t, nilNode, tree.root)
}

// Rotation is always applied (the tree has no switch to disable it), so no
// rotated-versus-unrotated comparison is made here; this only checks that
// cost stays non-negative across many insertions.
func TestTreeCostNonNegative(t *testing.T) {
	tree := NewTree(0.05)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		x := rng.Float64() * 50
		y := rng.Float64() * 50
		tree.Insert(BodyID(i), boxAt(x, y, 0.5, 0.5), false)
	}
	assert.GreaterOrEqual(t, tree.Cost(), 0.0)
}
