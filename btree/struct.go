// Package btree implements an in-memory ordered index mapping keys to
// values, with a doubly-linked leaf list supporting inclusive/exclusive
// range scans in both directions.
//
// The tree does not split, merge, or rebalance. Separator keys are never
// written, so insertion always descends into the root's child slot 0 and
// every pair lands in that single leaf, which grows past leafSize as
// needed; Height therefore stays 0. This matches the behaviour of the
// structure it was adapted from rather than a textbook B+-tree; see
// DESIGN.md.
package btree

// CompareFunc orders two keys, returning a negative number if a < b,
// zero if a == b, and a positive number if a > b.
type CompareFunc[K any] func(a, b K) int

// pair is one (key, value) entry held by a leaf.
type pair[K, V any] struct {
	Key   K
	Value V
}

// leaf is a terminal node holding its pairs in ascending key order (the
// leafSize capacity is not enforced; items grows by append),
// doubly-linked to its neighbours so a full scan can walk every
// leaf without touching the internal nodes.
type leaf[K, V any] struct {
	parent    *node[K, V]
	leftLeaf  *leaf[K, V]
	rightLeaf *leaf[K, V]
	items     []pair[K, V]
}

// node is an internal tree node. Its Order+1 child slots hold either
// leaves or further nodes, discriminated by hasLeaves (constant for the
// node's lifetime, never both in one node).
type node[K, V any] struct {
	tree        *Tree[K, V]
	parent      *node[K, V]
	parentIndex int
	hasLeaves   bool
	keys        []K
	nodeChild   []*node[K, V]
	leafChild   []*leaf[K, V]
}

// Tree is an ordered index parameterised by key type K and value type V,
// with a caller-supplied comparator, fixed fanout (order) and leaf
// capacity (leafSize).
type Tree[K, V any] struct {
	cmp      CompareFunc[K]
	order    int
	leafSize int
	root     *node[K, V]
	first    *leaf[K, V]
	last     *leaf[K, V]
	size     int
	height   int
}

// Order returns the tree's configured fanout.
func (t *Tree[K, V]) Order() int { return t.order }

// LeafSize returns the tree's configured per-leaf capacity.
func (t *Tree[K, V]) LeafSize() int { return t.leafSize }

// Height reports the tree's height. Always 0 under the no-split
// insertion policy this tree implements; see the package doc comment.
func (t *Tree[K, V]) Height() int { return t.height }

// Size returns the total number of (key, value) pairs inserted.
func (t *Tree[K, V]) Size() int { return t.size }
