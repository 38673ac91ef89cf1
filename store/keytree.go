package store

import "github.com/gogpu/inkwell"

// KeyTree is a dynamic AABB tree over stroke keys, used to answer
// intersection and containment queries without scanning every stroke.
// It indexes current bounds only and is rebuilt wholesale after a history
// restore.
type KeyTree struct {
	root   *treeNode
	leaves map[StrokeKey]*treeNode
}

type treeNode struct {
	bounds inkwell.AABB
	key    StrokeKey
	parent *treeNode
	left   *treeNode
	right  *treeNode
}

func (n *treeNode) isLeaf() bool { return n.left == nil }

// NewKeyTree creates an empty tree.
func NewKeyTree() *KeyTree {
	return &KeyTree{leaves: make(map[StrokeKey]*treeNode)}
}

func area(b inkwell.AABB) float64 {
	if !b.Valid() {
		return 0
	}
	return b.Width() * b.Height()
}

// Insert adds a key with its bounds. Inserting an existing key updates it.
func (t *KeyTree) Insert(key StrokeKey, bounds inkwell.AABB) {
	if _, ok := t.leaves[key]; ok {
		t.Remove(key)
	}
	leaf := &treeNode{bounds: bounds, key: key}
	t.leaves[key] = leaf

	if t.root == nil {
		t.root = leaf
		return
	}

	// Descend towards the sibling whose bounds grow the least.
	node := t.root
	for !node.isLeaf() {
		growLeft := area(node.left.bounds.Merge(bounds)) - area(node.left.bounds)
		growRight := area(node.right.bounds.Merge(bounds)) - area(node.right.bounds)
		if growLeft <= growRight {
			node = node.left
		} else {
			node = node.right
		}
	}

	oldParent := node.parent
	newParent := &treeNode{
		bounds: node.bounds.Merge(bounds),
		parent: oldParent,
		left:   node,
		right:  leaf,
	}
	node.parent = newParent
	leaf.parent = newParent
	if oldParent == nil {
		t.root = newParent
	} else if oldParent.left == node {
		oldParent.left = newParent
	} else {
		oldParent.right = newParent
	}
	refit(newParent.parent)
}

// Update moves a key to new bounds.
func (t *KeyTree) Update(key StrokeKey, bounds inkwell.AABB) {
	t.Insert(key, bounds)
}

// Remove deletes a key from the tree.
func (t *KeyTree) Remove(key StrokeKey) {
	leaf, ok := t.leaves[key]
	if !ok {
		return
	}
	delete(t.leaves, key)

	parent := leaf.parent
	if parent == nil {
		t.root = nil
		return
	}
	sibling := parent.left
	if sibling == leaf {
		sibling = parent.right
	}
	grand := parent.parent
	sibling.parent = grand
	if grand == nil {
		t.root = sibling
		return
	}
	if grand.left == parent {
		grand.left = sibling
	} else {
		grand.right = sibling
	}
	refit(grand)
}

func refit(n *treeNode) {
	for ; n != nil; n = n.parent {
		n.bounds = n.left.bounds.Merge(n.right.bounds)
	}
}

// Len returns the number of indexed keys.
func (t *KeyTree) Len() int {
	return len(t.leaves)
}

// Bounds returns the bounds stored for a key.
func (t *KeyTree) Bounds(key StrokeKey) (inkwell.AABB, bool) {
	leaf, ok := t.leaves[key]
	if !ok {
		return inkwell.AABB{}, false
	}
	return leaf.bounds, true
}

// KeysIntersecting returns all keys whose bounds intersect the query, in no
// particular order.
func (t *KeyTree) KeysIntersecting(query inkwell.AABB) []StrokeKey {
	var out []StrokeKey
	t.walk(query, func(n *treeNode) {
		out = append(out, n.key)
	})
	return out
}

// KeysContained returns all keys whose bounds are fully inside the query.
func (t *KeyTree) KeysContained(query inkwell.AABB) []StrokeKey {
	var out []StrokeKey
	t.walk(query, func(n *treeNode) {
		if query.Contains(n.bounds) {
			out = append(out, n.key)
		}
	})
	return out
}

func (t *KeyTree) walk(query inkwell.AABB, visit func(*treeNode)) {
	if t.root == nil {
		return
	}
	stack := []*treeNode{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.bounds.Intersects(query) {
			continue
		}
		if n.isLeaf() {
			visit(n)
			continue
		}
		stack = append(stack, n.left, n.right)
	}
}

// Clear drops every entry.
func (t *KeyTree) Clear() {
	t.root = nil
	t.leaves = make(map[StrokeKey]*treeNode)
}

// Rebuild clears the tree and reindexes the given bounds.
func (t *KeyTree) Rebuild(bounds map[StrokeKey]inkwell.AABB) {
	t.Clear()
	for k, b := range bounds {
		t.Insert(k, b)
	}
}
