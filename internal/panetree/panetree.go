// Package panetree implements the binary split layout tree:
// directional tab movement, recursive rect layout with minimum-size
// enforcement, and empty-pane cleanup.
package panetree

import (
	"github.com/netguy204/lite-edit/internal/bufferview"
	"github.com/netguy204/lite-edit/internal/viewport"
)

// Direction is a cardinal layout direction.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// SplitOrientation is the axis a Split divides along.
type SplitOrientation uint8

const (
	Horizontal SplitOrientation = iota // left/right children
	Vertical                           // top/bottom children
)

// Tab owns one BufferView and the Viewport it's rendered through.
type Tab struct {
	View     bufferview.BufferView
	Viewport viewport.Viewport
	Title    string
}

// Pane is a leaf of the tree: a sequence of tabs and an active index.
type Pane struct {
	ID        uint64
	Tabs      []*Tab
	ActiveTab uint32
}

func (p *Pane) active() *Tab {
	if len(p.Tabs) == 0 {
		return nil
	}
	if int(p.ActiveTab) >= len(p.Tabs) {
		p.ActiveTab = uint32(len(p.Tabs) - 1)
	}
	return p.Tabs[p.ActiveTab]
}

// RemoveTab removes the tab at index i and fixes up ActiveTab.
func (p *Pane) RemoveTab(i int) {
	if i < 0 || i >= len(p.Tabs) {
		return
	}
	p.Tabs = append(p.Tabs[:i], p.Tabs[i+1:]...)
	if len(p.Tabs) == 0 {
		p.ActiveTab = 0
		return
	}
	if int(p.ActiveTab) >= len(p.Tabs) {
		p.ActiveTab = uint32(len(p.Tabs) - 1)
	}
}

// Node is a binary split tree node: either a Leaf(Pane) or a
// Split{direction, ratio, first, second}.
type Node struct {
	Leaf *Pane

	Orientation SplitOrientation
	Ratio       float32 // [0,1], fraction of space given to First
	First       *Node
	Second      *Node

	parent *Node
}

// NewLeaf wraps a pane as a tree leaf.
func NewLeaf(p *Pane) *Node { return &Node{Leaf: p} }

// IsLeaf reports whether n is a Leaf.
func (n *Node) IsLeaf() bool { return n.Leaf != nil }

const (
	minPaneWidth  = 10
	minPaneHeight = 3
)

// Rect is an axis-aligned screen-space rectangle.
type Rect struct {
	X, Y, W, H float32
}

// PaneRect pairs a pane id with its computed screen rect.
type PaneRect struct {
	PaneID uint64
	Rect   Rect
}

// Layout recursively derives screen rects for every leaf from the root
// rect; no rect state persists between frames.
func Layout(n *Node, r Rect) []PaneRect {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return []PaneRect{{PaneID: n.Leaf.ID, Rect: r}}
	}
	firstR, secondR := splitRect(r, n.Orientation, n.Ratio)
	out := Layout(n.First, firstR)
	out = append(out, Layout(n.Second, secondR)...)
	return out
}

func splitRect(r Rect, orient SplitOrientation, ratio float32) (first, second Rect) {
	if orient == Horizontal {
		firstW := r.W * ratio
		secondW := r.W - firstW
		firstW, secondW = enforceMin(firstW, secondW, minPaneWidth)
		return Rect{X: r.X, Y: r.Y, W: firstW, H: r.H},
			Rect{X: r.X + firstW, Y: r.Y, W: secondW, H: r.H}
	}
	firstH := r.H * ratio
	secondH := r.H - firstH
	firstH, secondH = enforceMin(firstH, secondH, minPaneHeight)
	return Rect{X: r.X, Y: r.Y, W: r.W, H: firstH},
		Rect{X: r.X, Y: r.Y + firstH, W: r.W, H: secondH}
}

// enforceMin clamps a,b to at least `min` each, stealing from whichever
// sibling has slack.
func enforceMin(a, b, min float32) (float32, float32) {
	total := a + b
	if a < min && total-min >= min {
		return min, total - min
	}
	if b < min && total-min >= min {
		return total - min, min
	}
	return a, b
}

// ancestors returns n's ancestor chain, closest first.
func ancestors(n *Node) []*Node {
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// MoveTab moves the active tab of the leaf containing `from` in
// direction `dir`, mutating the tree in place, and returns the leaf
// the tab now lives in (nil if the move was refused).
func MoveTab(root *Node, from *Node, dir Direction) *Node {
	if from == nil || !from.IsLeaf() || len(from.Leaf.Tabs) == 0 {
		return nil
	}
	orient := Horizontal
	forward := dir == Right // forward: "from" sits in First, target lives in Second
	if dir == Up || dir == Down {
		orient = Vertical
		forward = dir == Down
	}

	// Step 1: find the first compatible ancestor split.
	var compatible *Node
	cur := from
	for _, anc := range ancestors(from) {
		if anc.Orientation != orient {
			cur = anc
			continue
		}
		isFirstChild := anc.First == cur || isDescendantOf(anc.First, cur)
		if forward && isFirstChild {
			compatible = anc
			break
		}
		if !forward && !isFirstChild {
			compatible = anc
			break
		}
		cur = anc
	}

	if compatible != nil {
		var target *Node
		if forward {
			target = leftmostLeaf(compatible.Second)
		} else {
			target = rightmostLeaf(compatible.First)
		}
		moveActiveTab(from, target)
		return target
	}

	// Step 2: no compatible ancestor — split, unless doing so would
	// create an empty source pane (single-tab leaf).
	if len(from.Leaf.Tabs) == 1 {
		return nil
	}
	return splitOff(root, from, orient, forward)
}

func isDescendantOf(subtree, target *Node) bool {
	if subtree == target {
		return true
	}
	if subtree == nil || subtree.IsLeaf() {
		return false
	}
	return isDescendantOf(subtree.First, target) || isDescendantOf(subtree.Second, target)
}

func leftmostLeaf(n *Node) *Node {
	for !n.IsLeaf() {
		n = n.First
	}
	return n
}

// rightmostLeaf is the entry leaf for a backward move: the leaf of the
// First subtree nearest the split boundary.
func rightmostLeaf(n *Node) *Node {
	for !n.IsLeaf() {
		n = n.Second
	}
	return n
}

func moveActiveTab(from, to *Node) {
	tab := from.Leaf.active()
	idx := int(from.Leaf.ActiveTab)
	from.Leaf.RemoveTab(idx)
	to.Leaf.Tabs = append(to.Leaf.Tabs, tab)
	to.Leaf.ActiveTab = uint32(len(to.Leaf.Tabs) - 1)
}

var nextPaneID uint64

// AllocPaneID hands out process-unique pane ids. Every pane — whether
// created by the application or by a tab-move split — must get its id
// here, or FindPane can resolve a duplicate.
func AllocPaneID() uint64 {
	nextPaneID++
	return nextPaneID
}

// splitOff replaces `from`'s leaf with a Split(orient, oldLeaf,
// newLeafWithMovedTab), ratio 0.5, wiring parent pointers. A forward
// move puts the new pane in Second (right/bottom of the old leaf), a
// backward move in First.
func splitOff(root, from *Node, orient SplitOrientation, forward bool) *Node {
	tab := from.Leaf.active()
	idx := int(from.Leaf.ActiveTab)
	from.Leaf.RemoveTab(idx)

	newPane := &Pane{ID: AllocPaneID(), Tabs: []*Tab{tab}}
	newLeaf := NewLeaf(newPane)

	oldLeafCopy := &Node{Leaf: from.Leaf}

	split := &Node{Orientation: orient, Ratio: 0.5}
	if forward {
		split.First, split.Second = oldLeafCopy, newLeaf
	} else {
		split.First, split.Second = newLeaf, oldLeafCopy
	}
	oldLeafCopy.parent = split
	newLeaf.parent = split

	replaceNode(root, from, split)
	return newLeaf
}

// replaceNode rewires old's parent to point at replacement, or — if old
// is the root — mutates old in place to become a copy of replacement so
// external root references stay valid.
func replaceNode(root, old, replacement *Node) {
	if old == root {
		*old = *replacement
		old.parent = nil
		if old.IsLeaf() {
			return
		}
		old.First.parent = old
		old.Second.parent = old
		return
	}
	p := old.parent
	if p.First == old {
		p.First = replacement
	} else {
		p.Second = replacement
	}
	replacement.parent = p
}

// Cleanup walks the tree after a tab removal; any Pane left with zero
// tabs has its parent Split replaced by the surviving sibling subtree,
// promoted recursively, so no empty pane ever survives a pass.
func Cleanup(root *Node) *Node {
	for {
		empty := findEmptyLeaf(root, nil)
		if empty.node == nil {
			return root
		}
		if empty.parent == nil {
			// root itself is the only (empty) pane — nothing to promote.
			return root
		}
		sibling := empty.parent.First
		if sibling == empty.node {
			sibling = empty.parent.Second
		}
		// replaceNode handles the parent==root case by copying the
		// sibling into the root node in place, so the caller's root
		// pointer stays valid across promotions.
		replaceNode(root, empty.parent, sibling)
	}
}

type foundLeaf struct {
	node   *Node
	parent *Node
}

func findEmptyLeaf(n, parent *Node) foundLeaf {
	if n == nil {
		return foundLeaf{}
	}
	if n.IsLeaf() {
		if len(n.Leaf.Tabs) == 0 {
			return foundLeaf{node: n, parent: parent}
		}
		return foundLeaf{}
	}
	if f := findEmptyLeaf(n.First, n); f.node != nil {
		return f
	}
	return findEmptyLeaf(n.Second, n)
}

// TotalTabs counts tabs across every leaf, used to assert tab-move
// conservation.
func TotalTabs(n *Node) int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return len(n.Leaf.Tabs)
	}
	return TotalTabs(n.First) + TotalTabs(n.Second)
}

// FindPane returns the leaf node whose Pane.ID matches id, or nil.
func FindPane(n *Node, id uint64) *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		if n.Leaf.ID == id {
			return n
		}
		return nil
	}
	if f := FindPane(n.First, id); f != nil {
		return f
	}
	return FindPane(n.Second, id)
}

// ContainsEmptyPane reports whether any leaf has zero tabs.
func ContainsEmptyPane(n *Node) bool {
	if n == nil {
		return false
	}
	if n.IsLeaf() {
		return len(n.Leaf.Tabs) == 0
	}
	return ContainsEmptyPane(n.First) || ContainsEmptyPane(n.Second)
}
