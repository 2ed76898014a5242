package panetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTab(title string) *Tab { return &Tab{Title: title} }

// A single-tab pane refuses to split itself away.
func TestMoveTabRefusesToEmptySoleTab(t *testing.T) {
	p := &Pane{ID: 1, Tabs: []*Tab{newTestTab("only")}}
	root := NewLeaf(p)

	result := MoveTab(root, root, Right)

	assert.Nil(t, result)
	assert.Equal(t, 1, TotalTabs(root))
}

func TestMoveTabSplitsWhenNoCompatibleAncestor(t *testing.T) {
	p := &Pane{ID: 1, Tabs: []*Tab{newTestTab("a"), newTestTab("b")}}
	root := NewLeaf(p)

	target := MoveTab(root, root, Right)

	require.NotNil(t, target)
	assert.False(t, root.IsLeaf())
	assert.Equal(t, Horizontal, root.Orientation)
	assert.Equal(t, 2, TotalTabs(root), "move is conservative")
	assert.Equal(t, 1, len(target.Leaf.Tabs))
}

func TestMoveTabIntoExistingSplitAppendsToTarget(t *testing.T) {
	left := &Pane{ID: 1, Tabs: []*Tab{newTestTab("a"), newTestTab("b")}}
	right := &Pane{ID: 2, Tabs: []*Tab{newTestTab("c")}}
	leftLeaf := NewLeaf(left)
	rightLeaf := NewLeaf(right)
	root := &Node{Orientation: Horizontal, Ratio: 0.5, First: leftLeaf, Second: rightLeaf}
	leftLeaf.parent = root
	rightLeaf.parent = root

	before := TotalTabs(root)
	target := MoveTab(root, leftLeaf, Right)

	require.NotNil(t, target)
	assert.Same(t, rightLeaf, target)
	assert.Equal(t, before, TotalTabs(root))
	assert.Equal(t, 2, len(rightLeaf.Leaf.Tabs))
	assert.Equal(t, 1, len(leftLeaf.Leaf.Tabs))
}

func TestCleanupRemovesEmptyPaneAndPromotesSibling(t *testing.T) {
	left := &Pane{ID: 1, Tabs: []*Tab{newTestTab("a")}}
	right := &Pane{ID: 2, Tabs: nil} // empty
	leftLeaf := NewLeaf(left)
	rightLeaf := NewLeaf(right)
	root := &Node{Orientation: Horizontal, Ratio: 0.5, First: leftLeaf, Second: rightLeaf}
	leftLeaf.parent = root
	rightLeaf.parent = root

	newRoot := Cleanup(root)

	assert.False(t, ContainsEmptyPane(newRoot))
	assert.True(t, newRoot.IsLeaf())
	assert.Equal(t, left, newRoot.Leaf)
}

func TestLayoutEnforcesMinimumPaneWidth(t *testing.T) {
	left := NewLeaf(&Pane{ID: 1, Tabs: []*Tab{newTestTab("a")}})
	right := NewLeaf(&Pane{ID: 2, Tabs: []*Tab{newTestTab("b")}})
	root := &Node{Orientation: Horizontal, Ratio: 0.01, First: left, Second: right}

	rects := Layout(root, Rect{W: 100, H: 40})

	require.Len(t, rects, 2)
	assert.GreaterOrEqual(t, rects[0].Rect.W, float32(minPaneWidth))
}
