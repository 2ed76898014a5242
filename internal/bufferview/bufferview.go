// Package bufferview defines BufferView, the renderer's single read
// interface to whatever is backing a Tab — a text file or a terminal
// session. Generalizing over both through one small, object-safe
// interface is what lets the renderer (internal/render) treat the two
// completely differently-owned data sources identically.
package bufferview

import (
	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/style"
)

// BufferView is implemented by anything the renderer can draw into a
// Tab's viewport. take_dirty is destructive by contract: a second call
// before any mutation must return the zero DirtyLines. Only
// the renderer may call TakeDirty — see internal/render/linecache.go.
type BufferView interface {
	LineCount() int
	StyledLine(i int) (style.StyledLine, bool)
	TakeDirty() buffer.DirtyLines
	IsEditable() bool
	CursorInfo() (style.CursorInfo, bool)
	SelectionRange() (style.Position, style.Position, bool)
}
