// Package termhost is the terminal-hosted implementation of the
// platform seams carved out of the editor core: GPU, FontService, and
// Clipboard realized over a real terminal's cell grid instead of a
// window-system GPU surface, plus the riffkey key decoder that turns
// raw stdin bytes into focus.KeyEvent values. This is the only package
// (besides cmd/lite-edit) allowed to know a terminal exists.
package termhost

import "github.com/netguy204/lite-edit/internal/platform"

// Host bundles the concrete platform services a terminal-hosted run of
// lite-edit needs, wired together so cmd/lite-edit can construct one
// value instead of four independently-sequenced ones.
type Host struct {
	GPU       *GPU
	Font      *FontService
	Clipboard *Clipboard
	Keys      *KeyDecoder
}

// NewHost constructs every terminal-hosted service. atlasSize must match
// the texture size passed to atlas.New; cellW/cellH are the fixed
// monospace cell metrics both the FontService and the GPU's coordinate
// math share.
func NewHost(atlasSize int, cellW, cellH float32) (*Host, error) {
	gpu, err := NewGPU(atlasSize, cellW, cellH)
	if err != nil {
		return nil, err
	}
	return &Host{
		GPU:       gpu,
		Font:      NewFontService(cellW, cellH),
		Clipboard: NewClipboard(gpu.scr.writer),
		Keys:      NewKeyDecoder(),
	}, nil
}

// Size reports the terminal's current dimensions in character cells,
// which this host treats as its "viewport size" for the atlas/font
// metrics.
func (h *Host) Size() Size { return h.GPU.scr.Size() }

var _ platform.GPU = (*GPU)(nil)
var _ platform.FontService = (*FontService)(nil)
var _ platform.Clipboard = (*Clipboard)(nil)
