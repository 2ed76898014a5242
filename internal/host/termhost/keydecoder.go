package termhost

import (
	"os"

	"github.com/kungfusheep/riffkey"

	"github.com/netguy204/lite-edit/internal/focus"
)

// KeyDecoder drives a riffkey.Input/Reader pair over stdin and decodes
// raw terminal input into focus.KeyEvent values. It registers no
// multi-key chord patterns of its own — chord resolution lives in
// ResolveBufferChord (internal/focus/command.go), so every pattern
// here maps to exactly one decoded KeyEvent, never a composed
// command.
type KeyDecoder struct {
	router *riffkey.Router
	input  *riffkey.Input
	reader *riffkey.Reader

	OnKey func(focus.KeyEvent)
}

// NewKeyDecoder builds a decoder reading from stdin and registers the
// full vim-notation vocabulary this tree already emits from
// ResolveBufferChord's KeyEvent inputs: named keys, the full <C-a>..<C-z>
// ctrl range, and every printable ASCII character.
func NewKeyDecoder() *KeyDecoder {
	router := riffkey.NewRouter()
	d := &KeyDecoder{
		router: router,
		input:  riffkey.NewInput(router),
		reader: riffkey.NewReader(os.Stdin),
	}
	d.registerNamed()
	d.registerPrintable()
	d.registerCtrlChords()
	router.HandleUnmatched(func(k riffkey.Key) bool {
		if k.Rune == 0 {
			return false
		}
		d.emit(focus.KeyEvent{Rune: k.Rune, Mods: decodeMods(k.Mod)})
		return true
	})
	return d
}

func (d *KeyDecoder) emit(ev focus.KeyEvent) {
	if d.OnKey != nil {
		d.OnKey(ev)
	}
}

func (d *KeyDecoder) registerNamed() {
	named := []struct {
		pattern string
		ev      focus.KeyEvent
	}{
		{"<Tab>", focus.KeyEvent{Named: focus.KeyTab}},
		{"<S-Tab>", focus.KeyEvent{Named: focus.KeyTab, Mods: focus.ModShift}},
		{"<CR>", focus.KeyEvent{Named: focus.KeyEnter}},
		{"<Enter>", focus.KeyEvent{Named: focus.KeyEnter}},
		{"<Esc>", focus.KeyEvent{Named: focus.KeyEscape}},
		{"<Escape>", focus.KeyEvent{Named: focus.KeyEscape}},
		{"<BS>", focus.KeyEvent{Named: focus.KeyBackspace}},
		{"<Del>", focus.KeyEvent{Named: focus.KeyDelete}},
		{"<Left>", focus.KeyEvent{Named: focus.KeyLeft}},
		{"<Right>", focus.KeyEvent{Named: focus.KeyRight}},
		{"<Up>", focus.KeyEvent{Named: focus.KeyUp}},
		{"<Down>", focus.KeyEvent{Named: focus.KeyDown}},
		{"<Home>", focus.KeyEvent{Named: focus.KeyHome}},
		{"<End>", focus.KeyEvent{Named: focus.KeyEnd}},
		{"<C-Home>", focus.KeyEvent{Named: focus.KeyHome, Mods: focus.ModCtrl}},
		{"<C-End>", focus.KeyEvent{Named: focus.KeyEnd, Mods: focus.ModCtrl}},
		{"<PageUp>", focus.KeyEvent{Named: focus.KeyPageUp}},
		{"<PageDown>", focus.KeyEvent{Named: focus.KeyPageDown}},
		{"<Space>", focus.KeyEvent{Rune: ' '}},
	}
	for _, n := range named {
		n := n
		d.router.Handle(n.pattern, func(m riffkey.Match) { d.emit(n.ev) })
	}
}

// registerPrintable registers one pattern per printable ASCII rune so
// riffkey's matcher sees them without falling through to
// HandleUnmatched (which only fires for the remainder — e.g. pasted
// Unicode text).
func (d *KeyDecoder) registerPrintable() {
	reg := func(ch rune) { d.router.Handle(patternFor(ch), func(m riffkey.Match) { d.emit(focus.KeyEvent{Rune: ch}) }) }
	for ch := 'a'; ch <= 'z'; ch++ {
		reg(ch)
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		reg(ch)
	}
	for ch := '0'; ch <= '9'; ch++ {
		reg(ch)
	}
	for _, ch := range " !\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" {
		reg(ch)
	}
}

func patternFor(ch rune) string {
	if ch == ' ' {
		return "<Space>"
	}
	return string(ch)
}

// registerCtrlChords registers the full <C-a>..<C-z> range. Alt chords
// have no named pattern and fall through to HandleUnmatched's
// Mod-based decoding instead.
func (d *KeyDecoder) registerCtrlChords() {
	for ch := 'a'; ch <= 'z'; ch++ {
		ch := ch
		pattern := "<C-" + string(ch) + ">"
		d.router.Handle(pattern, func(m riffkey.Match) {
			d.emit(focus.KeyEvent{Rune: ch, Mods: focus.ModCtrl})
		})
	}
}

func decodeMods(m riffkey.Mod) focus.Modifiers {
	var out focus.Modifiers
	if m&riffkey.ModShift != 0 {
		out |= focus.ModShift
	}
	if m&riffkey.ModCtrl != 0 {
		out |= focus.ModCtrl
	}
	if m&riffkey.ModAlt != 0 {
		out |= focus.ModAlt
	}
	return out
}

// Run blocks decoding stdin until the reader returns an error
// (normally because Stop closed stdin), calling afterKey after each
// decoded event.
func (d *KeyDecoder) Run(afterKey func()) error {
	return d.input.Run(d.reader, func(handled bool) {
		if afterKey != nil {
			afterKey()
		}
	})
}

// Stop unblocks Run by closing stdin.
func (d *KeyDecoder) Stop() { os.Stdin.Close() }
