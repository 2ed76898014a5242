package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeymapResolvesChordsAndNames(t *testing.T) {
	km, bad := ParseKeymap(map[string]string{
		"<C-p>":    "open_file_selector",
		"<D-k>":    "delete_to_line_end",
		"<M-Left>": "move_word_left",
		"x":        "save",
	})
	require.Empty(t, bad)
	require.Len(t, km, 4)

	assert.Equal(t, CmdOpenFileSelector, ResolveChord(KeyEvent{Rune: 'p', Mods: ModCtrl}, km).Kind)
	assert.Equal(t, CmdDeleteToLineEnd, ResolveChord(KeyEvent{Rune: 'k', Mods: ModSuper}, km).Kind)
	assert.Equal(t, CmdMoveWordLeft, ResolveChord(KeyEvent{Named: KeyLeft, Mods: ModAlt}, km).Kind)
	assert.Equal(t, CmdSave, ResolveChord(KeyEvent{Rune: 'x'}, km).Kind)
}

func TestParseKeymapReportsBadEntries(t *testing.T) {
	km, bad := ParseKeymap(map[string]string{
		"<C-p>":      "open_file_selector",
		"<Q-x>":      "save",       // unknown modifier
		"<C-s>":      "teleport",   // unknown command
		"notachord!": "select_all", // multi-rune bare pattern
	})
	assert.Len(t, bad, 3)
	assert.Len(t, km, 1)
}

func TestResolveChordOverrideShadowsDefault(t *testing.T) {
	// Ctrl+S defaults to save; remap it to select_all.
	km, bad := ParseKeymap(map[string]string{"<C-s>": "select_all"})
	require.Empty(t, bad)

	assert.Equal(t, CmdSelectAll, ResolveChord(KeyEvent{Rune: 's', Mods: ModCtrl}, km).Kind)
	// an unmapped chord still hits the defaults
	assert.Equal(t, CmdCopy, ResolveChord(KeyEvent{Rune: 'c', Mods: ModCtrl}, km).Kind)
}

func TestParseKeymapExtendSuffix(t *testing.T) {
	km, bad := ParseKeymap(map[string]string{"<S-End>": "move_line_end_extend"})
	require.Empty(t, bad)
	cmd := ResolveChord(KeyEvent{Named: KeyEnd, Mods: ModShift}, km)
	assert.Equal(t, CmdMoveLineEnd, cmd.Kind)
	assert.True(t, cmd.Extend)
}

func TestResolveChordNilKeymapMatchesDefaults(t *testing.T) {
	ev := KeyEvent{Rune: 's', Mods: ModSuper}
	assert.Equal(t, ResolveBufferChord(ev), ResolveChord(ev, nil))
}
