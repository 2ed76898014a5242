// Command lite-edit is the terminal-hosted reference build of the
// editor core. It wires
// internal/config, internal/logging, internal/fileindex, and
// internal/host/termhost's platform services around
// internal/editorloop's EventDrainLoop, then runs the drain-render
// cycle until quit.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/netguy204/lite-edit/internal/atlas"
	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/config"
	"github.com/netguy204/lite-edit/internal/editorloop"
	"github.com/netguy204/lite-edit/internal/fileindex"
	"github.com/netguy204/lite-edit/internal/focus"
	"github.com/netguy204/lite-edit/internal/highlight"
	"github.com/netguy204/lite-edit/internal/host/termhost"
	"github.com/netguy204/lite-edit/internal/logging"
	"github.com/netguy204/lite-edit/internal/panetree"
	"github.com/netguy204/lite-edit/internal/region"
	"github.com/netguy204/lite-edit/internal/render"
	"github.com/netguy204/lite-edit/internal/selector"
	"github.com/netguy204/lite-edit/internal/terminal"
	"github.com/netguy204/lite-edit/internal/viewport"
)

// atlasTextureSize is the glyph atlas's fixed texture dimension. A
// terminal cell's "pixels" are a 4-byte rune slot (termhost/font.go), so
// this has nothing to do with real glyph resolution — it only bounds
// how many distinct runes can be resident at once.
const atlasTextureSize = 1024

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "lite-edit [dir]",
		Short: "GPU-accelerated code editor core, terminal-hosted reference build",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
	root.Flags().StringVar(&configPath, "config", "", "path to a lite-edit.toml config file")
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	workspaceRoot, err := resolveWorkspaceRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.LogFile, parseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	host, err := termhost.NewHost(atlasTextureSize, 1, 1)
	if err != nil {
		return fmt.Errorf("init terminal host: %w", err)
	}
	if err := host.GPU.EnterRawMode(); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer host.GPU.ExitRawMode() //nolint:errcheck

	atl, err := atlas.New(host.Font, cfg.Font.SizePx, atlasTextureSize)
	if err != nil {
		return fmt.Errorf("init glyph atlas: %w", err)
	}
	renderer := render.New(host.GPU, atl, 1, 1)

	wake := make(chan struct{}, 1)
	postWake := func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	}

	idx := fileindex.New(workspaceRoot, log, postWake)
	idx.SetRecencyCap(cfg.Index.RecencyCap)
	idx.Start()

	app := newApplication(workspaceRoot, log, idx, host)
	app.wake = postWake
	app.wrapCols = cfg.Font.WrapCols
	app.theme = chromaStyleFor(cfg.Theme)
	keymap, badChords := focus.ParseKeymap(cfg.Keymap)
	for _, chord := range badChords {
		log.Warn("ignoring unparseable keymap entry", zap.String("chord", chord))
	}
	app.keymap = keymap
	loop := editorloop.NewEventDrainLoop(app.state, editorloop.Hooks{
		OnFileIndexPoll: app.onFileIndexPoll,
		OnPTYWakeup:     app.onPTYWakeup,
		OnResize:        app.onResize,
		OnPaneCreated:   app.onPaneCreated,
	})
	app.loop = loop
	app.installRootPane()

	host.Keys.OnKey = func(ev focus.KeyEvent) { loop.Post(editorloop.Event{Kind: editorloop.EventKey, Key: ev}) }

	go func() {
		if err := host.Keys.Run(func() { postWake() }); err != nil {
			log.Debug("key decoder stopped", zap.Error(err))
		}
	}()
	go pollFileIndexPeriodically(loop, postWake)
	go watchResize(host, loop, postWake)

	sz := host.Size()
	loop.State.Platform.ViewWidth = uint32(sz.Width)
	loop.State.Platform.ViewHeight = uint32(sz.Height)

	for !loop.Quit() {
		<-wake
		loop.Drain()
		if loop.Quit() {
			break
		}
		renderer.Render(loop.State.Content.Workspace.Tree, loop.State.UI.Dirty)
		clearDirty(loop)
	}
	app.closeSessions()
	idx.Close()
	return nil
}

func resolveWorkspaceRoot(args []string) (string, error) {
	// A bare invocation should prompt the host's directory picker
	// rather than defaulting to /. A terminal has no directory picker
	// dialog, so this host falls back to the process's current
	// directory instead of prompting — see DESIGN.md.
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	return os.Getwd()
}

// chromaStyleFor maps the config's theme names to the chroma styles
// that realize them.
func chromaStyleFor(t config.Theme) string {
	switch t {
	case config.ThemeLight:
		return "github"
	case config.ThemeMonochrome:
		return "bw"
	default:
		return "monokai"
	}
}

func parseLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// clearDirty resets the dirty region once Renderer has consumed it,
// completing the accumulate-across-drain, render-once, clear cycle;
// the renderer itself never mutates editorloop state.
func clearDirty(loop *editorloop.EventDrainLoop) {
	loop.State.UI.Dirty = region.NoneRegion()
}

// application bundles the wiring state shared by the focus-target
// callbacks (OnOpenFileSelector, OnOpenFindStrip, OnCloseRequest) that
// internal/focus.BufferTarget needs but cannot construct itself, since
// they each reach into fileindex/selector/buffer packages the focus
// layer deliberately doesn't import.
type application struct {
	root  string
	log   *zap.Logger
	idx   *fileindex.FileIndex
	host  *termhost.Host
	loop     *editorloop.EventDrainLoop
	state    *editorloop.EditorState
	wake     func()
	wrapCols uint32
	theme    string
	keymap   focus.Keymap

	sessions []*terminal.Session
}

func newApplication(root string, log *zap.Logger, idx *fileindex.FileIndex, host *termhost.Host) *application {
	return &application{
		root:  root,
		log:   log,
		idx:   idx,
		host:  host,
		state: editorloop.NewEditorState(nil),
	}
}

// installRootPane creates the first pane + tab: a scratch buffer if
// nothing is open yet, wired the same way
// every subsequently opened file will be.
func (a *application) installRootPane() {
	pane := &panetree.Pane{ID: panetree.AllocPaneID()}
	tree := panetree.NewLeaf(pane)
	a.state.Content.Workspace.Tree = tree
	a.openScratchTab(pane)
	a.loop.RegisterPaneTarget(pane.ID, a.newBufferTarget(tree, ""))
	a.loop.SetActivePane(pane.ID)
}

func (a *application) openScratchTab(pane *panetree.Pane) {
	buf := buffer.NewTextBuffer()
	view := highlight.NewHighlightedBuffer(buf, "", a.theme)
	pane.Tabs = append(pane.Tabs, &panetree.Tab{
		View:     view,
		Viewport: viewport.Viewport{LineHeightPx: 1, VisibleRows: uint32(a.host.Size().Height), WrapCols: a.wrapCols},
		Title:    "untitled",
	})
}

// openFile loads path into a fresh tab on node's pane, recording the
// pick in the file index's recency list, then rebuilds
// the pane's BufferTarget so CmdSave's IO points at the newly active
// tab's path — BufferTarget is bound to one Buf/IO pair at construction
// and has no way to notice a tab switch on its own.
func (a *application) openFile(node *panetree.Node, path string) {
	pane := node.Leaf
	data, err := os.ReadFile(path)
	if err != nil {
		a.setStatus(pane, "open failed: "+err.Error())
		return
	}
	buf := buffer.NewTextBufferFromString(string(data))
	view := highlight.NewHighlightedBuffer(buf, languageFor(path), a.theme)
	pane.Tabs = append(pane.Tabs, &panetree.Tab{
		View:     view,
		Viewport: viewport.Viewport{LineHeightPx: 1, VisibleRows: uint32(a.host.Size().Height), WrapCols: a.wrapCols},
		Title:    filepath.Base(path),
	})
	pane.ActiveTab = uint32(len(pane.Tabs) - 1)
	a.idx.RecordSelection(relPath(a.root, path))
	a.loop.RegisterPaneTarget(pane.ID, a.newBufferTarget(node, path))
}

func languageFor(path string) string {
	switch filepath.Ext(path) {
	case ".go":
		return "go"
	case ".rs":
		return "rust"
	case ".py":
		return "python"
	case ".js", ".ts", ".tsx", ".jsx":
		return "javascript"
	default:
		return ""
	}
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func (a *application) setStatus(pane *panetree.Pane, msg string) {
	a.log.Info("status", zap.String("msg", msg))
}

// newBufferTarget builds the BufferTarget for one pane's active tab,
// wiring the overlay callbacks BufferTarget itself cannot resolve.
func (a *application) newBufferTarget(pane *panetree.Node, path string) *focus.BufferTarget {
	tab := pane.Leaf.Tabs[pane.Leaf.ActiveTab]
	hb, ok := tab.View.(*highlight.HighlightedBuffer)
	if !ok {
		return &focus.BufferTarget{Pane: pane}
	}
	t := &focus.BufferTarget{
		Pane:      pane,
		Buf:       hb.Buf,
		Clipboard: a.host.Clipboard,
		IO:        fileIO{path: path},
		Keymap:    a.keymap,
		OnStatus:  func(msg string) { a.setStatus(pane.Leaf, msg) },
	}
	t.OnOpenFileSelector = func(ctx *focus.EditorContext) {
		sel := a.newSelectorTarget(pane)
		ctx.Stack.Push(sel)
	}
	t.OnOpenFindStrip = func(ctx *focus.EditorContext) {
		ctx.Stack.Push(&focus.FindStripTarget{Buf: hb.Buf})
	}
	t.OnOpenTerminal = func(ctx *focus.EditorContext) {
		a.openTerminal(pane)
	}
	t.OnCloseRequest = func(ctx *focus.EditorContext) {
		doClose := func() { a.closeActiveTab(pane) }
		if hb.Buf.Modified() {
			ctx.Stack.Push(&focus.ConfirmDialogTarget{
				Prompt: "Unsaved changes, close anyway?",
				OnYes:  doClose,
			})
			return
		}
		doClose()
	}
	return t
}

func (a *application) closeActiveTab(pane *panetree.Node) {
	if pane.Leaf == nil {
		return
	}
	pane.Leaf.RemoveTab(int(pane.Leaf.ActiveTab))
	a.state.Content.Workspace.Tree = panetree.Cleanup(a.state.Content.Workspace.Tree)
	if len(pane.Leaf.Tabs) == 0 {
		a.loop.UnregisterPaneTarget(pane.Leaf.ID)
		return
	}
	// the newly active tab decides what kind of target owns the pane
	if tb, ok := pane.Leaf.Tabs[pane.Leaf.ActiveTab].View.(*terminal.TerminalBuffer); ok {
		a.loop.RegisterPaneTarget(pane.Leaf.ID, &focus.TerminalTarget{Sink: tb, Clipboard: a.host.Clipboard})
		return
	}
	a.loop.RegisterPaneTarget(pane.Leaf.ID, a.newBufferTarget(pane, ""))
}

// openTerminal starts a $SHELL-backed PTY session in a fresh tab on
// node's pane and makes the pane's input target a TerminalTarget. The
// viewport's VisibleRows is set from the content-area height up front —
// without it, scroll-to-bottom computes against zero rows and
// mis-scrolls past content.
func (a *application) openTerminal(node *panetree.Node) {
	pane := node.Leaf
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	sz := a.host.Size()
	sess, err := terminal.StartSession(shell, nil, sz.Width, sz.Height, func() {
		a.loop.Post(editorloop.Event{Kind: editorloop.EventPTYWakeup})
		a.wake()
	})
	if err != nil {
		a.setStatus(pane, "terminal failed: "+err.Error())
		return
	}
	a.sessions = append(a.sessions, sess)
	pane.Tabs = append(pane.Tabs, &panetree.Tab{
		View:     sess.Buf,
		Viewport: viewport.Viewport{LineHeightPx: 1, VisibleRows: uint32(sz.Height)},
		Title:    filepath.Base(shell),
	})
	pane.ActiveTab = uint32(len(pane.Tabs) - 1)
	a.loop.RegisterPaneTarget(pane.ID, &focus.TerminalTarget{Sink: sess.Buf, Clipboard: a.host.Clipboard})
}

// onPaneCreated binds an input target for a pane a tab move just
// produced or repopulated, choosing TerminalTarget or BufferTarget by
// what the pane's active tab holds.
func (a *application) onPaneCreated(state *editorloop.EditorState, node *panetree.Node) {
	if node == nil || node.Leaf == nil || len(node.Leaf.Tabs) == 0 {
		return
	}
	if tb, ok := node.Leaf.Tabs[node.Leaf.ActiveTab].View.(*terminal.TerminalBuffer); ok {
		a.loop.RegisterPaneTarget(node.Leaf.ID, &focus.TerminalTarget{Sink: tb, Clipboard: a.host.Clipboard})
		return
	}
	a.loop.RegisterPaneTarget(node.Leaf.ID, a.newBufferTarget(node, ""))
}

// onPTYWakeup runs on the drain loop's goroutine: move whatever bytes
// the reader threads have buffered through each emulator.
func (a *application) onPTYWakeup(state *editorloop.EditorState) {
	for _, s := range a.sessions {
		s.Drain()
	}
}

func (a *application) closeSessions() {
	for _, s := range a.sessions {
		s.Close()
	}
}

// newSelectorTarget wires internal/selector.Selector (over the shared
// FileIndex) into a focus.SelectorTarget, resolving a pick by opening
// the file into pane and a cancel by doing nothing — pushing/popping
// the overlay is SelectorTarget's own job.
func (a *application) newSelectorTarget(pane *panetree.Node) *focus.SelectorTarget {
	return &focus.SelectorTarget{
		Model: selector.New(a.idx),
		OnPick: func(path string) {
			a.openFile(pane, filepath.Join(a.root, path))
		},
	}
}

// onFileIndexPoll re-queries the selector overlay, if one is on top of
// the focus stack, against the FileIndex's latest cache version — the
// only place in this tree that knows both "an overlay might be open"
// and "the background walk might have advanced."
func (a *application) onFileIndexPoll(state *editorloop.EditorState) {
	top := state.UI.Stack.Top()
	st, ok := top.(*focus.SelectorTarget)
	if !ok {
		return
	}
	if sel, ok := st.Model.(*selector.Selector); ok {
		sel.Poll()
	}
}

func (a *application) onResize(state *editorloop.EditorState, w, h uint32) {
	root := state.Content.Workspace.Tree
	rects := panetree.Layout(root, panetree.Rect{W: float32(w), H: float32(h)})
	for _, r := range rects {
		n := panetree.FindPane(root, r.PaneID)
		if n == nil || n.Leaf == nil {
			continue
		}
		for _, tab := range n.Leaf.Tabs {
			tab.Viewport.VisibleRows = uint32(r.Rect.H)
			if tb, ok := tab.View.(*terminal.TerminalBuffer); ok {
				a.resizeSession(tb, int(r.Rect.W), int(r.Rect.H))
			}
		}
	}
}

// resizeSession propagates a pane resize to the session owning tb —
// both the PTY's kernel-side window size and the emulator grid.
func (a *application) resizeSession(tb *terminal.TerminalBuffer, cols, rows int) {
	for _, s := range a.sessions {
		if s.Buf == tb {
			if err := s.Resize(cols, rows); err != nil {
				a.log.Warn("pty resize failed", zap.Error(err))
			}
			return
		}
	}
}

// fileIO implements focus.BufferIO by writing the full buffer text back
// to the path it was opened from. A tab with no path (the initial
// scratch buffer) gets a zero-value fileIO, whose Save is a no-op —
// matching BufferIO's documented "nil means no-op" contract without
// needing IO itself to be nilable.
type fileIO struct{ path string }

func (f fileIO) Save(text string) error {
	if f.path == "" {
		return nil
	}
	return os.WriteFile(f.path, []byte(text), 0o644)
}

func pollFileIndexPeriodically(loop *editorloop.EventDrainLoop, wake func()) {
	// The FileIndex already wakes us on every mutation via its own wake
	// callback (passed at fileindex.New); this goroutine only exists to
	// keep EventFileIndexPoll flowing into the drain loop on that same
	// signal path, per editorloop.Hooks.OnFileIndexPoll's contract.
	for range time.Tick(500 * time.Millisecond) {
		loop.Post(editorloop.Event{Kind: editorloop.EventFileIndexPoll})
		wake()
	}
}

func watchResize(host *termhost.Host, loop *editorloop.EventDrainLoop, wake func()) {
	for sz := range host.GPU.ResizeChan() {
		loop.Post(editorloop.Event{Kind: editorloop.EventResize, ResizeWidth: uint32(sz.Width), ResizeHeight: uint32(sz.Height)})
		wake()
	}
}
