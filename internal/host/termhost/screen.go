package termhost

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/pkg/errors"
)

// screen owns the terminal's raw-mode lifecycle and the front/back
// cell grids: double buffering with per-cell diff, SIGWINCH resize
// handling, ANSI cursor positioning and SGR color emission on flush.
type screen struct {
	front, back *grid
	writer      io.Writer
	fd          int

	width, height int

	origState *term.State
	inRawMode bool

	resizeChan chan Size
	sigChan    chan os.Signal

	buf bytes.Buffer
	mu  sync.Mutex
}

// Size is a terminal dimension in character cells.
type Size struct{ Width, Height int }

func newScreen(w io.Writer) (*screen, error) {
	if w == nil {
		w = os.Stdout
	}
	fd := int(os.Stdout.Fd())
	width, height, err := getTerminalSize(fd)
	if err != nil {
		width, height = 80, 24
	}
	return &screen{
		front:      newGrid(width, height),
		back:       newGrid(width, height),
		writer:     w,
		fd:         fd,
		width:      width,
		height:     height,
		resizeChan: make(chan Size, 1),
		sigChan:    make(chan os.Signal, 1),
	}, nil
}

func getTerminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

func (s *screen) Size() Size { return Size{Width: s.width, Height: s.height} }

func (s *screen) ResizeChan() <-chan Size { return s.resizeChan }

// enterRawMode disables canonical mode, echo, and signal generation,
// and switches to the alternate screen buffer. Raw-mode setup goes
// through golang.org/x/term rather than raw termios ioctls so it works
// on every platform x/term supports.
func (s *screen) enterRawMode() error {
	if s.inRawMode {
		return nil
	}
	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return errors.Wrap(err, "set raw mode")
	}
	s.origState = state
	s.inRawMode = true

	signal.Notify(s.sigChan, syscall.SIGWINCH)
	go s.handleSignals()

	s.writeString("\x1b[?1049h") // alternate screen
	s.writeString("\x1b[2J")
	s.writeString("\x1b[H")
	s.writeString("\x1b[?25l")   // hide cursor; the core's own cursor quad draws it
	s.writeString("\x1b[?1003h") // any-motion mouse tracking
	s.writeString("\x1b[?1006h") // SGR mouse encoding
	return nil
}

func (s *screen) exitRawMode() error {
	if !s.inRawMode {
		return nil
	}
	s.writeString("\x1b[?1006l")
	s.writeString("\x1b[?1003l")
	s.writeString("\x1b[?25h")
	s.writeString("\x1b[?1049l")

	signal.Stop(s.sigChan)
	if s.origState != nil {
		if err := term.Restore(int(os.Stdin.Fd()), s.origState); err != nil {
			return errors.Wrap(err, "restore terminal state")
		}
	}
	s.inRawMode = false
	return nil
}

func (s *screen) handleSignals() {
	for range s.sigChan {
		width, height, err := getTerminalSize(s.fd)
		if err != nil {
			continue
		}
		if width == s.width && height == s.height {
			continue
		}
		s.mu.Lock()
		s.width, s.height = width, height
		s.front.resize(width, height)
		s.back.resize(width, height)
		s.writeString("\x1b[2J")
		s.mu.Unlock()
		select {
		case s.resizeChan <- Size{Width: width, Height: height}:
		default:
		}
	}
}

func (s *screen) writeString(str string) { io.WriteString(s.writer, str) }

// flush diffs back against front cell-by-cell, writing only the cells
// that changed with minimal cursor repositioning.
func (s *screen) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	cursorX, cursorY := -1, -1
	var lastFG, lastBG [3]uint8
	var lastHasFG, lastHasBG bool
	changed := false

	for y := 0; y < s.height; y++ {
		if !s.back.dirtyRows[y] {
			continue
		}
		for x := 0; x < s.width; x++ {
			bc := s.back.get(x, y)
			if bc == s.front.get(x, y) {
				continue
			}
			if bc.Rune == 0 { // wide-char spacer, already advanced past
				s.front.set(x, y, bc)
				continue
			}
			if cursorX != x || cursorY != y {
				fmt.Fprintf(&s.buf, "\x1b[%d;%dH", y+1, x+1)
			}
			if bc.HasFG != lastHasFG || bc.HasBG != lastHasBG || bc.FG != lastFG || bc.BG != lastBG {
				writeSGR(&s.buf, bc)
				lastFG, lastBG, lastHasFG, lastHasBG = bc.FG, bc.BG, bc.HasFG, bc.HasBG
			}
			s.buf.WriteRune(bc.Rune)
			s.front.set(x, y, bc)
			changed = true
			cursorX = x + bc.Width
			cursorY = y
		}
	}
	if changed {
		s.buf.WriteString("\x1b[0m")
	}
	s.back.clearDirty()
	s.writer.Write(s.buf.Bytes())
}

func writeSGR(buf *bytes.Buffer, c Cell) {
	buf.WriteString("\x1b[0")
	if c.HasFG {
		fmt.Fprintf(buf, ";38;2;%d;%d;%d", c.FG[0], c.FG[1], c.FG[2])
	}
	if c.HasBG {
		fmt.Fprintf(buf, ";48;2;%d;%d;%d", c.BG[0], c.BG[1], c.BG[2])
	}
	buf.WriteByte('m')
}
