package terminal

import (
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

const readBudget = 64 * 1024

// Session owns one PTY-backed child process and its reader thread,
// wiring the PTY's stdout into a TerminalBuffer and the buffer's
// EncodeKey/EncodeMouse output back into the PTY's stdin.
type Session struct {
	Buf *TerminalBuffer

	cmd  *exec.Cmd
	file *os.File

	wake func()

	// pending holds bytes the reader thread has pulled off the PTY but
	// the main thread has not yet fed through the emulator. The reader
	// never touches the grid itself; it only appends here and wakes the
	// drain loop.
	pendMu  sync.Mutex
	pending []byte

	closeOnce sync.Once
	done      chan struct{}
}

// StartSession spawns shellPath (e.g. the user's $SHELL) attached to a
// pty sized cols x rows, wires it to a fresh TerminalBuffer, and starts
// the background reader thread. wake is called (non-blocking, from the
// reader goroutine) on every read, so the host can post an
// EventPTYWakeup into the drain loop.
func StartSession(shellPath string, args []string, cols, rows int, wake func()) (*Session, error) {
	if wake == nil {
		wake = func() {}
	}
	cmd := exec.Command(shellPath, args...)
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return nil, err
	}

	buf := NewTerminalBuffer(cols, rows)
	s := &Session{Buf: buf, cmd: cmd, file: f, wake: wake, done: make(chan struct{})}
	buf.SetWriteSink(s.writeStdin)

	go s.readLoop()
	return s, nil
}

func (s *Session) writeStdin(data []byte) {
	if len(data) == 0 {
		return
	}
	_, _ = s.file.Write(data)
}

// Resize propagates a pane resize to both the PTY's kernel-side window
// size and the TerminalBuffer's grid.
func (s *Session) Resize(cols, rows int) error {
	s.Buf.Resize(cols, rows)
	return pty.Setsize(s.file, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

func (s *Session) readLoop() {
	buf := make([]byte, readBudget)
	for {
		n, err := s.file.Read(buf)
		if n > 0 {
			s.pendMu.Lock()
			s.pending = append(s.pending, buf[:n]...)
			s.pendMu.Unlock()
			s.wake()
		}
		if err != nil {
			s.Buf.MarkExited(err)
			s.wake()
			close(s.done)
			return
		}
	}
}

// Drain feeds at most readBudget pending bytes through the emulator
// and re-wakes the loop if more remain, so one flooding child process
// can't starve the UI of a whole event phase. Main-thread only.
func (s *Session) Drain() {
	s.pendMu.Lock()
	n := len(s.pending)
	if n > readBudget {
		n = readBudget
	}
	data := s.pending[:n:n]
	s.pending = s.pending[n:]
	rest := len(s.pending)
	s.pendMu.Unlock()

	if len(data) > 0 {
		s.Buf.Write(data)
	}
	if rest > 0 {
		s.wake()
	}
}

// Wait blocks until the reader thread has observed EOF or an error from
// the PTY (i.e. the child process has exited and its output drained).
func (s *Session) Wait() { <-s.done }

// Close terminates the child process and releases the PTY file
// descriptor. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		_ = s.file.Close()
	})
}
