package termhost

import (
	"encoding/base64"
	"fmt"
	"io"
	"sync"
)

// Clipboard implements platform.Clipboard for a terminal host via OSC 52
//. Set always writes the OSC 52 escape so the host terminal's
// own system clipboard picks it up; Get falls back to an in-process copy
// of the last Set value, since reading a terminal's clipboard over OSC
// 52 requires a reply the host may not send and cannot be relied upon.
type Clipboard struct {
	w io.Writer

	mu   sync.Mutex
	last string
}

func NewClipboard(w io.Writer) *Clipboard { return &Clipboard{w: w} }

func (c *Clipboard) Set(text string) error {
	c.mu.Lock()
	c.last = text
	c.mu.Unlock()
	enc := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(c.w, "\x1b]52;c;%s\x07", enc)
	return err
}

func (c *Clipboard) Get() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, nil
}
