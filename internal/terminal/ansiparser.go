// Package terminal implements the embedded terminal adapter: a VT
// state machine driving a cell grid, a PTY reader thread, and
// mode-aware key/mouse encoding.
package terminal

import "unicode/utf8"

type parserState uint8

const (
	stateGround parserState = iota
	stateEscape
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateOscString
	stateEscapeIntermediate
)

// AnsiParser is a byte-at-a-time VT500-style state machine. It owns no
// terminal semantics itself — every observable effect is reported
// through its On* callbacks, which TerminalBuffer wires to grid
// mutation.
type AnsiParser struct {
	state parserState

	params       []int
	curParam     int
	haveParam    bool
	private      byte // '?' for DEC private mode sequences, 0 otherwise
	intermediate []byte
	oscBuf       []byte
	oscParams    [][]byte

	OnPrint  func(r rune)
	OnExecute func(b byte)
	OnCsi    func(params []int, private byte, intermediate []byte, final byte)
	OnOsc    func(params [][]byte)
	OnEscape func(intermediate []byte, final byte)
}

// NewAnsiParser returns a parser in the ground state.
func NewAnsiParser() *AnsiParser {
	return &AnsiParser{state: stateGround}
}

// Parse feeds data through the state machine, invoking callbacks as
// sequences complete. It never blocks or allocates per call beyond
// slice growth for in-flight parameter/intermediate bytes.
func (p *AnsiParser) Parse(data []byte) {
	i := 0
	for i < len(data) {
		b := data[i]

		if p.state == stateGround && b >= 0x80 {
			r, size := utf8.DecodeRune(data[i:])
			i += size
			if p.OnPrint != nil {
				p.OnPrint(r)
			}
			continue
		}
		i++

		switch p.state {
		case stateGround:
			p.ground(b)
		case stateEscape:
			p.escape(b)
		case stateEscapeIntermediate:
			p.escapeIntermediate(b)
		case stateCsiEntry:
			p.csiEntry(b)
		case stateCsiParam:
			p.csiParam(b)
		case stateCsiIntermediate:
			p.csiIntermediate(b)
		case stateOscString:
			p.oscString(b)
		}
	}
}

func (p *AnsiParser) ground(b byte) {
	switch {
	case b == 0x1b:
		p.state = stateEscape
	case b < 0x20 || b == 0x7f:
		if p.OnExecute != nil {
			p.OnExecute(b)
		}
	case b < 0x80:
		if p.OnPrint != nil {
			p.OnPrint(rune(b))
		}
	default:
		// UTF-8 continuation bytes are handled by the caller decoding
		// runes before Parse in practice; as a defensive fallback we
		// still surface the raw byte as a rune so output is never lost.
		if p.OnPrint != nil {
			p.OnPrint(rune(b))
		}
	}
}

func (p *AnsiParser) resetSequence() {
	p.params = p.params[:0]
	p.curParam = 0
	p.haveParam = false
	p.private = 0
	p.intermediate = p.intermediate[:0]
}

func (p *AnsiParser) escape(b byte) {
	switch {
	case b == '[':
		p.resetSequence()
		p.state = stateCsiEntry
	case b == ']':
		p.oscBuf = p.oscBuf[:0]
		p.oscParams = p.oscParams[:0]
		p.state = stateOscString
	case b >= 0x20 && b <= 0x2f:
		p.intermediate = append(p.intermediate, b)
		p.state = stateEscapeIntermediate
	case b >= 0x30:
		if p.OnEscape != nil {
			p.OnEscape(p.intermediate, b)
		}
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *AnsiParser) escapeIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.intermediate = append(p.intermediate, b)
	case b >= 0x30:
		if p.OnEscape != nil {
			p.OnEscape(p.intermediate, b)
		}
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *AnsiParser) csiEntry(b byte) {
	switch {
	case b == '?' || b == '>' || b == '=':
		p.private = b
		p.state = stateCsiParam
	default:
		p.csiParam(b)
	}
}

func (p *AnsiParser) csiParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.curParam = p.curParam*10 + int(b-'0')
		p.haveParam = true
	case b == ';':
		p.params = append(p.params, p.curParam)
		p.curParam = 0
		p.haveParam = false
	case b >= 0x20 && b <= 0x2f:
		p.flushParam()
		p.intermediate = append(p.intermediate, b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.flushParam()
		if p.OnCsi != nil {
			p.OnCsi(p.params, p.private, p.intermediate, b)
		}
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *AnsiParser) csiIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.intermediate = append(p.intermediate, b)
	case b >= 0x40 && b <= 0x7e:
		if p.OnCsi != nil {
			p.OnCsi(p.params, p.private, p.intermediate, b)
		}
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *AnsiParser) flushParam() {
	if p.haveParam || len(p.params) == 0 {
		p.params = append(p.params, p.curParam)
	}
}

func (p *AnsiParser) oscString(b byte) {
	switch b {
	case 0x07: // BEL terminates OSC
		p.finishOsc()
	case 0x1b:
		// ESC \ (ST) also terminates; the trailing '\' arrives as the
		// next byte in escape state, so just close here and let escape
		// absorb the stray backslash as an unrecognized final byte.
		p.finishOsc()
		p.state = stateEscape
	case ';':
		p.oscParams = append(p.oscParams, append([]byte(nil), p.oscBuf...))
		p.oscBuf = p.oscBuf[:0]
	default:
		p.oscBuf = append(p.oscBuf, b)
	}
}

func (p *AnsiParser) finishOsc() {
	p.oscParams = append(p.oscParams, append([]byte(nil), p.oscBuf...))
	if p.OnOsc != nil {
		p.OnOsc(p.oscParams)
	}
	p.state = stateGround
}
