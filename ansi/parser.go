// Package ansi decodes escape sequences sent by a terminal.
//
// The Parser is the state machine described at
// https://vt100.net/emu/dec_ansi_parser, restricted to 7-bit introducers.
// Input may be split at any byte: state is kept between calls to Advance.
package ansi

import "unicode/utf8"

type state int

const (
	ground state = iota
	escape
	escapeIntermediate
	csiEntry
	csiParam
	csiIntermediate
	csiIgnore
	oscString
	// DCS, SOS, PM and APC strings are consumed without being reported
	ignoreString
)

const (
	maxIntermediate = 2
	maxParams       = 16
	maxParamValue   = 1<<31 - 1
	maxOSC          = 4096
)

// Parser is an incremental escape sequence parser. The zero value is not
// usable, create one with NewParser
type Parser struct {
	state state

	intermediate []rune
	params       [][]int
	subparams    []int
	param        int
	hasParams    bool

	osc         []byte
	oscOverflow bool
	// st is set when an ESC ended a string. A following '\' completes the
	// String Terminator and is dropped
	st bool

	utf8 []byte

	seqs []Sequence
	head int
}

// NewParser returns a Parser in the ground state
func NewParser() *Parser {
	return &Parser{
		param: -1,
		seqs:  make([]Sequence, 0, 32),
	}
}

// Advance feeds buf to the parser. Sequences completed by buf are queued and
// can be retrieved with Next
func (p *Parser) Advance(buf []byte) {
	for _, b := range buf {
		p.advance(b)
	}
}

// Next returns the oldest decoded sequence, if any
func (p *Parser) Next() (Sequence, bool) {
	if p.head == len(p.seqs) {
		return nil, false
	}
	seq := p.seqs[p.head]
	p.seqs[p.head] = nil
	p.head += 1
	if p.head == len(p.seqs) {
		p.seqs = p.seqs[:0]
		p.head = 0
	}
	return seq, true
}

func (p *Parser) emit(seq Sequence) {
	p.seqs = append(p.seqs, seq)
}

func (p *Parser) advance(b byte) {
	if b >= 0x80 && p.state == ground {
		p.collectUTF8(b)
		return
	}
	if len(p.utf8) > 0 {
		// An incomplete character was interrupted
		p.utf8 = p.utf8[:0]
		p.emit(Print(utf8.RuneError))
	}

	// Transitions from anywhere
	switch b {
	case 0x18, 0x1A:
		// CAN and SUB abort the current sequence
		p.st = false
		p.state = ground
		p.emit(C0(b))
		return
	case 0x1B:
		switch p.state {
		case oscString:
			p.dispatchOSC()
			p.st = true
		case ignoreString:
			p.st = true
		default:
			p.st = false
		}
		p.clear()
		p.state = escape
		return
	}

	switch p.state {
	case ground:
		p.inGround(b)
	case escape:
		p.inEscape(b)
	case escapeIntermediate:
		p.inEscapeIntermediate(b)
	case csiEntry:
		p.inCSIEntry(b)
	case csiParam:
		p.inCSIParam(b)
	case csiIntermediate:
		p.inCSIIntermediate(b)
	case csiIgnore:
		if b >= 0x40 && b <= 0x7E {
			p.state = ground
		}
	case oscString:
		p.inOSC(b)
	case ignoreString:
		// Only ESC (handled above) or BEL end the string
		if b == 0x07 {
			p.state = ground
		}
	}
}

func (p *Parser) collectUTF8(b byte) {
	if len(p.utf8) > 0 && utf8.RuneStart(b) {
		p.utf8 = p.utf8[:0]
		p.emit(Print(utf8.RuneError))
	}
	p.utf8 = append(p.utf8, b)
	if !utf8.FullRune(p.utf8) {
		return
	}
	r, _ := utf8.DecodeRune(p.utf8)
	p.utf8 = p.utf8[:0]
	p.emit(Print(r))
}

func (p *Parser) inGround(b byte) {
	switch {
	case b < 0x20, b == 0x7F:
		p.emit(C0(b))
	default:
		p.emit(Print(b))
	}
}

func (p *Parser) inEscape(b byte) {
	st := p.st
	p.st = false
	switch {
	case b < 0x20:
		p.emit(C0(b))
	case b == '[':
		p.state = csiEntry
	case b == ']':
		p.osc = p.osc[:0]
		p.oscOverflow = false
		p.state = oscString
	case b == 'P', b == 'X', b == '^', b == '_':
		p.state = ignoreString
	case b <= 0x2F:
		p.collect(b)
		p.state = escapeIntermediate
	case b == '\\' && st:
		p.state = ground
	case b <= 0x7E:
		p.emit(ESC{Intermediate: p.intermediate, Final: rune(b)})
		p.state = ground
	default:
		p.state = ground
	}
}

func (p *Parser) inEscapeIntermediate(b byte) {
	switch {
	case b < 0x20:
		p.emit(C0(b))
	case b <= 0x2F:
		p.collect(b)
	case b <= 0x7E:
		p.emit(ESC{Intermediate: p.intermediate, Final: rune(b)})
		p.state = ground
	default:
		p.state = ground
	}
}

func (p *Parser) inCSIEntry(b byte) {
	switch {
	case b < 0x20:
		p.emit(C0(b))
	case b <= 0x2F:
		p.collect(b)
		p.state = csiIntermediate
	case b <= 0x3B:
		p.paramByte(b)
		p.state = csiParam
	case b <= 0x3F:
		// private marker
		p.collect(b)
		p.state = csiParam
	case b <= 0x7E:
		p.dispatchCSI(b)
	default:
		p.state = csiIgnore
	}
}

func (p *Parser) inCSIParam(b byte) {
	switch {
	case b < 0x20:
		p.emit(C0(b))
	case b <= 0x2F:
		p.collect(b)
		p.state = csiIntermediate
	case b <= 0x3B:
		p.paramByte(b)
	case b <= 0x3F:
		p.state = csiIgnore
	case b <= 0x7E:
		p.dispatchCSI(b)
	default:
		p.state = csiIgnore
	}
}

func (p *Parser) inCSIIntermediate(b byte) {
	switch {
	case b < 0x20:
		p.emit(C0(b))
	case b <= 0x2F:
		if !p.collect(b) {
			p.state = csiIgnore
		}
	case b <= 0x3F:
		p.state = csiIgnore
	case b <= 0x7E:
		p.dispatchCSI(b)
	default:
		p.state = csiIgnore
	}
}

func (p *Parser) inOSC(b byte) {
	switch {
	case b == 0x07:
		p.dispatchOSC()
		p.state = ground
	case b < 0x20:
		// ignored
	case len(p.osc) >= maxOSC:
		p.oscOverflow = true
	default:
		p.osc = append(p.osc, b)
	}
}

// clear resets the sequence scratch space. Dispatched sequences keep their
// own slices, so new ones are allocated on demand
func (p *Parser) clear() {
	p.intermediate = nil
	p.params = nil
	p.subparams = nil
	p.param = -1
	p.hasParams = false
}

// collect records an intermediate byte. It reports false once there are too
// many of them
func (p *Parser) collect(b byte) bool {
	if len(p.intermediate) >= maxIntermediate {
		return false
	}
	p.intermediate = append(p.intermediate, rune(b))
	return true
}

func (p *Parser) paramByte(b byte) {
	p.hasParams = true
	switch b {
	case ';':
		p.subparams = append(p.subparams, p.param)
		if len(p.params) < maxParams {
			p.params = append(p.params, p.subparams)
		}
		p.subparams = nil
		p.param = -1
	case ':':
		p.subparams = append(p.subparams, p.param)
		p.param = -1
	default:
		switch {
		case p.param < 0:
			p.param = int(b - '0')
		case p.param > (maxParamValue-9)/10:
			p.param = maxParamValue
		default:
			p.param = p.param*10 + int(b-'0')
		}
	}
}

func (p *Parser) dispatchCSI(final byte) {
	if p.hasParams {
		p.subparams = append(p.subparams, p.param)
		if len(p.params) < maxParams {
			p.params = append(p.params, p.subparams)
		}
	}
	p.emit(CSI{
		Intermediate: p.intermediate,
		Parameters:   p.params,
		Final:        rune(final),
	})
	p.clear()
	p.state = ground
}

func (p *Parser) dispatchOSC() {
	if p.oscOverflow {
		return
	}
	payload := make([]byte, len(p.osc))
	copy(payload, p.osc)
	p.emit(OSC{Payload: payload})
}
