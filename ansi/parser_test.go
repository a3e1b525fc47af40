package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(p *Parser) []Sequence {
	var seqs []Sequence
	for {
		seq, ok := p.Next()
		if !ok {
			return seqs
		}
		seqs = append(seqs, seq)
	}
}

func TestParser(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Sequence
	}{
		{
			name:     "print",
			input:    "ab",
			expected: []Sequence{Print('a'), Print('b')},
		},
		{
			name:     "utf8 print",
			input:    "é",
			expected: []Sequence{Print('é')},
		},
		{
			name:     "c0",
			input:    "\r\x7f",
			expected: []Sequence{C0('\r'), C0(0x7f)},
		},
		{
			name:  "esc",
			input: "\x1b(B",
			expected: []Sequence{
				ESC{Intermediate: []rune{'('}, Final: 'B'},
			},
		},
		{
			name:  "csi no params",
			input: "\x1b[?u",
			expected: []Sequence{
				CSI{Intermediate: []rune{'?'}, Final: 'u'},
			},
		},
		{
			name:  "csi private single param",
			input: "\x1b[?5u",
			expected: []Sequence{
				CSI{Intermediate: []rune{'?'}, Parameters: [][]int{{5}}, Final: 'u'},
			},
		},
		{
			name:  "csi device attributes",
			input: "\x1b[?62;4;22c",
			expected: []Sequence{
				CSI{
					Intermediate: []rune{'?'},
					Parameters:   [][]int{{62}, {4}, {22}},
					Final:        'c',
				},
			},
		},
		{
			name:  "csi empty params",
			input: "\x1b[;3H",
			expected: []Sequence{
				CSI{Parameters: [][]int{{-1}, {3}}, Final: 'H'},
			},
		},
		{
			name:  "csi subparams",
			input: "\x1b[4:3m",
			expected: []Sequence{
				CSI{Parameters: [][]int{{4, 3}}, Final: 'm'},
			},
		},
		{
			name:  "csi intermediate",
			input: "\x1b[?2026;2$y",
			expected: []Sequence{
				CSI{
					Intermediate: []rune{'?', '$'},
					Parameters:   [][]int{{2026}, {2}},
					Final:        'y',
				},
			},
		},
		{
			name:     "csi marker after params is ignored",
			input:    "\x1b[1?ux",
			expected: []Sequence{Print('x')},
		},
		{
			name:  "csi huge param saturates",
			input: "\x1b[?99999999999999999999u",
			expected: []Sequence{
				CSI{Intermediate: []rune{'?'}, Parameters: [][]int{{maxParamValue}}, Final: 'u'},
			},
		},
		{
			name:     "osc terminated by ST",
			input:    "\x1b]99;i=abc:p=?;\x1b\\",
			expected: []Sequence{OSC{Payload: []byte("99;i=abc:p=?;")}},
		},
		{
			name:     "osc terminated by BEL",
			input:    "\x1b]52;c;Zm9v\x07",
			expected: []Sequence{OSC{Payload: []byte("52;c;Zm9v")}},
		},
		{
			name:  "osc terminated by another sequence",
			input: "\x1b]0;title\x1b[?1c",
			expected: []Sequence{
				OSC{Payload: []byte("0;title")},
				CSI{Intermediate: []rune{'?'}, Parameters: [][]int{{1}}, Final: 'c'},
			},
		},
		{
			name:     "cancel aborts osc",
			input:    "\x1b]99;i=abc\x18z",
			expected: []Sequence{C0(0x18), Print('z')},
		},
		{
			name:     "dcs is swallowed",
			input:    "\x1bP1$r0m\x1b\\x",
			expected: []Sequence{Print('x')},
		},
		{
			name:     "apc is swallowed",
			input:    "\x1b_Gi=31;OK\x1b\\",
			expected: nil,
		},
		{
			name:  "esc restarts sequence",
			input: "\x1b[12\x1b[?1u",
			expected: []Sequence{
				CSI{Intermediate: []rune{'?'}, Parameters: [][]int{{1}}, Final: 'u'},
			},
		},
		{
			name:  "control inside csi",
			input: "\x1b[?\r5u",
			expected: []Sequence{
				C0('\r'),
				CSI{Intermediate: []rune{'?'}, Parameters: [][]int{{5}}, Final: 'u'},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := NewParser()
			p.Advance([]byte(test.input))
			assert.Equal(t, test.expected, collect(p))
		})
	}
}

func TestParserSplitInput(t *testing.T) {
	input := []byte("x\x1b[?31u\x1b]99;i=id:p=?;a=focus\x1b\\é\x1b[?62;22c")
	whole := NewParser()
	whole.Advance(input)
	expected := collect(whole)

	for i := 0; i <= len(input); i += 1 {
		p := NewParser()
		p.Advance(input[:i])
		p.Advance(nil)
		p.Advance(input[i:])
		assert.Equal(t, expected, collect(p), "split at %d", i)
	}

	p := NewParser()
	for _, b := range input {
		p.Advance([]byte{b})
	}
	assert.Equal(t, expected, collect(p))
}

func TestParserOSCOverflow(t *testing.T) {
	p := NewParser()
	payload := make([]byte, maxOSC+1)
	for i := range payload {
		payload[i] = 'a'
	}
	p.Advance([]byte("\x1b]"))
	p.Advance(payload)
	p.Advance([]byte("\x07\x1b]1;x\x07"))
	assert.Equal(t, []Sequence{OSC{Payload: []byte("1;x")}}, collect(p))
}

func TestParserInterruptedUTF8(t *testing.T) {
	p := NewParser()
	p.Advance([]byte{0xc3, 'a'})
	assert.Equal(t, []Sequence{Print('�'), Print('a')}, collect(p))
}
