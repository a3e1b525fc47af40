package ansi

// Sequence is a decoded unit of terminal input. It is one of Print, C0, ESC,
// CSI or OSC
type Sequence interface{}

// Print is a printable character
type Print rune

// C0 is a C0 control character, or DEL
type C0 rune

// ESC is an escape sequence
type ESC struct {
	Intermediate []rune
	Final        rune
}

// CSI is a control sequence. Private markers ('<', '=', '>', '?') are
// reported as the first Intermediate.
//
// Each entry of Parameters holds a parameter followed by its colon separated
// sub-parameters. A parameter which was left empty is reported as -1
type CSI struct {
	Intermediate []rune
	Parameters   [][]int
	Final        rune
}

// OSC is an operating system command. Payload is everything between the
// introducer and the terminator
type OSC struct {
	Payload []byte
}
