package termi

import "strings"

// Event is a reply decoded from the terminal. It is one of
// KeyboardEnhancementFlags, PrimaryDeviceAttributes or
// DesktopNotificationSupport
type Event interface{}

// KeyboardEnhancementFlags are the progressive enhancement flags of the kitty
// keyboard protocol the terminal reports as enabled.
//
// See https://sw.kovidgoyal.net/kitty/keyboard-protocol/#progressive-enhancement
type KeyboardEnhancementFlags uint8

const (
	DisambiguateEscapeCodes KeyboardEnhancementFlags = 1 << iota
	ReportEventTypes
	ReportAlternateKeys
	ReportAllKeysAsEscapeCodes
	ReportAssociatedText

	allKeyboardEnhancementFlags = DisambiguateEscapeCodes | ReportEventTypes |
		ReportAlternateKeys | ReportAllKeysAsEscapeCodes | ReportAssociatedText
)

var keyboardEnhancementNames = []struct {
	flag KeyboardEnhancementFlags
	name string
}{
	{DisambiguateEscapeCodes, "disambiguate-escape-codes"},
	{ReportEventTypes, "report-event-types"},
	{ReportAlternateKeys, "report-alternate-keys"},
	{ReportAllKeysAsEscapeCodes, "report-all-keys-as-escape-codes"},
	{ReportAssociatedText, "report-associated-text"},
}

// truncateKeyboardEnhancementFlags keeps the low byte of bits and drops any
// bit which isn't a known flag
func truncateKeyboardEnhancementFlags(bits int) KeyboardEnhancementFlags {
	return KeyboardEnhancementFlags(uint8(bits)) & allKeyboardEnhancementFlags
}

// Contains reports if every flag of o is set in f
func (f KeyboardEnhancementFlags) Contains(o KeyboardEnhancementFlags) bool {
	return f&o == o
}

func (f KeyboardEnhancementFlags) Union(o KeyboardEnhancementFlags) KeyboardEnhancementFlags {
	return f | o
}

func (f KeyboardEnhancementFlags) Intersect(o KeyboardEnhancementFlags) KeyboardEnhancementFlags {
	return f & o
}

func (f KeyboardEnhancementFlags) String() string {
	if f == 0 {
		return "none"
	}
	names := make([]string, 0, len(keyboardEnhancementNames))
	for _, n := range keyboardEnhancementNames {
		if f&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// PrimaryDeviceAttributes is the terminal's reply to a primary device
// attributes (DA1) query. Every terminal answers it, so it marks the end of
// the replies to any query sent before it
type PrimaryDeviceAttributes struct {
	// Attributes holds the conformance level followed by the reported
	// feature codes
	Attributes []int
}

// DesktopNotificationSupport is the reply to an OSC 99 support query
//
// See https://sw.kovidgoyal.net/kitty/desktop-notifications/#querying-for-support
type DesktopNotificationSupport struct {
	// Identifier is the identifier of the query being answered
	Identifier string
	// Options maps each supported key to the values the terminal accepts
	// for it, for example "a" to ["focus", "report"]
	Options map[string][]string
}
