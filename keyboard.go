package termi

import "fmt"

// QueryKeyboardEnhancement asks the terminal for its kitty keyboard protocol
// flags. ok is false when the terminal answered without supporting the
// protocol. ErrTimeout means the terminal didn't answer at all.
//
// See https://sw.kovidgoyal.net/kitty/keyboard-protocol/#detection-of-support-for-this-protocol
func QueryKeyboardEnhancement(opts Options) (flags KeyboardEnhancementFlags, ok bool, err error) {
	ev, err := query(opts, kittyKBQuery, keyboardEnhancementFilter{})
	if err != nil {
		return 0, false, fmt.Errorf("query keyboard enhancement: %w", err)
	}
	flags, ok = ev.(KeyboardEnhancementFlags)
	return flags, ok, nil
}
