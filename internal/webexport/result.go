package webexport

import (
	calcerr "gocalc/internal/errors"
	"gocalc/internal/keypad"
)

// result converts an engine return pair into the value handed to JS.
func result(v float64, err error) any {
	if err != nil {
		return failure(err)
	}
	return v
}

func failure(err error) any {
	return map[string]any{"error": err.Error(), "kind": calcerr.Kind(err)}
}

// press feeds key to kp and returns the new display text.  A failed
// calculation still returns the display, which then reads "Error";
// other failures (unknown key, empty memory) return a failure object.
func press(kp *keypad.Keypad, key string) any {
	if err := kp.Press(key); err != nil && kp.Display() != keypad.ErrorText {
		return failure(err)
	}
	return kp.Display()
}
