package trigger

// Key identifies a pressed key. Only the secret sequence keys are
// recognized; anything else still moves through the buffer.
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyB          Key = "KeyB"
	KeyA          Key = "KeyA"
)

// SecretSequence is the key pattern that raises KindSecretFound.
var SecretSequence = []Key{
	KeyArrowUp, KeyArrowUp,
	KeyArrowDown, KeyArrowDown,
	KeyArrowLeft, KeyArrowRight,
	KeyArrowLeft, KeyArrowRight,
	KeyB, KeyA,
}

// keyWindow is a FIFO of the most recent keys, capped at the pattern length.
type keyWindow struct {
	keys []Key
	size int
}

func newKeyWindow(size int) *keyWindow {
	return &keyWindow{keys: make([]Key, 0, size), size: size}
}

func (window *keyWindow) push(key Key) {
	if len(window.keys) == window.size {
		copy(window.keys, window.keys[1:])
		window.keys = window.keys[:window.size-1]
	}
	window.keys = append(window.keys, key)
}

func (window *keyWindow) matches(pattern []Key) bool {
	if len(window.keys) != len(pattern) {
		return false
	}
	for i, key := range pattern {
		if window.keys[i] != key {
			return false
		}
	}
	return true
}

func (window *keyWindow) strings() []string {
	out := make([]string, len(window.keys))
	for i, key := range window.keys {
		out[i] = string(key)
	}
	return out
}
