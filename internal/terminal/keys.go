package terminal

// Control bytes the editor reacts to.
const (
	ByteBackspace = 0x08
	ByteTab       = 0x09
	ByteLF        = 0x0A
	ByteCR        = 0x0D
	ByteEscape    = 0x1B
	ByteDelete    = 0x7F
)

// Key types.
const (
	KeyRune      = iota // Printable ASCII byte or tab
	KeyEscape           // Escape
	KeyEnter            // CR or LF
	KeyBackspace        // Backspace or DEL
	KeyUnknown          // Any other control or non-ASCII byte
)

type Key struct {
	Type int
	Byte byte
}

// Classify maps a single input byte to a Key. Input is byte oriented: no
// escape sequence or multi-byte decoding is attempted.
func Classify(b byte) Key {
	switch {
	case b == ByteEscape:
		return Key{Type: KeyEscape, Byte: b}
	case b == ByteCR || b == ByteLF:
		return Key{Type: KeyEnter, Byte: b}
	case b == ByteDelete || b == ByteBackspace:
		return Key{Type: KeyBackspace, Byte: b}
	case b == ByteTab || (b >= 32 && b < 127):
		return Key{Type: KeyRune, Byte: b}
	default:
		return Key{Type: KeyUnknown, Byte: b}
	}
}
