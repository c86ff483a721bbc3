// Package sevenseg encodes values for a 4-digit 7-segment display.
package sevenseg

// Segment bits in TM1637 order: bit 0 = a .. bit 6 = g.
const (
	SegDash  = 0x40 // segment g only
	segBlank = 0x00
)

// Digits is the maximum number of positions a value can occupy.
const Digits = 4

// Max is the largest value the display can represent.
const Max = 9999

var digits = [10]byte{
	0x3f, 0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d, 0x07, 0x7f, 0x6f,
}

// Encode renders n as four segment bytes, most significant position first.
// Negative values produce the all-dash error pattern. Values above Max are
// clamped. Digits are right-aligned with no leading zeros.
func Encode(n int32) [Digits]byte {
	if n < 0 {
		return [Digits]byte{SegDash, SegDash, SegDash, SegDash}
	}
	if n > Max {
		n = Max
	}
	var out [Digits]byte
	for i := Digits - 1; i >= 0; i-- {
		out[i] = digits[n%10]
		n /= 10
		if n == 0 {
			break
		}
	}
	return out
}
