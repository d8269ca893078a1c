/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package ordser implements an order-preserving atom encoding:
// Serialize turns a value.Value into a self-describing byte string,
// Compare walks two such byte strings and returns their semantic
// order without fully materializing either side.
package ordser

// Low-nibble type tags. Values 8..15 additionally carry a length class
// in the tag byte's high nibble.
const (
	tagZeroInt    = 0x0
	tagByteInt    = 0x1
	tagShortInt   = 0x2
	tagInt        = 0x3
	tagFloat      = 0x4
	tagFloatZero  = 0x5
	_reserved6    = 0x6
	_reserved7    = 0x7
	tagArray      = 0x8
	tagByteArray  = 0x9
	tagShortArray = 0xA
	tagIntArray   = 0xB
	tagByteString = 0xC
	tagShortStr   = 0xD
	tagIntStr     = 0xE
	tagHash       = 0xF
)

// Family ranks used by the comparator; lower sorts first: integers as
// a single domain regardless of their minimal-width tag, then floats,
// then arrays, then strings, then hashes.
const (
	familyInt = iota
	familyFloat
	familyArray
	familyString
	familyHash
)

// maxDepth bounds recursion through nested arrays/hashes.
const maxDepth = 50

func lowNibble(tag byte) byte  { return tag & 0x0F }
func highNibble(tag byte) byte { return tag >> 4 }

// encodeLength picks the minimal length-class nibble and trailing
// bytes for n: 0..12 inline, 13 one extra byte, 14 two extra bytes
// (LE), 15 four extra bytes (LE).
func encodeLength(n int) (nibble byte, extra []byte) {
	switch {
	case n <= 12:
		return byte(n), nil
	case n <= 0xFF:
		return 13, []byte{byte(n)}
	case n <= 0xFFFF:
		return 14, []byte{byte(n), byte(n >> 8)}
	default:
		return 15, []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
	}
}

// decodeLength reads the length encoded starting at b[0] (the tag byte
// already stripped), returning the decoded count and the number of
// bytes consumed from b for the length itself.
func decodeLength(nibble byte, b []byte) (n int, consumed int, err error) {
	switch {
	case nibble <= 12:
		return int(nibble), 0, nil
	case nibble == 13:
		if len(b) < 1 {
			return 0, 0, ErrBadFormat.Error()
		}
		return int(b[0]), 1, nil
	case nibble == 14:
		if len(b) < 2 {
			return 0, 0, ErrBadFormat.Error()
		}
		return int(b[0]) | int(b[1])<<8, 2, nil
	default: // 15
		if len(b) < 4 {
			return 0, 0, ErrBadFormat.Error()
		}
		return int(b[0]) | int(b[1])<<8 | int(b[2])<<16 | int(b[3])<<24, 4, nil
	}
}
