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

package deflate

// bitWriter accumulates bits LSB-first into a 7-byte overflow buffer,
// used when the caller's destination slice is momentarily full, before
// they are drained into the caller's destination slice.
type bitWriter struct {
	acc      uint64 // bit accumulator, LSB-first
	nbits    uint
	overflow [7]byte
	ovLen    int
	ovPos    int
}

func (w *bitWriter) writeBits(v uint32, n uint) {
	w.acc |= uint64(v) << w.nbits
	w.nbits += n
	for w.nbits >= 8 {
		w.overflow[(w.ovLen)%7] = byte(w.acc)
		w.ovLen++
		w.acc >>= 8
		w.nbits -= 8
	}
}

// alignByte pads with zero bits up to the next byte boundary.
func (w *bitWriter) alignByte() {
	if w.nbits > 0 {
		w.writeBits(0, 8-w.nbits)
	}
}

// hasPending reports whether the overflow buffer still holds bytes
// that drain() has not yet copied into a caller destination.
func (w *bitWriter) hasPending() bool {
	return w.ovPos < w.ovLen
}

// drain copies as many pending whole bytes as fit into dst, returning
// the count written. The overflow buffer is a ring of at most 7 bytes,
// so this never needs to track more than that between calls.
func (w *bitWriter) drain(dst []byte) int {
	n := 0
	for w.ovPos < w.ovLen && n < len(dst) {
		dst[n] = w.overflow[w.ovPos%7]
		n++
		w.ovPos++
	}
	if w.ovPos == w.ovLen {
		w.ovPos, w.ovLen = 0, 0
	}
	return n
}

// bitReader reads bits LSB-first from a byte slice, tracking its
// position so decode can report how much input it actually consumed.
type bitReader struct {
	src   []byte
	pos   int // byte index of next unread byte
	acc   uint32
	nbits uint
}

func newBitReader(src []byte) *bitReader {
	return &bitReader{src: src}
}

// needBits reports whether n more bits are available without blocking
// on more input.
func (r *bitReader) needBits(n uint) bool {
	for r.nbits < n {
		if r.pos >= len(r.src) {
			return false
		}
		r.acc |= uint32(r.src[r.pos]) << r.nbits
		r.pos++
		r.nbits += 8
	}
	return true
}

func (r *bitReader) readBits(n uint) uint32 {
	v := r.acc & ((1 << n) - 1)
	r.acc >>= n
	r.nbits -= n
	return v
}

// alignByte discards any partial byte left in the accumulator.
func (r *bitReader) alignByte() {
	drop := r.nbits % 8
	r.acc >>= drop
	r.nbits -= drop
}

func (r *bitReader) byteAligned() bool { return r.nbits%8 == 0 }
