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

// huffTable is a canonical Huffman code table (RFC 1951 §3.2.2), usable
// both to emit codes (production only ever uses the fixed tables) and
// to decode them (consumption handles fixed or dynamic tables).
type huffTable struct {
	codeOf []uint32 // per symbol, MSB-first code value (only valid where lenOf[sym] > 0)
	lenOf  []int    // per symbol, code length in bits (0 = unused)

	maxLen      int
	firstCode   [16]int // canonical first code at each bit length
	firstSymIdx [16]int // index into sortedSymbols where that length's symbols start
	countOf     [16]int
	sortedSyms  []int // symbols ordered by (length, symbol), used for decode lookup
}

func buildCanonical(lengths []int) *huffTable {
	t := &huffTable{
		codeOf: make([]uint32, len(lengths)),
		lenOf:  make([]int, len(lengths)),
	}

	for _, l := range lengths {
		if l > t.maxLen {
			t.maxLen = l
		}
	}
	if t.maxLen == 0 {
		return t
	}

	var blCount [16]int
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}

	var nextCode [16]int
	code := 0
	for bits := 1; bits <= t.maxLen; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
		t.firstCode[bits] = code
	}

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		t.codeOf[sym] = uint32(nextCode[l])
		t.lenOf[sym] = l
		nextCode[l]++
	}

	// Build the decode side: symbols sorted by (length, symbol), with
	// per-length start offsets, enabling the classic canonical-decode
	// walk (accumulate one bit at a time, compare against firstCode).
	t.countOf = blCount
	idx := 0
	for l := 1; l <= t.maxLen; l++ {
		t.firstSymIdx[l] = idx
		idx += blCount[l]
	}
	t.sortedSyms = make([]int, idx)
	cursor := t.firstSymIdx
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		t.sortedSyms[cursor[l]] = sym
		cursor[l]++
	}

	return t
}

// encode writes sym's canonical code into w, MSB-first (DEFLATE packs
// Huffman codes most-significant-bit first, unlike every other field in
// the format).
func (t *huffTable) encode(w *bitWriter, sym int) {
	l := t.lenOf[sym]
	code := t.codeOf[sym]
	for i := l - 1; i >= 0; i-- {
		w.writeBits((code>>uint(i))&1, 1)
	}
}

// decode reads one symbol from r, returning (symbol, ok). ok is false
// if not enough bits were buffered to complete a code.
func (t *huffTable) decode(r *bitReader) (int, bool) {
	code := 0
	for l := 1; l <= t.maxLen; l++ {
		if !r.needBits(1) {
			return 0, false
		}
		code = (code << 1) | int(r.readBits(1))
		count := t.countOf[l]
		if count == 0 {
			continue
		}
		offset := code - t.firstCode[l]
		if offset >= 0 && offset < count {
			return t.sortedSyms[t.firstSymIdx[l]+offset], true
		}
	}
	return 0, false
}
