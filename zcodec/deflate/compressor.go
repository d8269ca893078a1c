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

const (
	stateInit = iota
	stateMain
	stateEnd
	stateFinish
)

// Compressor is a fixed-Huffman-only DEFLATE producer: one block per
// stream unless Flushable is set, in which case a sync-flush
// point closes the current block, emits an empty stored-block boundary
// (the "00 00 FF FF" marker), and opens a new block.
type Compressor struct {
	Flushable bool

	state int
	bw    bitWriter
	lit   *huffTable
	dist  *huffTable

	hist    []byte
	histPos int64 // absolute position of hist[0]
	absPos  int64 // absolute position of the next byte to encode

	hashTable [hashBuckets][hashSlots]int64 // absolute positions, -1 = empty

	sticky bool // true after Error; no further Done is possible
}

// NewCompressor returns a Compressor ready to encode.
func NewCompressor(flushable bool) *Compressor {
	c := &Compressor{
		Flushable: flushable,
		lit:       buildCanonical(fixedLitLenLengths()),
		dist:      buildCanonical(fixedDistLengths()),
	}
	for b := range c.hashTable {
		for s := range c.hashTable[b] {
			c.hashTable[b][s] = -1
		}
	}
	return c
}

func hash3(b0, b1, b2 byte) int {
	h := uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)
	// Jenkins-style one-at-a-time mix.
	h += h << 10
	h ^= h >> 6
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return int(h % hashBuckets)
}

func (c *Compressor) byteAt(pos int64, src []byte, callStart int64) (byte, bool) {
	switch {
	case pos < c.histPos:
		return 0, false
	case pos < c.absPos:
		return c.hist[pos-c.histPos], true
	case pos-callStart < int64(len(src)):
		return src[pos-callStart], true
	default:
		return 0, false
	}
}

func (c *Compressor) matchLen(candidate, cur int64, src []byte, callStart int64, limit int) int {
	n := 0
	for n < limit {
		a, ok1 := c.byteAt(candidate+int64(n), src, callStart)
		b, ok2 := c.byteAt(cur+int64(n), src, callStart)
		if !ok1 || !ok2 || a != b {
			break
		}
		n++
	}
	return n
}

func (c *Compressor) insertHash(pos int64, src []byte, callStart int64) {
	b0, ok0 := c.byteAt(pos, src, callStart)
	b1, ok1 := c.byteAt(pos+1, src, callStart)
	b2, ok2 := c.byteAt(pos+2, src, callStart)
	if !ok0 || !ok1 || !ok2 {
		return
	}
	bucket := hash3(b0, b1, b2)
	slots := &c.hashTable[bucket]
	worst, worstDist := 0, int64(-1)
	for i, p := range slots {
		if p < 0 {
			slots[i] = pos
			return
		}
		d := pos - p
		if d > worstDist {
			worstDist, worst = d, i
		}
	}
	slots[worst] = pos
}

func (c *Compressor) findMatch(pos int64, src []byte, callStart int64, avail int) (bestDist, bestLen int) {
	if avail < minMatch {
		return 0, 0
	}
	b0, _ := c.byteAt(pos, src, callStart)
	b1, _ := c.byteAt(pos+1, src, callStart)
	b2, _ := c.byteAt(pos+2, src, callStart)
	bucket := hash3(b0, b1, b2)

	limit := avail
	if limit > maxMatch {
		limit = maxMatch
	}

	for _, cand := range c.hashTable[bucket] {
		if cand < 0 || cand >= pos {
			continue
		}
		dist := pos - cand
		if dist > windowSize {
			continue
		}
		l := c.matchLen(cand, pos, src, callStart, limit)
		if l >= minMatch && (l > bestLen || (l == bestLen && dist < int64(bestDist))) {
			bestLen = l
			bestDist = int(dist)
		}
	}
	return bestDist, bestLen
}

func (c *Compressor) commit(pos int64, b byte) {
	c.hist = append(c.hist, b)
	c.absPos = pos + 1
	// Bound memory: once history exceeds 2 windows, drop the oldest one.
	if len(c.hist) > 2*windowSize {
		drop := len(c.hist) - windowSize
		c.hist = c.hist[drop:]
		c.histPos += int64(drop)
	}
}

// Compress consumes as much of src as it safely can, writing encoded
// bits to dst. final marks end of stream; flushHere requests a
// sync-flush boundary. Returns (bytes consumed from src, bytes written
// to dst, Result).
func (c *Compressor) Compress(src []byte, final, flushHere bool, dst []byte) (int, int, Result, error) {
	if c.sticky {
		return 0, 0, Error, ErrStreamCorrupt.Error()
	}

	dstPos := 0
	drain := func() bool {
		if c.bw.hasPending() {
			n := c.bw.drain(dst[dstPos:])
			dstPos += n
		}
		return !c.bw.hasPending()
	}

	if !drain() {
		return 0, dstPos, Flush, nil
	}

	if c.state == stateInit {
		c.bw.writeBits(0, 1) // BFINAL=0, opened lazily; corrected when the block closes
		c.bw.writeBits(1, 2) // BTYPE=01 fixed Huffman
		c.state = stateMain
	}

	callStart := c.absPos
	i := 0
	for i < len(src) {
		avail := len(src) - i
		if !final && !flushHere && avail < maxMatch {
			break
		}

		if !drain() {
			return i, dstPos, Flush, nil
		}

		pos := c.absPos
		dist, length := c.findMatch(pos, src, callStart, avail)
		if length >= minMatch {
			sym, extra, nbits := lengthSymbol(length)
			c.lit.encode(&c.bw, sym)
			c.bw.writeBits(extra, nbits)
			dsym, dextra, dnbits := distSymbol(dist)
			c.dist.encode(&c.bw, dsym)
			c.bw.writeBits(dextra, dnbits)

			for k := 0; k < length; k++ {
				c.insertHash(pos+int64(k), src, callStart)
				c.commit(pos+int64(k), src[i+k])
			}
			i += length
		} else {
			c.lit.encode(&c.bw, int(src[i]))
			c.insertHash(pos, src, callStart)
			c.commit(pos, src[i])
			i++
		}

		if c.bw.ovLen-c.bw.ovPos >= 5 {
			if !drain() {
				return i, dstPos, Flush, nil
			}
		}
	}

	if !drain() {
		return i, dstPos, Flush, nil
	}

	if flushHere && c.Flushable && i >= len(src) {
		// Close the current block (its own BFINAL bit, written 0 at
		// open, stays 0 — more blocks follow) and mark a sync point
		// with an empty stored block, then open a fresh block for
		// whatever arrives next.
		c.lit.encode(&c.bw, 256)
		c.writeEmptyStoredBlock(false)
		c.bw.writeBits(0, 1) // next block's BFINAL, corrected at true close
		c.bw.writeBits(1, 2)
		if !drain() {
			return i, dstPos, Flush, nil
		}
		return i, dstPos, Flush, nil
	}

	if final && i >= len(src) {
		// The open block's own BFINAL bit was written 0 at open time
		// (true finality isn't known that far ahead in a streaming
		// pump); terminate correctly regardless by closing it, then
		// appending an explicit empty block with BFINAL=1.
		// The closing bits (at most 7 bytes) go into the overflow
		// buffer once; a call after a Flush return only drains them.
		if c.state != stateEnd {
			c.lit.encode(&c.bw, 256)
			c.writeEmptyStoredBlock(true)
			c.state = stateEnd
		}
		if !drain() {
			return i, dstPos, Flush, nil
		}
		c.state = stateFinish
		return i, dstPos, Done, nil
	}

	return i, dstPos, More, nil
}

// writeEmptyStoredBlock emits a zero-length stored block: header,
// byte-alignment, LEN=0, NLEN=0xFFFF (ones' complement of 0), no data.
// Used both as the flushable mode's sync marker (final=false) and as
// the stream terminator (final=true) regardless of what BFINAL bit the
// preceding Huffman block's own header carried.
func (c *Compressor) writeEmptyStoredBlock(final bool) {
	if final {
		c.bw.writeBits(1, 1)
	} else {
		c.bw.writeBits(0, 1)
	}
	c.bw.writeBits(0, 2)
	c.bw.alignByte()
	c.bw.writeBits(0x00, 8)
	c.bw.writeBits(0x00, 8)
	c.bw.writeBits(0xFF, 8)
	c.bw.writeBits(0xFF, 8)
}
