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
	dsNeedHeader = iota
	dsStoredLen
	dsStoredData
	dsDynamicHeader
	dsBlockData
	dsBlockEnd
	dsDone
)

// Decompressor consumes any valid RFC 1951 block: stored, fixed
// Huffman, or dynamic Huffman.
type Decompressor struct {
	br bitReader

	window  []byte
	winBase int64
	outPos  int64

	state        int
	final        bool
	lit, dist    *huffTable
	storedRemain int

	pendingLen  int
	pendingDist int

	sticky bool
}

// NewDecompressor returns a Decompressor ready to consume a fresh
// stream.
func NewDecompressor() *Decompressor {
	return &Decompressor{state: dsNeedHeader}
}

func (d *Decompressor) appendWindow(b byte) {
	d.window = append(d.window, b)
	d.outPos++
	if len(d.window) > 2*windowSize {
		drop := len(d.window) - windowSize
		d.window = d.window[drop:]
		d.winBase += int64(drop)
	}
}

func (d *Decompressor) windowByteAt(abs int64) byte {
	idx := abs - d.winBase
	if idx < 0 || idx >= int64(len(d.window)) {
		return 0
	}
	return d.window[idx]
}

func (d *Decompressor) fail(dstPos int, err error) (int, int, Result, error) {
	d.sticky = true
	return d.br.pos, dstPos, Error, err
}

// Decompress consumes from src and writes decoded bytes to dst,
// returning (bytes consumed, bytes written, Result). Like Compress,
// unconsumed src bytes must be re-supplied by the caller on the next
// call; the bit accumulator itself persists across calls.
func (d *Decompressor) Decompress(src, dst []byte) (int, int, Result, error) {
	if d.sticky {
		return 0, 0, Error, ErrStreamCorrupt.Error()
	}

	d.br.src = src
	d.br.pos = 0
	dstPos := 0

	for {
		switch d.state {
		case dsNeedHeader:
			if !d.br.needBits(3) {
				return d.br.pos, dstPos, More, nil
			}
			final := d.br.readBits(1)
			btype := d.br.readBits(2)
			d.final = final == 1

			switch btype {
			case 0:
				d.br.alignByte()
				d.state = dsStoredLen
			case 1:
				d.lit = buildCanonical(fixedLitLenLengths())
				d.dist = buildCanonical(fixedDistLengths())
				d.state = dsBlockData
			case 2:
				d.state = dsDynamicHeader
			default:
				return d.fail(dstPos, ErrBadBlockType.Error())
			}

		case dsStoredLen:
			if !d.br.needBits(32) {
				return d.br.pos, dstPos, More, nil
			}
			length := int(d.br.readBits(16))
			nlen := int(d.br.readBits(16))
			if length != (^nlen)&0xFFFF {
				return d.fail(dstPos, ErrStreamCorrupt.Error())
			}
			d.storedRemain = length
			d.state = dsStoredData

		case dsStoredData:
			for d.storedRemain > 0 {
				if dstPos >= len(dst) {
					return d.br.pos, dstPos, Flush, nil
				}
				if !d.br.needBits(8) {
					return d.br.pos, dstPos, More, nil
				}
				b := byte(d.br.readBits(8))
				dst[dstPos] = b
				dstPos++
				d.appendWindow(b)
				d.storedRemain--
			}
			d.state = dsBlockEnd

		case dsDynamicHeader:
			lit, dist, ok := d.decodeDynamicTables()
			if !ok {
				return d.br.pos, dstPos, More, nil
			}
			if lit == nil {
				return d.fail(dstPos, ErrStreamCorrupt.Error())
			}
			d.lit, d.dist = lit, dist
			d.state = dsBlockData

		case dsBlockData:
			if d.pendingLen > 0 {
				for d.pendingLen > 0 && dstPos < len(dst) {
					srcAbs := d.outPos - int64(d.pendingDist)
					b := d.windowByteAt(srcAbs)
					dst[dstPos] = b
					dstPos++
					d.appendWindow(b)
					d.pendingLen--
				}
				if d.pendingLen > 0 {
					return d.br.pos, dstPos, Flush, nil
				}
				continue
			}

			if dstPos >= len(dst) {
				return d.br.pos, dstPos, Flush, nil
			}

			sym, ok := d.lit.decode(&d.br)
			if !ok {
				return d.br.pos, dstPos, More, nil
			}

			switch {
			case sym < 256:
				dst[dstPos] = byte(sym)
				dstPos++
				d.appendWindow(byte(sym))
			case sym == 256:
				d.state = dsBlockEnd
			default:
				idx := sym - 257
				if idx < 0 || idx >= len(lengthBase) {
					return d.fail(dstPos, ErrStreamCorrupt.Error())
				}
				if !d.br.needBits(lengthExtra[idx]) {
					return d.br.pos, dstPos, More, nil
				}
				length := lengthBase[idx] + int(d.br.readBits(lengthExtra[idx]))

				dsym, ok := d.dist.decode(&d.br)
				if !ok {
					return d.br.pos, dstPos, More, nil
				}
				if dsym < 0 || dsym >= len(distBase) {
					return d.fail(dstPos, ErrStreamCorrupt.Error())
				}
				if !d.br.needBits(distExtra[dsym]) {
					return d.br.pos, dstPos, More, nil
				}
				distance := distBase[dsym] + int(d.br.readBits(distExtra[dsym]))

				if int64(distance) > d.outPos {
					return d.fail(dstPos, ErrBadDistance.Error())
				}

				d.pendingLen = length
				d.pendingDist = distance
			}

		case dsBlockEnd:
			if d.final {
				d.state = dsDone
				return d.br.pos, dstPos, Done, nil
			}
			d.state = dsNeedHeader

		case dsDone:
			return d.br.pos, dstPos, Done, nil
		}
	}
}

// decodeDynamicTables reads the HLIT/HDIST/HCLEN header, the
// code-length alphabet, and the literal/length + distance code length
// sequences (RFC 1951 §3.2.7), returning the two canonical tables. ok
// is false if the currently-buffered bits ran out before the whole
// header could be read; ambiguity between "need more bits" and "stream
// is malformed" mid-header is resolved in favor of asking for more
// input, since our own compressor never emits dynamic blocks and a
// truncated stream is the overwhelmingly more likely cause in
// practice.
func (d *Decompressor) decodeDynamicTables() (*huffTable, *huffTable, bool) {
	if !d.br.needBits(14) {
		return nil, nil, false
	}
	hlit := int(d.br.readBits(5)) + 257
	hdist := int(d.br.readBits(5)) + 1
	hclen := int(d.br.readBits(4)) + 4

	clLengths := make([]int, 19)
	for i := 0; i < hclen; i++ {
		if !d.br.needBits(3) {
			return nil, nil, false
		}
		clLengths[codeLengthOrder[i]] = int(d.br.readBits(3))
	}
	clTable := buildCanonical(clLengths)

	total := hlit + hdist
	allLengths := make([]int, 0, total)
	for len(allLengths) < total {
		sym, ok := clTable.decode(&d.br)
		if !ok {
			return nil, nil, false
		}
		switch {
		case sym <= 15:
			allLengths = append(allLengths, sym)
		case sym == 16:
			if !d.br.needBits(2) || len(allLengths) == 0 {
				return nil, nil, false
			}
			repeat := 3 + int(d.br.readBits(2))
			prev := allLengths[len(allLengths)-1]
			for i := 0; i < repeat; i++ {
				allLengths = append(allLengths, prev)
			}
		case sym == 17:
			if !d.br.needBits(3) {
				return nil, nil, false
			}
			repeat := 3 + int(d.br.readBits(3))
			for i := 0; i < repeat; i++ {
				allLengths = append(allLengths, 0)
			}
		case sym == 18:
			if !d.br.needBits(7) {
				return nil, nil, false
			}
			repeat := 11 + int(d.br.readBits(7))
			for i := 0; i < repeat; i++ {
				allLengths = append(allLengths, 0)
			}
		}
	}

	litLengths := allLengths[:hlit]
	distLengths := allLengths[hlit : hlit+hdist]
	return buildCanonical(litLengths), buildCanonical(distLengths), true
}
