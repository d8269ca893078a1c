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
	windowSize  = 32768 // 15-bit sliding window
	minMatch    = 3
	maxMatch    = 258
	hashBuckets = 4096
	hashSlots   = 8
)

// lengthBase/lengthExtra give, for length symbols 257..285, the base
// length and number of extra bits that follow the symbol (RFC 1951
// §3.2.5). Symbol 285 (index 28) is length 258 with no extra bits.
var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}
var lengthExtra = [29]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase/distExtra give, for distance symbols 0..29, the base
// distance and extra bit count (RFC 1951 §3.2.5).
var distBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}
var distExtra = [30]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// codeLengthOrder is the permutation RFC 1951 §3.2.7 uses to transmit
// the code-length alphabet's own code lengths compactly.
var codeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// fixedLitLenLengths are the RFC 1951 §3.2.6 fixed literal/length code
// lengths for symbols 0..287.
func fixedLitLenLengths() []int {
	lens := make([]int, 288)
	for i := 0; i <= 143; i++ {
		lens[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lens[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lens[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lens[i] = 8
	}
	return lens
}

// fixedDistLengths are the fixed distance code lengths (5 bits each,
// symbols 0..29); symbols 30/31 are unused but listed as length 5 in
// the canonical fixed table, matching zlib's treatment.
func fixedDistLengths() []int {
	lens := make([]int, 32)
	for i := range lens {
		lens[i] = 5
	}
	return lens
}

func lengthSymbol(length int) (sym int, extra uint32, nbits uint) {
	for i := len(lengthBase) - 1; i >= 0; i-- {
		if length >= lengthBase[i] {
			return 257 + i, uint32(length - lengthBase[i]), lengthExtra[i]
		}
	}
	return 257, 0, 0
}

func distSymbol(dist int) (sym int, extra uint32, nbits uint) {
	for i := len(distBase) - 1; i >= 0; i-- {
		if dist >= distBase[i] {
			return i, uint32(dist - distBase[i]), distExtra[i]
		}
	}
	return 0, 0, 0
}
