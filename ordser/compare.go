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

package ordser

import "math"

// decoded is a widened, family-tagged view of one atom, built only far
// enough to compare it against another — it never reconstructs a
// value.Value. Integers of any width (zero/byte/short/int) and array
// elements of any element width land in the same int64 field, widened
// on the fly, so the comparator can treat them as one domain.
type decoded struct {
	family int
	i      int64
	f      float32
	isNaN  bool
	elems  []decoded // familyArray
	chars  []int64   // familyString
	pairs  []hashPair
}

type hashPair struct {
	key decoded
	val decoded
}

// Compare decodes one atom from each of a and b and returns -1, 0, or
// +1 by family rank then value, without requiring either side to be
// fully materialized into a value.Value first.
func Compare(a, b []byte) (int, error) {
	return compareAtoms(a, b)
}

func compareAtoms(a, b []byte) (int, error) {
	da, _, err := decodeAtom(a, 0)
	if err != nil {
		return 0, err
	}
	db, _, err := decodeAtom(b, 0)
	if err != nil {
		return 0, err
	}
	return compareDecoded(da, db), nil
}

func decodeAtom(b []byte, depth int) (decoded, int, error) {
	if depth > maxDepth {
		return decoded{}, 0, ErrRecursionLimit.Error()
	}
	if len(b) < 1 {
		return decoded{}, 0, ErrBadFormat.Error()
	}

	tag := b[0]
	low := lowNibble(tag)
	high := highNibble(tag)
	rest := b[1:]

	switch low {
	case tagZeroInt:
		return decoded{family: familyInt, i: 0}, 1, nil
	case tagByteInt:
		if len(rest) < 1 {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		return decoded{family: familyInt, i: int64(int8(rest[0]))}, 2, nil
	case tagShortInt:
		if len(rest) < 2 {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		v := int16(uint16(rest[0]) | uint16(rest[1])<<8)
		return decoded{family: familyInt, i: int64(v)}, 3, nil
	case tagInt:
		if len(rest) < 4 {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		v := int32(uint32(rest[0]) | uint32(rest[1])<<8 | uint32(rest[2])<<16 | uint32(rest[3])<<24)
		return decoded{family: familyInt, i: int64(v)}, 5, nil
	case tagFloatZero:
		return decoded{family: familyFloat, f: 0}, 1, nil
	case tagFloat:
		if len(rest) < 4 {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		bits := uint32(rest[0]) | uint32(rest[1])<<8 | uint32(rest[2])<<16 | uint32(rest[3])<<24
		f := math.Float32frombits(bits)
		return decoded{family: familyFloat, f: f, isNaN: f != f}, 5, nil
	case tagByteArray, tagShortArray, tagIntArray, tagArray:
		return decodeArrayAtom(low, high, tag, rest, depth)
	case tagByteString, tagShortStr, tagIntStr:
		return decodeStringAtom(low, high, rest)
	case tagHash:
		return decodeHashAtom(high, rest, depth)
	default:
		return decoded{}, 0, ErrBadFormat.Error()
	}
}

func decodeArrayAtom(low, high, tag byte, rest []byte, depth int) (decoded, int, error) {
	n, lenBytes, err := decodeLength(high, rest)
	if err != nil {
		return decoded{}, 0, err
	}
	rest = rest[lenBytes:]
	consumed := 1 + lenBytes

	elems := make([]decoded, n)
	switch low {
	case tagByteArray:
		if len(rest) < n {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		for i := 0; i < n; i++ {
			elems[i] = decoded{family: familyInt, i: int64(rest[i])}
		}
		consumed += n
	case tagShortArray:
		if len(rest) < n*2 {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		for i := 0; i < n; i++ {
			v := int16(uint16(rest[i*2]) | uint16(rest[i*2+1])<<8)
			elems[i] = decoded{family: familyInt, i: int64(v)}
		}
		consumed += n * 2
	case tagIntArray:
		if len(rest) < n*4 {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		for i := 0; i < n; i++ {
			o := i * 4
			v := int32(uint32(rest[o]) | uint32(rest[o+1])<<8 | uint32(rest[o+2])<<16 | uint32(rest[o+3])<<24)
			elems[i] = decoded{family: familyInt, i: int64(v)}
		}
		consumed += n * 4
	default: // tagArray, generic nested atoms
		for i := 0; i < n; i++ {
			e, used, err := decodeAtom(rest, depth+1)
			if err != nil {
				return decoded{}, 0, err
			}
			elems[i] = e
			rest = rest[used:]
			consumed += used
		}
	}

	return decoded{family: familyArray, elems: elems}, consumed, nil
}

func decodeStringAtom(low, high byte, rest []byte) (decoded, int, error) {
	n, lenBytes, err := decodeLength(high, rest)
	if err != nil {
		return decoded{}, 0, err
	}
	rest = rest[lenBytes:]
	consumed := 1 + lenBytes

	chars := make([]int64, n)
	switch low {
	case tagByteString:
		if len(rest) < n {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		for i := 0; i < n; i++ {
			chars[i] = int64(rest[i])
		}
		consumed += n
	case tagShortStr:
		if len(rest) < n*2 {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		for i := 0; i < n; i++ {
			chars[i] = int64(uint16(rest[i*2]) | uint16(rest[i*2+1])<<8)
		}
		consumed += n * 2
	default: // tagIntStr
		if len(rest) < n*4 {
			return decoded{}, 0, ErrBadFormat.Error()
		}
		for i := 0; i < n; i++ {
			o := i * 4
			chars[i] = int64(uint32(rest[o]) | uint32(rest[o+1])<<8 | uint32(rest[o+2])<<16 | uint32(rest[o+3])<<24)
		}
		consumed += n * 4
	}

	return decoded{family: familyString, chars: chars}, consumed, nil
}

func decodeHashAtom(high byte, rest []byte, depth int) (decoded, int, error) {
	n, lenBytes, err := decodeLength(high, rest)
	if err != nil {
		return decoded{}, 0, err
	}
	rest = rest[lenBytes:]
	consumed := 1 + lenBytes

	pairs := make([]hashPair, n)
	for i := 0; i < n; i++ {
		k, used, err := decodeAtom(rest, depth+1)
		if err != nil {
			return decoded{}, 0, err
		}
		rest = rest[used:]
		consumed += used

		v, used2, err := decodeAtom(rest, depth+1)
		if err != nil {
			return decoded{}, 0, err
		}
		rest = rest[used2:]
		consumed += used2

		pairs[i] = hashPair{key: k, val: v}
	}

	return decoded{family: familyHash, pairs: pairs}, consumed, nil
}

func compareDecoded(a, b decoded) int {
	if a.family != b.family {
		return cmpInt(a.family, b.family)
	}

	switch a.family {
	case familyInt:
		return cmpInt64(a.i, b.i)
	case familyFloat:
		return compareFloat(a, b)
	case familyArray:
		return compareSlices(a.elems, b.elems, compareDecoded)
	case familyString:
		return compareSlices(a.chars, b.chars, cmpInt64)
	case familyHash:
		return compareHashPairs(a.pairs, b.pairs)
	default:
		return 0
	}
}

func compareFloat(a, b decoded) int {
	switch {
	case a.isNaN && b.isNaN:
		return 0
	case a.isNaN:
		return 1
	case b.isNaN:
		return -1
	case a.f < b.f:
		return -1
	case a.f > b.f:
		return 1
	default:
		return 0
	}
}

// compareSlices implements "shorter-is-less on an equal prefix" for
// any elementwise-comparable sequence.
func compareSlices[T any](a, b []T, cmp func(x, y T) int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := cmp(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func compareHashPairs(a, b []hashPair) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compareDecoded(a[i].key, b[i].key); c != 0 {
			return c
		}
		if c := compareDecoded(a[i].val, b[i].val); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
