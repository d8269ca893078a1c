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

import (
	"math"
	"sort"

	"github.com/sabouaram/fixnative/value"
)

// Serialize encodes v as a single self-describing atom.
func Serialize(v value.Value) ([]byte, error) {
	return serialize(v, 0)
}

func serialize(v value.Value, depth int) ([]byte, error) {
	if depth > maxDepth {
		return nil, ErrRecursionLimit.Error()
	}

	switch v.Kind() {
	case value.KindInt:
		return encodeInt(v.Int()), nil
	case value.KindFloat:
		return encodeFloat(v.Float()), nil
	case value.KindArray:
		return encodeArray(v.Array(), depth)
	case value.KindHash:
		return encodeHash(v.Hash(), depth)
	default:
		return nil, ErrUnserializableRef.Error()
	}
}

func encodeInt(i int32) []byte {
	switch {
	case i == 0:
		return []byte{tagZeroInt}
	case i >= -128 && i <= 127:
		return []byte{tagByteInt, byte(int8(i))}
	case i >= -32768 && i <= 32767:
		v := uint16(int16(i))
		return []byte{tagShortInt, byte(v), byte(v >> 8)}
	default:
		u := uint32(i)
		return []byte{tagInt, byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
	}
}

// canonicalNaN is the single bit pattern every NaN float32 collapses to
// before emission, so ser(nan) == ser(nan) always holds.
var canonicalNaN = math.Float32bits(float32(math.NaN()))

func encodeFloat(f float32) []byte {
	if f == 0 {
		return []byte{tagFloatZero}
	}
	bits := math.Float32bits(f)
	if f != f { // NaN
		bits = canonicalNaN
	}
	return []byte{tagFloat, byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
}

func encodeArray(a *value.Array, depth int) ([]byte, error) {
	if a == nil {
		nibble, extra := encodeLength(0)
		return append([]byte{tagArray | nibble<<4}, extra...), nil
	}

	n := a.Len()

	if a.IsString() {
		return encodeString(a)
	}

	allInt, minV, maxV := true, int32(0), int32(0)
	for i := 0; i < n; i++ {
		e := a.Get(i)
		if !e.IsInt() {
			allInt = false
			break
		}
		if i == 0 || e.Int() < minV {
			minV = e.Int()
		}
		if i == 0 || e.Int() > maxV {
			maxV = e.Int()
		}
	}

	switch {
	case allInt && minV >= 0 && maxV <= 255:
		nibble, extra := encodeLength(n)
		out := append([]byte{tagByteArray | nibble<<4}, extra...)
		for i := 0; i < n; i++ {
			out = append(out, byte(a.Get(i).Int()))
		}
		return out, nil
	case allInt && minV >= -32768 && maxV <= 32767:
		nibble, extra := encodeLength(n)
		out := append([]byte{tagShortArray | nibble<<4}, extra...)
		for i := 0; i < n; i++ {
			v := uint16(int16(a.Get(i).Int()))
			out = append(out, byte(v), byte(v>>8))
		}
		return out, nil
	case allInt:
		nibble, extra := encodeLength(n)
		out := append([]byte{tagIntArray | nibble<<4}, extra...)
		for i := 0; i < n; i++ {
			u := uint32(a.Get(i).Int())
			out = append(out, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
		}
		return out, nil
	default:
		nibble, extra := encodeLength(n)
		out := append([]byte{tagArray | nibble<<4}, extra...)
		for i := 0; i < n; i++ {
			sub, err := serialize(a.Get(i), depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	}
}

func encodeString(a *value.Array) ([]byte, error) {
	n := a.Len()
	minV, maxV := int32(0), int32(0)
	for i := 0; i < n; i++ {
		c := a.Get(i).Int()
		if i == 0 || c < minV {
			minV = c
		}
		if i == 0 || c > maxV {
			maxV = c
		}
	}

	switch {
	case minV >= 0 && maxV <= 255:
		nibble, extra := encodeLength(n)
		out := append([]byte{tagByteString | nibble<<4}, extra...)
		for i := 0; i < n; i++ {
			out = append(out, byte(a.Get(i).Int()))
		}
		return out, nil
	case minV >= 0 && maxV <= 65535:
		nibble, extra := encodeLength(n)
		out := append([]byte{tagShortStr | nibble<<4}, extra...)
		for i := 0; i < n; i++ {
			v := uint16(a.Get(i).Int())
			out = append(out, byte(v), byte(v>>8))
		}
		return out, nil
	default:
		nibble, extra := encodeLength(n)
		out := append([]byte{tagIntStr | nibble<<4}, extra...)
		for i := 0; i < n; i++ {
			u := uint32(a.Get(i).Int())
			out = append(out, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
		}
		return out, nil
	}
}

// encodeHash serializes a hash's entries sorted by their key atom's
// natural order, so the comparator can treat two hashes positionally.
func encodeHash(h *value.Hash, depth int) ([]byte, error) {
	if h == nil {
		nibble, extra := encodeLength(0)
		return append([]byte{tagHash | nibble<<4}, extra...), nil
	}

	keys, vals := h.Entries()
	n := len(keys)

	type pair struct{ k, v []byte }
	pairs := make([]pair, n)
	for i := 0; i < n; i++ {
		k, err := serialize(keys[i], depth+1)
		if err != nil {
			return nil, err
		}
		v, err := serialize(vals[i], depth+1)
		if err != nil {
			return nil, err
		}
		pairs[i] = pair{k, v}
	}

	sort.Slice(pairs, func(i, j int) bool {
		c, err := compareAtoms(pairs[i].k, pairs[j].k)
		if err != nil {
			return false
		}
		return c < 0
	})

	nibble, extra := encodeLength(n)
	out := append([]byte{tagHash | nibble<<4}, extra...)
	for _, p := range pairs {
		out = append(out, p.k...)
		out = append(out, p.v...)
	}
	return out, nil
}
