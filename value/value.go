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

// Package value mirrors the tagged word the embedded script runtime passes
// across the native boundary. The native subsystems in
// this module (asyncio, zcodec, ordser, gstore, cssmatch) never hold a
// real script heap; they consume and produce this neutral representation
// instead, the same way the C original consumes/produces a foreign `Value`
// without owning it.
package value

// Kind is the tag of a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindArray
	KindHash
	KindHandle
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindArray:
		return "array"
	case KindHash:
		return "hash"
	case KindHandle:
		return "handle"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Handle is implemented by the handle package; kept here as a minimal
// interface to avoid an import cycle between value and handle.
type Handle interface {
	TypeTag() int
	Release()
}

// Value is a tagged word: exactly one of the typed accessors below is
// meaningful for any given Kind.
type Value struct {
	kind Kind
	i    int32
	f    float32
	ref  any
}

func Int(i int32) Value {
	return Value{kind: KindInt, i: i}
}

func Float(f float32) Value {
	return Value{kind: KindFloat, f: f}
}

func FromArray(a *Array) Value {
	return Value{kind: KindArray, ref: a}
}

func FromHash(h *Hash) Value {
	return Value{kind: KindHash, ref: h}
}

func FromHandle(h Handle) Value {
	return Value{kind: KindHandle, ref: h}
}

func FromError(e error) Value {
	return Value{kind: KindError, ref: e}
}

// Zero is the canonical serializable zero integer, used as GSTORE's
// "missing key" sentinel.
var Zero = Int(0)

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsHash() bool   { return v.kind == KindHash }
func (v Value) IsHandle() bool { return v.kind == KindHandle }
func (v Value) IsError() bool  { return v.kind == KindError }

func (v Value) Int() int32 {
	if v.kind != KindInt {
		return 0
	}
	return v.i
}

func (v Value) Float() float32 {
	if v.kind != KindFloat {
		return 0
	}
	return v.f
}

func (v Value) Array() *Array {
	if v.kind != KindArray {
		return nil
	}
	a, _ := v.ref.(*Array)
	return a
}

func (v Value) Hash() *Hash {
	if v.kind != KindHash {
		return nil
	}
	h, _ := v.ref.(*Hash)
	return h
}

func (v Value) Handle() Handle {
	if v.kind != KindHandle {
		return nil
	}
	h, _ := v.ref.(Handle)
	return h
}

func (v Value) Err() error {
	if v.kind != KindError {
		return nil
	}
	e, _ := v.ref.(error)
	return e
}

// Array is an ordered, mutable sequence of Values (the script runtime's
// array reference type).
type Array struct {
	elems []Value
	str   bool
}

func NewArray(elems ...Value) *Array {
	a := &Array{elems: make([]Value, len(elems))}
	copy(a.elems, elems)
	return a
}

// NewByteArray builds an Array of KindInt values in [0,255], the
// representation ORDSER treats as a "byte string producing array" when the
// caller has raw bytes rather than a script byte-string handle.
func NewByteArray(b []byte) *Array {
	a := &Array{elems: make([]Value, len(b))}
	for i, c := range b {
		a.elems[i] = Int(int32(c))
	}
	return a
}

// NewString builds an Array of int32 Unicode code points marked as a
// script string, the FixScript convention of representing strings as
// int arrays tagged with an "is string" bit. ORDSER's byte/short/int
// string atoms mirror this tagging at the serialization layer.
func NewString(s string) *Array {
	runes := []rune(s)
	a := &Array{elems: make([]Value, len(runes)), str: true}
	for i, r := range runes {
		a.elems[i] = Int(int32(r))
	}
	return a
}

// MarkString flags an existing Array as a script string rather than a
// plain array of integers.
func (a *Array) MarkString() { a.str = true }

// IsString reports whether this array represents a script string.
func (a *Array) IsString() bool { return a.str }

func (a *Array) Len() int { return len(a.elems) }

func (a *Array) Get(i int) Value {
	if i < 0 || i >= len(a.elems) {
		return Value{}
	}
	return a.elems[i]
}

func (a *Array) Set(i int, v Value) {
	if i < 0 || i >= len(a.elems) {
		return
	}
	a.elems[i] = v
}

func (a *Array) Append(v Value) {
	a.elems = append(a.elems, v)
}

func (a *Array) Slice() []Value {
	return a.elems
}

// AllBytes reports whether every element is an integer in [0,255], i.e.
// this array is usable as a byte string.
func (a *Array) AllBytes() bool {
	for _, e := range a.elems {
		if !e.IsInt() || e.i < 0 || e.i > 255 {
			return false
		}
	}
	return true
}

func (a *Array) Bytes() []byte {
	b := make([]byte, len(a.elems))
	for i, e := range a.elems {
		b[i] = byte(e.i)
	}
	return b
}

// Hash is an ordered hash reference. Entries preserve insertion order;
// ORDSER re-sorts them by key atom at serialization time.
type Hash struct {
	keys []Value
	vals []Value
}

func NewHash() *Hash {
	return &Hash{}
}

func (h *Hash) Len() int { return len(h.keys) }

func (h *Hash) Entries() ([]Value, []Value) {
	return h.keys, h.vals
}

func (h *Hash) Set(key, val Value) {
	for i, k := range h.keys {
		if Equal(k, key) {
			h.vals[i] = val
			return
		}
	}
	h.keys = append(h.keys, key)
	h.vals = append(h.vals, val)
}

func (h *Hash) Get(key Value) (Value, bool) {
	for i, k := range h.keys {
		if Equal(k, key) {
			return h.vals[i], true
		}
	}
	return Value{}, false
}

// Equal is a shallow structural equality used only for Hash key lookups
// (small hashes in practice; a linear scan mirrors the reference script
// runtime's unordered small-object hash tables closely enough here).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindArray:
		aa, bb := a.Array(), b.Array()
		if aa == bb {
			return true
		}
		if aa == nil || bb == nil || aa.Len() != bb.Len() {
			return false
		}
		for i := range aa.elems {
			if !Equal(aa.elems[i], bb.elems[i]) {
				return false
			}
		}
		return true
	case KindHash:
		return a.Hash() == b.Hash()
	case KindHandle:
		return a.Handle() == b.Handle()
	default:
		return false
	}
}
