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

// Package bigint provides arbitrary-precision integer arithmetic for
// the native layer. The original native code only hand-rolled
// the two operations expensive enough to need a C implementation
// (schoolbook multiply and long division over a little-endian 32-bit
// limb array); everything else — add, subtract, comparisons, string
// conversion — was plain script built on top of those two primitives.
// Go has no equivalent need to hand-roll limb arithmetic: this package
// wraps math/big.Int and exposes the same operation set as one
// self-contained value type.
package bigint

import "math/big"

// Int is an arbitrary-precision signed integer.
type Int struct {
	v big.Int
}

// Zero returns a new Int equal to 0.
func Zero() *Int { return &Int{} }

// FromInt64 returns a new Int equal to n.
func FromInt64(n int64) *Int {
	i := &Int{}
	i.v.SetInt64(n)
	return i
}

// Parse reads a base-10 integer literal (with an optional leading
// '-'), returning ErrInvalidDigits if s contains anything else.
func Parse(s string) (*Int, error) {
	i := &Int{}
	if _, ok := i.v.SetString(s, 10); !ok {
		return nil, ErrInvalidDigits.Error()
	}
	return i, nil
}

// String renders i in base 10.
func (i *Int) String() string { return i.v.String() }

// Sign returns -1, 0, or 1.
func (i *Int) Sign() int { return i.v.Sign() }

// Cmp compares i and other, returning -1, 0, or 1.
func (i *Int) Cmp(other *Int) int { return i.v.Cmp(&other.v) }

// Add returns i + other as a new Int.
func (i *Int) Add(other *Int) *Int {
	r := &Int{}
	r.v.Add(&i.v, &other.v)
	return r
}

// Sub returns i - other as a new Int.
func (i *Int) Sub(other *Int) *Int {
	r := &Int{}
	r.v.Sub(&i.v, &other.v)
	return r
}

// Mul returns i * other as a new Int, the Go-idiomatic replacement for
// the original's native_bigint_mul schoolbook multiply over raw
// 32-bit limbs.
func (i *Int) Mul(other *Int) *Int {
	r := &Int{}
	r.v.Mul(&i.v, &other.v)
	return r
}

// DivMod returns the quotient and remainder of i / other, truncated
// toward zero (matching the original's native_bigint_divrem long
// division). Returns ErrDivisionByZero if other is zero.
func (i *Int) DivMod(other *Int) (quot, rem *Int, err error) {
	if other.v.Sign() == 0 {
		return nil, nil, ErrDivisionByZero.Error()
	}
	quot, rem = &Int{}, &Int{}
	quot.v.QuoRem(&i.v, &other.v, &rem.v)
	return quot, rem, nil
}

// Pow returns i raised to the non-negative power exp.
func (i *Int) Pow(exp uint64) *Int {
	r := &Int{}
	r.v.Exp(&i.v, new(big.Int).SetUint64(exp), nil)
	return r
}

// Gcd returns the greatest common divisor of |i| and |other|.
func (i *Int) Gcd(other *Int) *Int {
	r := &Int{}
	r.v.GCD(nil, nil, new(big.Int).Abs(&i.v), new(big.Int).Abs(&other.v))
	return r
}

// Int64 returns i as an int64 and whether the conversion was exact.
func (i *Int) Int64() (int64, bool) {
	if !i.v.IsInt64() {
		return 0, false
	}
	return i.v.Int64(), true
}
