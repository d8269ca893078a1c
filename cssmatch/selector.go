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

package cssmatch

// Kind tags the variant a Selector holds. Only the fields relevant to
// a given Kind are populated; see the comment on each Selector field.
type Kind int

const (
	KindType Kind = iota
	KindID
	KindClass
	KindAttrib
	KindAttribEquals
	KindAttribInclude
	KindAttribDash
	KindAttribPrefix
	KindAttribSuffix
	KindAttribSubstring
	KindPseudoRoot
	KindPseudoEmpty
	KindPseudoFirstChild
	KindPseudoLastChild
	KindPseudoOnlyChild
	KindPseudoFirstOfType
	KindPseudoLastOfType
	KindPseudoOnlyOfType
	KindNot
	KindSequence
	KindCombDescendant
	KindCombChild
	KindCombNextSibling
	KindCombSubsequentSibling
)

// Selector is a tagged variant covering every CSS-style selector kind
// this package matches. A given instance uses only the fields its
// Kind needs:
//
//   - KindType:                Name is the tag name.
//   - KindID:                  Name is the id.
//   - KindClass:               Name is the class token.
//   - KindAttrib*:             Name is the attribute, Value the
//     operand (empty/unused for plain KindAttrib, which only tests
//     presence).
//   - KindPseudo*:             no fields used.
//   - KindNot:                 Sub is the negated selector.
//   - KindSequence:            Parts are all ANDed together (e.g.
//     "div.foo#bar" is a 3-part sequence).
//   - KindComb*:               Left anchors the combinator's
//     left-hand compound, Right its right-hand one; matching anchors
//     on Right and walks outward to find a Left match.
type Selector struct {
	Kind Kind

	Name  string
	Value string

	Sub   *Selector
	Parts []*Selector
	Left  *Selector
	Right *Selector
}

// Type returns a KindType selector matching tag name.
func Type(name string) *Selector { return &Selector{Kind: KindType, Name: name} }

// ID returns a KindID selector matching element id.
func ID(id string) *Selector { return &Selector{Kind: KindID, Name: id} }

// Class returns a KindClass selector matching class token.
func Class(name string) *Selector { return &Selector{Kind: KindClass, Name: name} }

// Attrib returns a KindAttrib presence selector: `[name]`.
func Attrib(name string) *Selector { return &Selector{Kind: KindAttrib, Name: name} }

// AttribEquals returns `[name=value]`.
func AttribEquals(name, value string) *Selector {
	return &Selector{Kind: KindAttribEquals, Name: name, Value: value}
}

// AttribInclude returns `[name~=value]`: truthy when any
// whitespace-separated token of the attribute equals value (the
// corrected semantics; see the note on matchAttribInclude).
func AttribInclude(name, value string) *Selector {
	return &Selector{Kind: KindAttribInclude, Name: name, Value: value}
}

// AttribDash returns `[name|=value]`: the attribute equals value or
// begins with value followed by a '-'.
func AttribDash(name, value string) *Selector {
	return &Selector{Kind: KindAttribDash, Name: name, Value: value}
}

// AttribPrefix returns `[name^=value]`.
func AttribPrefix(name, value string) *Selector {
	return &Selector{Kind: KindAttribPrefix, Name: name, Value: value}
}

// AttribSuffix returns `[name$=value]`.
func AttribSuffix(name, value string) *Selector {
	return &Selector{Kind: KindAttribSuffix, Name: name, Value: value}
}

// AttribSubstring returns `[name*=value]`.
func AttribSubstring(name, value string) *Selector {
	return &Selector{Kind: KindAttribSubstring, Name: name, Value: value}
}

// Not returns `:not(sub)`.
func Not(sub *Selector) *Selector { return &Selector{Kind: KindNot, Sub: sub} }

// Sequence ANDs parts together, as in a compound selector like
// "div.foo#bar".
func Sequence(parts ...*Selector) *Selector { return &Selector{Kind: KindSequence, Parts: parts} }

// Descendant returns the "left right" combinator.
func Descendant(left, right *Selector) *Selector {
	return &Selector{Kind: KindCombDescendant, Left: left, Right: right}
}

// Child returns the "left > right" combinator.
func Child(left, right *Selector) *Selector {
	return &Selector{Kind: KindCombChild, Left: left, Right: right}
}

// NextSibling returns the "left + right" combinator.
func NextSibling(left, right *Selector) *Selector {
	return &Selector{Kind: KindCombNextSibling, Left: left, Right: right}
}

// SubsequentSibling returns the "left ~ right" combinator.
func SubsequentSibling(left, right *Selector) *Selector {
	return &Selector{Kind: KindCombSubsequentSibling, Left: left, Right: right}
}
