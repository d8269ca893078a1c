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

import (
	"strings"
	"unicode"
)

// Match is a pure recursive boolean evaluator: no allocation on the
// hot path once the node mirror exists. An unrecognized
// Kind is treated as non-matching rather than panicking, since a
// malformed selector tree is a build-time bug in the bridge, not a
// runtime condition the matcher should crash on.
func Match(n *Node, s *Selector) bool {
	if n == nil || s == nil {
		return false
	}
	switch s.Kind {
	case KindType:
		return n.Tag == s.Name
	case KindID:
		return n.ID == s.Name
	case KindClass:
		return n.hasClass(s.Name)
	case KindAttrib:
		_, ok := n.Attrs[s.Name]
		return ok
	case KindAttribEquals:
		v, ok := n.Attrs[s.Name]
		return ok && v == s.Value
	case KindAttribInclude:
		return matchAttribInclude(n, s)
	case KindAttribDash:
		v, ok := n.Attrs[s.Name]
		return ok && strings.HasPrefix(v, s.Value) &&
			(len(v) == len(s.Value) || v[len(s.Value)] == '-')
	case KindAttribPrefix:
		v, ok := n.Attrs[s.Name]
		return ok && s.Value != "" && strings.HasPrefix(v, s.Value)
	case KindAttribSuffix:
		v, ok := n.Attrs[s.Name]
		return ok && s.Value != "" && strings.HasSuffix(v, s.Value)
	case KindAttribSubstring:
		v, ok := n.Attrs[s.Name]
		return ok && s.Value != "" && strings.Contains(v, s.Value)
	case KindPseudoRoot:
		return n.Parent == nil
	case KindPseudoEmpty:
		return len(n.Children) == 0
	case KindPseudoFirstChild:
		return n.PrevSibling() == nil
	case KindPseudoLastChild:
		return n.NextSibling() == nil
	case KindPseudoOnlyChild:
		return n.PrevSibling() == nil && n.NextSibling() == nil
	case KindPseudoFirstOfType:
		return prevOfType(n) == nil
	case KindPseudoLastOfType:
		return nextOfType(n) == nil
	case KindPseudoOnlyOfType:
		return prevOfType(n) == nil && nextOfType(n) == nil
	case KindNot:
		return !Match(n, s.Sub)
	case KindSequence:
		if len(s.Parts) == 0 {
			return false
		}
		for _, p := range s.Parts {
			if !Match(n, p) {
				return false
			}
		}
		return true
	case KindCombDescendant:
		if !Match(n, s.Right) {
			return false
		}
		for anc := n.Parent; anc != nil; anc = anc.Parent {
			if Match(anc, s.Left) {
				return true
			}
		}
		return false
	case KindCombChild:
		return Match(n, s.Right) && n.Parent != nil && Match(n.Parent, s.Left)
	case KindCombNextSibling:
		return Match(n, s.Right) && Match(n.PrevSibling(), s.Left)
	case KindCombSubsequentSibling:
		if !Match(n, s.Right) {
			return false
		}
		for sib := n.PrevSibling(); sib != nil; sib = sib.PrevSibling() {
			if Match(sib, s.Left) {
				return true
			}
		}
		return false
	}
	return false
}

// matchAttribInclude implements `[name~=value]` as "truthy when any
// whitespace-separated token of the attribute equals value" — the
// corrected/intended semantics. The upstream C source compared
// contains(...) == 0, which reads as an inverted boolean test; this
// discrepancy is treated as a bug in the original rather than carried
// forward (see DESIGN.md Open Questions).
func matchAttribInclude(n *Node, s *Selector) bool {
	v, ok := n.Attrs[s.Name]
	if !ok || s.Value == "" {
		return false
	}
	for v != "" {
		v = strings.TrimLeftFunc(v, unicode.IsSpace)
		end := strings.IndexFunc(v, unicode.IsSpace)
		if end < 0 {
			end = len(v)
		}
		if v[:end] == s.Value {
			return true
		}
		v = v[end:]
	}
	return false
}

func prevOfType(n *Node) *Node {
	for sib := n.PrevSibling(); sib != nil; sib = sib.PrevSibling() {
		if sib.Tag == n.Tag {
			return sib
		}
	}
	return nil
}

func nextOfType(n *Node) *Node {
	for sib := n.NextSibling(); sib != nil; sib = sib.NextSibling() {
		if sib.Tag == n.Tag {
			return sib
		}
	}
	return nil
}
