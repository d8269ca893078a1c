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

// Package cssmatch mirrors script-side DOM nodes and selector ASTs
// into native structs and evaluates CSS-style selectors against them.
// It is deliberately small: the DOM itself, the selector
// parser, and the script heap that owns both are external
// collaborators; this package only does the mirror-and-match half of
// the bridge.
package cssmatch

import "sync"

// Node is the native mirror of one script-side DOM element. Combinator
// matching walks Parent and PrevSibling/NextSibling, stopping once
// Parent is nil (the document root).
type Node struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   map[string]string

	Parent   *Node
	Children []*Node
}

// index returns n's position among its parent's children, or -1 if n
// has no parent (the document root).
func (n *Node) index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// PrevSibling returns the element immediately before n among its
// parent's children, or nil.
func (n *Node) PrevSibling() *Node {
	i := n.index()
	if i <= 0 {
		return nil
	}
	return n.Parent.Children[i-1]
}

// NextSibling returns the element immediately after n among its
// parent's children, or nil.
func (n *Node) NextSibling() *Node {
	i := n.index()
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}

// hasClass reports whether class is one of n's whitespace-separated
// class tokens.
func (n *Node) hasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Mirror caches native Node mirrors keyed by the script heap's
// array-value identity, so the same script-side DOM node is cloned
// into a native struct on first access and reused from the
// value-id → native-node map on every later access, never rebuilt
// twice. The script heap itself is external; Mirror only owns the
// cache.
type Mirror struct {
	mu    sync.Mutex
	nodes map[int64]*Node
}

// NewMirror returns an empty node cache.
func NewMirror() *Mirror {
	return &Mirror{nodes: make(map[int64]*Node)}
}

// GetOrBuild returns the cached Node for valueID, calling build to
// clone it from script state on first access only.
func (m *Mirror) GetOrBuild(valueID int64, build func() *Node) *Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.nodes[valueID]; ok {
		return n
	}
	n := build()
	m.nodes[valueID] = n
	return n
}

// Invalidate drops a cached mirror, forcing the next GetOrBuild for
// valueID to re-clone it from script state.
func (m *Mirror) Invalidate(valueID int64) {
	m.mu.Lock()
	delete(m.nodes, valueID)
	m.mu.Unlock()
}
