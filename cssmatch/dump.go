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
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	dumpMatch   = color.New(color.FgGreen, color.Bold)
	dumpNoMatch = color.New(color.FgRed)
	dumpNode    = color.New(color.FgCyan)
)

// DumpMatch writes a one-line, colorized trace of Match(n, s) to w:
// the node's tag/id/classes, the selector's kind, and whether it
// matched. Intended for interactive debugging of selector trees, not
// for the hot matching path.
func DumpMatch(w io.Writer, n *Node, s *Selector) bool {
	ok := Match(n, s)

	_, _ = dumpNode.Fprintf(w, "<%s", n.Tag)
	if n.ID != "" {
		_, _ = fmt.Fprintf(w, "#%s", n.ID)
	}
	for _, c := range n.Classes {
		_, _ = fmt.Fprintf(w, ".%s", c)
	}
	_, _ = dumpNode.Fprint(w, ">")

	_, _ = fmt.Fprintf(w, " vs kind=%d: ", s.Kind)
	if ok {
		_, _ = dumpMatch.Fprintln(w, "match")
	} else {
		_, _ = dumpNoMatch.Fprintln(w, "no match")
	}
	return ok
}
