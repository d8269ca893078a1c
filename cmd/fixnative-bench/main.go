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

// Command fixnative-bench exercises ZCODEC, ORDSER and GSTORE from the
// command line, for manual smoke-testing outside the test suite.
package main

import (
	"fmt"
	"os"

	spfcbr "github.com/spf13/cobra"
)

func main() {
	root := &spfcbr.Command{
		Use:   "fixnative-bench",
		Short: "Exercise ZCODEC, ORDSER and GSTORE from the command line",
	}

	root.AddCommand(newGzipCommand())
	root.AddCommand(newOrdserCommand())
	root.AddCommand(newGStoreCommand())
	root.AddCommand(newConfigCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fixnative-bench:", err)
		os.Exit(1)
	}
}
