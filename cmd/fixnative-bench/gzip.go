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

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	spfcbr "github.com/spf13/cobra"

	"github.com/sabouaram/fixnative/zcodec/gzip"
)

func newGzipCommand() *spfcbr.Command {
	var decompress bool

	cmd := &spfcbr.Command{
		Use:   "gzip [file]",
		Short: "Round-trip a file (or stdin) through the ZCODEC gzip codec",
		Args:  spfcbr.MaximumNArgs(1),
		RunE: func(cmd *spfcbr.Command, args []string) error {
			src, err := openInput(args)
			if err != nil {
				return err
			}
			defer src.Close()

			raw, err := io.ReadAll(src)
			if err != nil {
				return err
			}

			if decompress {
				r, err := gzip.NewReader(bytes.NewReader(raw))
				if err != nil {
					return err
				}
				out, err := io.ReadAll(r)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(out)
				return err
			}

			var buf bytes.Buffer
			start := time.Now()
			w := gzip.NewWriter(&buf)
			if _, err := w.Write(raw); err != nil {
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(os.Stderr, "fixnative-bench: %d bytes -> %d bytes (%.1f%%) in %s\n",
				len(raw), buf.Len(), 100*float64(buf.Len())/float64(max(1, len(raw))), elapsed)
			_, err = os.Stdout.Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVarP(&decompress, "decompress", "d", false, "decompress input instead of compressing it")
	return cmd
}

func openInput(args []string) (*os.File, error) {
	if len(args) == 0 {
		return os.Stdin, nil
	}
	return os.Open(args[0])
}
