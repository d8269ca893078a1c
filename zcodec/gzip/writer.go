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

package gzip

import (
	"hash/crc32"
	"io"

	"github.com/sabouaram/fixnative/zcodec/deflate"
)

const chunkSize = 32 * 1024

// Writer wraps an io.Writer, framing whatever is written to it as a
// single-member GZIP stream. It drives zcodec/deflate's bounded-buffer
// pump protocol internally so callers only ever see the ordinary
// io.WriteCloser contract.
type Writer struct {
	dst  io.Writer
	comp *deflate.Compressor
	crc  uint32
	size uint32

	headerDone bool
	out        []byte
	closed     bool
}

// NewWriter returns a Writer that compresses and GZIP-frames data
// written to it, forwarding the framed bytes to dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{
		dst:  dst,
		comp: deflate.NewCompressor(false),
		out:  make([]byte, chunkSize),
	}
}

func (w *Writer) ensureHeader() error {
	if w.headerDone {
		return nil
	}
	w.headerDone = true
	_, err := w.dst.Write(writeHeader())
	return err
}

// Write compresses p and forwards the encoded bytes downstream.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.ensureHeader(); err != nil {
		return 0, err
	}

	w.crc = crc32.Update(w.crc, crc32.IEEETable, p)
	w.size += uint32(len(p))

	total := 0
	for total < len(p) {
		n, wn, res, err := w.comp.Compress(p[total:], false, false, w.out)
		if err != nil {
			return total, err
		}
		if wn > 0 {
			if _, werr := w.dst.Write(w.out[:wn]); werr != nil {
				return total, werr
			}
		}
		total += n
		if n == 0 && wn == 0 {
			break
		}
		_ = res
	}
	return total, nil
}

// Close finalizes the DEFLATE stream and appends the GZIP trailer.
// It does not close the underlying io.Writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.ensureHeader(); err != nil {
		return err
	}

	for {
		n, wn, res, err := w.comp.Compress(nil, true, false, w.out)
		if err != nil {
			return err
		}
		if wn > 0 {
			if _, werr := w.dst.Write(w.out[:wn]); werr != nil {
				return werr
			}
		}
		_ = n
		if res == deflate.Done {
			break
		}
	}

	_, err := w.dst.Write(writeTrailer(w.crc, w.size))
	return err
}
