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
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/sabouaram/fixnative/zcodec/deflate"
)

// Reader wraps an io.Reader holding a single-member GZIP stream,
// presenting the decompressed bytes through the ordinary io.Reader
// contract while driving zcodec/deflate's pump protocol internally.
type Reader struct {
	src    io.Reader
	decomp *deflate.Decompressor
	crc    uint32
	size   uint32

	in      []byte
	inLen   int
	inPos   int
	atEOF   bool
	trailer bool
}

// NewReader reads and validates the GZIP header from src, including
// any optional FEXTRA/FNAME/FCOMMENT/FHCRC fields, and returns a
// Reader positioned at the start of the compressed member.
func NewReader(src io.Reader) (*Reader, error) {
	var hdr [10]byte
	if _, err := io.ReadFull(src, hdr[:]); err != nil {
		return nil, ErrTruncatedHeader.Error()
	}
	if hdr[0] != magic1 || hdr[1] != magic2 {
		return nil, ErrBadMagic.Error()
	}
	if hdr[2] != cmDeflate {
		return nil, ErrUnsupportedMethod.Error()
	}
	flg := hdr[3]

	if flg&flgFEXTRA != 0 {
		var xlenBuf [2]byte
		if _, err := io.ReadFull(src, xlenBuf[:]); err != nil {
			return nil, ErrTruncatedHeader.Error()
		}
		xlen := binary.LittleEndian.Uint16(xlenBuf[:])
		if err := discard(src, int(xlen)); err != nil {
			return nil, err
		}
	}
	if flg&flgFNAME != 0 {
		if err := discardCString(src); err != nil {
			return nil, err
		}
	}
	if flg&flgFCOMMENT != 0 {
		if err := discardCString(src); err != nil {
			return nil, err
		}
	}
	if flg&flgFHCRC != 0 {
		if err := discard(src, 2); err != nil {
			return nil, err
		}
	}

	return &Reader{
		src:    src,
		decomp: deflate.NewDecompressor(),
		in:     make([]byte, chunkSize),
	}, nil
}

func discard(src io.Reader, n int) error {
	if n == 0 {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(src, buf); err != nil {
		return ErrTruncatedHeader.Error()
	}
	return nil
}

func discardCString(src io.Reader) error {
	var b [1]byte
	for {
		if _, err := io.ReadFull(src, b[:]); err != nil {
			return ErrTruncatedHeader.Error()
		}
		if b[0] == 0 {
			return nil
		}
	}
}

// Read decompresses from the underlying stream, verifying the GZIP
// trailer's CRC-32 and ISIZE once the member is exhausted.
func (r *Reader) Read(p []byte) (int, error) {
	if r.trailer {
		return 0, io.EOF
	}

	for {
		if r.inPos >= r.inLen && !r.atEOF {
			n, err := r.src.Read(r.in)
			r.inPos, r.inLen = 0, n
			if n == 0 {
				if err == io.EOF || err == nil {
					r.atEOF = true
				} else {
					return 0, err
				}
			}
		}

		consumed, written, res, err := r.decomp.Decompress(r.in[r.inPos:r.inLen], p)
		r.inPos += consumed
		if err != nil {
			return written, err
		}
		if written > 0 {
			r.crc = crc32.Update(r.crc, crc32.IEEETable, p[:written])
			r.size += uint32(written)
		}

		switch res {
		case deflate.Done:
			if err := r.verifyTrailer(); err != nil {
				return written, err
			}
			r.trailer = true
			return written, nil
		case deflate.Flush:
			return written, nil
		case deflate.More:
			if written > 0 {
				return written, nil
			}
			if r.atEOF && r.inPos >= r.inLen {
				return 0, ErrTruncatedHeader.Error()
			}
		}
	}
}

func (r *Reader) verifyTrailer() error {
	var tail [8]byte
	n := copy(tail[:], r.in[r.inPos:r.inLen])
	if n < 8 {
		if _, err := io.ReadFull(r.src, tail[n:]); err != nil {
			return ErrTruncatedHeader.Error()
		}
	}
	r.inPos += n

	crc := binary.LittleEndian.Uint32(tail[0:4])
	isize := binary.LittleEndian.Uint32(tail[4:8])
	if crc != r.crc {
		return ErrCRCMismatch.Error()
	}
	if isize != r.size {
		return ErrSizeMismatch.Error()
	}
	return nil
}
