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

// Package gzip frames the zcodec/deflate bitstream as RFC 1952 GZIP:
// a fixed 10-byte header, the DEFLATE member, and an 8-byte trailer
// carrying CRC-32 and ISIZE.
package gzip

const (
	magic1    = 0x1F
	magic2    = 0x8B
	cmDeflate = 8

	flgFTEXT    = 1 << 0
	flgFHCRC    = 1 << 1
	flgFEXTRA   = 1 << 2
	flgFNAME    = 1 << 3
	flgFCOMMENT = 1 << 4

	osUnknown = 3 // "unknown" per RFC 1952 §2.3, matching most portable writers
)

func writeHeader() []byte {
	return []byte{
		magic1, magic2, cmDeflate, 0, // FLG=0: no optional fields
		0, 0, 0, 0, // MTIME=0: not tracked, per RFC 1952 this is valid
		0,         // XFL
		osUnknown, // OS
	}
}

func writeTrailer(crc, isize uint32) []byte {
	return []byte{
		byte(crc), byte(crc >> 8), byte(crc >> 16), byte(crc >> 24),
		byte(isize), byte(isize >> 8), byte(isize >> 16), byte(isize >> 24),
	}
}
