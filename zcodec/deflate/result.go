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

// Package deflate implements the streaming DEFLATE compressor and
// decompressor state machines: a fixed-Huffman-only producer with an
// optional flushable stored-block mode, and a consumer of any valid
// RFC 1951 block (stored, fixed, dynamic).
package deflate

// Result is the pump-protocol return value every Compress/Decompress
// call reports.
type Result int

const (
	// More means the call needs more source bytes before it can make
	// further progress; append input and call again.
	More Result = iota
	// Flush means the destination buffer is full; drain it and call
	// again with the same (remaining) source.
	Flush
	// Done means the stream ended cleanly.
	Done
	// Error means the stream is corrupt; the state is now sticky and no
	// further call will return Done.
	Error
)

func (r Result) String() string {
	switch r {
	case More:
		return "MORE"
	case Flush:
		return "FLUSH"
	case Done:
		return "DONE"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
