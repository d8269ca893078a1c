package deflate_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fixnative/zcodec/deflate"
)

// pumpCompress drives c to completion using a destination buffer much
// smaller than the input, exercising the bounded-buffer Flush contract.
func pumpCompress(c *deflate.Compressor, src []byte, chunkDst int) []byte {
	var out bytes.Buffer
	buf := make([]byte, chunkDst)
	pos := 0
	for {
		final := pos >= len(src)
		remaining := src[pos:]
		n, w, res, err := c.Compress(remaining, final, false, buf)
		Expect(err).NotTo(HaveOccurred())
		out.Write(buf[:w])
		pos += n
		if res == deflate.Done {
			break
		}
	}
	return out.Bytes()
}

func pumpDecompress(d *deflate.Decompressor, src []byte, chunkSrc, chunkDst int) []byte {
	var out bytes.Buffer
	dbuf := make([]byte, chunkDst)
	pos := 0
	for {
		end := pos + chunkSrc
		if end > len(src) {
			end = len(src)
		}
		n, w, res, err := d.Decompress(src[pos:end], dbuf)
		Expect(err).NotTo(HaveOccurred())
		out.Write(dbuf[:w])
		pos += n
		if res == deflate.Done {
			break
		}
		if pos >= len(src) && res == deflate.More {
			// ran out of input without reaching Done: malformed test setup
			break
		}
	}
	return out.Bytes()
}

var _ = Describe("fixed-Huffman round trip", func() {
	It("compresses and decompresses a repetitive payload", func() {
		src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)
		c := deflate.NewCompressor(false)
		compressed := pumpCompress(c, src, 16)

		d := deflate.NewDecompressor()
		out := pumpDecompress(d, compressed, 8, 32)
		Expect(out).To(Equal(src))
	})

	It("round-trips an empty payload", func() {
		c := deflate.NewCompressor(false)
		compressed := pumpCompress(c, nil, 16)

		d := deflate.NewDecompressor()
		out := pumpDecompress(d, compressed, 8, 32)
		Expect(out).To(BeEmpty())
	})

	It("round-trips payloads with no repetition (literal-only blocks)", func() {
		src := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
		c := deflate.NewCompressor(false)
		compressed := pumpCompress(c, src, 4)

		d := deflate.NewDecompressor()
		out := pumpDecompress(d, compressed, 3, 4)
		Expect(out).To(Equal(src))
	})
})

var _ = Describe("flushable mode", func() {
	It("emits a decodable sync point mid-stream", func() {
		c := deflate.NewCompressor(true)
		first := []byte("hello world, this is the first chunk")
		second := []byte("and this is the second chunk, sent later")

		var stream bytes.Buffer
		buf := make([]byte, 512)

		n, w, res, err := c.Compress(first, false, true, buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(deflate.Flush))
		Expect(n).To(Equal(len(first)))
		stream.Write(buf[:w])

		n, w, res, err = c.Compress(second, true, false, buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(deflate.Done))
		Expect(n).To(Equal(len(second)))
		stream.Write(buf[:w])

		d := deflate.NewDecompressor()
		out := pumpDecompress(d, stream.Bytes(), 6, 16)
		Expect(out).To(Equal(append(append([]byte{}, first...), second...)))
	})
})

var _ = Describe("error handling", func() {
	It("rejects a reserved block type", func() {
		d := deflate.NewDecompressor()
		// BFINAL=1, BTYPE=11 packed LSB-first into the first byte.
		bad := []byte{0x07}
		_, _, res, err := d.Decompress(bad, make([]byte, 4))
		Expect(res).To(Equal(deflate.Error))
		Expect(err).To(HaveOccurred())

		// The decompressor is sticky after an error.
		_, _, res, err = d.Decompress(bad, make([]byte, 4))
		Expect(res).To(Equal(deflate.Error))
		Expect(err).To(HaveOccurred())
	})

	It("rejects a stored block whose NLEN doesn't complement LEN", func() {
		// BFINAL=1, BTYPE=00 (stored), aligned, LEN=0x0001, NLEN=0x0000
		// (should be 0xFFFE to complement LEN=1).
		bad := []byte{0x01, 0x01, 0x00, 0x00, 0x00}
		d := deflate.NewDecompressor()
		_, _, res, err := d.Decompress(bad, make([]byte, 4))
		Expect(res).To(Equal(deflate.Error))
		Expect(err).To(HaveOccurred())
	})
})
