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

// Package nativecrypt wraps stdlib crypto/* primitives behind the same
// small Coder shape as golib's encoding/aes and encoding/sha256
// packages, covering the hash/HMAC/AES-GCM/ECDH surface the original
// native layer exposed as crypto_md5/sha1/sha256/sha512,
// crypto_aes128/192/256_init, crypto_aes_cbc/gcm_*, and
// ecdh_calc_*_x25519.
package nativecrypt

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"

	libenc "github.com/sabouaram/fixnative/encoding"
)

// HashAlgo names one of the digest algorithms the original native
// layer exposed.
type HashAlgo int

const (
	MD5 HashAlgo = iota
	SHA1
	SHA256
	SHA512
)

func newHash(algo HashAlgo) hash.Hash {
	switch algo {
	case MD5:
		return md5.New()
	case SHA1:
		return sha1.New()
	case SHA256:
		return sha256.New()
	case SHA512:
		return sha512.New()
	default:
		return sha256.New()
	}
}

// NewHash returns a Coder whose Encode appends to a running digest and
// returns the current sum, mirroring encoding/sha256's crt shape
// generalized across algorithms.
func NewHash(algo HashAlgo) libenc.Coder {
	return &hashCoder{hsh: newHash(algo)}
}

// Sum is a convenience one-shot digest of p under algo.
func Sum(algo HashAlgo, p []byte) []byte {
	h := newHash(algo)
	h.Write(p)
	return h.Sum(nil)
}

type hashCoder struct {
	hsh hash.Hash
}

func (o *hashCoder) Encode(p []byte) []byte {
	if o.hsh == nil {
		return make([]byte, 0)
	}
	if len(p) > 0 {
		if _, e := o.hsh.Write(p); e != nil {
			return make([]byte, 0)
		}
	}
	return o.hsh.Sum(nil)
}

func (o *hashCoder) Decode(p []byte) ([]byte, error) {
	return nil, fmt.Errorf("nativecrypt: hash coder does not support Decode")
}

func (o *hashCoder) EncodeReader(r io.Reader) io.ReadCloser {
	f := func(p []byte) (n int, err error) {
		n, err = r.Read(p)
		if n > 0 && o.hsh != nil {
			o.hsh.Write(p[:n])
		}
		return n, err
	}
	return &hashReader{f: f, r: r}
}

func (o *hashCoder) DecodeReader(r io.Reader) io.ReadCloser { return nil }

func (o *hashCoder) EncodeWriter(w io.Writer) io.WriteCloser {
	f := func(p []byte) (n int, err error) {
		n, err = w.Write(p)
		if n > 0 && o.hsh != nil {
			o.hsh.Write(p[:n])
		}
		return n, err
	}
	return &hashWriter{f: f, w: w}
}

func (o *hashCoder) DecodeWriter(w io.Writer) io.WriteCloser { return nil }

func (o *hashCoder) Reset() {
	if o.hsh != nil {
		o.hsh.Reset()
	}
}

type hashReader struct {
	f func(p []byte) (int, error)
	r io.Reader
}

func (r *hashReader) Read(p []byte) (int, error) { return r.f(p) }
func (r *hashReader) Close() error {
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type hashWriter struct {
	f func(p []byte) (int, error)
	w io.Writer
}

func (w *hashWriter) Write(p []byte) (int, error) { return w.f(p) }
func (w *hashWriter) Close() error {
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
