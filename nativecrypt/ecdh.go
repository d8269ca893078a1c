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

package nativecrypt

import (
	"crypto/ecdh"
	"crypto/rand"
)

// X25519KeyPair mirrors ecdh_calc_public_key_x25519: a freshly
// generated Curve25519 private scalar and its corresponding public
// key, both 32 bytes.
type X25519KeyPair struct {
	Private []byte
	Public  []byte
}

// GenerateX25519 creates a new random X25519 key pair.
func GenerateX25519() (*X25519KeyPair, error) {
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &X25519KeyPair{Private: priv.Bytes(), Public: priv.PublicKey().Bytes()}, nil
}

// X25519Shared computes the shared secret for privateKey (32 bytes)
// and peerPublicKey (32 bytes), mirroring ecdh_calc_secret_x25519.
func X25519Shared(privateKey, peerPublicKey []byte) ([]byte, error) {
	priv, err := ecdh.X25519().NewPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	pub, err := ecdh.X25519().NewPublicKey(peerPublicKey)
	if err != nil {
		return nil, err
	}
	return priv.ECDH(pub)
}
