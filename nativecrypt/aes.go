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
	"crypto/aes"
	"crypto/cipher"
)

// AESVariant mirrors the three key-size variants the original native
// layer registered separately (crypto_aes128/192/256_init).
type AESVariant int

const (
	AES128 AESVariant = 16
	AES192 AESVariant = 24
	AES256 AESVariant = 32
)

func (v AESVariant) valid() bool {
	return v == AES128 || v == AES192 || v == AES256
}

// GCMEncrypt seals plaintext under key/nonce using AES-GCM, the
// variant-agnostic replacement for the original's
// crypto_aes_gcm_encrypt. aad is additional authenticated data, and
// may be nil.
func GCMEncrypt(variant AESVariant, key, nonce, plaintext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(variant, key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, ErrInvalidIVSize.Error()
	}
	return gcm.Seal(nil, nonce, plaintext, aad), nil
}

// GCMDecrypt opens ciphertext under key/nonce using AES-GCM,
// mirroring crypto_aes_gcm_decrypt. Returns an authentication error if
// ciphertext or aad were tampered with.
func GCMDecrypt(variant AESVariant, key, nonce, ciphertext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(variant, key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, ErrInvalidIVSize.Error()
	}
	return gcm.Open(nil, nonce, ciphertext, aad)
}

func newGCM(variant AESVariant, key []byte) (cipher.AEAD, error) {
	if !variant.valid() {
		return nil, ErrUnknownAESVariant.Error()
	}
	if len(key) != int(variant) {
		return nil, ErrInvalidKeySize.Error()
	}
	blk, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(blk)
}

// CBCEncrypt encrypts plaintext (which must already be a multiple of
// the AES block size) under key/iv, mirroring crypto_aes_cbc with
// encrypt=0.
func CBCEncrypt(variant AESVariant, key, iv, plaintext []byte) ([]byte, error) {
	blk, err := newBlock(variant, key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aes.BlockSize {
		return nil, ErrInvalidIVSize.Error()
	}
	if len(plaintext)%aes.BlockSize != 0 {
		return nil, ErrInvalidKeySize.Error()
	}
	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(blk, iv).CryptBlocks(out, plaintext)
	return out, nil
}

// CBCDecrypt decrypts ciphertext under key/iv, mirroring
// crypto_aes_cbc with encrypt=1.
func CBCDecrypt(variant AESVariant, key, iv, ciphertext []byte) ([]byte, error) {
	blk, err := newBlock(variant, key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aes.BlockSize {
		return nil, ErrInvalidIVSize.Error()
	}
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidKeySize.Error()
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(blk, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

func newBlock(variant AESVariant, key []byte) (cipher.Block, error) {
	if !variant.valid() {
		return nil, ErrUnknownAESVariant.Error()
	}
	if len(key) != int(variant) {
		return nil, ErrInvalidKeySize.Error()
	}
	return aes.NewCipher(key)
}
