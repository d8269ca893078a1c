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

// Package charset decodes legacy single-byte charsets into strings
// using per-charset 256-entry rune tables. The built-in tables in
// tables_gen.go are written by hand; cmd/gencharsets can regenerate
// that file from the plain-text "0xHH 0xHHHH" mapping files upstream
// charset registries publish, the Go analogue of the original's
// embed_file/gencharsets.c step that baked the same mapping files into
// a C string literal.
package charset

import (
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = map[string][]rune{}
)

func init() {
	for name, table := range generatedTables {
		registry[name] = table
	}
}

// Register adds or replaces a charset's decode table. table must have
// exactly 256 entries, one rune per byte value 0x00-0xFF; 0xFFFD marks
// an unassigned byte, matching how the generator renders unmapped
// rows.
func Register(name string, table []rune) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = table
}

// Names returns the currently registered charset names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

// Decode converts b, interpreted as charset, into a string. Bytes
// mapped to the replacement character (0xFFFD) by the table are
// decoded as U+FFFD rather than rejected, matching the original's
// "undefined" row handling in embed_file.
func Decode(charset string, b []byte) (string, error) {
	mu.RLock()
	table, ok := registry[strings.ToLower(charset)]
	mu.RUnlock()
	if !ok {
		return "", ErrUnknownCharset.Error()
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(table[c])
	}
	return sb.String(), nil
}
