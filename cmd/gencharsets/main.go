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

// Command gencharsets renders a directory of "0xHH\t0xHHHH" mapping
// files (one line per byte value, second column 0xFFFD or absent for
// an unassigned byte) into charset/tables_gen.go. It is the Go
// replacement for the original embed_file/gencharsets.c build step,
// which walked a directory of the same mapping files and embedded
// each one as an escaped C string literal; this version walks the
// same kind of input and emits a literal Go []rune table instead.
//
// Usage:
//
//	gencharsets -in charset/testdata -out charset/tables_gen.go
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

func main() {
	in := flag.String("in", "charset/testdata", "directory of 0xHH/0xHHHH mapping files")
	out := flag.String("out", "charset/tables_gen.go", "output Go source file")
	flag.Parse()

	entries, err := os.ReadDir(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gencharsets:", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(entries))
	tables := make(map[string][]rune, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		table, err := parseMappingFile(filepath.Join(*in, e.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "gencharsets: %s: %v\n", e.Name(), err)
			os.Exit(1)
		}
		names = append(names, name)
		tables[name] = table
	}
	sort.Strings(names)

	if err := writeTables(*out, names, tables); err != nil {
		fmt.Fprintln(os.Stderr, "gencharsets:", err)
		os.Exit(1)
	}
}

// parseMappingFile reads one "0xHH\t0xHHHH" row per input byte value,
// matching embed_file's sscanf(buf, "0x%x\t0x%x", &first, &second):
// two fields maps first->second, one field maps to the replacement
// character, any other line leaves that byte unassigned.
func parseMappingFile(path string) ([]rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table := make([]rune, 256)
	for i := range table {
		table[i] = 0xFFFD
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		first, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 8)
		if err != nil {
			continue
		}
		if len(fields) >= 2 {
			second, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 32)
			if err == nil {
				table[first] = rune(second)
			}
		}
	}
	return table, sc.Err()
}

func writeTables(path string, names []string, tables map[string][]rune) error {
	var sb strings.Builder
	sb.WriteString("// Code generated by cmd/gencharsets. DO NOT EDIT.\n\n")
	sb.WriteString("package charset\n\n")
	sb.WriteString("var generatedTables = map[string][]rune{\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "\t%q: {\n\t\t", name)
		for i, r := range tables[name] {
			fmt.Fprintf(&sb, "0x%04X, ", r)
			if (i+1)%8 == 0 {
				sb.WriteString("\n\t\t")
			}
		}
		sb.WriteString("\n\t},\n")
	}
	sb.WriteString("}\n")

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
