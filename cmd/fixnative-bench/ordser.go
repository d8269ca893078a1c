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

package main

import (
	"encoding/hex"
	"fmt"

	spfcbr "github.com/spf13/cobra"

	"github.com/sabouaram/fixnative/ordser"
	"github.com/sabouaram/fixnative/value"
)

// sample builds a handful of representative values spanning each
// ORDSER family, in ascending order, to demonstrate encode-then-compare
// ordering without needing a real script heap to source values from.
func sample() []value.Value {
	return []value.Value{
		value.Int(-7),
		value.Int(0),
		value.Int(42),
		value.Float(3.5),
		value.FromArray(value.NewArray(value.Int(1), value.Int(2), value.Int(3))),
		value.FromArray(value.NewString("fixnative")),
		value.FromHash(value.NewHash()),
	}
}

func newOrdserCommand() *spfcbr.Command {
	return &spfcbr.Command{
		Use:   "ordser",
		Short: "Serialize a sample set of values and print their ORDSER byte-order",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			vals := sample()
			encoded := make([][]byte, len(vals))
			for i, v := range vals {
				b, err := ordser.Serialize(v)
				if err != nil {
					return fmt.Errorf("serialize %d: %w", i, err)
				}
				encoded[i] = b
				fmt.Printf("%2d  %-10s  %s\n", i, kindName(v), hex.EncodeToString(b))
			}

			fmt.Println()
			fmt.Println("pairwise ordser.Compare results (expected to agree with the input order above):")
			for i := 0; i < len(encoded)-1; i++ {
				c, err := ordser.Compare(encoded[i], encoded[i+1])
				if err != nil {
					return fmt.Errorf("compare %d,%d: %w", i, i+1, err)
				}
				fmt.Printf("  %2d vs %2d -> %+d\n", i, i+1, c)
			}
			return nil
		},
	}
}

func kindName(v value.Value) string {
	switch {
	case v.IsInt():
		return "int"
	case v.IsFloat():
		return "float"
	case v.IsArray():
		return "array"
	case v.IsHash():
		return "hash"
	case v.IsHandle():
		return "handle"
	case v.IsError():
		return "error"
	default:
		return "unknown"
	}
}
