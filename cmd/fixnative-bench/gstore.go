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
	"fmt"

	spfcbr "github.com/spf13/cobra"

	"github.com/sabouaram/fixnative/gstore"
)

func newGStoreCommand() *spfcbr.Command {
	var count int
	var timeoutMs int64

	cmd := &spfcbr.Command{
		Use:   "gstore",
		Short: "Insert synthetic keys into a GSTORE table and report occupancy growth",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			s := gstore.New()

			for i := 0; i < count; i++ {
				key := []byte(fmt.Sprintf("bench-key-%06d", i))
				val := []byte(fmt.Sprintf("value-%d", i))
				if err := s.Set(key, val, timeoutMs); err != nil {
					return fmt.Errorf("set %d: %w", i, err)
				}
				if i%max(1, count/10) == 0 {
					live, capacity := s.Occupancy()
					fmt.Printf("after %6d inserts: %6d/%6d slots live (load factor %.2f)\n",
						i+1, live, capacity, float64(live)/float64(capacity))
				}
			}

			live, capacity := s.Occupancy()
			fmt.Printf("final: %d/%d slots live (load factor %.2f)\n", live, capacity, float64(live)/float64(capacity))
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1000, "number of synthetic keys to insert")
	cmd.Flags().Int64Var(&timeoutMs, "timeout-ms", 0, "per-key expiry in milliseconds (0 = no expiry)")
	return cmd
}
