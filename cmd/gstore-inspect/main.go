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

// Command gstore-inspect fills a GSTORE table with synthetic keys
// while rendering a live progress bar of the insertions, then reports
// the table's final slot occupancy, so its quadratic-probing growth
// behavior can be observed rather than only asserted on in tests.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/sabouaram/fixnative/gstore"
)

func main() {
	count := flag.Int("count", 20000, "number of synthetic keys to insert")
	delay := flag.Duration("delay", 0, "pause between insertions, to slow the bar down for viewing")
	flag.Parse()

	if *count <= 0 {
		fmt.Fprintln(os.Stderr, "gstore-inspect: -count must be positive")
		os.Exit(1)
	}

	s := gstore.New()
	p := mpb.New(mpb.WithWidth(64))

	bar := p.AddBar(int64(*count),
		mpb.PrependDecorators(
			decor.Name("gstore occupancy "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(), "done"),
		),
	)

	for i := 0; i < *count; i++ {
		key := []byte(fmt.Sprintf("inspect-key-%08d", i))
		val := []byte(fmt.Sprintf("value-%d", i))
		if err := s.Set(key, val, 0); err != nil {
			fmt.Fprintln(os.Stderr, "gstore-inspect:", err)
			os.Exit(1)
		}
		bar.Increment()
		if *delay > 0 {
			time.Sleep(*delay)
		}
	}

	p.Wait()

	live, capacity := s.Occupancy()
	fmt.Printf("final table: %d live entries across %d slots (load factor %.3f)\n",
		live, capacity, float64(live)/float64(capacity))
}
