/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

// Error code bands, one per native subsystem. Each subsystem registers
// its messages starting at its Min constant via RegisterIdFctMessage;
// findCodeErrorInMapMessage resolves any code in [Min, nextMin) to the
// band that registered it.
const (
	MinPkgHandle   = 50
	MinPkgAsyncIO  = 100
	MinPkgZCodec   = 200
	MinPkgGZip     = 220
	MinPkgOrdSer   = 300
	MinPkgGStore   = 400
	MinPkgCSSMatch = 500
	MinPkgBigInt   = 600
	MinPkgCrypt    = 700
	MinPkgCharset  = 800
	MinPkgRTConfig  = 900
	MinPkgRTLog     = 950
	MinPkgRTMetrics = 970

	MinAvailable = 1000
)
