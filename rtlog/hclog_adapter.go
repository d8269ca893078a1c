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

package rtlog

import (
	"github.com/hashicorp/go-hclog"
)

// FromHClog adapts an hclog.Logger to this package's Logger interface, for
// embedding hosts that already standardized on hclog (mirrors the
// teacher's logger/hclog.go and logger/hashicorp adapters) instead of
// logrus directly.
func FromHClog(h hclog.Logger) Logger {
	return &hcLogger{h: h, lvl: InfoLevel}
}

type hcLogger struct {
	h   hclog.Logger
	lvl Level
}

func (o *hcLogger) SetLevel(lvl Level) {
	o.lvl = lvl
	o.h.SetLevel(toHCLevel(lvl))
}

func (o *hcLogger) GetLevel() Level {
	return o.lvl
}

func (o *hcLogger) Entry(lvl Level, msg string) *Entry {
	enabled := lvl != NilLevel && lvl <= o.lvl
	return &Entry{msg: msg, lvl: lvl, fields: map[string]interface{}{}, enabled: enabled, hc: o.h}
}

func toHCLevel(lvl Level) hclog.Level {
	switch lvl {
	case ErrorLevel:
		return hclog.Error
	case WarnLevel:
		return hclog.Warn
	case InfoLevel:
		return hclog.Info
	case DebugLevel:
		return hclog.Debug
	default:
		return hclog.Off
	}
}
