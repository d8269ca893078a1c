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
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/sirupsen/logrus"
)

// Logger is the minimal surface the native subsystems need: build an
// Entry, attach fields/errors, log it.
type Logger interface {
	Entry(lvl Level, msg string) *Entry
	SetLevel(lvl Level)
	GetLevel() Level
}

type logger struct {
	mu  sync.RWMutex
	lvl Level
	out *logrus.Logger
}

// New returns a Logger writing through logrus at the default
// InfoLevel.
func New() Logger {
	l := logrus.New()
	return &logger{lvl: InfoLevel, out: l}
}

func (o *logger) SetLevel(lvl Level) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lvl = lvl
	o.out.SetLevel(lvl.logrus())
}

func (o *logger) GetLevel() Level {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lvl
}

func (o *logger) Entry(lvl Level, msg string) *Entry {
	o.mu.RLock()
	min := o.lvl
	o.mu.RUnlock()

	return &Entry{
		log:     o.out,
		lvl:     lvl,
		msg:     msg,
		fields:  logrus.Fields{},
		enabled: lvl != NilLevel && lvl <= min,
	}
}

// Entry is a single structured log line under construction, built with
// Field/ErrorAdd/Log calls, trimmed of the gin and hook-routing
// machinery this module has no use for. Exactly one of log/hc backs
// any given Entry.
type Entry struct {
	log     *logrus.Logger
	hc      hclog.Logger
	lvl     Level
	msg     string
	fields  logrus.Fields
	err     error
	enabled bool
}

func (e *Entry) Field(key string, val interface{}) *Entry {
	if e == nil {
		return e
	}
	e.fields[key] = val
	return e
}

// ErrorAdd attaches err to the entry, if non-nil.
func (e *Entry) ErrorAdd(err error) *Entry {
	if e == nil || err == nil {
		return e
	}
	e.err = err
	return e
}

// Log emits the entry. A NilLevel entry, or one below the logger's
// configured minimum, is a no-op, so deciding whether to print never
// blocks the caller.
func (e *Entry) Log() {
	if e == nil || !e.enabled {
		return
	}

	f := e.fields
	if e.err != nil {
		f = logrus.Fields{}
		for k, v := range e.fields {
			f[k] = v
		}
		f["error"] = e.err.Error()
	}

	switch {
	case e.log != nil:
		e.log.WithFields(f).Log(e.lvl.logrus(), e.msg)
	case e.hc != nil:
		args := make([]interface{}, 0, len(f)*2)
		for k, v := range f {
			args = append(args, k, v)
		}
		switch e.lvl {
		case ErrorLevel:
			e.hc.Error(e.msg, args...)
		case WarnLevel:
			e.hc.Warn(e.msg, args...)
		case DebugLevel:
			e.hc.Debug(e.msg, args...)
		default:
			e.hc.Info(e.msg, args...)
		}
	}
}
