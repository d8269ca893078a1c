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

// Package rtconfig exposes the small set of runtime knobs the engine
// reads at startup: worker-pool idle timeout, GSTORE sweep interval
// and minimum capacity, and the fixed ZCODEC window/hash-table sizing
// surfaced read-only for diagnostics. Values are decoded through
// spf13/viper so the same struct can be loaded from YAML, JSON, TOML,
// environment variables or flags without the caller caring which.
package rtconfig

import (
	"bytes"
	"io"
	"time"

	spfvpr "github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ZCodecSizing mirrors the fixed sliding-window and hash-chain sizing
// the wire format bakes in. Load decodes it like the other sections,
// but zcodec uses its own constants and reads none of these fields;
// they exist so a diagnostics dump can report the sizes alongside the
// tunable knobs below.
type ZCodecSizing struct {
	WindowSize    int `json:"windowSize" yaml:"windowSize" mapstructure:"windowSize"`
	MinMatchLen   int `json:"minMatchLen" yaml:"minMatchLen" mapstructure:"minMatchLen"`
	MaxMatchLen   int `json:"maxMatchLen" yaml:"maxMatchLen" mapstructure:"maxMatchLen"`
	HashTableBits int `json:"hashTableBits" yaml:"hashTableBits" mapstructure:"hashTableBits"`
}

// WorkerPoolConfig tunes the async-io reactor's worker pool.
type WorkerPoolConfig struct {
	// IdleTimeout is how long an idle worker goroutine waits for new
	// work before exiting. Zero means "use the built-in default".
	IdleTimeout time.Duration `json:"idleTimeout" yaml:"idleTimeout" mapstructure:"idleTimeout"`
}

// GStoreConfig tunes the GSTORE slot table's background sweep.
type GStoreConfig struct {
	// SweepInterval is how often expired slots are reclaimed. Zero
	// means "use the built-in default".
	SweepInterval time.Duration `json:"sweepInterval" yaml:"sweepInterval" mapstructure:"sweepInterval"`

	// MinCapacity is the smallest GSTORE slot-table size. The table
	// only grows, never shrinks, and gstore itself uses a built-in
	// minimum of 8 rather than this field. Zero means "use the
	// built-in default".
	MinCapacity int `json:"minCapacity" yaml:"minCapacity" mapstructure:"minCapacity"`
}

// Config is the top-level runtime configuration for the engine.
type Config struct {
	WorkerPool WorkerPoolConfig `json:"workerPool" yaml:"workerPool" mapstructure:"workerPool"`
	GStore     GStoreConfig     `json:"gstore" yaml:"gstore" mapstructure:"gstore"`
	ZCodec     ZCodecSizing     `json:"zcodec" yaml:"zcodec" mapstructure:"zcodec"`
}

const (
	defaultWorkerIdleTimeout = 5 * time.Second
	defaultSweepInterval     = 1 * time.Second
	defaultMinCapacity       = 8

	defaultZCodecWindowSize    = 1 << 15
	defaultZCodecMinMatchLen   = 3
	defaultZCodecMaxMatchLen   = 258
	defaultZCodecHashTableBits = 15
)

// Default returns the configuration the engine runs with when no
// configuration source is provided.
func Default() *Config {
	return &Config{
		WorkerPool: WorkerPoolConfig{
			IdleTimeout: defaultWorkerIdleTimeout,
		},
		GStore: GStoreConfig{
			SweepInterval: defaultSweepInterval,
			MinCapacity:   defaultMinCapacity,
		},
		ZCodec: ZCodecSizing{
			WindowSize:    defaultZCodecWindowSize,
			MinMatchLen:   defaultZCodecMinMatchLen,
			MaxMatchLen:   defaultZCodecMaxMatchLen,
			HashTableBits: defaultZCodecHashTableBits,
		},
	}
}

// Load decodes configuration from r, assuming the given viper config
// type ("yaml", "json", "toml", ...), on top of the built-in defaults:
// any key the source omits keeps its default value.
func Load(r io.Reader, configType string) (*Config, error) {
	cfg := Default()

	v := spfvpr.New()
	v.SetConfigType(configType)
	v.SetDefault("workerPool.idleTimeout", cfg.WorkerPool.IdleTimeout)
	v.SetDefault("gstore.sweepInterval", cfg.GStore.SweepInterval)
	v.SetDefault("gstore.minCapacity", cfg.GStore.MinCapacity)
	v.SetDefault("zcodec.windowSize", cfg.ZCodec.WindowSize)
	v.SetDefault("zcodec.minMatchLen", cfg.ZCodec.MinMatchLen)
	v.SetDefault("zcodec.maxMatchLen", cfg.ZCodec.MaxMatchLen)
	v.SetDefault("zcodec.hashTableBits", cfg.ZCodec.HashTableBits)

	if err := v.ReadConfig(r); err != nil {
		return nil, ErrLoadFailed.Error(err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ErrLoadFailed.Error(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadYAML is a convenience wrapper around Load for the common case of
// a YAML byte slice (e.g. a file already read into memory).
func LoadYAML(b []byte) (*Config, error) {
	return Load(bytes.NewReader(b), "yaml")
}

// DumpYAML renders the effective configuration back to YAML, for a
// diagnostics endpoint or CLI flag that reports what the engine is
// actually running with (defaults included, independent of whatever
// source it was loaded from). This goes through yaml.Marshal directly
// rather than viper, since viper has no "serialize what I loaded"
// counterpart to ReadConfig/Unmarshal.
func (c *Config) DumpYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate rejects configuration values that would leave the engine
// unable to make progress. Zero values are left alone by Load/Default
// since they already carry sane built-ins; Validate only catches
// values a caller set explicitly to something unusable.
func (c *Config) Validate() error {
	if c.WorkerPool.IdleTimeout < 0 {
		return ErrInvalidConfig.Error(nil)
	}
	if c.GStore.SweepInterval < 0 {
		return ErrInvalidConfig.Error(nil)
	}
	if c.GStore.MinCapacity < 0 {
		return ErrInvalidConfig.Error(nil)
	}
	if c.ZCodec.WindowSize <= 0 || c.ZCodec.MinMatchLen <= 0 || c.ZCodec.MaxMatchLen <= 0 || c.ZCodec.HashTableBits <= 0 {
		return ErrInvalidConfig.Error(nil)
	}
	return nil
}
