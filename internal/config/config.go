// Package config provides Viper-backed configuration loading for the
// scan engine and a Zap logger constructor: a typed struct with
// mapstructure tags, sane defaults, and a thin Viper wrapper rather than
// ad-hoc flag parsing scattered through the core.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// ScanConfig holds the tunables for a single SNMP discovery scan.
type ScanConfig struct {
	// ScanTimeout bounds each SNMP GET issued against a host.
	ScanTimeout time.Duration `mapstructure:"scan_timeout"`
	// GlobalConcurrency caps live worker sessions, the "global" ticket.
	// Scan sizes a fresh ticket pool from it on every call, so the cap
	// holds within one Scan call.
	GlobalConcurrency int `mapstructure:"global_concurrency"`
	// SNMPConcurrency caps live SNMP worker sessions specifically, the
	// "scan-type" ticket.
	SNMPConcurrency int `mapstructure:"snmp_concurrency"`
	// GetsPerSecond, when nonzero, paces worker start-up: one limiter per
	// Scanner, shared by all its workers and scans, admits at most this
	// many workers per second, each waiting once before it opens its
	// session. The GETs a worker issues after that are not paced. Zero,
	// the default, means no limiter.
	GetsPerSecond float64 `mapstructure:"gets_per_second"`
}

// DefaultScanConfig returns the engine's built-in defaults.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		ScanTimeout:       5 * time.Second,
		GlobalConcurrency: 64,
		SNMPConcurrency:   32,
		GetsPerSecond:     0,
	}
}

// Load reads scan configuration from a Viper instance rooted at the
// given key (e.g. "scan"), falling back to DefaultScanConfig for any
// field the instance doesn't set.
func Load(v *viper.Viper, key string) (ScanConfig, error) {
	cfg := DefaultScanConfig()
	if v == nil {
		return cfg, nil
	}
	sub := v.Sub(key)
	if sub == nil {
		return cfg, nil
	}
	if err := sub.Unmarshal(&cfg); err != nil {
		return ScanConfig{}, err
	}
	return cfg, nil
}
