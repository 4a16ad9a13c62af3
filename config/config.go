// Package config loads fsprops settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "FSPROPS_"

type Config struct {
	LogLevel  string
	LogFormat string
	// Empty means a fresh temp file per run.
	LogFile string

	Theme string

	CacheEnabled bool
	// Empty means the user cache directory.
	CachePath string

	// Ask for a folder refresh even when the rename failed.
	RefreshOnFailure bool

	ProgressInterval     time.Duration
	ReplaceHomeWithTilde bool
}

func Default() Config {
	return Config{
		LogLevel:             "info",
		LogFormat:            "json",
		Theme:                "nord",
		CacheEnabled:         true,
		RefreshOnFailure:     true,
		ProgressInterval:     150 * time.Millisecond,
		ReplaceHomeWithTilde: true,
	}
}

// Load reads envFiles (a missing file is fine) without overriding variables
// already set, then applies FSPROPS_* variables on top of Default.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, which has the signature of os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = b
	}
	duration := func(name string, dst *time.Duration) {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err == nil && d <= 0 {
			err = errors.New("must be positive")
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = d
	}

	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("LOG_FILE", &cfg.LogFile)
	str("THEME", &cfg.Theme)
	boolean("CACHE", &cfg.CacheEnabled)
	str("CACHE_PATH", &cfg.CachePath)
	boolean("REFRESH_ON_FAILURE", &cfg.RefreshOnFailure)
	duration("PROGRESS_INTERVAL", &cfg.ProgressInterval)
	boolean("HOME_TILDE", &cfg.ReplaceHomeWithTilde)

	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("%sLOG_FORMAT: unknown format %q", envPrefix, cfg.LogFormat))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}
