package config

import (
	"os"

	"github.com/charmbracelet/log"

	tuningcfg "github.com/tomz197/skyshot/internal/loop/config"
)

// NewLogger returns a timestamped stderr logger. The level comes from
// SKYSHOT_LOG_LEVEL and defaults to info.
func NewLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if raw := GetEnv("SKYSHOT_LOG_LEVEL", ""); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			logger.Warn("unknown log level, using info", "level", raw)
		} else {
			logger.SetLevel(level)
		}
	}
	return logger
}

// LoadTuning reads the gameplay tuning from the TOML file named by
// SKYSHOT_TUNING, or the defaults when it is unset. Out-of-range values are
// clamped and reported as warnings.
func LoadTuning(logger *log.Logger) (tuningcfg.Tuning, error) {
	t := tuningcfg.Default()
	if path := GetEnv("SKYSHOT_TUNING", ""); path != "" {
		var err error
		if t, err = tuningcfg.Load(path); err != nil {
			return t, err
		}
		logger.Info("tuning loaded", "path", path)
	}
	if err := t.Validate(); err != nil {
		logger.Warn("tuning adjusted", "err", err)
	}
	return t, nil
}
