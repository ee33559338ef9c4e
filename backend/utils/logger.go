package utils

import (
	"io"
	"log"
	"os"
)

// LoggerConfig configures InitLogger
type LoggerConfig struct {
	// text or json
	Format string
	// defaults to os.Stdout
	Output io.Writer
	// colour the prefix on terminals
	EnableColors bool
	Prefix       string
}

// InitLogger builds the application logger
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "[LearnHub] "
	}

	var logger *log.Logger
	if cfg.Format == "json" {
		logger = log.New(cfg.Output, prefix, log.LstdFlags|log.LUTC|log.Lmsgprefix)
	} else {
		if cfg.EnableColors {
			prefix = "\033[36m" + prefix + "\033[0m" // cyan
		}
		logger = log.New(cfg.Output, prefix, log.LstdFlags|log.Lshortfile|log.LUTC)
	}

	return logger
}
