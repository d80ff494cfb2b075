package logging

import (
	"sync"
)

var (
	instance  *Logger
	once      sync.Once
	mu        sync.RWMutex
	logConfig *Config
)

// Configure sets the logging configuration.
// This should be called before any logger usage.
func Configure(config *Config) {
	mu.Lock()
	defer mu.Unlock()
	logConfig = config
}

// GetLogger returns the singleton logger instance.
// Without a prior Configure call it logs to stdout at info level.
func GetLogger() *Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		config := logConfig
		if config == nil {
			config = DefaultConfig()
		}

		var err error
		instance, err = NewLogger(config)
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})

	return instance
}
