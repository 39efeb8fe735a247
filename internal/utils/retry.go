package utils

import (
	"time"
)

// RetryConfig bounds the retry loop for store-of-record calls. RetryIf, when
// set, decides whether an error is worth another attempt; a permanent error
// is returned without sleeping through the remaining backoffs.
type RetryConfig struct {
	Attempts int
	BaseWait time.Duration
	RetryIf  func(error) bool
}

// DefaultRetry is used for delete/leave writes against the store of record.
var DefaultRetry = RetryConfig{Attempts: 3, BaseWait: 100 * time.Millisecond}

// Retry runs fn up to cfg.Attempts times with exponential backoff between
// attempts. The last error is returned if every attempt fails.
func Retry(cfg RetryConfig, fn func() error) error {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	var err error
	wait := cfg.BaseWait
	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(wait)
			wait *= 2
		}
		if err = fn(); err == nil {
			return nil
		}
		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return err
		}
	}
	return err
}
