package statesync

import (
	"strings"
	"time"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
)

// DefaultTimeout bounds a single request when no transport is injected
const DefaultTimeout = 10 * time.Second

// Config is the host-facing configuration surface of the client
type Config struct {
	BaseURL         string
	Profile         string
	AutoFetchOnInit bool
	Timeout         time.Duration
}

// DefaultConfig returns the stock configuration for a local backend
func DefaultConfig() Config {
	return Config{
		BaseURL:         domain.DefaultBaseURL,
		Profile:         domain.DefaultProfile,
		AutoFetchOnInit: true,
		Timeout:         DefaultTimeout,
	}
}

// trimmedBase strips a single trailing slash
func (c Config) trimmedBase() string {
	return strings.TrimSuffix(c.BaseURL, "/")
}
