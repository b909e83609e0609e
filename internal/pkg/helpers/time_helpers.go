package helpers

import "time"

// ParseDuration parses a duration string, falling back to defaultValue when
// the string is empty or malformed. Configuration durations are validated at
// load time, so the fallback only covers hand-constructed configs in tests.
func ParseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
