// Package env reads raw process environment values. The register's
// structured configuration goes through envconfig under the CAISSE_
// prefix; this helper covers the few knobs consulted before that
// configuration is loaded, such as LOG_FORMAT for the logger.
package env

import "os"

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
