// Package timeouts provides centralized timeout values for handler and
// worker operations against the database.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or lookups
//   - Medium: list queries, moderate writes
//   - Long: multi-step writes and sweep passes
package timeouts

import "time"

// Ping returns the timeout for health checks.
func Ping() time.Duration { return 2 * time.Second }

// Short returns the timeout for simple operations like single-document reads.
func Short() time.Duration { return 5 * time.Second }

// Medium returns the timeout for list queries and simple creates/updates.
func Medium() time.Duration { return 10 * time.Second }

// Long returns the timeout for operations touching multiple documents, such
// as an expiry sweep pass.
func Long() time.Duration { return 30 * time.Second }
