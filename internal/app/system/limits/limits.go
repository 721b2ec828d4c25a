// internal/app/system/limits/limits.go
package limits

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize is the maximum size for JSON API request bodies.
	// Task descriptions are the largest legitimate payload and stay well
	// under this.
	MaxJSONBodySize = 1 << 20 // 1 MB
)
