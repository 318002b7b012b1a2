// Package lifecycle holds shared process lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup and graceful shutdown of long-lived
// components managed by the DI container.
const DefaultTimeout = 30 * time.Second
