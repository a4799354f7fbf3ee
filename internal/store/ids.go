package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRecordID builds a fresh record identifier: a type prefix, a monotonic
// millisecond timestamp and a random suffix. Writes stay lock-free and
// collisions are improbable even under concurrent callers. IDs are never
// reused after deletion.
func NewRecordID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
