package keys

import (
	"fmt"

	"mapsnap/internal/models"
)

// Snapshot returns the canonical object-store key for a snapshot image.
func Snapshot(s models.Snapshot) string {
	return fmt.Sprintf("snapshots/%s.png", s.ID)
}
