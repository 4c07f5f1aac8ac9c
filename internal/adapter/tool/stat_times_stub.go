//go:build !linux && !darwin

package tool

import (
	"os"
	"time"
)

// statTimes falls back to the modification time on platforms where the
// stat structure is not inspected.
func statTimes(info os.FileInfo) (created, modified, accessed time.Time) {
	modified = info.ModTime()
	return modified, modified, modified
}
