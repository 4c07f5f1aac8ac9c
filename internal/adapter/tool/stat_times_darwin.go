//go:build darwin

package tool

import (
	"os"
	"syscall"
	"time"
)

// statTimes extracts birth/modify/access times from the platform stat
// structure.
func statTimes(info os.FileInfo) (created, modified, accessed time.Time) {
	modified = info.ModTime()
	created, accessed = modified, modified

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		created = time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
		accessed = time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
	}
	return created, modified, accessed
}
