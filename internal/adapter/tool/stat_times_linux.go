//go:build linux

package tool

import (
	"os"
	"syscall"
	"time"
)

// statTimes extracts change/modify/access times from the platform stat
// structure. Linux has no true birth time in syscall.Stat_t, so the inode
// change time stands in for creation, matching what os.stat reports there.
func statTimes(info os.FileInfo) (created, modified, accessed time.Time) {
	modified = info.ModTime()
	created, accessed = modified, modified

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		created = time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
		accessed = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	}
	return created, modified, accessed
}
