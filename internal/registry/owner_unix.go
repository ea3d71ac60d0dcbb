//go:build unix

package registry

import (
	"os"
	"syscall"
)

// keepOwner gives f the owner and group recorded in prev. Failures are
// ignored: an unprivileged user can usually only keep the group.
func keepOwner(f *os.File, prev os.FileInfo) {
	if st, ok := prev.Sys().(*syscall.Stat_t); ok {
		if err := f.Chown(int(st.Uid), int(st.Gid)); err != nil {
			_ = f.Chown(-1, int(st.Gid))
		}
	}
}
