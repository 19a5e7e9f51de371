//go:build linux

package membench

import (
	"golang.org/x/sys/unix"
)

// sysTotalMemory returns total system memory in bytes, or 0 if the
// kernel will not say.
func sysTotalMemory() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return uint64(info.Totalram) * uint64(info.Unit)
}
