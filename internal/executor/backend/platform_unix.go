//go:build unix

package backend

import (
	"runtime"

	"polyrun/internal/executor/model"

	"golang.org/x/sys/unix"
)

func platformInfo() model.VersionInfo {
	info := model.VersionInfo{PlatformName: runtime.GOOS, PlatformArch: runtime.GOARCH}
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return info
	}
	info.PlatformName = unix.ByteSliceToString(uts.Sysname[:])
	info.PlatformVersion = unix.ByteSliceToString(uts.Release[:])
	info.PlatformArch = unix.ByteSliceToString(uts.Machine[:])
	return info
}
