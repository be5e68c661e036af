//go:build !unix

package backend

import (
	"runtime"

	"polyrun/internal/executor/model"
)

func platformInfo() model.VersionInfo {
	return model.VersionInfo{PlatformName: runtime.GOOS, PlatformArch: runtime.GOARCH}
}
