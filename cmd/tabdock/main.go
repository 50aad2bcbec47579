// Command tabdock is the dock layout engine's CLI and terminal demo.
package main

import (
	"runtime"
	"runtime/debug"

	"github.com/bnema/tabdock/internal/cli/cmd"
	"github.com/bnema/tabdock/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	info := build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.WithVCS(bi)
	}
	cmd.SetBuildInfo(info)
	cmd.Execute()
}
