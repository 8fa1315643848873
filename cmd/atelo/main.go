package main

import (
	"runtime"

	"github.com/atelo/atelo/internal/cli/cmd"
	"github.com/atelo/atelo/internal/domain/build"
)

// Injected via ldflags at build time.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

func main() {
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
