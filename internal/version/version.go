// Package version holds build information injected with -ldflags.
package version

import (
	"fmt"
	"strings"

	"github.com/aatumaykin/cronplan/internal/constants"
)

var (
	Version   = constants.DefaultVersion
	BuildTime = constants.DefaultBuildTime
	GitCommit = constants.DefaultGitCommit
	GoVersion = constants.DefaultGoVersion
)

func SetInfo(v, bt, gc, gv string) {
	if v != "" {
		Version = v
	}
	if bt != "" {
		BuildTime = bt
	}
	if gc != "" {
		GitCommit = gc
	}
	if gv != "" {
		GoVersion = gv
	}
}

// Format returns the multi-line output of the version command.
func Format() string {
	var b strings.Builder
	b.WriteString("cronplan - crontab jobs from a plan file\n")
	fmt.Fprintf(&b, "Version: %s\n", Version)
	fmt.Fprintf(&b, "Build Time: %s\n", BuildTime)
	fmt.Fprintf(&b, "Git Commit: %s\n", GitCommit)
	fmt.Fprintf(&b, "Go Version: %s\n", GoVersion)
	return b.String()
}
