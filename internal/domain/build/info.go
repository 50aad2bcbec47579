// Package build describes the running tabdock binary.
package build

import (
	"runtime/debug"
	"strings"
)

// RepoURL is where tabdock is developed.
const RepoURL = "https://github.com/bnema/tabdock"

const shortCommitLen = 12

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	// Modified is set when the binary was built from a dirty tree.
	Modified bool
}

// WithVCS fills fields that ldflags left unset from the VCS stamp Go embeds
// in module builds, so `go install` binaries still report their commit.
func (i Info) WithVCS(bi *debug.BuildInfo) Info {
	if bi == nil {
		return i
	}
	if unset(i.Version) || i.Version == "dev" {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			i.Version = v
		}
	}
	if i.GoVersion == "" {
		i.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if unset(i.Commit) {
				i.Commit = s.Value
			}
		case "vcs.time":
			if unset(i.BuildDate) {
				i.BuildDate = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	return i
}

// Short renders the version and abbreviated commit, e.g. "v0.3.0 (1a2b3c4d5e6f)".
func (i Info) Short() string {
	var b strings.Builder
	b.WriteString(i.Version)
	if unset(i.Version) {
		b.Reset()
		b.WriteString("dev")
	}
	if !unset(i.Commit) {
		commit := i.Commit
		if len(commit) > shortCommitLen {
			commit = commit[:shortCommitLen]
		}
		b.WriteString(" (" + commit)
		if i.Modified {
			b.WriteString("+dirty")
		}
		b.WriteString(")")
	}
	return b.String()
}

func unset(s string) bool {
	return s == "" || s == "unknown"
}
