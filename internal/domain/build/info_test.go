package build

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_WithVCS(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.25.3",
		Main:      debug.Module{Path: "github.com/bnema/tabdock", Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1a2b3c4d5e6f7a8b9c0d"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	t.Run("fills unset fields", func(t *testing.T) {
		got := Info{Version: "dev", Commit: "unknown", BuildDate: "unknown"}.WithVCS(bi)
		assert.Equal(t, Info{
			Version:   "v0.3.0",
			Commit:    "1a2b3c4d5e6f7a8b9c0d",
			BuildDate: "2026-10-01T12:00:00Z",
			GoVersion: "go1.25.3",
			Modified:  true,
		}, got)
	})

	t.Run("ldflags win", func(t *testing.T) {
		got := Info{Version: "v1.0.0", Commit: "abc", BuildDate: "today", GoVersion: "go1.24"}.WithVCS(bi)
		assert.Equal(t, "v1.0.0", got.Version)
		assert.Equal(t, "abc", got.Commit)
		assert.Equal(t, "today", got.BuildDate)
		assert.Equal(t, "go1.24", got.GoVersion)
	})

	t.Run("devel main module keeps dev", func(t *testing.T) {
		got := Info{Version: "dev"}.WithVCS(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		assert.Equal(t, "dev", got.Version)
	})

	t.Run("nil build info", func(t *testing.T) {
		info := Info{Version: "dev"}
		assert.Equal(t, info, info.WithVCS(nil))
	})
}

func TestInfo_Short(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{name: "unset", info: Info{}, want: "dev"},
		{name: "version only", info: Info{Version: "v0.3.0", Commit: "unknown"}, want: "v0.3.0"},
		{name: "abbreviated commit", info: Info{Version: "v0.3.0", Commit: "1a2b3c4d5e6f7a8b9c0d"}, want: "v0.3.0 (1a2b3c4d5e6f)"},
		{name: "dirty", info: Info{Version: "dev", Commit: "abc", Modified: true}, want: "dev (abc+dirty)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Short())
		})
	}
}
