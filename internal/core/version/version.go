// Package version reports what build of the API is running
package version

import (
	"runtime/debug"
	"sync"
)

// Service is the name the API reports in logs, probes and application_name
const Service = "spacebio-api"

// set with -ldflags "-X spacebio/internal/core/version.version=v0.3.0 -X ...commit=abcd -X ...date=2026-03-02"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	Dirty   bool   `json:"dirty,omitempty"`
}

var info = sync.OnceValue(func() BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
})

// Info returns the build info; values missing from ldflags fall back to the VCS stamp go build embeds
func Info() BuildInfo { return info() }

func resolve(bi *debug.BuildInfo) BuildInfo {
	out := BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
	if bi == nil {
		return fill(out)
	}
	out.Go = bi.GoVersion
	if out.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		out.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if out.Commit == "" {
				out.Commit = s.Value
			}
		case "vcs.time":
			if out.Date == "" {
				out.Date = s.Value
			}
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}
	return fill(out)
}

func fill(b BuildInfo) BuildInfo {
	if b.Commit == "" {
		b.Commit = "none"
	}
	if b.Date == "" {
		b.Date = "unknown"
	}
	return b
}
