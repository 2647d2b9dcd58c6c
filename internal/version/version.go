// Package version reports the lightbox build version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is set at build time:
// -ldflags="-X github.com/wethinkt/go-lightbox/internal/version.Version=v1.0.0"
var Version = ""

// Info is the machine-readable form printed by "lightbox version --json".
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Revision  string `json:"revision,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects the version and build settings.
func GetInfo(name string) Info {
	info := Info{
		Name:      name,
		Version:   Get(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	info.Revision, _ = vcsRevision()
	return info
}

// Get returns the ldflags version, the module version, a dev-<rev> string
// or "dev".
func Get() string {
	if Version != "" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	if rev, ok := vcsRevision(); ok {
		return "dev-" + rev[:min(7, len(rev))]
	}
	return "dev"
}

// String formats the one-line version banner.
func String(name string) string {
	return fmt.Sprintf("%s version %s", name, Get())
}

func vcsRevision() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value, true
		}
	}
	return "", false
}
