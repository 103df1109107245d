package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the module version for `go install pkg@version` builds and
// "devel-<VERSION>[+<rev>]" otherwise.
func Version() string {
	base := strings.TrimSpace(embeddedVersion)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return develVersion(base, info.Settings)
}

func develVersion(base string, settings []debug.BuildSetting) string {
	version := "devel-" + base
	for _, s := range settings {
		if s.Key != "vcs.revision" || len(s.Value) < 7 {
			continue
		}
		version += "+" + s.Value[:7]
		for _, m := range settings {
			if m.Key == "vcs.modified" && m.Value == "true" {
				version += "-dirty"
			}
		}
		break
	}
	return version
}
