package main

import (
	_ "embed"
	"fmt"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// buildVersion describes the running binary.
type buildVersion struct {
	Version   string
	Revision  string
	Modified  bool
	GoVersion string
}

func (v buildVersion) String() string {
	s := v.Version
	if v.Revision != "" {
		s += "+" + v.Revision
		if v.Modified {
			s += "-dirty"
		}
	}
	if v.GoVersion != "" {
		s += fmt.Sprintf(" (%s)", v.GoVersion)
	}
	return s
}

// readVersion prefers the module version set by `go install ...@version`;
// development builds report "devel-<VERSION>" plus the VCS revision.
func readVersion() buildVersion {
	v := buildVersion{Version: strings.TrimSpace(embeddedVersion)}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	v.GoVersion = info.GoVersion

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		v.Version = info.Main.Version
		return v
	}

	v.Version = "devel-" + v.Version
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) >= 7 {
				v.Revision = s.Value[:7]
			}
		case "vcs.modified":
			v.Modified = s.Value == "true"
		}
	}
	return v
}
