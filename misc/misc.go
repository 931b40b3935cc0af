// Package misc provides program identity helpers.
package misc

import "runtime/debug"

const appName = "rtc"

// GetAppName returns the short program name used for logging and temp files.
func GetAppName() string {
	return appName
}

// GetVersion returns the module version recorded in build info.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns the VCS revision recorded in build info, if any.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
