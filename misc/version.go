// Package misc keeps build time information about the program.
package misc

// Overwritten with -ldflags "-X sitec/misc.version=..." on release builds.
var (
	appName = "sitec"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
