package cmd

import "fmt"

// Version information, set with -ldflags at build time
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// versionTemplate is printed by --version
var versionTemplate = fmt.Sprintf(`minigrep
Version:    {{.Version}}
Build Date: %s
Git Commit: %s
`, BuildDate, GitCommit)
