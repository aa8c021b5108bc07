// Package settings provides build metadata, runtime configuration, and
// context helpers used across the tomlraider CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "tomlraider"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// InputSettings describes where the document to query comes from.
type InputSettings struct {
	FromStdin bool
	Pyproject bool
	Path      string
}

// Run holds configuration settings for a single execution of the
// application: logging, input source, output formatting, and error
// handling behavior.
type Run struct {
	MinLogLevel int8
	Input       InputSettings
	OutputMode  string
	IsQuiet     bool
	NoColor     bool
	ExitOnError bool
}

// NewCliParams returns a Run with default CLI parameters: info-level
// logging, stdin input, shell output, errors fatal.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Input: InputSettings{
			FromStdin: true,
		},
		OutputMode:  "shell",
		IsQuiet:     false,
		NoColor:     false,
		ExitOnError: true,
	}
}
