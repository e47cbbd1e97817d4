// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "fastvideo"

	// Version is the current application semantic version string.
	Version = "0.3.1"
)

// Build metadata, injected at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
