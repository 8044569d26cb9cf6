// Package version exposes the SDK release version.
package version

// Version is the SDK version reported in the CLI and the default User-Agent.
const Version = "0.3.0"
