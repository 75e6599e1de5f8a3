// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - Constellation figures, spherical hit-testing, named-star lookup
// 0.3.0 - Quaternion camera with eased transitions, az/alt pointing, time offset
// 0.2.0 - Progressive magnitude-banded catalog loading, catalogd server
// 0.1.0 - Initial release: TUI star field, sidereal time, headless snapshot mode
