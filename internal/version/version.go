// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - YAML/.env configuration, PLY export, terminal preview with galaxy and body views
// 0.2.0 - Data-driven surface rules, parallel galaxy generation, corona shell
// 0.1.0 - Initial release: galaxy, planets, rings, star field, headless summary
