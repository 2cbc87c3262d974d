//go:build !release

package gfx

// debugChecks enables the active-uniform assignment check in Program.Use.
const debugChecks = true
