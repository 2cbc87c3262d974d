//go:build release

package gfx

const debugChecks = false
