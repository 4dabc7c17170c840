//go:build virtualdebug

package virtual

const debugBounds = true
